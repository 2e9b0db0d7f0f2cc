package apiserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zonekit/zonekit/pkg/model"
)

type ContextKey string

const ActorKey ContextKey = "actor"

const tokenLifetime = 4 * time.Hour

// issueToken mints the bearer token handed out at login. The claims carry
// exactly what the core consumes: the user id and the global-admin flag.
func issueToken(secret []byte, actor model.Actor) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":        actor.UserID,
		"isGlobalAdmin": actor.IsGlobalAdmin,
		"iat":           now.Unix(),
		"exp":           now.Add(tokenLifetime).Unix(),
	})
	return token.SignedString(secret)
}

func parseToken(secret []byte, raw string) (model.Actor, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return model.Actor{}, errors.New("expired or invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Actor{}, errors.New("malformed token claims")
	}
	userID, ok := claims["userID"].(float64)
	if !ok || userID <= 0 {
		return model.Actor{}, errors.New("malformed token claims")
	}
	isGlobalAdmin, _ := claims["isGlobalAdmin"].(bool)

	return model.Actor{UserID: uint(userID), IsGlobalAdmin: isGlobalAdmin}, nil
}

func tokenAuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorization, "Bearer ") {
				writeError(w, http.StatusUnauthorized, string(model.KindForbidden), errors.New("no token provided"))
				return
			}

			actor, err := parseToken(secret, strings.TrimPrefix(authorization, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, string(model.KindForbidden), err)
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func actorFromContext(ctx context.Context) model.Actor {
	actor, _ := ctx.Value(ActorKey).(model.Actor)
	return actor
}
