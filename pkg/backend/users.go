package backend

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/zonekit/zonekit/pkg/db"
	"github.com/zonekit/zonekit/pkg/model"
	"github.com/zonekit/zonekit/pkg/record"
)

func (b *backend) CreateUser(merchantName, email, password string) (model.UserResponse, error) {
	var resp model.UserResponse

	if merchantName == "" {
		return resp, model.InvalidInput("merchantName", "must be provided")
	}
	if !record.IsEmail(email) {
		return resp, model.InvalidInput("email", "must be a valid email address")
	}
	if len(password) < 8 {
		return resp, model.InvalidInput("password", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return resp, model.StorageError(err)
	}

	err = b.db.Transaction(func(tx db.Store) error {
		existing, err := tx.FindUserByEmail(email)
		if err != nil {
			return model.StorageError(err)
		}
		if existing != nil {
			return model.Conflict("a user with email %s already exists", email)
		}

		user := &db.User{
			MerchantName: merchantName,
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := tx.CreateUser(user); err != nil {
			return model.StorageError(err)
		}

		resp = model.UserResponse{ID: user.ID, MerchantName: user.MerchantName, Email: user.Email}
		return nil
	})

	return resp, err
}

// Authenticate verifies credentials and derives the actor identity the rest of
// the service consumes. Bad email and bad password are indistinguishable to
// the caller.
func (b *backend) Authenticate(email, password string) (model.Actor, model.UserResponse, error) {
	user, err := b.db.FindUserByEmail(email)
	if err != nil {
		return model.Actor{}, model.UserResponse{}, model.StorageError(err)
	}
	if user == nil {
		return model.Actor{}, model.UserResponse{}, model.Forbidden("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Actor{}, model.UserResponse{}, model.Forbidden("invalid credentials")
	}

	actor := model.Actor{UserID: user.ID, IsGlobalAdmin: user.IsGlobalAdmin}
	resp := model.UserResponse{ID: user.ID, MerchantName: user.MerchantName, Email: user.Email}
	return actor, resp, nil
}
