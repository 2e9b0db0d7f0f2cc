package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/zonekit/zonekit/pkg/backend"
	"github.com/zonekit/zonekit/pkg/version"
)

type Config struct {
	Port           int
	JWTSecret      string
	AllowedOrigins []string
}

type apiServer struct {
	ctx    context.Context
	log    *logrus.Entry
	config Config
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, config Config) *apiServer {
	return &apiServer{
		ctx:    ctx,
		log:    log,
		config: config,
	}
}

func (a *apiServer) Start(backend backend.Backend) error {
	logrus.Infof("Version: %s", version.Get())

	router := NewRouter(backend, a.config)

	corsOpts := []ghandlers.CORSOption{
		ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		ghandlers.AllowCredentials(),
	}
	if len(a.config.AllowedOrigins) > 0 {
		corsOpts = append(corsOpts, ghandlers.AllowedOrigins(a.config.AllowedOrigins))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.config.Port),
		Handler: ghandlers.CORS(corsOpts...)(router),
	}

	go func() {
		a.log.WithField("port", a.config.Port).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	go backend.StartInvitePurgerDaemon(a.ctx.Done())

	<-a.ctx.Done()

	a.log.Info("shutting down the api server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the api server gracefully")
		return err
	}

	return nil
}

// NewRouter wires every route; pulled out of Start so handler tests can mount
// the full routing table.
func NewRouter(b backend.Backend, config Config) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(logrus.WithField("component", "apiserver")))
	h := newHandler(b, []byte(config.JWTSecret))

	// When functioning properly, these routes will return the version of the app that is running
	router.Path("/").HandlerFunc(h.root)
	router.Path("/healthz").HandlerFunc(h.root)

	api := router.PathPrefix("/v1").Subrouter()

	// Account creation and login are the only unauthenticated API routes
	api.Path("/signup").Methods("POST").HandlerFunc(h.signup)
	api.Path("/login").Methods("POST").HandlerFunc(h.login)

	// All routes using this authedRoutes subrouter require a bearer token
	authedRoutes := api.NewRoute().Subrouter()
	authedRoutes.Use(tokenAuthMiddleware([]byte(config.JWTSecret)))

	authedRoutes.Path("/domains").Methods("GET").HandlerFunc(h.listDomains)

	// Bulk routes are registered before the {id} routes so "bulk" never
	// matches as a record id
	authedRoutes.Path("/domains/{domain}/records/bulk").Methods("PUT").HandlerFunc(h.bulkUpdateRecords)
	authedRoutes.Path("/domains/{domain}/records/bulk").Methods("DELETE").HandlerFunc(h.bulkDeleteRecords)

	authedRoutes.Path("/domains/{domain}/records").Methods("POST").HandlerFunc(h.createRecord)
	authedRoutes.Path("/domains/{domain}/records").Methods("GET").HandlerFunc(h.listRecords)
	authedRoutes.Path("/domains/{domain}/records/{id:[0-9]+}").Methods("GET").HandlerFunc(h.getRecord)
	authedRoutes.Path("/domains/{domain}/records/{id:[0-9]+}").Methods("PUT").HandlerFunc(h.updateRecord)
	authedRoutes.Path("/domains/{domain}/records/{id:[0-9]+}").Methods("DELETE").HandlerFunc(h.deleteRecord)

	authedRoutes.Path("/domains/{domain}/stats").Methods("GET").HandlerFunc(h.getStats)
	authedRoutes.Path("/domains/{domain}/audit").Methods("GET").HandlerFunc(h.listAuditLog)

	authedRoutes.Path("/domains/{domain}/members").Methods("POST").HandlerFunc(h.inviteMember)
	authedRoutes.Path("/domains/{domain}/members").Methods("GET").HandlerFunc(h.listMembers)
	authedRoutes.Path("/domains/{domain}/members/{userId:[0-9]+}").Methods("PUT").HandlerFunc(h.changeMemberRole)
	authedRoutes.Path("/domains/{domain}/members/{userId:[0-9]+}").Methods("DELETE").HandlerFunc(h.removeMember)

	authedRoutes.Path("/invites/{id:[0-9]+}/accept").Methods("POST").HandlerFunc(h.acceptInvite)

	// Note: this allows not found urls to be logged via the middleware
	// It **HAS** to be defined after all other paths are defined.
	router.NotFoundHandler = router.NewRoute().HandlerFunc(http.NotFound).GetHandler()

	return router
}
