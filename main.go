package main

import (
	"context"
	"net/http"
	"os"

	"github.com/arcenciel/creche-api/authentication"
	"github.com/arcenciel/creche-api/planning"
	"github.com/arcenciel/creche-api/resources"
	"github.com/arcenciel/creche-api/shared"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

var (
	ctx    = context.Background()
	logger = shared.NewLogger("creche-api")
)

func main() {
	config, err := shared.InitAppConfiguration()
	checkErrAndExit(err)

	registry := resources.NewRegistry(config, logger, &shared.StringGenerator{})
	checkErrAndExit(registry.InitStores(ctx))

	authenticator := &authentication.Authenticator{
		Config: config,
		Logger: logger,
	}

	startHttpServer(config, registry, authenticator)
}

func startHttpServer(config *shared.AppConfig, registry *resources.Registry, authenticator *authentication.Authenticator) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorLogger(logger),
		kithttp.ServerErrorEncoder(resources.EncodeError),
	}

	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	router.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, shared.NewMessage("API Daycare"), http.StatusOK)
	}).Methods(http.MethodGet)

	apiRouter := router.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/auth/login", authenticator.Login).Methods(http.MethodPost)
	apiRouter.Handle("/auth/me", authenticator.Guard(http.HandlerFunc(authenticator.Me))).Methods(http.MethodGet)

	resources.Register(apiRouter, "staff", &resources.HandlerFactory{
		Service:  registry.Staff,
		Validate: resources.ValidateStaff,
	}, authenticator.Guard, opts)
	resources.Register(apiRouter, "children", &resources.HandlerFactory{
		Service:  registry.Children,
		Validate: resources.ValidateChild,
	}, authenticator.Guard, opts)
	resources.Register(apiRouter, "activities", &resources.HandlerFactory{
		Service:  registry.Activities,
		Validate: resources.ValidateActivity,
	}, authenticator.Guard, opts)
	resources.Register(apiRouter, "inventory", &resources.HandlerFactory{
		Service:  registry.Inventory,
		Validate: resources.ValidateInventory,
	}, authenticator.Guard, opts)

	planning.Register(apiRouter, &planning.HandlerFactory{
		Staff:      registry.Staff,
		Children:   registry.Children,
		Activities: registry.Activities,
		Inventory:  registry.Inventory,
	}, authenticator.Guard, opts)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{config.AllowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	addr := "0.0.0.0:" + config.Port
	logger.Info(ctx, "api ready", "addr", addr)

	checkErrAndExit(http.ListenAndServe(addr,
		logger.RequestLoggerMiddleware(
			recoverMiddleware(
				cors(router),
			),
		),
	))
}

// recoverMiddleware is the outermost error boundary: a panicking handler is
// logged and answered with the generic 500 body.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				logger.Err(req.Context(), "recovered from panic", "panic", r)
				shared.WriteJSON(w, shared.ServerError, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

func checkErrAndExit(err error) {
	if err != nil {
		logger.Err(ctx, err.Error())
		os.Exit(1)
	}
}
