package http_router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lintang-b-s/transit-access-link/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/transit-access-link/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/transit-access-link/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

func (api *API) Handler(accessLinkService controllers.AccessLinkService) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	group := router_helper.NewRouteGroup(router, "/api")

	accessLinkRoutes := controllers.New(accessLinkService, api.log)

	accessLinkRoutes.Routes(group)

	return alice.New(corsHandler.Handler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), EnforceJSONHandler).Then(router)
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,

	accessLinkService controllers.AccessLinkService,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(accessLinkService), config)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		api.log.Info(fmt.Sprintf("API run on port %d", config.Port))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		api.log.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
