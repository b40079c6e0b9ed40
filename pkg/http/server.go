package http

import (
	"context"

	http_router "github.com/lintang-b-s/transit-access-link/pkg/http/http-router"
	"github.com/lintang-b-s/transit-access-link/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/transit-access-link/pkg/http/server"

	"go.uber.org/zap"
)

type Server struct {
	log               *zap.Logger
	config            http_server.Config
	accessLinkService controllers.AccessLinkService
}

func NewServer(log *zap.Logger, config http_server.Config, accessLinkService controllers.AccessLinkService) *Server {
	return &Server{
		log:               log,
		config:            config,
		accessLinkService: accessLinkService,
	}
}

// Run blocks until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	return http_router.NewAPI(s.log).Run(ctx, s.config, s.accessLinkService)
}
