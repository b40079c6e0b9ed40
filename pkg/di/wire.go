//go:build wireinject

//go:generate wire
package di

import (
	"github.com/lintang-b-s/transit-access-link/pkg/di/config"
	kv_di "github.com/lintang-b-s/transit-access-link/pkg/di/kv"
	logger_di "github.com/lintang-b-s/transit-access-link/pkg/di/logger"
	accessLinkHttp "github.com/lintang-b-s/transit-access-link/pkg/http"
	"github.com/lintang-b-s/transit-access-link/pkg/http/http-router/controllers"
	http_server "github.com/lintang-b-s/transit-access-link/pkg/http/server"
	"github.com/lintang-b-s/transit-access-link/pkg/http/usecases"
	"github.com/lintang-b-s/transit-access-link/pkg/kvdb"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var defaultSet = wire.NewSet(
	config.New,
	logger_di.New,
	kv_di.New,
)

var accessLinkSet = wire.NewSet(
	defaultSet,
	NewAccessLinkService,
	NewHTTPServerConfig,
	accessLinkHttp.NewServer,
)

func NewAccessLinkService(log *zap.Logger, store *kvdb.KVDB, cfg *config.Config) controllers.AccessLinkService {
	return usecases.New(log, store, usecases.Defaults{
		Units:    cfg.Units,
		Radius:   cfg.SearchRadius,
		NodeType: cfg.EligibleNodeType,
		Workers:  cfg.MatchWorkers,
	})
}

func NewHTTPServerConfig(cfg *config.Config) http_server.Config {
	return http_server.Config{
		Port:    cfg.APIPort,
		Timeout: cfg.APITimeout,
	}
}

func InitializeAccessLinkServer() (*accessLinkHttp.Server, func(), error) {

	panic(wire.Build(accessLinkSet))
}
