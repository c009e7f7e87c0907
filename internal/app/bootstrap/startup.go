// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/mytripteam/mytrip/internal/app/store/oauthstate"
	"github.com/mytripteam/mytrip/internal/app/system/workers"
	"go.uber.org/zap"
)

// stateCleanup is started here and stopped in Shutdown.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("mytrip starting",
		zap.String("base_url", appCfg.BaseURL),
		zap.String("frontend_url", appCfg.FrontendURL),
		zap.Bool("google_oauth", appCfg.GoogleClientID != ""))

	stateCleanup = workers.NewStateCleanup(oauthstate.New(deps.MongoDatabase), logger, 10*time.Minute)
	stateCleanup.Start()

	return nil
}
