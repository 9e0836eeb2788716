// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MailDispatch != nil {
		if n := deps.MailDispatch.Pending(); n > 0 {
			logger.Warn("stopping mail dispatcher with emails still queued", zap.Int("pending", n))
		}
		deps.MailDispatch.Stop()
	}

	if deps.FlatTrackMongoClient != nil {
		logger.Info("disconnecting FlatTrack MongoDB client")
		if err := deps.FlatTrackMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
