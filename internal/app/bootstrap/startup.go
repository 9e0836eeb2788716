// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/dalemusser/flattrack/internal/app/store/users"
	"github.com/dalemusser/flattrack/internal/app/system/status"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// FlatTrack seeds the first admin account and starts the mail
// dispatcher here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, appCfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	if deps.MailDispatch != nil {
		deps.MailDispatch.Start()
	}
	return nil
}

// ensureAdmin creates the configured admin account, or promotes the
// existing account with that email to admin. Idempotent across
// restarts.
func ensureAdmin(ctx context.Context, deps DBDeps, email, password string, logger *zap.Logger) error {
	store := userstore.New(deps.FlatTrackMongoDatabase)

	existing, err := store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == "admin" {
			return nil
		}
		role := "admin"
		if _, err := store.Update(ctx, existing.ID, userstore.Update{Role: &role}); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		logger.Info("promoted existing user to admin", zap.String("email", email))
		return nil

	case errors.Is(err, mongo.ErrNoDocuments):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		_, err = store.Create(ctx, models.User{
			FullName:     "Administrator",
			Email:        email,
			PasswordHash: string(hash),
			Role:         "admin",
			Status:       status.Active,
		})
		if err != nil && !errors.Is(err, userstore.ErrDuplicateEmail) {
			return fmt.Errorf("create admin: %w", err)
		}
		logger.Info("created initial admin user", zap.String("email", email))
		return nil

	default:
		return fmt.Errorf("look up admin: %w", err)
	}
}
