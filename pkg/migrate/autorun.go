package migrate

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations on boot when auto-migrate is enabled.
// Production deploys run cmd/migrate explicitly instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.App.AutoMigrate {
		return nil
	}
	if cfg.App.IsProd() {
		if logg != nil {
			logg.Warn(ctx, "auto-migrate ignored in prod")
		}
		return nil
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return err
	}

	if logg != nil {
		logg.Info(ctx, "running pending migrations")
	}
	return Up(ctx, sqlDB, DefaultDir)
}
