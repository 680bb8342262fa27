package app

import (
	"context"

	"github.com/oshokin/apiflow/internal/config"
	"github.com/oshokin/apiflow/internal/logger"
)

// ExecuteSetTokenCommand stores the given bearer token in the configuration
// file so subsequent authenticated calls pick it up.
func ExecuteSetTokenCommand(ctx context.Context, cfg *config.Config, token string) {
	cfg.AuthToken = token

	if err := config.SaveConfig(cfg); err != nil {
		logger.Fatalf(ctx, "Failed to save configuration: %v", err)

		return
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Info(ctx, "Authenticated calls will now carry the new token.")
}
