package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/userhub/internal/config"
	"github.com/phrazzld/userhub/internal/platform/logger"
)

// loadConfigAndLogger loads the configuration once and installs the
// process-wide logger it describes.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"mail_driver", cfg.Mail.Driver,
		"reset_single_use", cfg.Auth.ResetSingleUse,
		"redis_configured", cfg.Redis.URL != "")

	return cfg, log, nil
}
