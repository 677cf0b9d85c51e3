package main

import (
	"os"

	"cat-resume-api/internal/bootstrap"
	"cat-resume-api/internal/shared/config"
	"cat-resume-api/internal/shared/server"
	"cat-resume-api/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		telemetry.Error("api.config_invalid", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("api.bootstrap_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.starting", map[string]any{
		"addr":          addr,
		"env":           cfg.Env,
		"llm_provider":  cfg.LLMProvider,
		"object_store":  cfg.ObjectStoreType,
		"video_enabled": cfg.VideoEnabled,
	})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.server_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
