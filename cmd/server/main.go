package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pixelgram/pixelgram/internal/app"
	"github.com/pixelgram/pixelgram/internal/config"
	"github.com/pixelgram/pixelgram/internal/logger"
	"github.com/pixelgram/pixelgram/internal/routes"
	"github.com/pixelgram/pixelgram/internal/service"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	go purgeExpiredStories(app.StoryService)

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}

// purgeExpiredStories removes stories past their expiry once an hour.
func purgeExpiredStories(stories *service.StoryService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		_, err := stories.DeleteExpired()
		if err != nil {
			slog.Error("failed to purge expired stories", "error", err)
		}
	}
}
