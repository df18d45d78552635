package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/samber/lo"

	"dictate/internal/app"
	"dictate/internal/audio"
	"dictate/internal/config"
	"dictate/internal/database"
	"dictate/internal/handlers"
	"dictate/internal/models"
	"dictate/internal/repository"
	"dictate/internal/security"
	"dictate/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection established", slog.String("type", cfg.DatabaseType))

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	settingsRepo := repository.NewSettingsRepository(db)
	speaker := audio.NewSpeaker(cfg.TTS.Enabled, filepath.Join(cfg.StaticPath, "audio"), cfg.TTS.Language)

	practiceService := service.NewPracticeService(logger, settingsRepo, speaker)
	if err := practiceService.Restore(context.Background()); err != nil {
		logger.Error("failed to restore session", slog.Any("error", err))
		os.Exit(1)
	}

	// Clean up clips of sentences that no longer exist
	if tts, ok := speaker.(*audio.TTSService); ok {
		texts := lo.Map(practiceService.State().Sentences, func(s models.Sentence, _ int) string { return s.Text })
		removed, err := tts.Prune(texts)
		if err != nil {
			logger.Warn("failed to clean up audio clips", slog.Any("error", err))
		} else if removed > 0 {
			logger.Info("removed orphaned audio clips", slog.Int("count", removed))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	importLimiter := security.NewRateLimiter(10, time.Minute)
	go importLimiter.Cleanup(ctx, time.Hour)

	practiceHandler := handlers.NewPracticeHandler(practiceService, cfg.ExportFilename, cfg.UploadMaxSize)

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))))

	mux.HandleFunc("GET /api/state", practiceHandler.State)
	mux.HandleFunc("POST /api/check", practiceHandler.Check)
	mux.HandleFunc("POST /api/sentences", practiceHandler.AddSentence)
	mux.HandleFunc("PUT /api/sentences/{id}", practiceHandler.EditSentence)
	mux.HandleFunc("DELETE /api/sentences/{id}", practiceHandler.DeleteSentence)
	mux.HandleFunc("POST /api/navigate", practiceHandler.Navigate)
	mux.HandleFunc("POST /api/replay", practiceHandler.Replay)
	mux.HandleFunc("GET /api/export", practiceHandler.Export)
	mux.HandleFunc("POST /api/import", importLimiter.Limit(practiceHandler.Import))
	mux.HandleFunc("GET /api/preferences", practiceHandler.GetPreferences)
	mux.HandleFunc("PUT /api/preferences", practiceHandler.UpdatePreferences)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", "http://localhost"+addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
