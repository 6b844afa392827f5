package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"symptom-checker/internal/analysis"
	"symptom-checker/internal/config"
	"symptom-checker/internal/http"
	"symptom-checker/internal/llm"
	"symptom-checker/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize history persistence when enabled
	var db *sql.DB
	var history storage.HistoryStore
	if cfg.DatabaseEnabled {
		db, err = storage.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("Database initialized", "path", cfg.DBPath)

		queryRepo := storage.NewQueryRepo(db)
		history = queryRepo

		// Startup retention sweep; history is best effort, so a failed sweep
		// only logs
		if cfg.HistoryRetentionDays > 0 {
			deleted, err := queryRepo.DeleteOlderThan(context.Background(), cfg.HistoryRetentionDays)
			if err != nil {
				slog.Error("History retention sweep failed", "error", err)
			} else if deleted > 0 {
				slog.Info("History retention sweep completed", "deleted", deleted, "days", cfg.HistoryRetentionDays)
			}
		}
	} else {
		slog.Info("History persistence disabled")
	}

	// Create completion client (external service layer)
	completionClient := llm.NewClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.GroqModel, cfg.ResponseTimeout)

	// Create analysis service
	analysisService := analysis.NewService(completionClient, analysis.Config{
		Model:            cfg.GroqModel,
		Temperature:      cfg.GroqTemperature,
		MaxTokens:        cfg.GroqMaxTokens,
		TopP:             cfg.GroqTopP,
		MaxSymptomLength: cfg.MaxSymptomLength,
		SystemPrompt:     analysis.SystemPrompt,
		Disclaimer:       analysis.MedicalDisclaimer,
	})
	slog.Info("Analysis service initialized", "model", cfg.GroqModel, "timeout", cfg.ResponseTimeout)

	// Create router with dependencies
	deps := &http.Deps{
		AnalysisService: analysisService,
		History:         history,
		DB:              db,
		Model:           cfg.GroqModel,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("Completion configuration", "base_url", cfg.GroqBaseURL, "model", cfg.GroqModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
