package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/kellerh/ai-procurement/internal/ai"
	"github.com/kellerh/ai-procurement/internal/config"
	"github.com/kellerh/ai-procurement/internal/email"
	"github.com/kellerh/ai-procurement/internal/guardrail"
	httpserver "github.com/kellerh/ai-procurement/internal/interfaces/http"
	"github.com/kellerh/ai-procurement/internal/render"
	"github.com/kellerh/ai-procurement/internal/repository"
	"github.com/kellerh/ai-procurement/internal/workflow"
	"github.com/kellerh/ai-procurement/pkg/database"
	"github.com/kellerh/ai-procurement/pkg/utils"
)

func main() {
	// Local development credentials; missing file is fine
	_ = gotenv.Load(".env")

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting AI Procurement Workflow System",
		zap.String("model", cfg.OpenAI.Model),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories
	requestRepo := repository.NewRequestRepository(db, logger)
	rfpRepo := repository.NewRFPRepository(db, logger)
	runRepo := repository.NewRunRepository(db, logger)
	archiver := repository.NewArchiver(db, requestRepo, rfpRepo, runRepo, logger)

	// AI capabilities
	aiCfg := ai.Config{
		APIKey:    cfg.OpenAI.APIKey,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
	}
	classifier := ai.NewClassifier(aiCfg, logger)
	drafter := ai.NewDrafter(aiCfg, logger)
	reviewer := ai.NewReviewer(aiCfg, logger)

	// Deterministic guardrails
	guardrails := guardrail.New(guardrail.Config{
		MaxBudget:       cfg.Guardrails.MaxBudget,
		MinTimelineDays: cfg.Guardrails.MinTimelineDays,
	}, logger)

	// Email delivery with PDF rendering
	sender := email.NewSender(email.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromAddress,
	}, render.NewPDF(), logger)

	engine := workflow.NewEngine(classifier, drafter, reviewer, guardrails, sender, logger)

	handlers := httpserver.NewHandlers(engine, archiver, requestRepo, rfpRepo, runRepo, logger)
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
