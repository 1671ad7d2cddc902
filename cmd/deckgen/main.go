package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/basel-ax/deckgen/internal/config"
	"github.com/basel-ax/deckgen/internal/content"
	"github.com/basel-ax/deckgen/internal/deck"
	"github.com/basel-ax/deckgen/internal/logger"
	"github.com/basel-ax/deckgen/internal/repository"
	"github.com/basel-ax/deckgen/internal/service"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("deck generation failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	verbose := flag.Bool("verbose", false, "Enable debug logging with source locations")
	runCron := flag.Bool("cron", false, "Rebuild the deck on CRON_SCHEDULE instead of once")
	output := flag.String("out", "", "Output .pptx path (overrides OUTPUT_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *output != "" {
		cfg.OutputFile = *output
	}

	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat, *verbose)
	log.Debug("configuration loaded", "assets_dir", cfg.AssetsDir, "output", cfg.OutputFile)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ledger, closeLedger, err := openLedger(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLedger()

	builder, err := deck.NewBuilder(cfg.BackgroundColor)
	if err != nil {
		return fmt.Errorf("failed to create deck builder: %w", err)
	}

	illustrations := service.NewIllustrationService(cfg,
		service.WithLedger(ledger),
		service.WithLogger(log),
	)
	generator := service.NewDeckGenerationService(illustrations, builder, cfg.OutputFile, log)

	if *runCron {
		return startCron(ctx, generator, cfg.CronSchedule, log)
	}

	report, err := generator.Generate(ctx, content.Governance())
	if err != nil {
		return err
	}
	fmt.Printf("Presentation saved to %s\n", report.OutputPath)
	return nil
}

// openLedger connects the PostgreSQL artifact ledger when DB_HOST is set
func openLedger(ctx context.Context, cfg *config.Config, log *slog.Logger) (repository.ArtifactRepository, func(), error) {
	if !cfg.LedgerEnabled() {
		return repository.NopArtifactRepository{}, func() {}, nil
	}

	log.Info("initializing artifact ledger", "host", cfg.DB.Host, "database", cfg.DB.Database)
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	repo := repository.NewPostgresArtifactRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to prepare ledger schema: %w", err)
	}
	return repo, func() { db.Close() }, nil
}

func startCron(ctx context.Context, generator *service.DeckGenerationService, schedule string, log *slog.Logger) error {
	c := cron.New(cron.WithSeconds())

	var mu sync.Mutex
	_, err := c.AddFunc(schedule, func() {
		mu.Lock()
		defer mu.Unlock()

		log.Info("[CRON] running scheduled deck build")
		report, err := generator.Generate(ctx, content.Governance())
		if err != nil {
			log.Error("[CRON] deck build failed", "error", err)
			return
		}
		log.Info("[CRON] finished scheduled deck build", "path", report.OutputPath)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule deck build: %w", err)
	}

	c.Start()
	log.Info("cron scheduler started", "schedule", schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("cron scheduler stopped")
	return nil
}
