package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/basel-ax/deckgen/internal/content"
	"github.com/basel-ax/deckgen/internal/deck"
	"github.com/basel-ax/deckgen/internal/domain"
)

// BuildReport summarises one deck build
type BuildReport struct {
	RunID      string
	OutputPath string
	Slides     int
	Sources    map[domain.ArtifactSource]int
	Recorded   int // ledger rows written by this run
	Duration   time.Duration
}

// DeckGenerationService resolves illustrations and writes the presentation
type DeckGenerationService struct {
	illustrations *IllustrationService
	builder       *deck.Builder
	outputFile    string
	logger        *slog.Logger
}

// NewDeckGenerationService creates a new deck generation service
func NewDeckGenerationService(illustrations *IllustrationService, builder *deck.Builder, outputFile string, logger *slog.Logger) *DeckGenerationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckGenerationService{
		illustrations: illustrations,
		builder:       builder,
		outputFile:    outputFile,
		logger:        logger,
	}
}

// Generate runs one build: one illustration per slide, then the .pptx file
func (s *DeckGenerationService) Generate(ctx context.Context, d content.Deck) (*BuildReport, error) {
	start := time.Now()
	report := &BuildReport{
		RunID:   uuid.NewString(),
		Sources: make(map[domain.ArtifactSource]int),
	}
	logger := s.logger.With("run_id", report.RunID)
	illustrations := s.illustrations.ForRun(report.RunID)

	logger.Info("resolving illustrations", "slides", len(d.Sections)+2)
	artifacts, err := illustrations.ResolveAll(ctx, d.Requests())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve illustrations: %w", err)
	}
	images := make(map[string]string, len(artifacts))
	for label, artifact := range artifacts {
		images[label] = artifact.Path
		report.Sources[artifact.Source]++
	}

	if recorded, err := illustrations.RunArtifacts(ctx); err != nil {
		logger.Warn("failed to list ledger rows", "error", err)
	} else {
		report.Recorded = len(recorded)
		logger.Debug("ledger rows for run", "count", report.Recorded)
	}

	p, err := s.builder.Build(d, images)
	if err != nil {
		return nil, fmt.Errorf("failed to build presentation: %w", err)
	}
	report.Slides = len(p.GetAllSlides())

	if err := deck.Save(p, s.outputFile); err != nil {
		return nil, err
	}

	report.OutputPath, err = filepath.Abs(s.outputFile)
	if err != nil {
		report.OutputPath = s.outputFile
	}
	report.Duration = time.Since(start)

	logger.Info("presentation saved",
		"path", report.OutputPath,
		"slides", report.Slides,
		"cached", report.Sources[domain.SourceCached],
		"remote", report.Sources[domain.SourceRemote],
		"placeholder", report.Sources[domain.SourcePlaceholder],
		"recorded", report.Recorded,
		"duration", report.Duration,
	)
	return report, nil
}
