package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/basel-ax/deckgen/internal/config"
	"github.com/basel-ax/deckgen/internal/domain"
	"github.com/basel-ax/deckgen/internal/infrastructure/placeholder"
	"github.com/basel-ax/deckgen/internal/infrastructure/pollinations"
	"github.com/basel-ax/deckgen/internal/repository"
)

// IllustrationService resolves slide labels to image files, fetching remote
// illustrations when possible and drawing placeholders otherwise.
type IllustrationService struct {
	generator   domain.ImageGenerator
	placeholder domain.PlaceholderRenderer
	ledger      repository.ArtifactRepository
	logger      *slog.Logger

	assetsDir string
	width     int
	height    int
	runID     string
}

var _ domain.IllustrationProvider = (*IllustrationService)(nil)

// Option customises an IllustrationService
type Option func(*IllustrationService)

// WithGenerator replaces the remote image generator
func WithGenerator(g domain.ImageGenerator) Option {
	return func(s *IllustrationService) { s.generator = g }
}

// WithPlaceholder replaces the placeholder renderer
func WithPlaceholder(p domain.PlaceholderRenderer) Option {
	return func(s *IllustrationService) { s.placeholder = p }
}

// WithLedger records every resolved artifact in repo
func WithLedger(repo repository.ArtifactRepository) Option {
	return func(s *IllustrationService) { s.ledger = repo }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *IllustrationService) { s.logger = l }
}

// NewIllustrationService creates a new illustration service from configuration
func NewIllustrationService(cfg *config.Config, opts ...Option) *IllustrationService {
	s := &IllustrationService{
		generator:   pollinations.NewClient(cfg.ImageEndpoint, cfg.ImageTimeout),
		placeholder: placeholder.NewRenderer(),
		ledger:      repository.NopArtifactRepository{},
		logger:      slog.Default(),
		assetsDir:   cfg.AssetsDir,
		width:       cfg.ImageWidth,
		height:      cfg.ImageHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForRun returns a copy of the service tagging logs and ledger rows with runID
func (s *IllustrationService) ForRun(runID string) *IllustrationService {
	c := *s
	c.runID = runID
	c.logger = s.logger.With("run_id", runID)
	return &c
}

// ArtifactPath returns where the artifact for label is stored
func (s *IllustrationService) ArtifactPath(label string) string {
	return domain.ArtifactPath(s.assetsDir, label)
}

// Resolve returns the path of an image for label, generating it on first use
func (s *IllustrationService) Resolve(ctx context.Context, label, prompt string) (string, error) {
	artifact, err := s.ResolveArtifact(ctx, label, prompt)
	if err != nil {
		return "", err
	}
	return artifact.Path, nil
}

// ResolveArtifact is Resolve but also reports where the image came from
func (s *IllustrationService) ResolveArtifact(ctx context.Context, label, prompt string) (*domain.Artifact, error) {
	if err := os.MkdirAll(s.assetsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create assets directory: %w", err)
	}

	artifact := &domain.Artifact{
		Label:     label,
		Prompt:    prompt,
		Path:      s.ArtifactPath(label),
		RunID:     s.runID,
		CreatedAt: time.Now(),
	}
	logger := s.logger.With("label", label, "path", artifact.Path)

	switch _, err := os.Stat(artifact.Path); {
	case err == nil:
		artifact.Source = domain.SourceCached
		logger.Debug("reusing cached artifact")
		s.record(ctx, artifact)
		return artifact, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to stat artifact: %w", err)
	}

	if err := s.fetchRemote(ctx, prompt, artifact.Path); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("remote generation failed, drawing placeholder", "error", err)

		err := s.writeAtomic(artifact.Path, func(tmp string) error {
			return s.placeholder.Render(label, tmp)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to render placeholder for %q: %w", label, err)
		}
		artifact.Source = domain.SourcePlaceholder
	} else {
		artifact.Source = domain.SourceRemote
	}

	logger.Info("artifact created", "source", artifact.Source)
	s.record(ctx, artifact)
	return artifact, nil
}

// ResolveAll resolves requests in order and returns the artifacts keyed by label
func (s *IllustrationService) ResolveAll(ctx context.Context, reqs []domain.SlideRequest) (map[string]*domain.Artifact, error) {
	artifacts := make(map[string]*domain.Artifact, len(reqs))
	for _, req := range reqs {
		artifact, err := s.ResolveArtifact(ctx, req.Label, req.Prompt)
		if err != nil {
			return nil, err
		}
		artifacts[req.Label] = artifact
	}
	return artifacts, nil
}

// RunArtifacts lists what the ledger recorded for the current run
func (s *IllustrationService) RunArtifacts(ctx context.Context) ([]domain.Artifact, error) {
	return s.ledger.ListByRun(ctx, s.runID)
}

// fetchRemote downloads one image to destination. Every failure is reported
// as ErrRemoteUnavailable so the caller can fall back.
func (s *IllustrationService) fetchRemote(ctx context.Context, prompt, destination string) error {
	resp, err := s.generator.GenerateImage(ctx, domain.ImageGenerationRequest{
		Prompt: prompt,
		Width:  s.width,
		Height: s.height,
		NoLogo: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}

	s.logger.Debug("remote image fetched", "content_type", resp.ContentType, "bytes", len(resp.Data))

	err = s.writeAtomic(destination, func(tmp string) error {
		return os.WriteFile(tmp, resp.Data, 0o644)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write image: %w", domain.ErrRemoteUnavailable, err)
	}
	return nil
}

// writeAtomic lets write fill a temp file in the assets directory and renames
// it onto destination, so an interrupted write never leaves a partial artifact.
func (s *IllustrationService) writeAtomic(destination string, write func(tmp string) error) error {
	f, err := os.CreateTemp(s.assetsDir, ".artifact-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	f.Close()

	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmp, destination); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}

// record stores the artifact in the ledger; the ledger is auxiliary so
// failures are only logged
func (s *IllustrationService) record(ctx context.Context, artifact *domain.Artifact) {
	if err := s.ledger.Save(ctx, artifact); err != nil {
		s.logger.Warn("failed to record artifact", "label", artifact.Label, "error", err)
	}
}
