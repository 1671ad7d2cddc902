package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/basel-ax/deckgen/internal/domain"
)

// ArtifactRepository defines the interface for the artifact ledger
type ArtifactRepository interface {
	Save(ctx context.Context, artifact *domain.Artifact) error
	ListByRun(ctx context.Context, runID string) ([]domain.Artifact, error)
}

// NopArtifactRepository is used when no ledger database is configured
type NopArtifactRepository struct{}

func (NopArtifactRepository) Save(context.Context, *domain.Artifact) error { return nil }

func (NopArtifactRepository) ListByRun(context.Context, string) ([]domain.Artifact, error) {
	return nil, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS slide_artifacts (
		label       TEXT PRIMARY KEY,
		prompt      TEXT NOT NULL,
		path        TEXT NOT NULL,
		source      TEXT NOT NULL,
		run_id      TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)
`

// PostgresArtifactRepository implements ArtifactRepository for PostgreSQL
type PostgresArtifactRepository struct {
	db *sql.DB
}

// NewPostgresArtifactRepository creates a new PostgreSQL artifact repository
func NewPostgresArtifactRepository(db *sql.DB) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{db: db}
}

// EnsureSchema creates the ledger table if it does not exist
func (r *PostgresArtifactRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save inserts the artifact or refreshes the row of an existing label.
// The creation time of the first record is kept.
func (r *PostgresArtifactRepository) Save(ctx context.Context, artifact *domain.Artifact) error {
	query := `
		INSERT INTO slide_artifacts (label, prompt, path, source, run_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (label) DO UPDATE
		SET prompt = EXCLUDED.prompt,
			path = EXCLUDED.path,
			source = EXCLUDED.source,
			run_id = EXCLUDED.run_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		artifact.Label,
		artifact.Prompt,
		artifact.Path,
		string(artifact.Source),
		artifact.RunID,
		artifact.CreatedAt,
		time.Now(),
	)
	return err
}

// ListByRun returns the artifacts last touched by a build, oldest first
func (r *PostgresArtifactRepository) ListByRun(ctx context.Context, runID string) ([]domain.Artifact, error) {
	query := `
		SELECT label, prompt, path, source, run_id, created_at
		FROM slide_artifacts
		WHERE run_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		var a domain.Artifact
		var source string
		if err := rows.Scan(&a.Label, &a.Prompt, &a.Path, &source, &a.RunID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Source = domain.ArtifactSource(source)
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
