package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/basel-ax/deckgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresArtifactRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresArtifactRepository(db), mock
}

func TestEnsureSchema(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS slide_artifacts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO slide_artifacts").
		WithArgs("Governance Overview", "wheel", "assets/governance_overview.png", "remote", "run-1", created, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), &domain.Artifact{
		Label:     "Governance Overview",
		Prompt:    "wheel",
		Path:      "assets/governance_overview.png",
		Source:    domain.SourceRemote,
		RunID:     "run-1",
		CreatedAt: created,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByRun(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"label", "prompt", "path", "source", "run_id", "created_at"}).
		AddRow("a", "p1", "assets/a.png", "remote", "run-3", created).
		AddRow("b", "p2", "assets/b.png", "cached", "run-3", created.Add(time.Second))
	mock.ExpectQuery("FROM slide_artifacts").WithArgs("run-3").WillReturnRows(rows)

	got, err := repo.ListByRun(context.Background(), "run-3")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Label)
	assert.Equal(t, domain.SourceCached, got[1].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopArtifactRepository(t *testing.T) {
	var repo ArtifactRepository = NopArtifactRepository{}

	assert.NoError(t, repo.Save(context.Background(), &domain.Artifact{Label: "x"}))
	got, err := repo.ListByRun(context.Background(), "run")
	assert.NoError(t, err)
	assert.Empty(t, got)
}
