package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/basel-ax/deckgen/internal/content"
	"github.com/basel-ax/deckgen/internal/deck"
	"github.com/basel-ax/deckgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeckService(t *testing.T, gen domain.ImageGenerator) (*DeckGenerationService, string) {
	t.Helper()
	cfg := testConfig(t)
	builder, err := deck.NewBuilder("#d1c7e5")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	illustrations := NewIllustrationService(cfg, WithGenerator(gen), WithLogger(quietLogger()))
	return NewDeckGenerationService(illustrations, builder, out, quietLogger()), out
}

func TestGenerateEndToEnd(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("offline")}
	svc, out := newDeckService(t, gen)
	d := content.Governance()

	report, err := svc.Generate(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, len(d.Sections)+2, report.Slides)
	assert.Equal(t, len(d.Sections)+2, report.Sources[domain.SourcePlaceholder])
	assert.NotEmpty(t, report.RunID)
	assert.True(t, filepath.IsAbs(report.OutputPath))

	reader := &ppt.PPTXReader{}
	p, err := reader.Read(out)
	require.NoError(t, err)
	assert.Len(t, p.GetAllSlides(), 1+len(d.Sections)+1)
}

func TestGenerateSecondRunUsesCache(t *testing.T) {
	gen := &fakeGenerator{data: remotePNG(t)}
	svc, _ := newDeckService(t, gen)
	d := content.Governance()

	first, err := svc.Generate(context.Background(), d)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, len(d.Requests()), first.Sources[domain.SourceRemote])
	assert.Equal(t, len(d.Requests()), second.Sources[domain.SourceCached])
	assert.Equal(t, len(d.Requests()), gen.callCount())
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestGenerateUnwritableOutput(t *testing.T) {
	svc, _ := newDeckService(t, &fakeGenerator{err: errors.New("offline")})
	svc.outputFile = filepath.Join(t.TempDir(), "missing", "deck.pptx")

	_, err := svc.Generate(context.Background(), content.Governance())
	assert.Error(t, err)
}

func TestGenerateReportsLedgerRows(t *testing.T) {
	ledger := &memoryLedger{}
	builder, err := deck.NewBuilder("#d1c7e5")
	require.NoError(t, err)
	illustrations := NewIllustrationService(testConfig(t),
		WithGenerator(&fakeGenerator{err: errors.New("offline")}),
		WithLedger(ledger),
		WithLogger(quietLogger()),
	)
	svc := NewDeckGenerationService(illustrations, builder, filepath.Join(t.TempDir(), "deck.pptx"), quietLogger())
	d := content.Governance()

	report, err := svc.Generate(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, len(d.Requests()), report.Recorded)
	for _, a := range ledger.saved {
		assert.Equal(t, report.RunID, a.RunID)
	}
}
