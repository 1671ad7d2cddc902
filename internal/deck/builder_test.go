package deck

import (
	"path/filepath"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/basel-ax/deckgen/internal/content"
	"github.com/go-playground/validator/v10"
	"github.com/basel-ax/deckgen/internal/infrastructure/placeholder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeholderImages(t *testing.T, d content.Deck) map[string]string {
	t.Helper()
	dir := t.TempDir()
	r := placeholder.NewRenderer()
	images := map[string]string{}
	for _, req := range d.Requests() {
		path := filepath.Join(dir, strings.ReplaceAll(req.Label, " ", "_")+".png")
		require.NoError(t, r.Render(req.Label, path))
		images[req.Label] = path
	}
	return images
}

func slideTexts(slide *ppt.Slide) []string {
	var texts []string
	for _, shape := range slide.GetShapes() {
		rts, ok := shape.(*ppt.RichTextShape)
		if !ok {
			continue
		}
		for _, para := range rts.GetParagraphs() {
			var text string
			for _, elem := range para.GetElements() {
				if run, ok := elem.(*ppt.TextRun); ok {
					text += run.GetText()
				}
			}
			if text = strings.TrimSpace(text); text != "" {
				texts = append(texts, text)
			}
		}
	}
	return texts
}

func TestARGBFromHex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#d1c7e5", "FFD1C7E5", false},
		{"#abc", "FFAABBCC", false},
		{"#abcd", "DDAABBCC", false},
		{"#d1c7e580", "80D1C7E5", false},
		{"d1c7e5", "", true},
		{"#12345", "", true},
		{"#gg0000", "", true},
		{" #d1c7e5", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ARGBFromHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestARGBFromHexAgreesWithValidator(t *testing.T) {
	validate := validator.New()
	for _, in := range []string{
		"#d1c7e5", "#D1C7E5", "#abc", "#abcd", "#d1c7e5ff", "#d1c7e580",
		"d1c7e5", "abc", "#", "#ab", "#abcde", "#1234567", "#123456789",
		"#gg0000", "#d1c7e5 ", "purple", "",
	} {
		_, err := ARGBFromHex(in)
		assert.Equal(t, validate.Var(in, "hexcolor") == nil, err == nil, in)
	}
}

func TestBuildSlideCount(t *testing.T) {
	d := content.Governance()
	b, err := NewBuilder("#d1c7e5")
	require.NoError(t, err)

	p, err := b.Build(d, placeholderImages(t, d))
	require.NoError(t, err)

	slides := p.GetAllSlides()
	require.Len(t, slides, 1+len(d.Sections)+1)

	assert.Contains(t, slideTexts(slides[0]), d.Title)
	assert.Contains(t, slideTexts(slides[0]), d.Subtitle)
	for i, s := range d.Sections {
		texts := slideTexts(slides[i+1])
		assert.Contains(t, texts, s.Heading)
		assert.Contains(t, texts, "• "+s.Bullets[0])
	}
	assert.Contains(t, slideTexts(slides[len(slides)-1]), d.Closing.Heading)
}

func TestBuildPaintsSlideBackground(t *testing.T) {
	d := content.Governance()
	b, err := NewBuilder("#d1c7e5")
	require.NoError(t, err)

	p, err := b.Build(d, placeholderImages(t, d))
	require.NoError(t, err)

	for i, slide := range p.GetAllSlides() {
		bg := slide.GetBackground()
		require.NotNil(t, bg, "slide %d", i)
		assert.Equal(t, ppt.FillSolid, bg.Type)
		assert.Equal(t, "FFD1C7E5", bg.Color.ARGB)
	}

	// title and subtitle only, no full-slide shape behind them
	var textShapes int
	for _, shape := range p.GetAllSlides()[0].GetShapes() {
		if _, ok := shape.(*ppt.RichTextShape); ok {
			textShapes++
		}
	}
	assert.Equal(t, 2, textShapes)
}

func TestSaveRoundTrip(t *testing.T) {
	d := content.Deck{
		Title:    "Title",
		Subtitle: "Subtitle",
		Sections: []content.Section{
			{Heading: "One", Bullets: []string{"a", "b"}},
			{Heading: "Two", Bullets: []string{"c"}},
		},
		Closing: content.Section{Heading: "End", Bullets: []string{"bye"}},
	}
	b, err := NewBuilder("#ffffff")
	require.NoError(t, err)

	p, err := b.Build(d, placeholderImages(t, d))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, Save(p, out))

	reader := &ppt.PPTXReader{}
	read, err := reader.Read(out)
	require.NoError(t, err)
	require.Len(t, read.GetAllSlides(), 4)
	for _, slide := range read.GetAllSlides() {
		require.NotNil(t, slide.GetBackground())
		assert.Equal(t, "FFFFFFFF", slide.GetBackground().Color.ARGB)
	}
}

func TestBuildMissingImageFile(t *testing.T) {
	d := content.Deck{Title: "Title", Closing: content.Section{Heading: "End"}}
	b, err := NewBuilder("#ffffff")
	require.NoError(t, err)

	_, err = b.Build(d, map[string]string{"Title": filepath.Join(t.TempDir(), "nope.png")})
	assert.Error(t, err)
}

func TestNewBuilderRejectsBadColour(t *testing.T) {
	_, err := NewBuilder("lavender")
	assert.Error(t, err)
}
