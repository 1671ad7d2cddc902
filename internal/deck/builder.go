package deck

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/basel-ax/deckgen/internal/content"
)

// Layout constants, 16:9
const (
	emuPerInch = 914400

	slideWidth  = int64(10.0 * emuPerInch)
	slideHeight = int64(5.625 * emuPerInch)

	imageWidth  = int64(3.5 * emuPerInch)
	imageRight  = int64(0.6 * emuPerInch)
	imageTop    = int64(1.6 * emuPerInch)
	imageLeft   = slideWidth - imageWidth - imageRight
	textLeft    = int64(0.7 * emuPerInch)
	textWidth   = imageLeft - textLeft - int64(0.2*emuPerInch)
	headingTop  = int64(0.4 * emuPerInch)
	bodyTop     = int64(1.6 * emuPerInch)
	bodyHeight  = slideHeight - bodyTop - int64(0.4*emuPerInch)
	headingSize = 30
	titleSize   = 44
	subSize     = 24
	bodySize    = 16

	textColor = "FF2E2646"
)

// Builder assembles presentations from deck content
type Builder struct {
	background string
}

// NewBuilder creates a builder painting every slide with the given CSS hex colour
func NewBuilder(backgroundHex string) (*Builder, error) {
	argb, err := ARGBFromHex(backgroundHex)
	if err != nil {
		return nil, err
	}
	return &Builder{background: argb}, nil
}

// ARGBFromHex converts a CSS colour accepted by the hexcolor validator
// (#rgb, #rgba, #rrggbb or #rrggbbaa) to the AARRGGBB form GoPPT expects.
// Colours without an alpha channel are opaque.
func ARGBFromHex(hex string) (string, error) {
	h, ok := strings.CutPrefix(hex, "#")
	if !ok {
		return "", fmt.Errorf("invalid hex colour %q", hex)
	}
	for _, c := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", fmt.Errorf("invalid hex colour %q", hex)
		}
	}

	if len(h) == 3 || len(h) == 4 {
		long := make([]byte, 0, 2*len(h))
		for i := 0; i < len(h); i++ {
			long = append(long, h[i], h[i])
		}
		h = string(long)
	}

	h = strings.ToUpper(h)
	switch len(h) {
	case 6:
		return "FF" + h, nil
	case 8:
		return h[6:] + h[:6], nil
	default:
		return "", fmt.Errorf("invalid hex colour %q", hex)
	}
}

// Build lays out the title slide, one slide per section and the closing slide.
// images maps slide labels (title or heading) to image files.
func (b *Builder) Build(d content.Deck, images map[string]string) (*ppt.Presentation, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = d.Title
	p.GetDocumentProperties().Creator = "deckgen"

	if err := b.addTitleSlide(p.GetActiveSlide(), d.Title, d.Subtitle, images[d.Title]); err != nil {
		return nil, err
	}

	for _, s := range d.Sections {
		if err := b.addBulletSlide(p.CreateSlide(), s, images[s.Heading]); err != nil {
			return nil, err
		}
	}

	if err := b.addBulletSlide(p.CreateSlide(), d.Closing, images[d.Closing.Heading]); err != nil {
		return nil, err
	}

	return p, nil
}

// Write encodes the presentation as .pptx
func Write(p *ppt.Presentation, w io.Writer) error {
	pw, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("failed to create PPT writer: %w", err)
	}
	if err := pw.(*ppt.PPTXWriter).WriteTo(w); err != nil {
		return fmt.Errorf("failed to save PPT: %w", err)
	}
	return nil
}

// Save writes the presentation to path
func Save(p *ppt.Presentation, path string) error {
	var buf bytes.Buffer
	if err := Write(p, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (b *Builder) paintBackground(slide *ppt.Slide) {
	slide.SetBackground(ppt.NewFill().SetSolid(ppt.NewColor(b.background)))
}

func (b *Builder) addTitleSlide(slide *ppt.Slide, title, subtitle, imagePath string) error {
	b.paintBackground(slide)

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(textLeft).SetOffsetY(int64(1.4 * emuPerInch))
	titleShape.SetWidth(textWidth).SetHeight(int64(2.0 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(titleSize).SetBold(true).SetColor(ppt.NewColor(textColor))

	subShape := slide.CreateRichTextShape()
	subShape.SetOffsetX(textLeft).SetOffsetY(int64(3.6 * emuPerInch))
	subShape.SetWidth(textWidth).SetHeight(int64(0.8 * emuPerInch))
	sr := subShape.CreateTextRun(subtitle)
	sr.GetFont().SetSize(subSize).SetColor(ppt.NewColor(textColor))

	return addImage(slide, imagePath)
}

func (b *Builder) addBulletSlide(slide *ppt.Slide, s content.Section, imagePath string) error {
	b.paintBackground(slide)

	heading := slide.CreateRichTextShape()
	heading.SetOffsetX(textLeft).SetOffsetY(headingTop)
	heading.SetWidth(slideWidth - 2*textLeft).SetHeight(int64(0.9 * emuPerInch))
	hr := heading.CreateTextRun(s.Heading)
	hr.GetFont().SetSize(headingSize).SetBold(true).SetColor(ppt.NewColor(textColor))

	body := slide.CreateRichTextShape()
	body.SetOffsetX(textLeft).SetOffsetY(bodyTop)
	body.SetWidth(textWidth).SetHeight(bodyHeight)
	for i, bullet := range s.Bullets {
		if i > 0 {
			body.CreateParagraph()
		}
		br := body.CreateTextRun("• " + bullet)
		br.GetFont().SetSize(bodySize).SetColor(ppt.NewColor(textColor))
	}

	return addImage(slide, imagePath)
}

// addImage places the illustration on the right, keeping its aspect ratio
func addImage(slide *ppt.Slide, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	height := imageWidth * 9 / 16
	if cfg.Width > 0 {
		height = imageWidth * int64(cfg.Height) / int64(cfg.Width)
	}

	img := slide.CreateDrawingShape()
	img.SetImageData(data, "image/"+format)
	img.SetOffsetX(imageLeft).SetOffsetY(imageTop)
	img.SetWidth(imageWidth).SetHeight(height)
	return nil
}
