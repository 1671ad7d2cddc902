package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Fallback canvas geometry
const (
	Width       = 800
	Height      = 450
	borderInset = 40
	borderWidth = 6
)

var (
	Background = color.RGBA{R: 102, G: 90, B: 142, A: 255}
	Border     = color.RGBA{R: 210, G: 199, B: 229, A: 255}
	TextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Renderer draws placeholder illustrations
type Renderer struct {
	face *basicfont.Face
}

// NewRenderer creates a renderer using the built-in bitmap face
func NewRenderer() *Renderer {
	return &Renderer{face: basicfont.Face7x13}
}

// Image builds the placeholder canvas for a label
func (r *Renderer) Image(label string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	r.drawBorder(img)
	r.drawLabel(img, label)

	return img
}

// Render writes the placeholder PNG for label to destination
func (r *Renderer) Render(label string, destination string) error {
	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create placeholder: %w", err)
	}

	if err := png.Encode(f, r.Image(label)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode placeholder: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close placeholder: %w", err)
	}
	return nil
}

// drawBorder strokes the inset rectangle inward from its outer edge
func (r *Renderer) drawBorder(img *image.RGBA) {
	outer := image.Rect(borderInset, borderInset, Width-borderInset+1, Height-borderInset+1)
	src := &image.Uniform{C: Border}

	edges := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+borderWidth),
		image.Rect(outer.Min.X, outer.Max.Y-borderWidth, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+borderWidth, outer.Max.Y),
		image.Rect(outer.Max.X-borderWidth, outer.Min.Y, outer.Max.X, outer.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Src)
	}
}

// drawable drops runes the face has no glyph for, so they are not drawn as boxes
func (r *Renderer) drawable(label string) string {
	return strings.Map(func(c rune) rune {
		for _, rng := range r.face.Ranges {
			if rng.Low <= c && c < rng.High {
				return c
			}
		}
		return -1
	}, label)
}

// drawLabel centres the label; text wider than the canvas is clipped
func (r *Renderer) drawLabel(img *image.RGBA, label string) {
	label = r.drawable(label)
	if label == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: TextColor},
		Face: r.face,
	}

	metrics := r.face.Metrics()
	textWidth := d.MeasureString(label)
	textHeight := metrics.Ascent + metrics.Descent

	x := (fixed.I(Width) - textWidth) / 2
	y := (fixed.I(Height)-textHeight)/2 + metrics.Ascent
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(label)
}
