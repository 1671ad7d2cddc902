package domain

import (
	"context"
)

// ImageGenerationRequest represents the parameters for remote image generation
type ImageGenerationRequest struct {
	Prompt string
	Width  int
	Height int
	NoLogo bool
}

// ImageGenerationResponse represents the image returned by the generator
type ImageGenerationResponse struct {
	Data        []byte
	ContentType string
}

// ImageGenerator defines the interface for remote image generation
type ImageGenerator interface {
	// GenerateImage generates an image based on the provided prompt
	GenerateImage(ctx context.Context, req ImageGenerationRequest) (*ImageGenerationResponse, error)
}

// PlaceholderRenderer synthesizes a local image for a label
type PlaceholderRenderer interface {
	Render(label string, destination string) error
}

// IllustrationProvider resolves a slide request to an image path
type IllustrationProvider interface {
	Resolve(ctx context.Context, label, prompt string) (string, error)
}
