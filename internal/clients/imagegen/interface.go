// Package imagegen is the location for the image-generation and image
// download clients used by the art engine.
package imagegen

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_imagegen.go -package=imagegenmock github.com/KirkDiggler/deck-forge/internal/clients/imagegen Generator,Downloader

// GenerateInput is one image-generation request
type GenerateInput struct {
	Prompt string
	Size   string
	N      int
}

// Image is one generated result. URL is set for hosted results; B64JSON
// for inline results.
type Image struct {
	URL     string
	B64JSON string
}

// GenerateOutput holds the generated images in service order
type GenerateOutput struct {
	Images []Image
}

// Generator submits prompts to an image-generation service.
//
// A non-success response is returned as an UNAVAILABLE error whose meta
// carries "status" (int) and "body" (string) for diagnostics.
type Generator interface {
	Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error)
}

// Downloader fetches raw image bytes from a URL
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}
