// Package ocr wraps the external text-extraction engine.
package ocr

import (
	"context"
	"errors"
)

// Engine extracts machine-readable text from a stored image.
// The engine fetches the image itself via its retrievable URL.
type Engine interface {
	ExtractText(ctx context.Context, fileURL string) (string, error)
}

// Disabled is the Engine used when no OCR provider is configured.
// Upload treats its error as a soft failure and proceeds without text.
type Disabled struct{}

func (Disabled) ExtractText(ctx context.Context, fileURL string) (string, error) {
	_ = ctx
	_ = fileURL
	return "", errors.New("ocr engine not configured")
}
