// Package generation declares the capability contracts implemented by
// generation backends so any provider can be substituted behind them.
package generation

import (
	"context"

	"github.com/Masty1988/my-social-flow/internal/domain"
	"github.com/Masty1988/my-social-flow/internal/prompt"
)

// ContentRequest carries everything a text-generation call needs: the
// instruction, the declared output shape, and optionally the uploaded image
// for vision-capable mode.
type ContentRequest struct {
	Instruction string
	Schema      prompt.OutputSchema
	Image       *domain.SourceImage
	RequestID   string
}

// TextGenerator performs a single schema-constrained text-generation call and
// returns the raw textual payload the model emitted. No retries; the payload
// is expected to be JSON matching the schema but is not guaranteed to be.
type TextGenerator interface {
	GenerateContent(ctx context.Context, req ContentRequest) (string, error)
}

// ImageGenerator turns a text prompt into an image, returned as a data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, imagePrompt string) (string, error)
}
