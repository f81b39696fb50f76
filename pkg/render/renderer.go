package render

import (
	"context"

	"github.com/goliatone/go-ebookform/pkg/model"
)

// Renderer converts an ebook into a byte representation (an HTML form, a
// read-only summary, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, ebook *model.Ebook, options RenderOptions) ([]byte, error)
}
