// Package ebookform is the top-level entry point: it binds ebook placeholder
// submissions and renders the placeholder form and summary through the
// packages under pkg/.
package ebookform

import (
	"context"
	"io/fs"
	"net/url"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
	"github.com/goliatone/go-ebookform/pkg/renderers/placeholder"
)

// Ebook aliases model.Ebook.
type Ebook = model.Ebook

// RenderOptions describes per-request overrides: action, method, errors,
// notices and suggestions.
type RenderOptions = render.RenderOptions

// Formatter aliases formatter.Formatter.
type Formatter = formatter.Formatter

// NewFormatter builds a text formatter. Share one per process.
func NewFormatter(options ...formatter.Option) *Formatter {
	return formatter.New(options...)
}

// NewBinder builds a form binder over f. A nil f gets a private formatter.
func NewBinder(f *Formatter, options ...form.Option) *form.Binder {
	return form.NewBinder(f, options...)
}

// BindEbook binds a placeholder submission using the default base URL. The
// ebook is returned even when the error reports validation issues.
func BindEbook(values url.Values) (Ebook, error) {
	return form.NewBinder(nil).BindEbook(values)
}

// NewRegistry returns a registry holding the form and summary renderers.
func NewRegistry(options ...placeholder.Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	if err := placeholder.Register(registry, options...); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderForm renders the placeholder form for ebook, or a blank form when
// ebook is nil.
func RenderForm(ctx context.Context, ebook *Ebook, opts RenderOptions, options ...placeholder.Option) ([]byte, error) {
	renderer, err := placeholder.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, ebook, opts)
}

// RenderSummary renders the read-only summary of ebook.
func RenderSummary(ctx context.Context, ebook *Ebook, options ...placeholder.Option) ([]byte, error) {
	renderer, err := placeholder.NewSummary(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, ebook, RenderOptions{})
}

// WithTheme passes a go-theme renderer configuration through to the renderers.
func WithTheme(cfg *theme.RendererConfig) placeholder.Option {
	return placeholder.WithTheme(cfg)
}

// EmbeddedTemplates exposes the built-in templates so callers can reuse or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return placeholder.TemplatesFS()
}
