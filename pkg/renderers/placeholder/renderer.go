package placeholder

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
	rendertemplate "github.com/goliatone/go-ebookform/pkg/render/template"
	"github.com/goliatone/go-ebookform/pkg/render/template/gotemplate"
)

const (
	// FormName is the registry name of the HTML form renderer.
	FormName = "ebook-placeholder-form"
	// SummaryName is the registry name of the read-only summary renderer.
	SummaryName = "ebook-placeholder-summary"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	formatter        *formatter.Formatter
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. The
// renderer must provide the formatter template functions itself.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormatter shares a formatter with the template functions.
func WithFormatter(f *formatter.Formatter) Option {
	return func(cfg *config) {
		cfg.formatter = f
	}
}

// WithTheme decorates the output with theme name, variant, stylesheet and CSS
// variables.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer renders the ebook placeholder HTML form.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

// SummaryRenderer renders a read-only HTML summary of a placeholder.
type SummaryRenderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

var (
	_ render.Renderer = (*Renderer)(nil)
	_ render.Renderer = (*SummaryRenderer)(nil)
)

// New constructs the form renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: cfg.templateRenderer, theme: cfg.theme}, nil
}

// NewSummary constructs the summary renderer. It accepts the same options as
// New.
func NewSummary(options ...Option) (*SummaryRenderer, error) {
	cfg, err := configure(options)
	if err != nil {
		return nil, err
	}
	return &SummaryRenderer{templates: cfg.templateRenderer, theme: cfg.theme}, nil
}

// Register adds both renderers to registry, sharing one template engine.
func Register(registry *render.Registry, options ...Option) error {
	cfg, err := configure(options)
	if err != nil {
		return err
	}
	if err := registry.Register(&Renderer{templates: cfg.templateRenderer, theme: cfg.theme}); err != nil {
		return err
	}
	return registry.Register(&SummaryRenderer{templates: cfg.templateRenderer, theme: cfg.theme})
}

func configure(options []Option) (config, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	if cfg.templateRenderer == nil {
		if cfg.formatter == nil {
			cfg.formatter = formatter.New()
		}
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithFormatter(cfg.formatter),
		)
		if err != nil {
			return cfg, fmt.Errorf("placeholder renderer: configure template renderer: %w", err)
		}
		cfg.templateRenderer = engine
	}
	return cfg, nil
}

func (r *Renderer) Name() string {
	return FormName
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form for ebook, or a blank form when ebook is nil.
func (r *Renderer) Render(_ context.Context, ebook *model.Ebook, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("placeholder renderer: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate(formTemplate, buildFormView(ebook, options, r.theme))
	if err != nil {
		return nil, fmt.Errorf("placeholder renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *SummaryRenderer) Name() string {
	return SummaryName
}

func (r *SummaryRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the summary. Render options are ignored.
func (r *SummaryRenderer) Render(_ context.Context, ebook *model.Ebook, _ render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("placeholder renderer: template renderer is nil")
	}
	if ebook == nil {
		return nil, fmt.Errorf("placeholder renderer: ebook is required")
	}

	result, err := r.templates.RenderTemplate(summaryTemplate, buildSummaryView(ebook, r.theme))
	if err != nil {
		return nil, fmt.Errorf("placeholder renderer: render summary: %w", err)
	}
	return []byte(result), nil
}
