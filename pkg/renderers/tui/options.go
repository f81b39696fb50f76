package tui

import (
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
)

// Theme captures optional formatting hints the driver applies when printing
// section headings.
type Theme struct {
	InfoPrefix string
}

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithSuggestions offers known names as autocompletion for contributor and
// collection prompts.
func WithSuggestions(suggestions render.Suggestions) Option {
	return func(c *Collector) {
		c.suggestions = suggestions
	}
}

// WithDefaults prefills every prompt from an existing ebook.
func WithDefaults(ebook *model.Ebook) Option {
	return func(c *Collector) {
		c.defaults = ebook
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}
