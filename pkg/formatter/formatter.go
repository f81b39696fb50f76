package formatter

import (
	"sync"

	"github.com/yuin/goldmark"
)

// Option configures a Formatter before first use.
type Option func(*Formatter)

// TransliteratorFactory builds the transliteration engine. It runs at most
// once per Formatter.
type TransliteratorFactory func() (Transliterator, error)

// Formatter bundles the string transformations. The zero value is ready to
// use; New only exists to apply options. A Formatter must not be copied after
// first use.
type Formatter struct {
	newTransliterator TransliteratorFactory
	markdownExts      []goldmark.Extender

	translitOnce sync.Once
	translit     Transliterator
	translitErr  error

	markdownOnce sync.Once
	markdown     *markdownRenderer
}

// New constructs a Formatter applying the provided options.
func New(options ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// WithTransliterator replaces the default rule engine factory.
func WithTransliterator(factory TransliteratorFactory) Option {
	return func(f *Formatter) {
		f.newTransliterator = factory
	}
}

// WithMarkdownExtensions appends goldmark extensions to the default GFM set.
// Extensions cannot turn off safe mode: raw HTML is always dropped and the
// output always goes through the sanitizer.
func WithMarkdownExtensions(exts ...goldmark.Extender) Option {
	return func(f *Formatter) {
		for _, ext := range exts {
			if ext != nil {
				f.markdownExts = append(f.markdownExts, ext)
			}
		}
	}
}

// String returns a pointer to s for the nullable inputs.
func String(s string) *string {
	return &s
}

// Int64 returns a pointer to n for ToFileSize.
func Int64(n int64) *int64 {
	return &n
}

// TransliterationAvailable reports whether the transliteration engine was
// built. When it returns false, RemoveDiacritics returns its input unchanged.
// Calling it builds the engine if that has not happened yet.
func (f *Formatter) TransliterationAvailable() bool {
	_, ok := f.transliterator()
	return ok
}

func (f *Formatter) transliterator() (Transliterator, bool) {
	f.translitOnce.Do(func() {
		factory := f.newTransliterator
		if factory == nil {
			factory = NewTransliterator
		}
		engine, err := factory()
		if err == nil && engine == nil {
			err = ErrTransliteratorUnavailable
		}
		f.translit, f.translitErr = engine, err
	})
	if f.translitErr != nil {
		return nil, false
	}
	return f.translit, true
}

func (f *Formatter) markdownRenderer() *markdownRenderer {
	f.markdownOnce.Do(func() {
		f.markdown = newMarkdownRenderer(f.markdownExts)
	})
	return f.markdown
}
