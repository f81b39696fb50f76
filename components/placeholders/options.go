package placeholders

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/render"
)

const (
	defaultRoutePath = "/ebook-placeholders"
	defaultLoginURL  = "/sessions/new"
)

// GuardFunc runs before authentication; returning an error rejects the
// request (403 unless the error implements HTTPError).
type GuardFunc func(r *http.Request) error

// Logger is satisfied by *log.Logger.
type Logger interface {
	Printf(format string, v ...any)
}

type Options struct {
	RoutePath string
	// BaseURL is the site root identifiers are built from.
	BaseURL  string
	LoginURL string
	Guard    GuardFunc
	Logger   Logger

	Auth     Authenticator
	Sessions Sessions
	Ebooks   EbookStore
	Projects ProjectStore
	Catalog  Catalog
	Binder   *form.Binder
	Renderer render.Renderer

	// basePath is set by RegisterRoutes so redirects include the mount prefix.
	basePath string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: defaultRoutePath,
		BaseURL:   form.DefaultBaseURL,
		LoginURL:  defaultLoginURL,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.RoutePath) == "" {
		opts.RoutePath = defaultRoutePath
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = form.DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if strings.TrimSpace(opts.LoginURL) == "" {
		opts.LoginURL = defaultLoginURL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Binder == nil {
		opts.Binder = form.NewBinder(nil, form.WithBaseURL(opts.BaseURL))
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithBaseURL(base string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BaseURL = base
	}
}

func WithLoginURL(loginURL string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LoginURL = loginURL
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithAuthenticator(auth Authenticator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Auth = auth
	}
}

func WithSessions(sessions Sessions) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sessions = sessions
	}
}

func WithEbookStore(store EbookStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Ebooks = store
	}
}

func WithProjectStore(store ProjectStore) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Projects = store
	}
}

func WithCatalog(catalog Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = catalog
	}
}

// WithBinder overrides the form binder. Its base URL should match BaseURL.
func WithBinder(binder *form.Binder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Binder = binder
	}
}

// WithRenderer sets the renderer used for the new and edit forms.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func (o Options) validate() error {
	var missing string
	switch {
	case o.Auth == nil:
		missing = "authenticator"
	case o.Sessions == nil:
		missing = "sessions"
	case o.Ebooks == nil:
		missing = "ebook store"
	case o.Projects == nil:
		missing = "project store"
	default:
		return nil
	}
	return fmt.Errorf("placeholders: missing %s", missing)
}
