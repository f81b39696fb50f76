package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	ebookform "github.com/goliatone/go-ebookform"
	"github.com/goliatone/go-ebookform/components/placeholders"
	"github.com/goliatone/go-ebookform/internal/memstore"
	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/render"
	"github.com/goliatone/go-ebookform/pkg/renderers/placeholder"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placeholder form against in-memory stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}
			logger := log.New(cmd.ErrOrStderr(), "ebookform: ", log.LstdFlags)

			handler, err := newServer(a, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
				ErrorLog:          logger,
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Printf("listening on http://%s%s", addr, placeholders.NewFormPath("", placeholders.WithRoutePath(a.cfg.RoutePath)))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to http_addr)")
	return cmd
}

const assetsPath = "/assets/"

func assetURL(key string) string {
	if key == "stylesheet" {
		return assetsPath + ebookform.StylesheetName
	}
	return ""
}

// newServer wires the placeholder component and a read-only ebook page over
// fresh in-memory stores.
func newServer(a *app, logger *log.Logger) (http.Handler, error) {
	store := memstore.New()
	sessions := memstore.NewSessions(a.cfg.Session.Cookie)

	var user *placeholders.User
	if a.cfg.User.Name != "" {
		user = &placeholders.User{
			Name:                     a.cfg.User.Name,
			CanEditEbookPlaceholders: a.cfg.User.CanEditEbookPlaceholders,
		}
	}

	registry := render.NewRegistry()
	if err := placeholder.Register(registry,
		placeholder.WithFormatter(a.formatter),
		placeholder.WithTheme(a.themeConfig(assetURL)),
	); err != nil {
		return nil, err
	}
	formRenderer, err := registry.Get(placeholder.FormName)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	route, err := placeholders.RegisterRoutes(mux, "",
		placeholders.WithRoutePath(a.cfg.RoutePath),
		placeholders.WithBaseURL(a.cfg.BaseURL),
		placeholders.WithLoginURL(a.cfg.LoginURL),
		placeholders.WithLogger(logger),
		placeholders.WithAuthenticator(memstore.StaticAuthenticator{User: user}),
		placeholders.WithSessions(sessions),
		placeholders.WithEbookStore(store.Ebooks()),
		placeholders.WithProjectStore(store.Projects()),
		placeholders.WithCatalog(store),
		placeholders.WithBinder(form.NewBinder(a.formatter, form.WithBaseURL(a.cfg.BaseURL))),
		placeholders.WithRenderer(formRenderer),
	)
	if err != nil {
		return nil, err
	}

	mux.Handle(assetsPath, http.StripPrefix(assetsPath, http.FileServerFS(ebookform.AssetsFS())))
	mux.Handle("/ebooks/", &ebookPage{
		baseURL:  a.cfg.BaseURL,
		store:    store.Ebooks(),
		sessions: sessions,
		registry: registry,
		logger:   logger,
	})
	mux.Handle("/{$}", http.RedirectHandler(route+"/new", http.StatusSeeOther))
	return mux, nil
}

// ebookPage shows the summary of a stored ebook at its URL.
type ebookPage struct {
	baseURL  string
	store    placeholders.EbookStore
	sessions placeholders.Sessions
	registry *render.Registry
	logger   *log.Logger
}

func (p *ebookPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	identifier := "url:" + p.baseURL + strings.TrimRight(r.URL.Path, "/")
	ebook, err := p.store.GetByIdentifier(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, placeholders.ErrEbookNotFound) {
			http.NotFound(w, r)
			return
		}
		p.logger.Printf("load %s: %v", identifier, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	out, contentType, err := p.registry.Render(r.Context(), placeholder.SummaryName, ebook, render.RenderOptions{})
	if err != nil {
		p.logger.Printf("render %s: %v", identifier, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if saved, _ := p.sessions.Pop(r, placeholders.FlashPlaceholderSaved); saved == true {
		fmt.Fprintln(w, `<p class="message success">Ebook placeholder saved.</p>`)
	}
	_, _ = w.Write(out)
}
