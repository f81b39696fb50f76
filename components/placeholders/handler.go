package placeholders

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
	"github.com/goliatone/go-ebookform/pkg/renderers/placeholder"
)

type action func(w http.ResponseWriter, r *http.Request, rest string)

type handler struct {
	opts  Options
	route string

	rendererOnce sync.Once
	renderer     render.Renderer
	rendererErr  error
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. The handler serves every path below the route, so mount it on both
// the route and its subtree (RegisterRoutes does this).
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return &handler{
		opts:     opts,
		route:    mountPath(opts.basePath, opts.RoutePath),
		renderer: opts.Renderer,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.opts.validate(); err != nil {
		h.opts.Logger.Printf("%v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rest, ok := h.relative(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	act := h.dispatch(effectiveMethod(r), rest)
	if act == nil {
		// Unsupported methods are reported as forbidden, not 405.
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeError(w, err, http.StatusForbidden)
			return
		}
	}

	if err := h.authorize(r); err != nil {
		switch {
		case errors.Is(err, errLoginRequired):
			target := h.opts.LoginURL + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
		case errors.Is(err, errForbidden):
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		default:
			h.opts.Logger.Printf("placeholders: authenticate: %v", err)
			writeError(w, err, http.StatusInternalServerError)
		}
		return
	}

	act(w, r, rest)
}

func (h *handler) dispatch(method, rest string) action {
	switch {
	case rest == "":
		if method == http.MethodPost {
			return h.create
		}
	case rest == "/new":
		if method == http.MethodGet || method == http.MethodHead {
			return h.newForm
		}
	default:
		switch method {
		case http.MethodPut:
			return h.update
		case http.MethodGet, http.MethodHead:
			return h.editForm
		}
	}
	return nil
}

func (h *handler) authorize(r *http.Request) error {
	user, err := h.opts.Auth.CurrentUser(r)
	if err != nil {
		return err
	}
	if user == nil {
		return errLoginRequired
	}
	if !user.CanEditEbookPlaceholders {
		return errForbidden
	}
	return nil
}

func (h *handler) create(w http.ResponseWriter, r *http.Request, _ string) {
	ctx := r.Context()
	newPath := h.route + "/new"

	if err := r.ParseForm(); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}

	ebook, err := h.opts.Binder.BindEbook(r.PostForm)
	if err != nil {
		h.fail(w, r, &ebook, err, newPath)
		return
	}

	var project *model.Project
	if ebook.IsInProgress() {
		bound, err := h.opts.Binder.BindProject(r.PostForm)
		if err != nil {
			h.fail(w, r, &ebook, err, newPath)
			return
		}
		project = &bound
	}

	onlyProject := false
	if err := h.opts.Ebooks.Create(ctx, &ebook); err != nil {
		if !errors.Is(err, ErrDuplicateEbook) {
			h.fail(w, r, &ebook, fmt.Errorf("placeholders: create ebook: %w", err), newPath)
			return
		}
		existing, lookupErr := h.opts.Ebooks.GetByIdentifier(ctx, ebook.Identifier)
		if lookupErr != nil {
			h.fail(w, r, &ebook, fmt.Errorf("placeholders: load duplicate ebook: %w", lookupErr), newPath)
			return
		}
		// A project for an existing placeholder without one is still created.
		if project == nil || existing.ProjectInProgress != nil {
			h.fail(w, r, existing, err, newPath)
			return
		}
		ebook.ID = existing.ID
		onlyProject = true
	}

	if project != nil {
		project.EbookID = ebook.ID
		project.Ebook = &ebook
		if err := h.opts.Projects.Create(ctx, project); err != nil {
			h.fail(w, r, &ebook, fmt.Errorf("placeholders: create project: %w", err), newPath)
			return
		}
		ebook.ProjectInProgress = project
	}

	flashes := []flash{{FlashEbook, &ebook}, {FlashPlaceholderCreated, true}}
	if onlyProject {
		flashes = append(flashes, flash{FlashOnlyProjectCreated, true})
	}
	if err := h.flash(w, r, flashes...); err != nil {
		h.internal(w, r, err)
		return
	}
	http.Redirect(w, r, newPath, http.StatusSeeOther)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request, rest string) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}

	original, err := h.opts.Ebooks.GetByIdentifier(ctx, h.identifierFor(rest))
	if err != nil {
		h.fail(w, r, nil, err, h.route+"/new")
		return
	}
	editPath := h.editPath(original)

	ebook, err := h.opts.Binder.BindEbook(r.PostForm)
	if err != nil {
		h.fail(w, r, &ebook, err, editPath)
		return
	}
	ebook.ID = original.ID
	ebook.Created = original.Created

	if err := h.opts.Ebooks.Save(ctx, &ebook); err != nil {
		h.fail(w, r, &ebook, err, editPath)
		return
	}

	if err := h.flash(w, r, flash{FlashPlaceholderSaved, true}); err != nil {
		h.internal(w, r, err)
		return
	}
	http.Redirect(w, r, ebook.URL(), http.StatusSeeOther)
}

func (h *handler) newForm(w http.ResponseWriter, r *http.Request, _ string) {
	options := render.RenderOptions{
		Action:      h.route,
		Method:      http.MethodPost,
		Suggestions: h.suggestions(r.Context()),
	}

	flashed, _ := h.pop(r, FlashEbook).(*model.Ebook)
	var ebook *model.Ebook

	if exception, ok := h.pop(r, FlashException).(error); ok {
		options = render.MapError(exception).Apply(options)
		ebook = flashed
	}
	created, _ := h.pop(r, FlashPlaceholderCreated).(bool)
	onlyProject, _ := h.pop(r, FlashOnlyProjectCreated).(bool)
	if created && flashed != nil {
		if onlyProject {
			options.Notices = append(options.Notices, fmt.Sprintf("%q already existed, so only its project was created.", flashed.Title))
		} else {
			options.Notices = append(options.Notices, fmt.Sprintf("Ebook placeholder %q created.", flashed.Title))
		}
	}

	h.render(w, r, ebook, options)
}

func (h *handler) editForm(w http.ResponseWriter, r *http.Request, rest string) {
	original, err := h.opts.Ebooks.GetByIdentifier(r.Context(), h.identifierFor(rest))
	if err != nil {
		if errors.Is(err, ErrEbookNotFound) {
			http.NotFound(w, r)
			return
		}
		h.internal(w, r, err)
		return
	}

	options := render.RenderOptions{
		Action:      h.route + rest,
		Method:      http.MethodPut,
		Suggestions: h.suggestions(r.Context()),
	}
	ebook := original

	flashed, _ := h.pop(r, FlashEbook).(*model.Ebook)
	if exception, ok := h.pop(r, FlashException).(error); ok {
		options = render.MapError(exception).Apply(options)
		if flashed != nil {
			ebook = flashed
		}
	}

	h.render(w, r, ebook, options)
}

// fail flashes the ebook and the error and redirects for errors the user can
// correct; anything else is a 500.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, ebook *model.Ebook, err error, redirect string) {
	if !isAppError(err) {
		h.internal(w, r, err)
		return
	}
	if ferr := h.flash(w, r, flash{FlashEbook, ebook}, flash{FlashException, err}); ferr != nil {
		h.internal(w, r, ferr)
		return
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *handler) internal(w http.ResponseWriter, r *http.Request, err error) {
	h.opts.Logger.Printf("placeholders: %s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, err, http.StatusInternalServerError)
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, ebook *model.Ebook, options render.RenderOptions) {
	renderer, err := h.formRenderer()
	if err != nil {
		h.internal(w, r, err)
		return
	}
	out, err := renderer.Render(r.Context(), ebook, options)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out)
}

func (h *handler) formRenderer() (render.Renderer, error) {
	h.rendererOnce.Do(func() {
		if h.renderer != nil {
			return
		}
		h.renderer, h.rendererErr = placeholder.New()
	})
	return h.renderer, h.rendererErr
}

func (h *handler) suggestions(ctx context.Context) render.Suggestions {
	var out render.Suggestions
	catalog := h.opts.Catalog
	if catalog == nil {
		return out
	}
	lists := []struct {
		name  string
		load  func(context.Context) ([]string, error)
		value *[]string
	}{
		{"author names", catalog.AuthorNames, &out.AuthorNames},
		{"translator names", catalog.TranslatorNames, &out.TranslatorNames},
		{"collection names", catalog.CollectionNames, &out.CollectionNames},
	}
	for _, list := range lists {
		names, err := list.load(ctx)
		if err != nil {
			h.opts.Logger.Printf("placeholders: load %s: %v", list.name, err)
			continue
		}
		*list.value = names
	}
	return out
}

type flash struct {
	key   string
	value any
}

func (h *handler) flash(w http.ResponseWriter, r *http.Request, values ...flash) error {
	for _, f := range values {
		if err := h.opts.Sessions.Put(w, r, f.key, f.value); err != nil {
			return fmt.Errorf("placeholders: flash %s: %w", f.key, err)
		}
	}
	return nil
}

func (h *handler) pop(r *http.Request, key string) any {
	value, ok := h.opts.Sessions.Pop(r, key)
	if !ok {
		return nil
	}
	return value
}

// relative returns the request path below the route: "" for the route
// itself, otherwise a path starting with "/" and without a trailing slash.
func (h *handler) relative(path string) (string, bool) {
	if path == h.route || path == h.route+"/" {
		return "", true
	}
	if !strings.HasPrefix(path, h.route+"/") {
		return "", false
	}
	return strings.TrimRight(strings.TrimPrefix(path, h.route), "/"), true
}

// identifierFor maps "/author/title[/translators]" to the ebook identifier.
func (h *handler) identifierFor(rest string) string {
	return "url:" + h.opts.BaseURL + "/ebooks" + rest
}

func (h *handler) editPath(ebook *model.Ebook) string {
	return h.route + strings.TrimPrefix(ebook.URL(), "/ebooks")
}

// effectiveMethod honours the _method override on POST submissions.
func effectiveMethod(r *http.Request) string {
	if r.Method != http.MethodPost {
		return r.Method
	}
	if override := strings.ToUpper(strings.TrimSpace(r.PostFormValue(render.MethodOverrideField))); override != "" {
		return override
	}
	return r.Method
}
