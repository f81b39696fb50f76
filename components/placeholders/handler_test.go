package placeholders_test

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-ebookform/components/placeholders"
	"github.com/goliatone/go-ebookform/internal/memstore"
	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/testsupport"
)

const sampleIdentifier = "url:https://standardebooks.org/ebooks/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude"

type fixture struct {
	store    *memstore.Store
	sessions *memstore.Sessions
	mux      *http.ServeMux
	logs     *bytes.Buffer
}

func newFixture(t *testing.T, user *placeholders.User, fns ...placeholders.OptionFn) *fixture {
	t.Helper()

	f := &fixture{
		store:    memstore.New(),
		sessions: memstore.NewSessions(""),
		mux:      http.NewServeMux(),
		logs:     &bytes.Buffer{},
	}
	binder := form.NewBinder(formatter.New(), form.WithNow(func() time.Time { return testsupport.FixedTime }))
	options := append([]placeholders.OptionFn{
		placeholders.WithAuthenticator(memstore.StaticAuthenticator{User: user}),
		placeholders.WithSessions(f.sessions),
		placeholders.WithEbookStore(f.store.Ebooks()),
		placeholders.WithProjectStore(f.store.Projects()),
		placeholders.WithCatalog(f.store),
		placeholders.WithBinder(binder),
		placeholders.WithLogger(log.New(f.logs, "", 0)),
	}, fns...)

	if _, err := placeholders.RegisterRoutes(f.mux, "", options...); err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return f
}

func editor() *placeholders.User {
	return &placeholders.User{Name: "editor", CanEditEbookPlaceholders: true}
}

func (f *fixture) do(method, target string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) pop(t *testing.T, rec *httptest.ResponseRecorder, key string) (any, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return f.sessions.Pop(req, key)
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

func TestCreate_StoresPlaceholderAndFlashes(t *testing.T) {
	f := newFixture(t, editor())

	rec := f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues())
	assertRedirect(t, rec, "/ebook-placeholders/new")

	stored, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier)
	if err != nil {
		t.Fatalf("stored ebook: %v", err)
	}
	if stored.Title != "War and Peace" || stored.Placeholder == nil || !stored.Placeholder.IsWanted {
		t.Fatalf("unexpected stored ebook: %+v", stored)
	}

	created, ok := f.pop(t, rec, placeholders.FlashPlaceholderCreated)
	if !ok || created != true {
		t.Fatalf("expected created flash, got %v %v", created, ok)
	}
	flashed, _ := f.pop(t, rec, placeholders.FlashEbook)
	if ebook, ok := flashed.(*model.Ebook); !ok || ebook.ID != stored.ID {
		t.Fatalf("expected flashed ebook with ID %d, got %#v", stored.ID, flashed)
	}
}

func TestCreate_InProgressCreatesProject(t *testing.T) {
	f := newFixture(t, editor())

	values := testsupport.SampleValues()
	values.Set(form.FieldStatus, string(model.StatusInProgress))
	values.Set(form.FieldProducerName, "Alex")
	values.Set(form.FieldProducerEmail, "alex@example.com")

	rec := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, rec, "/ebook-placeholders/new")

	stored, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier)
	if err != nil {
		t.Fatalf("stored ebook: %v", err)
	}
	if stored.ProjectInProgress == nil || stored.ProjectInProgress.ProducerName != "Alex" {
		t.Fatalf("expected project in progress, got %+v", stored.ProjectInProgress)
	}
	if stored.ProjectInProgress.EbookID != stored.ID {
		t.Fatalf("project ebook id = %d, want %d", stored.ProjectInProgress.EbookID, stored.ID)
	}
	if !stored.ProjectInProgress.Started.Equal(testsupport.FixedTime) {
		t.Fatalf("project started = %v", stored.ProjectInProgress.Started)
	}
}

func TestCreate_InvalidProjectFailsBeforeStoring(t *testing.T) {
	f := newFixture(t, editor())

	values := testsupport.SampleValues()
	values.Set(form.FieldStatus, string(model.StatusInProgress))

	rec := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, rec, "/ebook-placeholders/new")

	if _, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier); !errors.Is(err, placeholders.ErrEbookNotFound) {
		t.Fatalf("ebook should not be stored, got err %v", err)
	}
	exception, _ := f.pop(t, rec, placeholders.FlashException)
	var verr *form.ValidationError
	if err, ok := exception.(error); !ok || !errors.As(err, &verr) {
		t.Fatalf("expected validation error flash, got %#v", exception)
	}
	if _, ok := verr.Fields()[form.FieldProducerName]; !ok {
		t.Fatalf("expected producer name issue, got %v", verr.Fields())
	}
}

func TestCreate_ValidationErrorRedisplaysForm(t *testing.T) {
	f := newFixture(t, editor())

	values := testsupport.SampleValues()
	values.Del(form.FieldTitle)

	rec := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, rec, "/ebook-placeholders/new")

	page := f.do(http.MethodGet, "/ebook-placeholders/new", nil, rec.Result().Cookies()...)
	if page.Code != http.StatusOK {
		t.Fatalf("new form status = %d", page.Code)
	}
	body := page.Body.String()
	for _, want := range []string{
		`<p class="error">An ebook title is required.</p>`,
		`value="Leo Tolstoy"`,
		`value="https://www.gutenberg.org/ebooks/2600"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("new form missing %q", want)
		}
	}

	// Flashes are consumed by the first render.
	again := f.do(http.MethodGet, "/ebook-placeholders/new", nil, rec.Result().Cookies()...)
	if strings.Contains(again.Body.String(), "An ebook title is required.") {
		t.Fatal("errors should not survive a second render")
	}
}

func TestCreate_DuplicateWithoutProjectFails(t *testing.T) {
	f := newFixture(t, editor())

	first := f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues())
	assertRedirect(t, first, "/ebook-placeholders/new")

	values := testsupport.SampleValues()
	values.Set(form.FieldNotes, "second attempt")
	rec := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, rec, "/ebook-placeholders/new")

	exception, _ := f.pop(t, rec, placeholders.FlashException)
	if err, ok := exception.(error); !ok || !errors.Is(err, placeholders.ErrDuplicateEbook) {
		t.Fatalf("expected duplicate error, got %#v", exception)
	}
	flashed, _ := f.pop(t, rec, placeholders.FlashEbook)
	if ebook, ok := flashed.(*model.Ebook); !ok || ebook.Placeholder.Notes != "Long *and* worth it." {
		t.Fatalf("expected the existing ebook to be flashed, got %#v", flashed)
	}
	if _, ok := f.pop(t, rec, placeholders.FlashPlaceholderCreated); ok {
		t.Fatal("created flag must not be set on failure")
	}
}

func TestCreate_DuplicateWithProjectCreatesOnlyProject(t *testing.T) {
	f := newFixture(t, editor())

	first := f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues())
	assertRedirect(t, first, "/ebook-placeholders/new")

	values := testsupport.SampleValues()
	values.Set(form.FieldStatus, string(model.StatusInProgress))
	values.Set(form.FieldProducerName, "Alex")
	rec := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, rec, "/ebook-placeholders/new")

	if only, ok := f.pop(t, rec, placeholders.FlashOnlyProjectCreated); !ok || only != true {
		t.Fatalf("expected only-project flash, got %v %v", only, ok)
	}
	stored, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier)
	if err != nil {
		t.Fatalf("stored ebook: %v", err)
	}
	if stored.ProjectInProgress == nil || stored.ProjectInProgress.EbookID != stored.ID {
		t.Fatalf("expected project attached to existing ebook, got %+v", stored.ProjectInProgress)
	}

	// A second project for the same ebook is a duplicate.
	again := f.do(http.MethodPost, "/ebook-placeholders", values)
	assertRedirect(t, again, "/ebook-placeholders/new")
	exception, _ := f.pop(t, again, placeholders.FlashException)
	if err, ok := exception.(error); !ok || !errors.Is(err, placeholders.ErrDuplicateEbook) {
		t.Fatalf("expected duplicate error, got %#v", exception)
	}
}

func TestUpdate_SavesAndRedirectsToEbook(t *testing.T) {
	for _, method := range []string{http.MethodPut, "override"} {
		t.Run(method, func(t *testing.T) {
			f := newFixture(t, editor())
			assertRedirect(t, f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues()), "/ebook-placeholders/new")
			original, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier)
			if err != nil {
				t.Fatalf("original: %v", err)
			}

			values := testsupport.SampleValues()
			values.Set(form.FieldNotes, "Updated notes.")
			values.Set(form.FieldDifficulty, string(model.DifficultyBeginner))
			httpMethod := method
			if method == "override" {
				httpMethod = http.MethodPost
				values.Set("_method", "PUT")
			}

			rec := f.do(httpMethod, "/ebook-placeholders/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude", values)
			assertRedirect(t, rec, "/ebooks/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude")

			saved, err := f.store.Ebooks().GetByIdentifier(context.Background(), sampleIdentifier)
			if err != nil {
				t.Fatalf("saved: %v", err)
			}
			if saved.ID != original.ID || !saved.Created.Equal(original.Created) {
				t.Fatalf("identity not preserved: %+v", saved)
			}
			if saved.Placeholder.Notes != "Updated notes." || saved.Placeholder.Difficulty != model.DifficultyBeginner {
				t.Fatalf("placeholder not updated: %+v", saved.Placeholder)
			}
			if flag, ok := f.pop(t, rec, placeholders.FlashPlaceholderSaved); !ok || flag != true {
				t.Fatalf("expected saved flash, got %v %v", flag, ok)
			}
		})
	}
}

func TestUpdate_ValidationErrorRedirectsToEditForm(t *testing.T) {
	f := newFixture(t, editor())
	assertRedirect(t, f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues()), "/ebook-placeholders/new")

	values := testsupport.SampleValues()
	values.Set(form.FieldYearPublished, "twenty")
	rec := f.do(http.MethodPut, "/ebook-placeholders/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude", values)
	assertRedirect(t, rec, "/ebook-placeholders/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude")

	page := f.do(http.MethodGet, "/ebook-placeholders/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude", nil, rec.Result().Cookies()...)
	if page.Code != http.StatusOK {
		t.Fatalf("edit form status = %d", page.Code)
	}
	body := page.Body.String()
	for _, want := range []string{
		`<input type="hidden" name="_method" value="PUT"/>`,
		`<p class="error">The year published must be a number of up to four digits.</p>`,
		`action="/ebook-placeholders/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude" method="POST"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("edit form missing %q", want)
		}
	}
}

func TestUpdate_UnknownEbook(t *testing.T) {
	f := newFixture(t, editor())

	rec := f.do(http.MethodPut, "/ebook-placeholders/nobody/nothing", testsupport.SampleValues())
	assertRedirect(t, rec, "/ebook-placeholders/new")

	exception, _ := f.pop(t, rec, placeholders.FlashException)
	if err, ok := exception.(error); !ok || !errors.Is(err, placeholders.ErrEbookNotFound) {
		t.Fatalf("expected not found error, got %#v", exception)
	}

	if got := f.do(http.MethodGet, "/ebook-placeholders/nobody/nothing", nil).Code; got != http.StatusNotFound {
		t.Fatalf("edit form for unknown ebook status = %d, want 404", got)
	}
}

func TestAccessControl(t *testing.T) {
	tests := []struct {
		name         string
		user         *placeholders.User
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{name: "anonymous is sent to login", user: nil, method: http.MethodPost, target: "/ebook-placeholders", wantStatus: http.StatusSeeOther, wantLocation: "/sessions/new?redirect=%2Febook-placeholders"},
		{name: "anonymous form view", user: nil, method: http.MethodGet, target: "/ebook-placeholders/new", wantStatus: http.StatusSeeOther, wantLocation: "/sessions/new?redirect=%2Febook-placeholders%2Fnew"},
		{name: "user without permission", user: &placeholders.User{Name: "reader"}, method: http.MethodPost, target: "/ebook-placeholders", wantStatus: http.StatusForbidden},
		{name: "wrong method on collection", user: editor(), method: http.MethodDelete, target: "/ebook-placeholders", wantStatus: http.StatusForbidden},
		{name: "wrong method before login", user: nil, method: http.MethodPatch, target: "/ebook-placeholders", wantStatus: http.StatusForbidden},
		{name: "put on collection", user: editor(), method: http.MethodPut, target: "/ebook-placeholders", wantStatus: http.StatusForbidden},
		{name: "post to new", user: editor(), method: http.MethodPost, target: "/ebook-placeholders/new", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.user)
			rec := f.do(tt.method, tt.target, url.Values{})
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Fatalf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
		})
	}
}

func TestGuard(t *testing.T) {
	f := newFixture(t, editor(), placeholders.WithGuard(func(*http.Request) error {
		return placeholders.StatusError{Code: http.StatusTooManyRequests}
	}))

	rec := f.do(http.MethodGet, "/ebook-placeholders/new", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestNewForm_ShowsCreatedNotice(t *testing.T) {
	f := newFixture(t, editor())

	rec := f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues())
	assertRedirect(t, rec, "/ebook-placeholders/new")

	page := f.do(http.MethodGet, "/ebook-placeholders/new", nil, rec.Result().Cookies()...)
	if page.Code != http.StatusOK {
		t.Fatalf("status = %d", page.Code)
	}
	if ct := page.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := page.Body.String()
	for _, want := range []string{
		`Ebook placeholder &quot;War and Peace&quot; created.`,
		`<option value="Leo Tolstoy">Leo Tolstoy</option>`,
		`action="/ebook-placeholders" method="POST"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("new form missing %q", want)
		}
	}
	if strings.Contains(body, `value="War and Peace"`) {
		t.Error("form should be blank after a successful create")
	}
}

type failingStore struct {
	placeholders.EbookStore
}

func (failingStore) Create(context.Context, *model.Ebook) error {
	return errors.New("disk full")
}

func TestCreate_StoreFailureIsInternal(t *testing.T) {
	store := memstore.New()
	f := newFixture(t, editor(), placeholders.WithEbookStore(failingStore{EbookStore: store.Ebooks()}))

	rec := f.do(http.MethodPost, "/ebook-placeholders", testsupport.SampleValues())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(f.logs.String(), "disk full") {
		t.Fatalf("expected failure to be logged, got %q", f.logs.String())
	}
}
