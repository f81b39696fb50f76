package form_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/model"
)

var fixedNow = time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)

func newBinder() *form.Binder {
	return form.NewBinder(formatter.New(), form.WithNow(func() time.Time { return fixedNow }))
}

func intPtr(n int) *int { return &n }

func TestBindEbook_FullSubmission(t *testing.T) {
	values := url.Values{
		"author-name-1":                        {"Leo Tolstoy"},
		"author-name-2":                        {"  "},
		"translator-name-1":                    {"Louise Maude"},
		"translator-name-2":                    {"Aylmer Maude"},
		"ebook-title":                          {" War and Peace "},
		"ebook-placeholder-year-published":     {"1869"},
		"collection-name-1":                    {"Modern Library’s 100 Best"},
		"sequence-number-collection-name-1":    {"12"},
		"collection-name-2":                    {"Russian Classics"},
		"ebook-placeholder-is-wanted":          {"on"},
		"ebook-placeholder-is-patron":          {"on"},
		"ebook-placeholder-difficulty":         {"advanced"},
		"ebook-placeholder-status":             {"wanted"},
		"ebook-placeholder-transcription-url":  {"https://www.gutenberg.org/ebooks/2600"},
		"ebook-placeholder-notes":              {"Use the *1922* revision."},
	}

	ebook, err := newBinder().BindEbook(values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	want := model.Ebook{
		Identifier: "url:https://standardebooks.org/ebooks/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude",
		Title:      "War and Peace",
		Authors: []model.Contributor{
			{Name: "Leo Tolstoy", URLName: "leo-tolstoy", SortOrder: 0, Role: model.RoleAuthor},
		},
		Translators: []model.Contributor{
			{Name: "Louise Maude", URLName: "louise-maude", SortOrder: 0, Role: model.RoleTranslator},
			{Name: "Aylmer Maude", URLName: "aylmer-maude", SortOrder: 1, Role: model.RoleTranslator},
		},
		CollectionMemberships: []model.CollectionMembership{
			{Collection: model.Collection{Name: "Modern Library’s 100 Best", URLName: "modern-librarys-100-best"}, SequenceNumber: intPtr(12), SortOrder: 0},
			{Collection: model.Collection{Name: "Russian Classics", URLName: "russian-classics"}, SortOrder: 1},
		},
		Placeholder: &model.EbookPlaceholder{
			YearPublished:    intPtr(1869),
			Difficulty:       model.DifficultyAdvanced,
			Status:           model.StatusWanted,
			TranscriptionURL: "https://www.gutenberg.org/ebooks/2600",
			IsWanted:         true,
			IsPatron:         true,
			Notes:            "Use the *1922* revision.",
		},
		Created: fixedNow,
		Updated: fixedNow,
	}
	if diff := cmp.Diff(want, ebook); diff != "" {
		t.Fatalf("bound ebook mismatch (-want +got):\n%s", diff)
	}
	if got := ebook.URL(); got != "/ebooks/leo-tolstoy/war-and-peace/louise-maude_aylmer-maude" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestBindEbook_MultipleAuthorsAndDiacritics(t *testing.T) {
	values := url.Values{
		"author-name-1": {"Mark Twain"},
		"author-name-2": {"Charles Dudley Warner"},
		"ebook-title":   {"The Gilded Age: A Tale of Today"},
	}
	ebook, err := form.NewBinder(nil, form.WithBaseURL("https://example.org/")).BindEbook(values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if want := "url:https://example.org/ebooks/mark-twain_charles-dudley-warner/the-gilded-age-a-tale-of-today"; ebook.Identifier != want {
		t.Fatalf("identifier = %q, want %q", ebook.Identifier, want)
	}

	values = url.Values{
		"author-name-1": {"Émile Zola"},
		"ebook-title":   {"L’Assommoir"},
	}
	ebook, err = newBinder().BindEbook(values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if want := "/ebooks/emile-zola/lassommoir"; ebook.URL() != want {
		t.Fatalf("url = %q, want %q", ebook.URL(), want)
	}
	if ebook.Placeholder == nil || ebook.Placeholder.Status != model.StatusWanted {
		t.Fatalf("expected default wanted status, got %#v", ebook.Placeholder)
	}
}

func TestBindEbook_ValidationIssues(t *testing.T) {
	values := url.Values{
		"ebook-title":                         {""},
		"ebook-placeholder-year-published":    {"18x9"},
		"sequence-number-collection-name-2":   {"4"},
		"collection-name-3":                   {"Series"},
		"sequence-number-collection-name-3":   {"1000"},
		"ebook-placeholder-is-patron":         {"on"},
		"ebook-placeholder-difficulty":        {"expert"},
		"ebook-placeholder-status":            {"done"},
		"ebook-placeholder-transcription-url": {"javascript:alert(1)"},
		"ebook-placeholder-notes":             {strings.Repeat("n", form.MaxNotesLength+1)},
	}

	ebook, err := newBinder().BindEbook(values)
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	gotFields := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		gotFields = append(gotFields, issue.Field)
	}
	wantFields := []string{
		"sequence-number-collection-name-2",
		"sequence-number-collection-name-3",
		"ebook-placeholder-year-published",
		"ebook-placeholder-difficulty",
		"ebook-placeholder-status",
		"ebook-placeholder-transcription-url",
		"ebook-placeholder-notes",
		"ebook-placeholder-is-patron",
		"ebook-title",
		"author-name-1",
	}
	if diff := cmp.Diff(wantFields, gotFields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}

	if ebook.Identifier != "" {
		t.Fatalf("invalid ebook must not get an identifier, got %q", ebook.Identifier)
	}
	if len(ebook.CollectionMemberships) != 1 || ebook.CollectionMemberships[0].SequenceNumber != nil {
		t.Fatalf("expected collection kept without sequence number, got %#v", ebook.CollectionMemberships)
	}
	if !strings.HasPrefix(err.Error(), "form: invalid submission: ") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestBindEbook_PunctuationOnlyTitle(t *testing.T) {
	_, err := newBinder().BindEbook(url.Values{
		"author-name-1": {"Anonymous"},
		"ebook-title":   {"?!"},
	})
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fields := verr.Fields(); len(fields["ebook-title"]) != 1 {
		t.Fatalf("expected a title issue, got %#v", fields)
	}
}

func TestBindEbook_CheckboxValues(t *testing.T) {
	for raw, want := range map[string]bool{"on": true, "true": true, "1": true, "off": false, "0": false, "false": false} {
		ebook, _ := newBinder().BindEbook(url.Values{"ebook-placeholder-is-wanted": {raw}})
		if ebook.Placeholder.IsWanted != want {
			t.Fatalf("checkbox %q: got %v, want %v", raw, ebook.Placeholder.IsWanted, want)
		}
	}
	ebook, _ := newBinder().BindEbook(url.Values{})
	if ebook.Placeholder.IsWanted {
		t.Fatalf("missing checkbox must be false")
	}
}

func TestBindProject(t *testing.T) {
	project, err := newBinder().BindProject(url.Values{
		"project-producer-name":  {" Alex "},
		"project-producer-email": {"alex@example.org"},
		"project-vcs-url":        {"https://github.com/example/war-and-peace"},
	})
	if err != nil {
		t.Fatalf("bind project: %v", err)
	}
	want := model.Project{
		ProducerName:  "Alex",
		ProducerEmail: "alex@example.org",
		VCSURL:        "https://github.com/example/war-and-peace",
		Started:       fixedNow,
	}
	if diff := cmp.Diff(want, project); diff != "" {
		t.Fatalf("project mismatch (-want +got):\n%s", diff)
	}

	_, err = newBinder().BindProject(url.Values{
		"project-producer-email": {"not an email"},
		"project-discussion-url": {"/relative"},
	})
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %#v", verr.Issues)
	}
}

func TestValidationErrorFieldsDeduplicates(t *testing.T) {
	verr := &form.ValidationError{Issues: []form.Issue{
		{Field: "ebook-title", Message: "required"},
		{Field: "ebook-title", Message: " required "},
		{Message: "form level"},
	}}
	want := map[string][]string{
		"ebook-title": {"required"},
		"":            {"form level"},
	}
	if diff := cmp.Diff(want, verr.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"required", "form level"}, verr.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
