package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ebookform/pkg/model"
)

// FixedTime is the timestamp fixtures use for Created/Updated/Started.
var FixedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// SampleEbook returns a fully populated placeholder ebook. Each call returns a
// fresh value so tests can mutate it freely.
func SampleEbook() model.Ebook {
	year := 1869
	seq := 2
	return model.Ebook{
		ID:         7,
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
			{Collection: model.Collection{Name: "Russian Classics", URLName: "russian-classics"}, SequenceNumber: &seq, SortOrder: 0},
		},
		Placeholder: &model.EbookPlaceholder{
			YearPublished:    &year,
			Difficulty:       model.DifficultyAdvanced,
			Status:           model.StatusWanted,
			TranscriptionURL: "https://www.gutenberg.org/ebooks/2600",
			IsWanted:         true,
			IsPatron:         false,
			Notes:            "Long *and* worth it.",
		},
		Created: FixedTime,
		Updated: FixedTime,
	}
}

// SampleValues returns the form submission matching SampleEbook.
func SampleValues() url.Values {
	return url.Values{
		"author-name-1":                       {"Leo Tolstoy"},
		"translator-name-1":                   {"Louise Maude"},
		"translator-name-2":                   {"Aylmer Maude"},
		"collection-name-1":                   {"Russian Classics"},
		"sequence-number-collection-name-1":   {"2"},
		"ebook-title":                         {"War and Peace"},
		"ebook-placeholder-year-published":    {"1869"},
		"ebook-placeholder-difficulty":        {"advanced"},
		"ebook-placeholder-status":            {"wanted"},
		"ebook-placeholder-transcription-url": {"https://www.gutenberg.org/ebooks/2600"},
		"ebook-placeholder-is-wanted":         {"true"},
		"ebook-placeholder-notes":             {"Long *and* worth it."},
	}
}

// LoadEbook reads a JSON fixture into an Ebook.
func LoadEbook(path string) (model.Ebook, error) {
	if path == "" {
		return model.Ebook{}, errors.New("testsupport: ebook path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Ebook{}, fmt.Errorf("testsupport: read ebook: %w", err)
	}
	var out model.Ebook
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Ebook{}, fmt.Errorf("testsupport: unmarshal ebook: %w", err)
	}
	return out, nil
}

// MustLoadEbook is LoadEbook for tests.
func MustLoadEbook(t *testing.T, path string) model.Ebook {
	t.Helper()

	ebook, err := LoadEbook(path)
	if err != nil {
		t.Fatalf("load ebook: %v", err)
	}
	return ebook
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
