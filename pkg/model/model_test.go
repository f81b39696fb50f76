package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ebookform/pkg/model"
)

func TestEbookURLFromIdentifier(t *testing.T) {
	ebook := model.Ebook{Identifier: "url:https://standardebooks.org/ebooks/mark-twain/the-gilded-age"}

	if got := ebook.URL(); got != "/ebooks/mark-twain/the-gilded-age" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := ebook.EditURL(); got != "/ebooks/mark-twain/the-gilded-age/edit" {
		t.Fatalf("unexpected edit url %q", got)
	}
}

func TestEbookWithoutIdentifierHasNoURL(t *testing.T) {
	var ebook model.Ebook
	if ebook.URL() != "" || ebook.EditURL() != "" {
		t.Fatalf("expected empty urls, got %q / %q", ebook.URL(), ebook.EditURL())
	}
}

func TestParseDifficulty(t *testing.T) {
	for raw, want := range map[string]model.Difficulty{
		"":              "",
		"beginner":      model.DifficultyBeginner,
		" Intermediate": model.DifficultyIntermediate,
		"ADVANCED":      model.DifficultyAdvanced,
	} {
		got, err := model.ParseDifficulty(raw)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := model.ParseDifficulty("expert"); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

func TestParseStatus(t *testing.T) {
	got, err := model.ParseStatus("")
	if err != nil || got != model.StatusWanted {
		t.Fatalf("expected default wanted status, got %q (%v)", got, err)
	}
	got, err = model.ParseStatus("in_progress")
	if err != nil || got != model.StatusInProgress {
		t.Fatalf("expected in progress, got %q (%v)", got, err)
	}
	if _, err := model.ParseStatus("done"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestLabels(t *testing.T) {
	var labels []string
	for _, d := range model.Difficulties() {
		labels = append(labels, d.Label())
	}
	for _, s := range model.Statuses() {
		labels = append(labels, s.Label())
	}
	want := []string{"Beginner", "Intermediate", "Advanced", "Wanted", "In progress"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestEbookIsInProgress(t *testing.T) {
	ebook := model.Ebook{Placeholder: &model.EbookPlaceholder{Status: model.StatusInProgress}}
	if !ebook.IsPlaceholder() || !ebook.IsInProgress() {
		t.Fatalf("expected in-progress placeholder")
	}
	if (model.Ebook{}).IsInProgress() {
		t.Fatalf("non-placeholder cannot be in progress")
	}
}
