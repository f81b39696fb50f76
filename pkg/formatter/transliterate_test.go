package formatter_test

import (
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-ebookform/pkg/formatter"
)

func TestRemoveDiacritics(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii is lowercased", input: "Plain ASCII", want: "plain ascii"},
		{name: "ring and umlaut", input: "Ångström", want: "angstrom"},
		{name: "acute accents", input: "Café Éclair", want: "cafe eclair"},
		{name: "caron", input: "Dvořák", want: "dvorak"},
		{name: "sharp s expands", input: "Straße", want: "strasse"},
		{name: "ligatures and stroke", input: "Ærøskøbing", want: "aeroskobing"},
		{name: "cyrillic to latin", input: "Москва", want: "moskva"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := f.RemoveDiacritics(tt.input); got != tt.want {
				t.Fatalf("RemoveDiacritics(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRemoveDiacriticsIsIdempotent(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	inputs := []string{"Ångström's Café", "Tolstoy — Война и мир", "  Mixed CASE ñ ü ø  ", ""}
	for _, input := range inputs {
		once := f.RemoveDiacritics(input)
		twice := f.RemoveDiacritics(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: once %q, twice %q", input, once, twice)
		}
	}
}

func TestRemoveDiacriticsFallsBackWhenEngineUnavailable(t *testing.T) {
	t.Parallel()

	var builds atomic.Int32
	f := formatter.New(formatter.WithTransliterator(func() (formatter.Transliterator, error) {
		builds.Add(1)
		return nil, errors.New("rules missing")
	}))

	for i := 0; i < 3; i++ {
		if got := f.RemoveDiacritics("Ångström"); got != "Ångström" {
			t.Fatalf("expected input unchanged, got %q", got)
		}
	}
	if f.TransliterationAvailable() {
		t.Fatalf("expected transliteration to be unavailable")
	}
	if n := builds.Load(); n != 1 {
		t.Fatalf("expected factory to run once, ran %d times", n)
	}
	if got := f.MakeURLSafe("Ångström's Café"); got != "ngstr-ms-caf" {
		t.Fatalf("unexpected slug without transliteration: %q", got)
	}
}

type failingTransliterator struct{}

func (failingTransliterator) Transliterate(string) (string, error) {
	return "", errors.New("cannot transliterate")
}

func TestRemoveDiacriticsFallsBackWhenTransliterationFails(t *testing.T) {
	t.Parallel()

	f := formatter.New(formatter.WithTransliterator(func() (formatter.Transliterator, error) {
		return failingTransliterator{}, nil
	}))
	if got := f.RemoveDiacritics("Crème Brûlée"); got != "Crème Brûlée" {
		t.Fatalf("expected input unchanged, got %q", got)
	}
	if !f.TransliterationAvailable() {
		t.Fatalf("engine was built, expected availability")
	}
}

func TestTransliteratorBuiltOnceUnderConcurrency(t *testing.T) {
	t.Parallel()

	var builds atomic.Int32
	f := formatter.New(formatter.WithTransliterator(func() (formatter.Transliterator, error) {
		builds.Add(1)
		return formatter.NewTransliterator()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := f.MakeURLSafe("Ångström's Café"); got != "angstroms-cafe" {
				t.Errorf("unexpected slug %q", got)
			}
		}()
	}
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Fatalf("expected a single build, got %d", n)
	}
}

var slugPattern = regexp.MustCompile(`^[0-9a-z]+(-[0-9a-z]+)*$`)

func TestMakeURLSafe(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	tests := []struct {
		input string
		want  string
	}{
		{input: "Ångström's Café", want: "angstroms-cafe"},
		{input: "   ", want: ""},
		{input: "", want: ""},
		{input: "!!!---???", want: ""},
		{input: "The Adventures of Tom Sawyer", want: "the-adventures-of-tom-sawyer"},
		{input: "  --Leading and trailing--  ", want: "leading-and-trailing"},
		{input: "O’Brien’s  Tale", want: "obriens-tale"},
		{input: "Vol. 2: The Return", want: "vol-2-the-return"},
		{input: "Dvořák\tSymphony\nNo. 9", want: "dvorak-symphony-no-9"},
		{input: "Anna Karénina (1877)", want: "anna-karenina-1877"},
	}

	for _, tt := range tests {
		got := f.MakeURLSafe(tt.input)
		if got != tt.want {
			t.Fatalf("MakeURLSafe(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got != "" && !slugPattern.MatchString(got) {
			t.Fatalf("MakeURLSafe(%q) = %q does not match slug pattern", tt.input, got)
		}
	}
}

func TestMakeURLSafeAlwaysProducesSlugs(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	inputs := []string{
		"日本語のタイトル",
		"emoji 😀 title",
		"tabs\t\tand\r\nlines",
		"a--b__c..d",
		"\xff\xfe broken utf8",
		"ĲSSELMEER ǅ ﬁ",
		"K Kelvin ſ long s",
	}
	for _, input := range inputs {
		got := f.MakeURLSafe(input)
		if got != "" && !slugPattern.MatchString(got) {
			t.Fatalf("MakeURLSafe(%q) = %q does not match slug pattern", input, got)
		}
	}
}
