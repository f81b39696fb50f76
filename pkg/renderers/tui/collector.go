package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
)

var (
	authorPrompts     = []string{"Author", "Second author", "Third author"}
	translatorPrompts = []string{"Translator", "Second translator"}
	collectionPrompts = []string{"Collection", "Second collection", "Third collection"}

	yearPattern     = regexp.MustCompile(`^[0-9]{1,4}$`)
	sequencePattern = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// Collector walks the ebook placeholder form in the terminal and returns the
// answers as the url.Values the HTML form would have submitted, ready for
// form.Binder.
type Collector struct {
	driver      PromptDriver
	suggestions render.Suggestions
	defaults    *model.Ebook
	theme       Theme
}

// New constructs a Collector using the survey driver unless overridden.
func New(options ...Option) *Collector {
	c := &Collector{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver()
	}
	return c
}

// Collect runs the prompts. Optional contributors and collections stop at the
// first blank answer.
func (c *Collector) Collect(ctx context.Context) (url.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if c.driver == nil {
		return nil, ErrNoDriver
	}

	ebook := c.defaults
	if ebook == nil {
		ebook = &model.Ebook{}
	}
	placeholder := ebook.Placeholder
	if placeholder == nil {
		placeholder = &model.EbookPlaceholder{}
	}
	values := url.Values{}

	if err := c.info(ctx, "Contributors"); err != nil {
		return nil, err
	}
	if err := c.contributors(ctx, values, authorPrompts, form.AuthorField, ebook.AuthorNames(), c.suggestions.AuthorNames, true); err != nil {
		return nil, err
	}
	if err := c.contributors(ctx, values, translatorPrompts, form.TranslatorField, ebook.TranslatorNames(), c.suggestions.TranslatorNames, false); err != nil {
		return nil, err
	}

	if err := c.info(ctx, "Ebook metadata"); err != nil {
		return nil, err
	}
	title, err := c.driver.Input(ctx, InputConfig{
		Message:   "Title",
		Default:   ebook.Title,
		Validator: required("An ebook title is required."),
	})
	if err != nil {
		return nil, err
	}
	set(values, form.FieldTitle, title)

	year, err := c.driver.Input(ctx, InputConfig{
		Message:   "Year published",
		Default:   optionalInt(placeholder.YearPublished),
		Help:      "Up to four digits; leave blank if unknown.",
		Validator: matches(yearPattern, "The year published must be a number of up to four digits."),
	})
	if err != nil {
		return nil, err
	}
	set(values, form.FieldYearPublished, year)

	if err := c.collections(ctx, values, ebook.CollectionMemberships); err != nil {
		return nil, err
	}

	if err := c.info(ctx, "Wanted list"); err != nil {
		return nil, err
	}
	wanted, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "On the wanted list?", Default: placeholder.IsWanted})
	if err != nil {
		return nil, err
	}
	if wanted {
		values.Set(form.FieldIsWanted, "on")
		patron, err := c.driver.Confirm(ctx, ConfirmConfig{Message: "Did a Patron request this book?", Default: placeholder.IsPatron})
		if err != nil {
			return nil, err
		}
		if patron {
			values.Set(form.FieldIsPatron, "on")
		}
	}

	difficulty, err := c.choose(ctx, "Difficulty", difficultyOptions(), string(placeholder.Difficulty))
	if err != nil {
		return nil, err
	}
	set(values, form.FieldDifficulty, difficulty)

	status, err := c.choose(ctx, "Wanted list status", statusOptions(), string(placeholder.Status))
	if err != nil {
		return nil, err
	}
	set(values, form.FieldStatus, status)

	transcription, err := c.driver.Input(ctx, InputConfig{
		Message:   "Transcription URL",
		Default:   placeholder.TranscriptionURL,
		Validator: optionalWebURL("The transcription URL must be an absolute http(s) URL."),
	})
	if err != nil {
		return nil, err
	}
	set(values, form.FieldTranscriptionURL, transcription)

	notes, err := c.driver.TextArea(ctx, TextAreaConfig{
		Message: "Notes",
		Default: placeholder.Notes,
		Help:    "Markdown accepted.",
	})
	if err != nil {
		return nil, err
	}
	set(values, form.FieldNotes, notes)

	if model.Status(status) == model.StatusInProgress {
		if err := c.project(ctx, values, ebook.ProjectInProgress); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func (c *Collector) contributors(ctx context.Context, values url.Values, prompts []string, field func(int) string, defaults, suggestions []string, requireFirst bool) error {
	for i, message := range prompts {
		cfg := InputConfig{
			Message:     message,
			Suggestions: suggestions,
		}
		if i < len(defaults) {
			cfg.Default = defaults[i]
		}
		if i == 0 && requireFirst {
			cfg.Validator = required("At least one author is required.")
		} else {
			cfg.Help = "Leave blank to skip."
		}
		name, err := c.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			return nil
		}
		set(values, field(i+1), name)
	}
	return nil
}

func (c *Collector) collections(ctx context.Context, values url.Values, defaults []model.CollectionMembership) error {
	for i, message := range collectionPrompts {
		n := i + 1
		cfg := InputConfig{
			Message:     message,
			Help:        "Leave blank to skip.",
			Suggestions: c.suggestions.CollectionNames,
		}
		var seqDefault string
		if i < len(defaults) {
			cfg.Default = defaults[i].Collection.Name
			seqDefault = optionalInt(defaults[i].SequenceNumber)
		}
		name, err := c.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if strings.TrimSpace(name) == "" {
			return nil
		}
		set(values, form.CollectionField(n), name)

		seq, err := c.driver.Input(ctx, InputConfig{
			Message:   "Number in collection",
			Default:   seqDefault,
			Help:      "1 to 999; leave blank if unnumbered.",
			Validator: sequenceNumber,
		})
		if err != nil {
			return err
		}
		set(values, form.SequenceNumberField(n), seq)
	}
	return nil
}

func (c *Collector) project(ctx context.Context, values url.Values, defaults *model.Project) error {
	if defaults == nil {
		defaults = &model.Project{}
	}
	if err := c.info(ctx, "Project in progress"); err != nil {
		return err
	}

	prompts := []struct {
		field string
		cfg   InputConfig
	}{
		{form.FieldProducerName, InputConfig{Message: "Producer name", Default: defaults.ProducerName, Validator: required("A producer name is required for an in-progress ebook.")}},
		{form.FieldProducerEmail, InputConfig{Message: "Producer email", Default: defaults.ProducerEmail}},
		{form.FieldDiscussionURL, InputConfig{Message: "Discussion URL", Default: defaults.DiscussionURL, Validator: optionalWebURL("The discussion URL must be an absolute http(s) URL.")}},
		{form.FieldVCSURL, InputConfig{Message: "VCS URL", Default: defaults.VCSURL, Validator: optionalWebURL("The VCS URL must be an absolute http(s) URL.")}},
	}
	for _, p := range prompts {
		answer, err := c.driver.Input(ctx, p.cfg)
		if err != nil {
			return err
		}
		set(values, p.field, answer)
	}
	return nil
}

type choice struct {
	value string
	label string
}

// choose returns the value of the selected option.
func (c *Collector) choose(ctx context.Context, message string, choices []choice, current string) (string, error) {
	labels := make([]string, len(choices))
	defaultIndex := 0
	for i, ch := range choices {
		labels[i] = ch.label
		if ch.value == current {
			defaultIndex = i
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: labels, DefaultIndex: defaultIndex})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(choices) {
		return "", fmt.Errorf("tui: %s: selection %d out of range", strings.ToLower(message), idx)
	}
	return choices[idx].value, nil
}

func (c *Collector) info(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, c.theme.InfoPrefix+msg)
}

func difficultyOptions() []choice {
	out := []choice{{value: "", label: "(not set)"}}
	for _, d := range model.Difficulties() {
		out = append(out, choice{value: string(d), label: d.Label()})
	}
	return out
}

func statusOptions() []choice {
	var out []choice
	for _, s := range model.Statuses() {
		out = append(out, choice{value: string(s), label: s.Label()})
	}
	return out
}

func set(values url.Values, field, answer string) {
	if trimmed := strings.TrimSpace(answer); trimmed != "" {
		values.Set(field, trimmed)
	}
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func required(message string) func(string) error {
	return func(answer string) error {
		if strings.TrimSpace(answer) == "" {
			return errors.New(message)
		}
		return nil
	}
}

func matches(pattern *regexp.Regexp, message string) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer != "" && !pattern.MatchString(answer) {
			return errors.New(message)
		}
		return nil
	}
}

func sequenceNumber(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	n, err := strconv.Atoi(answer)
	if !sequencePattern.MatchString(answer) || err != nil || n < 1 {
		return errors.New("The number in a collection must be between 1 and 999.")
	}
	return nil
}

func optionalWebURL(message string) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return nil
		}
		u, err := url.Parse(answer)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New(message)
		}
		return nil
	}
}
