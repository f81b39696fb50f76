package placeholder

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
)

var (
	authorLabels     = []string{"Author", "Second author", "Third author"}
	translatorLabels = []string{"Translator", "Second translator"}
	collectionLabels = []string{"Collection", "Second Collection", "Third Collection"}
)

// Numbers travel as strings: the engine round-trips the view through JSON
// and would otherwise print them as floats.
type inputView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type,omitempty"`
	Value    string   `json:"value"`
	Required bool     `json:"required,omitempty"`
	Checked  bool     `json:"checked,omitempty"`
	Options  []option `json:"options,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

type option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type collectionView struct {
	Name     inputView `json:"name"`
	Sequence inputView `json:"sequence"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type suggestionsView struct {
	AuthorNames     []string `json:"author_names"`
	TranslatorNames []string `json:"translator_names"`
	CollectionNames []string `json:"collection_names"`
}

type themeView struct {
	Name       string `json:"name,omitempty"`
	Variant    string `json:"variant,omitempty"`
	CSSVars    string `json:"css_vars,omitempty"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

type formView struct {
	Action           string           `json:"action"`
	Method           string           `json:"method"`
	Hidden           []hiddenView     `json:"hidden"`
	Notices          []string         `json:"notices"`
	FormErrors       []string         `json:"form_errors"`
	Suggestions      suggestionsView  `json:"suggestions"`
	Theme            themeView        `json:"theme"`
	Author           inputView        `json:"author"`
	MoreAuthors      []inputView      `json:"more_authors"`
	Translators      []inputView      `json:"translators"`
	Title            inputView        `json:"title"`
	YearPublished    inputView        `json:"year_published"`
	Collection       collectionView   `json:"collection"`
	MoreCollections  []collectionView `json:"more_collections"`
	IsWanted         inputView        `json:"is_wanted"`
	IsPatron         inputView        `json:"is_patron"`
	Difficulty       inputView        `json:"difficulty"`
	Status           inputView        `json:"status"`
	TranscriptionURL inputView        `json:"transcription_url"`
	Notes            inputView        `json:"notes"`
	NotesMaxLength   string           `json:"notes_max_length"`
	Project          []inputView      `json:"project"`
	ProjectOpen      bool             `json:"project_open"`
}

func buildFormView(ebook *model.Ebook, options render.RenderOptions, cfg *theme.RendererConfig) formView {
	if ebook == nil {
		ebook = &model.Ebook{}
	}
	placeholder := ebook.Placeholder
	if placeholder == nil {
		placeholder = &model.EbookPlaceholder{}
	}
	errs := options.Errors
	input := func(name, label, value string) inputView {
		return inputView{Name: name, Label: label, Value: value, Errors: errs[name]}
	}

	method, override := render.MethodOverride(options.Method)
	hidden := options.HiddenFields
	if override != nil {
		hidden = render.MergeHiddenFields(hidden, *override)
	}

	view := formView{
		Action:     options.Action,
		Method:     method,
		Hidden:     hiddenViews(render.SortedHiddenFields(hidden)),
		Notices:    options.Notices,
		FormErrors: options.FormErrors,
		Suggestions: suggestionsView{
			AuthorNames:     options.Suggestions.AuthorNames,
			TranslatorNames: options.Suggestions.TranslatorNames,
			CollectionNames: options.Suggestions.CollectionNames,
		},
		Theme:          buildThemeView(cfg),
		Title:          input(form.FieldTitle, "Title", ebook.Title),
		YearPublished:  input(form.FieldYearPublished, "Year published", optionalInt(placeholder.YearPublished)),
		NotesMaxLength: strconv.Itoa(form.MaxNotesLength),
	}
	view.Title.Required = true

	authors := contributorInputs(ebook.Authors, form.AuthorField, authorLabels, input)
	view.Author = authors[0]
	view.Author.Required = true
	view.MoreAuthors = authors[1:]
	view.Translators = contributorInputs(ebook.Translators, form.TranslatorField, translatorLabels, input)

	collections := make([]collectionView, form.MaxCollections)
	for i := range collections {
		n := i + 1
		entry := collectionView{
			Name:     input(form.CollectionField(n), collectionLabels[i], ""),
			Sequence: input(form.SequenceNumberField(n), "Number in collection", ""),
		}
		if i < len(ebook.CollectionMemberships) {
			membership := ebook.CollectionMemberships[i]
			entry.Name.Value = membership.Collection.Name
			entry.Sequence.Value = optionalInt(membership.SequenceNumber)
		}
		collections[i] = entry
	}
	view.Collection = collections[0]
	view.MoreCollections = collections[1:]

	view.IsWanted = input(form.FieldIsWanted, "On the wanted list?", "")
	view.IsWanted.Checked = placeholder.IsWanted
	view.IsPatron = input(form.FieldIsPatron, "Did a Patron request this book?", "")
	view.IsPatron.Checked = placeholder.IsPatron

	view.Difficulty = input(form.FieldDifficulty, "Difficulty", string(placeholder.Difficulty))
	for _, d := range model.Difficulties() {
		view.Difficulty.Options = append(view.Difficulty.Options, option{
			Value:    string(d),
			Label:    d.Label(),
			Selected: d == placeholder.Difficulty,
		})
	}
	view.Status = input(form.FieldStatus, "Wanted list status", string(placeholder.Status))
	for _, s := range model.Statuses() {
		view.Status.Options = append(view.Status.Options, option{
			Value:    string(s),
			Label:    s.Label(),
			Selected: s == placeholder.Status,
		})
	}

	view.TranscriptionURL = input(form.FieldTranscriptionURL, "Transcription URL", placeholder.TranscriptionURL)
	view.Notes = input(form.FieldNotes, "Notes", placeholder.Notes)

	project := ebook.ProjectInProgress
	if project == nil {
		project = &model.Project{}
	}
	view.Project = []inputView{
		input(form.FieldProducerName, "Producer name", project.ProducerName),
		input(form.FieldProducerEmail, "Producer email", project.ProducerEmail),
		input(form.FieldDiscussionURL, "Discussion URL", project.DiscussionURL),
		input(form.FieldVCSURL, "VCS URL", project.VCSURL),
	}
	view.Project[0].Type = "text"
	view.Project[1].Type = "email"
	view.Project[2].Type = "url"
	view.Project[3].Type = "url"
	view.ProjectOpen = placeholder.IsInProgress()
	for _, in := range view.Project {
		if len(in.Errors) > 0 {
			view.ProjectOpen = true
		}
	}

	return view
}

func contributorInputs(contributors []model.Contributor, name func(int) string, labels []string, input func(name, label, value string) inputView) []inputView {
	out := make([]inputView, len(labels))
	for i := range out {
		value := ""
		if i < len(contributors) {
			value = contributors[i].Name
		}
		out[i] = input(name(i+1), labels[i], value)
	}
	return out
}

func hiddenViews(fields []render.HiddenField) []hiddenView {
	out := make([]hiddenView, 0, len(fields))
	for _, field := range fields {
		out = append(out, hiddenView{Name: field.Name, Value: field.Value})
	}
	return out
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL("stylesheet")
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".ebook-placeholder-form {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

type summaryView struct {
	Title            string    `json:"title"`
	Authors          string    `json:"authors"`
	Translators      string    `json:"translators"`
	URL              string    `json:"url"`
	YearPublished    string    `json:"year_published"`
	Collections      []string  `json:"collections"`
	IsWanted         bool      `json:"is_wanted"`
	IsPatron         bool      `json:"is_patron"`
	Status           string    `json:"status"`
	Difficulty       string    `json:"difficulty"`
	TranscriptionURL string    `json:"transcription_url"`
	Producer         string    `json:"producer"`
	Notes            string    `json:"notes"`
	Theme            themeView `json:"theme"`
}

func buildSummaryView(ebook *model.Ebook, cfg *theme.RendererConfig) summaryView {
	if ebook == nil {
		ebook = &model.Ebook{}
	}
	placeholder := ebook.Placeholder
	if placeholder == nil {
		placeholder = &model.EbookPlaceholder{}
	}
	status := placeholder.Status
	if status == "" {
		status = model.StatusWanted
	}

	view := summaryView{
		Title:            ebook.Title,
		Authors:          strings.Join(ebook.AuthorNames(), ", "),
		Translators:      strings.Join(ebook.TranslatorNames(), ", "),
		URL:              ebook.URL(),
		YearPublished:    optionalInt(placeholder.YearPublished),
		IsWanted:         placeholder.IsWanted,
		IsPatron:         placeholder.IsPatron,
		Status:           status.Label(),
		Difficulty:       placeholder.Difficulty.Label(),
		TranscriptionURL: placeholder.TranscriptionURL,
		Notes:            placeholder.Notes,
		Theme:            buildThemeView(cfg),
	}
	for _, membership := range ebook.CollectionMemberships {
		entry := membership.Collection.Name
		if membership.SequenceNumber != nil {
			entry += " #" + strconv.Itoa(*membership.SequenceNumber)
		}
		view.Collections = append(view.Collections, entry)
	}
	if project := ebook.ProjectInProgress; project != nil && project.ProducerName != "" {
		view.Producer = project.ProducerName
		if project.ProducerEmail != "" {
			view.Producer += " <" + project.ProducerEmail + ">"
		}
	}
	return view
}
