package form

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-ebookform/pkg/formatter"
	"github.com/goliatone/go-ebookform/pkg/model"
)

// DefaultBaseURL prefixes ebook identifiers when WithBaseURL is not used.
const DefaultBaseURL = "https://standardebooks.org"

var (
	yearPattern     = regexp.MustCompile(`^[0-9]{1,4}$`)
	sequencePattern = regexp.MustCompile(`^[0-9]{1,3}$`)
)

// Option configures a Binder.
type Option func(*Binder)

// WithBaseURL sets the site root used to build identifiers.
func WithBaseURL(base string) Option {
	return func(b *Binder) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			b.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithNow overrides the clock used for Created/Updated/Started timestamps.
func WithNow(now func() time.Time) Option {
	return func(b *Binder) {
		if now != nil {
			b.now = now
		}
	}
}

// Binder converts submitted form values into entities. It is safe for
// concurrent use.
type Binder struct {
	formatter *formatter.Formatter
	baseURL   string
	now       func() time.Time
}

// NewBinder constructs a Binder around the shared formatter. A nil formatter
// gets a private one.
func NewBinder(f *formatter.Formatter, options ...Option) *Binder {
	if f == nil {
		f = formatter.New()
	}
	b := &Binder{
		formatter: f,
		baseURL:   DefaultBaseURL,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// BindEbook fills an ebook placeholder from the placeholder form. The bound
// ebook is always returned; the error is a *ValidationError when the
// submission is invalid.
func (b *Binder) BindEbook(values url.Values) (model.Ebook, error) {
	var problems issues
	now := b.now().UTC()

	ebook := model.Ebook{
		Title:       field(values, FieldTitle),
		Authors:     b.contributors(values, AuthorField, MaxAuthors, model.RoleAuthor),
		Translators: b.contributors(values, TranslatorField, MaxTranslators, model.RoleTranslator),
		Created:     now,
		Updated:     now,
	}
	ebook.CollectionMemberships = b.collections(values, &problems)
	ebook.Placeholder = bindPlaceholder(values, &problems)

	if ebook.Title == "" {
		problems.add(FieldTitle, "An ebook title is required.")
	}
	if len(ebook.Authors) == 0 {
		problems.add(AuthorField(1), "At least one author is required.")
	}

	if ebook.Title != "" && len(ebook.Authors) > 0 {
		path, ok := b.ebookPath(ebook)
		if !ok {
			problems.add(FieldTitle, "The ebook title must contain at least one letter or digit.")
		} else {
			ebook.Identifier = "url:" + b.baseURL + path
		}
	}

	return ebook, problems.err()
}

// BindProject fills the project that accompanies an in-progress placeholder.
// EbookID is left at zero; callers set it once the ebook exists.
func (b *Binder) BindProject(values url.Values) (model.Project, error) {
	var problems issues

	project := model.Project{
		ProducerName:  field(values, FieldProducerName),
		ProducerEmail: field(values, FieldProducerEmail),
		DiscussionURL: field(values, FieldDiscussionURL),
		VCSURL:        field(values, FieldVCSURL),
		Started:       b.now().UTC(),
	}

	if project.ProducerName == "" {
		problems.add(FieldProducerName, "A producer name is required for an in-progress ebook.")
	}
	if project.ProducerEmail != "" {
		if _, err := mail.ParseAddress(project.ProducerEmail); err != nil {
			problems.add(FieldProducerEmail, "The producer email address is invalid.")
		}
	}
	if project.DiscussionURL != "" && !isWebURL(project.DiscussionURL) {
		problems.add(FieldDiscussionURL, "The discussion URL must be an absolute http(s) URL.")
	}
	if project.VCSURL != "" && !isWebURL(project.VCSURL) {
		problems.add(FieldVCSURL, "The VCS URL must be an absolute http(s) URL.")
	}

	return project, problems.err()
}

// Slug exposes the formatter slug used for contributor and title URL names.
func (b *Binder) Slug(text string) string {
	return b.formatter.MakeURLSafe(text)
}

func (b *Binder) contributors(values url.Values, name func(int) string, max int, role model.ContributorRole) []model.Contributor {
	var out []model.Contributor
	for i := 1; i <= max; i++ {
		contributorName := field(values, name(i))
		if contributorName == "" {
			continue
		}
		out = append(out, model.Contributor{
			Name:      contributorName,
			URLName:   b.formatter.MakeURLSafe(contributorName),
			SortOrder: len(out),
			Role:      role,
		})
	}
	return out
}

func (b *Binder) collections(values url.Values, problems *issues) []model.CollectionMembership {
	var out []model.CollectionMembership
	for i := 1; i <= MaxCollections; i++ {
		name := field(values, CollectionField(i))
		rawSequence := field(values, SequenceNumberField(i))

		if name == "" {
			if rawSequence != "" {
				problems.add(SequenceNumberField(i), "A number in a collection needs a collection name.")
			}
			continue
		}

		membership := model.CollectionMembership{
			Collection: model.Collection{
				Name:    name,
				URLName: b.formatter.MakeURLSafe(name),
			},
			SortOrder: len(out),
		}
		if rawSequence != "" {
			seq, ok := parseBounded(rawSequence, sequencePattern, 1, 999)
			if !ok {
				problems.add(SequenceNumberField(i), "The number in a collection must be between 1 and 999.")
			} else {
				membership.SequenceNumber = &seq
			}
		}
		out = append(out, membership)
	}
	return out
}

func (b *Binder) ebookPath(ebook model.Ebook) (string, bool) {
	title := b.formatter.MakeURLSafe(ebook.Title)
	authors := joinURLNames(ebook.Authors)
	if title == "" || authors == "" {
		return "", false
	}
	path := "/ebooks/" + authors + "/" + title
	if translators := joinURLNames(ebook.Translators); translators != "" {
		path += "/" + translators
	}
	return path, true
}

func bindPlaceholder(values url.Values, problems *issues) *model.EbookPlaceholder {
	placeholder := &model.EbookPlaceholder{
		TranscriptionURL: field(values, FieldTranscriptionURL),
		IsWanted:         checkbox(values, FieldIsWanted),
		IsPatron:         checkbox(values, FieldIsPatron),
		Notes:            field(values, FieldNotes),
	}

	if raw := field(values, FieldYearPublished); raw != "" {
		year, ok := parseBounded(raw, yearPattern, 0, 9999)
		if !ok {
			problems.add(FieldYearPublished, "The year published must be a number of up to four digits.")
		} else {
			placeholder.YearPublished = &year
		}
	}

	difficulty, err := model.ParseDifficulty(values.Get(FieldDifficulty))
	if err != nil {
		problems.add(FieldDifficulty, "The difficulty is not recognised.")
	}
	placeholder.Difficulty = difficulty

	status, err := model.ParseStatus(values.Get(FieldStatus))
	if err != nil {
		problems.add(FieldStatus, "The wanted list status is not recognised.")
		status = model.StatusWanted
	}
	placeholder.Status = status

	if placeholder.TranscriptionURL != "" && !isWebURL(placeholder.TranscriptionURL) {
		problems.add(FieldTranscriptionURL, "The transcription URL must be an absolute http(s) URL.")
	}
	if utf8.RuneCountInString(placeholder.Notes) > MaxNotesLength {
		problems.add(FieldNotes, "Notes must be at most "+strconv.Itoa(MaxNotesLength)+" characters.")
	}
	if placeholder.IsPatron && !placeholder.IsWanted {
		problems.add(FieldIsPatron, "Only ebooks on the wanted list can be Patron requests.")
	}

	return placeholder
}

func joinURLNames(contributors []model.Contributor) string {
	names := make([]string, 0, len(contributors))
	for _, c := range contributors {
		if c.URLName != "" {
			names = append(names, c.URLName)
		}
	}
	return strings.Join(names, "_")
}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

// checkbox follows browser semantics: an unchecked box is not submitted.
func checkbox(values url.Values, name string) bool {
	if !values.Has(name) {
		return false
	}
	switch strings.ToLower(field(values, name)) {
	case "false", "0", "off", "no":
		return false
	default:
		return true
	}
}

func parseBounded(raw string, pattern *regexp.Regexp, min, max int) (int, bool) {
	if !pattern.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
