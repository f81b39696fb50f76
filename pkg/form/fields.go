package form

import "strconv"

// Form field names shared by the binder, the HTML template and the terminal
// collector.
const (
	FieldTitle            = "ebook-title"
	FieldYearPublished    = "ebook-placeholder-year-published"
	FieldIsWanted         = "ebook-placeholder-is-wanted"
	FieldIsPatron         = "ebook-placeholder-is-patron"
	FieldDifficulty       = "ebook-placeholder-difficulty"
	FieldStatus           = "ebook-placeholder-status"
	FieldTranscriptionURL = "ebook-placeholder-transcription-url"
	FieldNotes            = "ebook-placeholder-notes"

	FieldProducerName  = "project-producer-name"
	FieldProducerEmail = "project-producer-email"
	FieldDiscussionURL = "project-discussion-url"
	FieldVCSURL        = "project-vcs-url"
)

// Repeated field limits.
const (
	MaxAuthors     = 3
	MaxTranslators = 2
	MaxCollections = 3
	MaxNotesLength = 1024
)

// AuthorField returns the field name of the n-th author (1-based).
func AuthorField(n int) string {
	return "author-name-" + strconv.Itoa(n)
}

// TranslatorField returns the field name of the n-th translator (1-based).
func TranslatorField(n int) string {
	return "translator-name-" + strconv.Itoa(n)
}

// CollectionField returns the field name of the n-th collection (1-based).
func CollectionField(n int) string {
	return "collection-name-" + strconv.Itoa(n)
}

// SequenceNumberField returns the field name holding the position of the
// ebook in the n-th collection.
func SequenceNumberField(n int) string {
	return "sequence-number-" + CollectionField(n)
}
