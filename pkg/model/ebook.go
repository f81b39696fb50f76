package model

import (
	"strings"
	"time"
)

// ContributorRole distinguishes authors from translators.
type ContributorRole string

const (
	RoleAuthor     ContributorRole = "author"
	RoleTranslator ContributorRole = "translator"
)

// Contributor is a person credited on an ebook. URLName is the slug used in
// the ebook URL.
type Contributor struct {
	Name      string          `json:"name"`
	URLName   string          `json:"url_name"`
	SortOrder int             `json:"sort_order"`
	Role      ContributorRole `json:"role"`
}

// Collection groups ebooks (series, anthologies, reading lists).
type Collection struct {
	Name    string `json:"name"`
	URLName string `json:"url_name"`
}

// CollectionMembership places an ebook in a collection, optionally at a
// position within it.
type CollectionMembership struct {
	Collection     Collection `json:"collection"`
	SequenceNumber *int       `json:"sequence_number,omitempty"`
	SortOrder      int        `json:"sort_order"`
}

// Ebook is the entity backing both released ebooks and placeholders.
type Ebook struct {
	ID                    int64                  `json:"id"`
	Identifier            string                 `json:"identifier"`
	Title                 string                 `json:"title"`
	Authors               []Contributor          `json:"authors,omitempty"`
	Translators           []Contributor          `json:"translators,omitempty"`
	CollectionMemberships []CollectionMembership `json:"collection_memberships,omitempty"`
	Placeholder           *EbookPlaceholder      `json:"placeholder,omitempty"`
	ProjectInProgress     *Project               `json:"project_in_progress,omitempty"`
	Created               time.Time              `json:"created"`
	Updated               time.Time              `json:"updated"`
}

// IsPlaceholder reports whether the ebook is a placeholder record.
func (e Ebook) IsPlaceholder() bool {
	return e.Placeholder != nil
}

// IsInProgress reports whether the ebook is a placeholder currently being
// produced.
func (e Ebook) IsInProgress() bool {
	return e.Placeholder != nil && e.Placeholder.IsInProgress()
}

// URL returns the site-relative URL of the ebook taken from its identifier,
// e.g. "/ebooks/mark-twain/the-adventures-of-tom-sawyer".
func (e Ebook) URL() string {
	id := strings.TrimPrefix(e.Identifier, "url:")
	if idx := strings.Index(id, "/ebooks/"); idx >= 0 {
		return id[idx:]
	}
	return ""
}

// EditURL returns the URL of the placeholder edit form.
func (e Ebook) EditURL() string {
	url := e.URL()
	if url == "" {
		return ""
	}
	return url + "/edit"
}

// AuthorNames returns the author names in sort order.
func (e Ebook) AuthorNames() []string {
	return contributorNames(e.Authors)
}

// TranslatorNames returns the translator names in sort order.
func (e Ebook) TranslatorNames() []string {
	return contributorNames(e.Translators)
}

func contributorNames(in []Contributor) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.Name)
	}
	return out
}
