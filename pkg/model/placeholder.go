package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty rates how hard a wanted ebook is to produce. The zero value
// means unset.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists the selectable difficulties in display order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Label returns the human-readable name.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return ""
	}
}

// ParseDifficulty converts a form value. An empty value yields the zero
// Difficulty.
func ParseDifficulty(raw string) (Difficulty, error) {
	value := Difficulty(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", nil
	}
	for _, d := range Difficulties() {
		if d == value {
			return d, nil
		}
	}
	return "", fmt.Errorf("model: unknown difficulty %q", raw)
}

// Status is the wanted-list state of a placeholder.
type Status string

const (
	StatusWanted     Status = "wanted"
	StatusInProgress Status = "in_progress"
)

// Statuses lists the selectable statuses in display order.
func Statuses() []Status {
	return []Status{StatusWanted, StatusInProgress}
}

// Label returns the human-readable name.
func (s Status) Label() string {
	switch s {
	case StatusWanted:
		return "Wanted"
	case StatusInProgress:
		return "In progress"
	default:
		return ""
	}
}

// ParseStatus converts a form value. An empty value yields StatusWanted.
func ParseStatus(raw string) (Status, error) {
	value := Status(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return StatusWanted, nil
	}
	for _, s := range Statuses() {
		if s == value {
			return s, nil
		}
	}
	return "", fmt.Errorf("model: unknown status %q", raw)
}

// EbookPlaceholder holds the wanted-list metadata of an ebook that has not
// been produced yet.
type EbookPlaceholder struct {
	YearPublished    *int       `json:"year_published,omitempty"`
	Difficulty       Difficulty `json:"difficulty,omitempty"`
	Status           Status     `json:"status"`
	TranscriptionURL string     `json:"transcription_url,omitempty"`
	IsWanted         bool       `json:"is_wanted"`
	IsPatron         bool       `json:"is_patron"`
	Notes            string     `json:"notes,omitempty"`
}

// IsInProgress reports whether production has started.
func (p EbookPlaceholder) IsInProgress() bool {
	return p.Status == StatusInProgress
}

// Project tracks the production of an in-progress placeholder.
type Project struct {
	ID            int64     `json:"id"`
	EbookID       int64     `json:"ebook_id"`
	Ebook         *Ebook    `json:"-"`
	ProducerName  string    `json:"producer_name"`
	ProducerEmail string    `json:"producer_email,omitempty"`
	DiscussionURL string    `json:"discussion_url,omitempty"`
	VCSURL        string    `json:"vcs_url,omitempty"`
	Started       time.Time `json:"started"`
}
