package placeholders

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-ebookform/pkg/form"
)

var (
	// ErrDuplicateEbook is returned by EbookStore.Create when an ebook with
	// the same identifier exists.
	ErrDuplicateEbook = errors.New("placeholders: an ebook with this title and author already exists")
	// ErrEbookNotFound is returned when no ebook matches an identifier.
	ErrEbookNotFound = errors.New("placeholders: ebook not found")

	errLoginRequired = errors.New("placeholders: login required")
	errForbidden     = errors.New("placeholders: forbidden")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// isAppError reports whether err is an expected outcome the user can fix by
// editing the form, as opposed to a server fault.
func isAppError(err error) bool {
	var verr *form.ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, ErrDuplicateEbook) ||
		errors.Is(err, ErrEbookNotFound)
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
