package formatter

import "errors"

var (
	// ErrNegativeByteCount is returned by ToFileSize for counts below zero.
	ErrNegativeByteCount = errors.New("formatter: negative byte count")
	// ErrTransliteratorUnavailable reports that the transliteration engine
	// could not be built. RemoveDiacritics never returns it; callers can inspect
	// TransliterationAvailable instead.
	ErrTransliteratorUnavailable = errors.New("formatter: transliterator unavailable")
)
