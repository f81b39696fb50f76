package formatter

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Transliterator converts text through a fixed rule pipeline. Implementations
// must be safe for concurrent use.
type Transliterator interface {
	Transliterate(text string) (string, error)
}

// ruleEngine applies Any-Latin and Latin-ASCII (unidecode tables), then NFD,
// removal of nonspacing marks, lowercasing and NFC.
//
// x/text transformers keep state between calls, so every call borrows its own
// chain from the pool.
type ruleEngine struct {
	chains sync.Pool
}

// NewTransliterator builds the default rule engine and checks it against a
// probe string before handing it out.
func NewTransliterator() (Transliterator, error) {
	engine := &ruleEngine{}
	engine.chains.New = func() any {
		return newRuleChain()
	}

	got, err := engine.Transliterate("Ångström")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransliteratorUnavailable, err)
	}
	if got != "angstrom" {
		return nil, fmt.Errorf("%w: probe produced %q", ErrTransliteratorUnavailable, got)
	}
	return engine, nil
}

func newRuleChain() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		cases.Lower(language.Und),
		norm.NFC,
	)
}

func (e *ruleEngine) Transliterate(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	latin := text
	if !isASCII(text) {
		latin = unidecode.Unidecode(text)
	}

	chain, _ := e.chains.Get().(transform.Transformer)
	if chain == nil {
		chain = newRuleChain()
	}
	defer e.chains.Put(chain)

	out, _, err := transform.String(chain, latin)
	if err != nil {
		return "", fmt.Errorf("formatter: transliterate: %w", err)
	}
	return out, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// RemoveDiacritics transliterates text to lowercase ASCII-compatible Latin,
// leaving the unaccented letters in place.
//
// If the transliteration engine could not be built, or fails on this input,
// text is returned unchanged.
func (f *Formatter) RemoveDiacritics(text string) string {
	engine, ok := f.transliterator()
	if !ok {
		return text
	}
	out, err := engine.Transliterate(text)
	if err != nil {
		return text
	}
	return out
}

var apostrophes = strings.NewReplacer("'", "", "’", "")

// MakeURLSafe turns text into a slug: diacritics removed, apostrophes
// dropped, lowercased, every non [0-9a-z] rune turned into a separator,
// separator runs collapsed into a single dash and dashes trimmed from both
// ends. Empty or all-punctuation input yields "".
func (f *Formatter) MakeURLSafe(text string) string {
	text = f.RemoveDiacritics(text)
	text = apostrophes.Replace(text)
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isASCIIAlnum(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	return strings.Trim(slug, "-")
}

func isASCIIAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
