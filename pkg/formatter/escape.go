package formatter

import "strings"

// trimCutset matches the whitespace trimmed before escaping: ASCII space,
// tab, newline, carriage return, NUL and vertical tab.
const trimCutset = " \t\n\r\x00\x0B"

var (
	htmlEscaper = strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&#039;",
	)
	xmlEscaper = strings.NewReplacer(
		`&`, "&amp;",
		`<`, "&lt;",
		`>`, "&gt;",
		`"`, "&quot;",
		`'`, "&apos;",
	)
)

// EscapeHTML trims text and escapes the five HTML special characters so the
// result can be placed in either an attribute value or a text node. A nil
// text yields "".
func (f *Formatter) EscapeHTML(text *string) string {
	return escapeWith(htmlEscaper, text)
}

// EscapeXML is EscapeHTML for XML 1.0 documents: the apostrophe becomes
// &apos; rather than the numeric reference. It does not URL-encode; query
// strings embedded in text must already be percent-encoded.
func (f *Formatter) EscapeXML(text *string) string {
	return escapeWith(xmlEscaper, text)
}

func escapeWith(r *strings.Replacer, text *string) string {
	if text == nil {
		return ""
	}
	trimmed := strings.Trim(*text, trimCutset)
	if trimmed == "" {
		return ""
	}
	return r.Replace(strings.ToValidUTF8(trimmed, "\uFFFD"))
}
