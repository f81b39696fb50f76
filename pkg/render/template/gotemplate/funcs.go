package gotemplate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-ebookform/pkg/formatter"
)

// FormatterFuncs returns the template functions backed by f:
//
//	escape_html(value)       HTML-escaped, trimmed text (already safe)
//	escape_xml(value)        XML-escaped, trimmed text (already safe)
//	markdown(value)          sanitized HTML rendered from Markdown (already safe)
//	slug(value)              URL-safe slug
//	remove_diacritics(value) ASCII transliteration
//	filesize(bytes)          human readable size such as "1.5M"
//
// None/undefined arguments are treated as absent values.
func FormatterFuncs(f *formatter.Formatter) map[string]any {
	if f == nil {
		f = formatter.New()
	}
	return map[string]any{
		"escape_html": func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsSafeValue(f.EscapeHTML(optionalString(in)))
		},
		"escape_xml": func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsSafeValue(f.EscapeXML(optionalString(in)))
		},
		"markdown": func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsSafeValue(f.MarkdownToHTML(optionalString(in)))
		},
		"slug": func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsValue(f.MakeURLSafe(valueString(in)))
		},
		"remove_diacritics": func(in *pongo2.Value) *pongo2.Value {
			return pongo2.AsValue(f.RemoveDiacritics(valueString(in)))
		},
		"filesize": func(in *pongo2.Value) (*pongo2.Value, error) {
			n, err := optionalInt64(in)
			if err != nil {
				return nil, err
			}
			size, err := f.ToFileSize(n)
			if err != nil {
				return nil, err
			}
			return pongo2.AsValue(size), nil
		},
	}
}

func absent(in *pongo2.Value) bool {
	return in == nil || in.IsNil()
}

func optionalString(in *pongo2.Value) *string {
	if absent(in) {
		return nil
	}
	s := in.String()
	return &s
}

func valueString(in *pongo2.Value) string {
	if absent(in) {
		return ""
	}
	return in.String()
}

func optionalInt64(in *pongo2.Value) (*int64, error) {
	if absent(in) {
		return nil, nil
	}
	var n int64
	switch {
	case in.IsInteger():
		n = int64(in.Integer())
	case in.IsFloat():
		n = int64(in.Float())
	case in.IsString():
		parsed, err := strconv.ParseInt(strings.TrimSpace(in.String()), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: filesize: %q is not a byte count", in.String())
		}
		n = parsed
	default:
		return nil, fmt.Errorf("gotemplate: filesize: unsupported value %v", in.Interface())
	}
	return &n, nil
}
