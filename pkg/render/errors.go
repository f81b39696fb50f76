package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-ebookform/pkg/form"
)

// ErrorMapping splits an error into field-level and form-level messages
// keyed by form field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapError converts a binding or handler error into messages renderers can
// show. Validation issues land on their fields (form-level issues, keyed by
// the empty field name, join Form); any other error becomes a form-level
// message.
func MapError(err error) ErrorMapping {
	var mapping ErrorMapping
	if err == nil {
		return mapping
	}

	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		mapping.Form = normalizeMessages([]string{userMessage(err)})
		return mapping
	}

	for field, messages := range verr.Fields() {
		if strings.TrimSpace(field) == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = append(mapping.Fields[field], messages...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Apply copies the mapping onto render options, merging with any messages
// already present.
func (m ErrorMapping) Apply(options RenderOptions) RenderOptions {
	if len(m.Fields) > 0 {
		merged := make(map[string][]string, len(options.Errors)+len(m.Fields))
		for field, messages := range options.Errors {
			merged[field] = append([]string(nil), messages...)
		}
		for field, messages := range m.Fields {
			merged[field] = normalizeMessages(append(merged[field], messages...))
		}
		options.Errors = merged
	}
	options.FormErrors = MergeFormErrors(options.FormErrors, m.Form...)
	return options
}

// userMessage strips the "pkg: " prefixes used in wrapped error chains.
func userMessage(err error) string {
	msg := err.Error()
	if idx := strings.LastIndex(msg, ": "); idx >= 0 && idx+2 < len(msg) {
		msg = msg[idx+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
