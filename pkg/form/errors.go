package form

import (
	"strings"
)

// Issue is a single validation failure tied to a form field. Field is empty
// for form-level problems.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError collects every issue found while binding a submission.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "form: invalid submission"
	}
	return "form: invalid submission: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the distinct issue messages in order.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	messages := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		messages = append(messages, issue.Message)
	}
	return normalizeMessages(messages)
}

// Fields groups messages by form field name. Form-level issues are keyed by
// the empty string.
func (e *ValidationError) Fields() map[string][]string {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range e.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	for field, messages := range out {
		out[field] = normalizeMessages(messages)
	}
	return out
}

type issues []Issue

func (is *issues) add(field, message string) {
	*is = append(*is, Issue{Field: field, Message: message})
}

func (is issues) err() error {
	if len(is) == 0 {
		return nil
	}
	return &ValidationError{Issues: append([]Issue(nil), is...)}
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
