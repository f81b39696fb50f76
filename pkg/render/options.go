package render

// RenderOptions describe per-request data that renderers use to customise
// their output without touching the ebook itself.
type RenderOptions struct {
	// Action is the URL the form submits to.
	Action string
	// Method is the HTTP method the handler expects. Browsers only submit GET
	// and POST, so renderers translate PUT/PATCH/DELETE into POST plus a hidden
	// _method input (see MethodOverride).
	Method string
	// Errors carries server-side validation messages keyed by form field name.
	// The empty key holds form-level messages.
	Errors map[string][]string
	// FormErrors lists messages not tied to a field (duplicate ebook, missing
	// record, ...).
	FormErrors []string
	// Notices are success messages shown above the form.
	Notices []string
	// HiddenFields are emitted as hidden inputs (CSRF tokens, versions).
	HiddenFields map[string]string
	// Suggestions feed the datalists offered next to free-text inputs.
	Suggestions Suggestions
}

// Suggestions lists known names for autocompletion.
type Suggestions struct {
	AuthorNames     []string
	TranslatorNames []string
	CollectionNames []string
}
