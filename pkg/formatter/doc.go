// Package formatter provides the text transformations shared by the ebook
// placeholder templates, the form binder and the CLI: diacritic stripping,
// URL slug generation, HTML/XML escaping, safe Markdown rendering and
// human-readable byte sizes.
//
// A Formatter owns two helpers that are expensive enough to build lazily: the
// transliteration engine and the Markdown renderer. Each is built at most once
// per Formatter (guarded by sync.Once) and never mutated afterwards, so a
// single Formatter can be shared by every request handler.
//
//	f := formatter.New()
//	f.MakeURLSafe("Ångström's Café")                   // "angstroms-cafe"
//	f.EscapeHTML(formatter.String(`<b>O'Brien</b>`))   // "&lt;b&gt;O&#039;Brien&lt;/b&gt;"
//
// Nullable inputs are modelled as pointers: a nil *string behaves like the
// empty string and a nil *int64 like zero bytes.
package formatter
