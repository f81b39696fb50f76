// Package model defines the ebook placeholder entities shared by the form
// binder, the HTML renderer and the request handler. Persistence is not part
// of this package: stores are supplied by callers through the contracts in
// components/placeholders.
//
// An Ebook is a placeholder when Placeholder is non-nil. Its canonical URL is
// derived from contributor and title slugs (see pkg/form), and its Identifier
// is that URL prefixed with "url:".
package model
