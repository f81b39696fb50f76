// Package form binds submitted ebook placeholder forms to model entities.
//
// Binder.BindEbook reads the fields emitted by the placeholder form template
// (author-name-1, ebook-title, ebook-placeholder-status, ...), derives slugs
// for contributors and collections through the shared formatter, and computes
// the ebook URL and identifier. Invalid submissions still return the bound
// ebook together with a *ValidationError so the form can be re-displayed with
// the user's input and inline messages.
package form
