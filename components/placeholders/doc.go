// Package placeholders provides the net/http handler that creates and updates
// ebook placeholders from the placeholder form.
//
// POST on the route creates a placeholder (and its project when the status is
// in progress); PUT, or POST with _method=PUT, on the route followed by an
// ebook URL path updates one. GET on <route>/new renders the blank form and
// GET on an ebook path renders its edit form. Requests need a signed-in user
// allowed to edit placeholders. Outcomes are flashed through Sessions and the
// client is redirected with 303 See Other.
package placeholders
