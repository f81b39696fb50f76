package memstore

import (
	"net/http"

	"github.com/goliatone/go-ebookform/components/placeholders"
)

// StaticAuthenticator treats every request as coming from the same user. A
// nil User means nobody is signed in.
type StaticAuthenticator struct {
	User *placeholders.User
}

var _ placeholders.Authenticator = StaticAuthenticator{}

func (a StaticAuthenticator) CurrentUser(*http.Request) (*placeholders.User, error) {
	if a.User == nil {
		return nil, nil
	}
	u := *a.User
	return &u, nil
}
