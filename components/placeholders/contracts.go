package placeholders

import (
	"context"
	"net/http"

	"github.com/goliatone/go-ebookform/pkg/model"
)

// User is the signed-in account as far as this component cares.
type User struct {
	Name                     string
	CanEditEbookPlaceholders bool
}

// Authenticator resolves the user of a request. A nil user with a nil error
// means nobody is signed in.
type Authenticator interface {
	CurrentUser(r *http.Request) (*User, error)
}

// Sessions stores flash values between a submission and the page the client
// is redirected to.
type Sessions interface {
	Put(w http.ResponseWriter, r *http.Request, key string, value any) error
	// Pop returns and removes a value.
	Pop(r *http.Request, key string) (any, bool)
}

// EbookStore persists ebooks. Create assigns the ID and returns
// ErrDuplicateEbook when the identifier is taken; GetByIdentifier returns
// ErrEbookNotFound for unknown identifiers.
type EbookStore interface {
	Create(ctx context.Context, ebook *model.Ebook) error
	Save(ctx context.Context, ebook *model.Ebook) error
	GetByIdentifier(ctx context.Context, identifier string) (*model.Ebook, error)
}

// ProjectStore persists projects. Create assigns the ID.
type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
}

// Catalog lists known names offered as suggestions on the form.
type Catalog interface {
	AuthorNames(ctx context.Context) ([]string, error)
	TranslatorNames(ctx context.Context) ([]string, error)
	CollectionNames(ctx context.Context) ([]string, error)
}

// Flash keys written by the handler.
const (
	FlashEbook              = "ebook"
	FlashException          = "exception"
	FlashPlaceholderCreated = "is-ebook-placeholder-created"
	FlashOnlyProjectCreated = "is-only-ebook-project-created"
	FlashPlaceholderSaved   = "is-ebook-placeholder-saved"
)
