// Package memstore holds mutex-guarded in-memory implementations of the
// placeholder component contracts for the demo server and tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-ebookform/components/placeholders"
	"github.com/goliatone/go-ebookform/pkg/model"
)

// Store keeps ebooks and projects in memory. Ebooks and Projects return the
// store's views satisfying placeholders.EbookStore and
// placeholders.ProjectStore; the Store itself is a placeholders.Catalog.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	ebooks       map[int64]*model.Ebook
	byIdentifier map[string]int64
	projects     map[int64]*model.Project
	nextEbook    int64
	nextProject  int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:          time.Now,
		ebooks:       make(map[int64]*model.Ebook),
		byIdentifier: make(map[string]int64),
		projects:     make(map[int64]*model.Project),
	}
}

var (
	_ placeholders.EbookStore   = EbookStore{}
	_ placeholders.ProjectStore = ProjectStore{}
	_ placeholders.Catalog      = (*Store)(nil)
)

// EbookStore is the ebook view of a Store.
type EbookStore struct{ s *Store }

// ProjectStore is the project view of a Store.
type ProjectStore struct{ s *Store }

func (s *Store) Ebooks() EbookStore     { return EbookStore{s: s} }
func (s *Store) Projects() ProjectStore { return ProjectStore{s: s} }

func (e EbookStore) Create(ctx context.Context, ebook *model.Ebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byIdentifier[ebook.Identifier]; exists {
		return placeholders.ErrDuplicateEbook
	}
	s.nextEbook++
	ebook.ID = s.nextEbook
	stored := cloneEbook(ebook)
	stored.ProjectInProgress = nil
	s.ebooks[ebook.ID] = stored
	s.byIdentifier[ebook.Identifier] = ebook.ID
	return nil
}

// Save replaces the ebook with the same ID. Projects stay attached.
func (e EbookStore) Save(ctx context.Context, ebook *model.Ebook) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := e.s
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.ebooks[ebook.ID]
	if !ok {
		return placeholders.ErrEbookNotFound
	}
	if id, taken := s.byIdentifier[ebook.Identifier]; taken && id != ebook.ID {
		return placeholders.ErrDuplicateEbook
	}
	ebook.Updated = s.now().UTC()
	stored := cloneEbook(ebook)
	stored.ProjectInProgress = nil
	delete(s.byIdentifier, current.Identifier)
	s.ebooks[ebook.ID] = stored
	s.byIdentifier[ebook.Identifier] = ebook.ID
	return nil
}

func (e EbookStore) GetByIdentifier(ctx context.Context, identifier string) (*model.Ebook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := e.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byIdentifier[identifier]
	if !ok {
		return nil, placeholders.ErrEbookNotFound
	}
	return s.hydrate(id), nil
}

// List returns every ebook ordered by ID.
func (e EbookStore) List(ctx context.Context) ([]*model.Ebook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := e.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.ebooks))
	for id := range s.ebooks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*model.Ebook, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.hydrate(id))
	}
	return out, nil
}

func (p ProjectStore) Create(ctx context.Context, project *model.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ebooks[project.EbookID]; !ok {
		return placeholders.ErrEbookNotFound
	}
	s.nextProject++
	project.ID = s.nextProject
	stored := *project
	stored.Ebook = nil
	s.projects[project.EbookID] = &stored
	return nil
}

func (s *Store) AuthorNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, func(e *model.Ebook) []string { return e.AuthorNames() })
}

func (s *Store) TranslatorNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, func(e *model.Ebook) []string { return e.TranslatorNames() })
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	return s.names(ctx, func(e *model.Ebook) []string {
		out := make([]string, 0, len(e.CollectionMemberships))
		for _, m := range e.CollectionMemberships {
			out = append(out, m.Collection.Name)
		}
		return out
	})
}

// names collects distinct names sorted case-insensitively.
func (s *Store) names(ctx context.Context, pick func(*model.Ebook) []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, ebook := range s.ebooks {
		for _, name := range pick(ebook) {
			if _, ok := seen[name]; ok || name == "" {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, nil
}

// hydrate returns a copy of the ebook with its project attached. Callers hold
// the lock.
func (s *Store) hydrate(id int64) *model.Ebook {
	ebook := cloneEbook(s.ebooks[id])
	if project, ok := s.projects[id]; ok {
		p := *project
		ebook.ProjectInProgress = &p
	}
	return ebook
}

func cloneEbook(in *model.Ebook) *model.Ebook {
	out := *in
	out.Authors = append([]model.Contributor(nil), in.Authors...)
	out.Translators = append([]model.Contributor(nil), in.Translators...)
	out.CollectionMemberships = append([]model.CollectionMembership(nil), in.CollectionMemberships...)
	if in.Placeholder != nil {
		p := *in.Placeholder
		out.Placeholder = &p
	}
	return &out
}
