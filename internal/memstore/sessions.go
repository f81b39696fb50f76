package memstore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"

	"github.com/goliatone/go-ebookform/components/placeholders"
)

// DefaultCookieName names the session cookie when NewSessions gets "".
const DefaultCookieName = "ebookform_session"

// Sessions keeps flash values in memory, keyed by a random session cookie.
type Sessions struct {
	mu     sync.Mutex
	cookie string
	data   map[string]map[string]any
}

var _ placeholders.Sessions = (*Sessions)(nil)

// NewSessions returns an empty session store using cookieName.
func NewSessions(cookieName string) *Sessions {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Sessions{
		cookie: cookieName,
		data:   make(map[string]map[string]any),
	}
}

// Put stores value under key, starting a session (and setting its cookie)
// when the request carries none.
func (s *Sessions) Put(w http.ResponseWriter, r *http.Request, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.sessionID(r)
	if id == "" {
		// A session started earlier in this response wins over a new one.
		id = startedSession(w, s.cookie)
	}
	if id == "" {
		var err error
		id, err = newSessionID()
		if err != nil {
			return fmt.Errorf("memstore: new session: %w", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     s.cookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	values, ok := s.data[id]
	if !ok {
		values = make(map[string]any)
		s.data[id] = values
	}
	values[key] = value
	return nil
}

func (s *Sessions) Pop(r *http.Request, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.sessionID(r)
	if id == "" {
		return nil, false
	}
	values, ok := s.data[id]
	if !ok {
		return nil, false
	}
	value, ok := values[key]
	if !ok {
		return nil, false
	}
	delete(values, key)
	if len(values) == 0 {
		delete(s.data, id)
	}
	return value, true
}

func (s *Sessions) sessionID(r *http.Request) string {
	if r == nil {
		return ""
	}
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// startedSession finds a cookie set on w by an earlier Put.
func startedSession(w http.ResponseWriter, name string) string {
	if w == nil {
		return ""
	}
	for _, line := range w.Header().Values("Set-Cookie") {
		c, err := http.ParseSetCookie(line)
		if err == nil && c.Name == name {
			return c.Value
		}
	}
	return ""
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
