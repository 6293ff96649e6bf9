// Package session holds the client's notion of who is logged in and
// keeps it in a key-value store so it survives restarts.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/atinyakov/LocalSites/internal/models"
)

// Keys under which the session is persisted.
const (
	KeyUser     = "user"
	KeyLoggedIn = "isLoggedIn"
)

// Session is the identity and plan of the logged-in user. It is a value
// type; transitions replace it wholesale.
type Session struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Plan         models.Plan `json:"plan"`
	BusinessType string      `json:"businessType,omitempty"`
}

// FromUser converts an API user record into a Session.
func FromUser(u models.User) Session {
	return Session{Name: u.Name, Email: u.Email, Plan: u.Plan, BusinessType: u.BusinessType}
}

// KV is the persistent key-value store behind a Store.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Store owns the current Session and its persisted copy.
type Store struct {
	kv      KV
	mu      sync.RWMutex
	current *Session
}

// NewStore returns a logged-out Store over kv. Call Restore to pick up a
// persisted session.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Login makes sess the active session and persists it. The in-memory
// session is set even when persisting fails.
func (s *Store) Login(sess Session) error {
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(KeyUser, string(data)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.kv.Set(KeyLoggedIn, "true"); err != nil {
		return fmt.Errorf("persist login flag: %w", err)
	}
	return nil
}

// Logout clears the active session and its persisted record.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.kv.Remove(KeyUser); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	if err := s.kv.Remove(KeyLoggedIn); err != nil {
		return fmt.Errorf("remove login flag: %w", err)
	}
	return nil
}

// Restore re-establishes the persisted session. It succeeds only when
// the login flag is "true" and the record parses into a session with an
// email and a known plan; anything else leaves the store logged out and
// discards the stale entries. The error reports a failure to discard
// them.
func (s *Store) Restore() (Session, bool, error) {
	sess, ok := s.readPersisted()

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.current = &sess
		return sess, true, nil
	}

	s.current = nil
	if err := s.kv.Remove(KeyUser); err != nil {
		return Session{}, false, fmt.Errorf("discard stale session: %w", err)
	}
	if err := s.kv.Remove(KeyLoggedIn); err != nil {
		return Session{}, false, fmt.Errorf("discard stale login flag: %w", err)
	}
	return Session{}, false, nil
}

func (s *Store) readPersisted() (Session, bool) {
	if flag, _ := s.kv.Get(KeyLoggedIn); flag != "true" {
		return Session{}, false
	}
	raw, ok := s.kv.Get(KeyUser)
	if !ok {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}, false
	}
	if sess.Email == "" || !sess.Plan.Valid() {
		return Session{}, false
	}
	return sess, true
}
