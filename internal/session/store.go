// Package session persists per-session datasets and scheduling rules as JSON
// blobs on disk, keyed by session id.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rohittcodes/data-alchemist/internal/domain"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Session is the unit of ownership: one session holds up to three datasets
// and the rule list authored against them.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Datasets  domain.Datasets `json:"datasets"`
	Rules     []domain.Rule   `json:"rules"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store reads and writes sessions under a data directory, one JSON file per
// session. A per-store mutex serializes writers; the mutate-then-revalidate
// cycle the handlers run must not interleave for the same session.
type Store struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the store's time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates the data directory if needed and returns a store over it.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Join(os.TempDir(), "data-alchemist-sessions")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	store := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Create initializes and persists an empty session.
func (s *Store) Create() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := Session{
		ID:        uuid.New(),
		Rules:     []domain.Rule{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.write(sess); err != nil {
		return Session{}, err
	}
	log.Printf("[SESSION] created %s", sess.ID)
	return sess, nil
}

// Get loads a session by id.
func (s *Store) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// Save persists the session, bumping its UpdatedAt stamp.
func (s *Store) Save(sess Session) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == uuid.Nil {
		return Session{}, errors.New("session id is required")
	}
	sess.UpdatedAt = s.now()
	if err := s.write(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Update applies fn to the session and persists the result as one atomic
// read-modify-write under the store's lock. Concurrent updates to the same
// session serialize instead of overwriting each other; an error from fn
// aborts the update and leaves the stored session untouched.
func (s *Store) Update(id uuid.UUID, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.read(id)
	if err != nil {
		return Session{}, err
	}
	if err := fn(&sess); err != nil {
		return Session{}, err
	}
	sess.UpdatedAt = s.now()
	if err := s.write(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Delete removes a session's file. Deleting a missing session is not an error.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	log.Printf("[SESSION] deleted %s", id)
	return nil
}

// List returns the ids of every persisted session.
func (s *Store) List() ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var ids []uuid.UUID
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Prune removes sessions not updated within the TTL. A zero TTL disables
// pruning.
func (s *Store) Prune(ttl time.Duration) (int, error) {
	if ttl <= 0 {
		return 0, nil
	}
	ids, err := s.List()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for _, id := range ids {
		sess, err := s.read(id)
		if err != nil {
			continue
		}
		if sess.UpdatedAt.Before(cutoff) {
			if err := os.Remove(s.path(id)); err == nil {
				removed++
			}
		}
	}
	if removed > 0 {
		log.Printf("[SESSION] pruned %d expired sessions", removed)
	}
	return removed, nil
}

func (s *Store) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

func (s *Store) write(sess Session) error {
	payload, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	tmp := s.path(sess.ID) + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path(sess.ID)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func (s *Store) read(id uuid.UUID) (Session, error) {
	payload, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return sess, nil
}
