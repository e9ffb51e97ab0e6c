// Package history persists recent molar mass calculations.
//
// The store is a JSON file holding the newest entries first. Every mutation
// runs under a cross-process file lock and rewrites the file atomically, so
// concurrent gomolar invocations never interleave writes.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/yaklabco/gomolar/pkg/fsutil"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 20

// fileMode keeps the history private to the user.
const fileMode os.FileMode = 0o600

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded calculation.
type Entry struct {
	ID        string    `json:"id"`
	Formula   string    `json:"formula"`
	MolarMass float64   `json:"molarMass"`
	Timestamp time.Time `json:"timestamp"`
}

// Store reads and writes the history file at a fixed path.
type Store struct {
	path  string
	limit int
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLimit sets the number of entries kept. Values below 1 select
// DefaultLimit.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithClock replaces the time source used for new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store backed by the file at path. The file and its
// directory are created on first write.
func NewStore(path string, opts ...Option) *Store {
	store := &Store{
		path:  path,
		limit: DefaultLimit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// List returns all entries, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	return s.read(ctx)
}

// Add records a calculation. A formula already present is not added again;
// added reports whether a new entry was written. New entries go first and
// the oldest entries beyond the limit are dropped.
func (s *Store) Add(ctx context.Context, formula string, molarMass float64) (Entry, bool, error) {
	var (
		entry Entry
		added bool
	)
	err := s.update(ctx, func(entries []Entry) []Entry {
		for _, existing := range entries {
			if existing.Formula == formula {
				entry = existing
				return nil
			}
		}

		entry = Entry{
			ID:        uuid.NewString(),
			Formula:   formula,
			MolarMass: molarMass,
			Timestamp: s.now().UTC(),
		}
		added = true

		next := append([]Entry{entry}, entries...)
		if len(next) > s.limit {
			next = next[:s.limit]
		}
		return next
	})
	if err != nil {
		return Entry{}, false, err
	}
	return entry, added, nil
}

// Remove deletes the entry with the given ID.
func (s *Store) Remove(ctx context.Context, id string) error {
	found := false
	err := s.update(ctx, func(entries []Entry) []Entry {
		next := make([]Entry, 0, len(entries))
		for _, entry := range entries {
			if entry.ID == id {
				found = true
				continue
			}
			next = append(next, entry)
		}
		if !found {
			return nil
		}
		return next
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	return s.update(ctx, func([]Entry) []Entry {
		return []Entry{}
	})
}

// update applies fn to the current entries under the file lock. A nil
// return from fn leaves the file untouched.
func (s *Store) update(ctx context.Context, fn func([]Entry) []Entry) error {
	lock, err := fsutil.Lock(ctx, s.path)
	if err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := s.read(ctx)
	if err != nil {
		return err
	}

	next := fn(entries)
	if next == nil {
		return nil
	}
	return s.write(ctx, next)
}

func (s *Store) read(ctx context.Context) ([]Entry, error) {
	content, _, err := fsutil.ReadFile(ctx, s.path)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	if len(content) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", s.path, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Store) write(ctx context.Context, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.EnsureDir(s.path); err != nil {
		return err
	}
	if _, err := fsutil.WriteAtomicIfChanged(ctx, s.path, data, fileMode); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
