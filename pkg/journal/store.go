// Package journal holds the two entry collections in memory, mirrors them to
// durable storage and answers queries over them.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/store"
)

// Storage keys for the two collections.
const (
	JournalKey = "journalEntries"
	MoodKey    = "moodEntries"
)

// Collection names one of the two entry collections.
type Collection string

const (
	CollectionJournal Collection = "journal"
	CollectionMood    Collection = "mood"
)

var (
	ErrEmptyContent      = errors.New("journal: content is required")
	ErrUnknownCollection = errors.New("journal: unknown collection")
	ErrNotFound          = errors.New("journal: entry not found")
)

func ParseCollection(s string) (Collection, error) {
	switch Collection(strings.ToLower(strings.TrimSpace(s))) {
	case CollectionJournal:
		return CollectionJournal, nil
	case CollectionMood, "moods":
		return CollectionMood, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCollection, s)
}

// Store owns the journal and mood collections. Both are kept newest first and
// each mutation rewrites the whole affected collection to storage.
type Store struct {
	mu      sync.Mutex
	kv      store.KV
	logger  *zap.Logger
	now     func() time.Time
	ids     entry.IDSource
	journal []entry.JournalEntry
	moods   []entry.MoodEntry
}

// Option customizes a Store.
type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for entry ids and dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Load reads both collections from kv. A missing or undecodable value starts
// that collection empty; only backend read failures are returned.
func Load(ctx context.Context, kv store.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("journal: no storage configured")
	}
	s := &Store{
		kv:     kv,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	var (
		journal []entry.JournalEntry
		moods   []entry.MoodEntry
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		journal, err = loadCollection[entry.JournalEntry](gCtx, kv, JournalKey, s.logger)
		return err
	})
	g.Go(func() error {
		var err error
		moods, err = loadCollection[entry.MoodEntry](gCtx, kv, MoodKey, s.logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.journal = journal
	s.moods = moods
	for _, e := range journal {
		s.ids.Observe(e.ID)
	}
	for _, e := range moods {
		s.ids.Observe(e.ID)
	}
	s.logger.Debug("loaded collections",
		zap.Int("journal", len(journal)),
		zap.Int("moods", len(moods)))
	return s, nil
}

func loadCollection[T any](ctx context.Context, kv store.KV, key string, logger *zap.Logger) ([]T, error) {
	raw, ok, err := kv.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("journal: load %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("stored collection is malformed, starting empty",
			zap.String("key", key),
			zap.Error(err))
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Reload replaces the collection stored under key with what storage holds
// now. An empty key reloads both. Malformed data empties the collection, as
// in Load.
func (s *Store) Reload(ctx context.Context, key string) error {
	if key != "" && key != JournalKey && key != MoodKey {
		return fmt.Errorf("journal: unknown storage key %q", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if key == "" || key == JournalKey {
		journal, err := loadCollection[entry.JournalEntry](ctx, s.kv, JournalKey, s.logger)
		if err != nil {
			return err
		}
		for _, e := range journal {
			s.ids.Observe(e.ID)
		}
		s.journal = journal
	}
	if key == "" || key == MoodKey {
		moods, err := loadCollection[entry.MoodEntry](ctx, s.kv, MoodKey, s.logger)
		if err != nil {
			return err
		}
		for _, e := range moods {
			s.ids.Observe(e.ID)
		}
		s.moods = moods
	}
	return nil
}

// Journal returns a copy of the journal collection, newest first.
func (s *Store) Journal() []entry.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.JournalEntry, len(s.journal))
	copy(out, s.journal)
	return out
}

// Moods returns a copy of the mood collection, newest first.
func (s *Store) Moods() []entry.MoodEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entry.MoodEntry, len(s.moods))
	copy(out, s.moods)
	return out
}

// AddJournal prepends a journal entry. Blank content is rejected with
// ErrEmptyContent and leaves the collection untouched. When the write fails
// the entry stays in memory and the error is returned.
func (s *Store) AddJournal(ctx context.Context, content string) (entry.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return entry.JournalEntry{}, ErrEmptyContent
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := entry.NewJournal(s.ids.Next(now), now, content)
	if err := e.Validate(); err != nil {
		return entry.JournalEntry{}, fmt.Errorf("journal: invalid entry: %w", err)
	}
	s.journal = append([]entry.JournalEntry{e}, s.journal...)
	return e, s.persist(ctx, JournalKey, s.journal)
}

// AddMood prepends a mood entry. An empty mood is recorded as neutral.
func (s *Store) AddMood(ctx context.Context, mood entry.Mood, note string) (entry.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e := entry.NewMood(s.ids.Next(now), now, mood, note)
	if err := e.Validate(); err != nil {
		return entry.MoodEntry{}, fmt.Errorf("journal: invalid entry: %w", err)
	}
	s.moods = append([]entry.MoodEntry{e}, s.moods...)
	return e, s.persist(ctx, MoodKey, s.moods)
}

// Delete removes the entry with id from collection c. It reports whether an
// entry was removed; an unknown id is not an error and writes nothing.
func (s *Store) Delete(ctx context.Context, c Collection, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c {
	case CollectionJournal:
		kept, removed := without(s.journal, id, func(e entry.JournalEntry) int64 { return e.ID })
		if !removed {
			return false, nil
		}
		s.journal = kept
		return true, s.persist(ctx, JournalKey, s.journal)
	case CollectionMood:
		kept, removed := without(s.moods, id, func(e entry.MoodEntry) int64 { return e.ID })
		if !removed {
			return false, nil
		}
		s.moods = kept
		return true, s.persist(ctx, MoodKey, s.moods)
	default:
		return false, fmt.Errorf("%w %q", ErrUnknownCollection, c)
	}
}

func without[T any](list []T, id int64, idOf func(T) int64) ([]T, bool) {
	out := make([]T, 0, len(list))
	removed := false
	for _, e := range list {
		if idOf(e) == id {
			removed = true
			continue
		}
		out = append(out, e)
	}
	return out, removed
}

// persist rewrites the whole collection under key. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", key, err)
	}
	if err := s.kv.Save(ctx, key, string(data)); err != nil {
		s.logger.Error("persist collection", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("journal: save %s: %w", key, err)
	}
	s.logger.Debug("persisted collection", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}
