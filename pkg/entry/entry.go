package entry

import (
	"errors"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrBlank is returned by validation when text holds only whitespace.
var ErrBlank = errors.New("must not be blank")

// JournalEntry is a free-form journal record.
type JournalEntry struct {
	ID      int64     `json:"id"`
	Date    Timestamp `json:"date"`
	Content string    `json:"content"`
}

// MoodEntry records a mood with an optional note.
type MoodEntry struct {
	ID   int64     `json:"id"`
	Date Timestamp `json:"date"`
	Mood Mood      `json:"mood"`
	Note string    `json:"note"`
}

// NewJournal builds a journal entry created at now. The content is kept as
// typed; callers validate before storing.
func NewJournal(id int64, now time.Time, content string) JournalEntry {
	return JournalEntry{
		ID:      id,
		Date:    NewTimestamp(now),
		Content: content,
	}
}

// NewMood builds a mood entry created at now. An empty mood becomes Neutral.
func NewMood(id int64, now time.Time, mood Mood, note string) MoodEntry {
	if mood == "" {
		mood = Neutral
	}
	return MoodEntry{
		ID:   id,
		Date: NewTimestamp(now),
		Mood: mood,
		Note: note,
	}
}

func (e JournalEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Date, validation.By(requireTime)),
		validation.Field(&e.Content, validation.Required, validation.By(notBlank)),
	)
}

func (e MoodEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Date, validation.By(requireTime)),
		validation.Field(&e.Mood, validation.Required, validation.In(moodValues()...)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return ErrBlank
	}
	return nil
}

func requireTime(value interface{}) error {
	ts, _ := value.(Timestamp)
	if ts.IsZero() {
		return errors.New("is required")
	}
	return nil
}

// IDSource hands out entry ids derived from the creation time in
// milliseconds. Ids never repeat within a process, even when two entries are
// created in the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	last int64
}

func (s *IDSource) Next(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe records an id that already exists so later ids stay above it.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}
