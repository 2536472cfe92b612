// Package app holds the interactive application state shared by the terminal
// UI: which view is active, the input buffers, the delete confirmation and
// the transient success notices.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
)

const (
	JournalSubmitted = "Journal entry submitted successfully!"
	MoodSubmitted    = "Mood entry submitted successfully!"
	DeletePrompt     = "Are you sure you want to delete this entry?"
)

var ErrDeleteNotAllowed = errors.New("app: delete not allowed from this view")

// PendingDelete is an entry awaiting confirmation.
type PendingDelete struct {
	Collection journal.Collection
	ID         int64
}

// MoodQuery is a mood search as it was when the search was triggered.
type MoodQuery struct {
	Mood string
	Date string
}

// State is a snapshot of everything the UI renders. Slices are shared between
// snapshots and must not be modified.
type State struct {
	View View

	JournalDraft  string
	MoodSelection entry.Mood
	MoodNote      string

	JournalTerm string
	JournalDate string

	MoodFilter   string
	MoodDate     string
	MoodQuery    MoodQuery
	MoodSearched bool

	JournalNotice string
	MoodNotice    string

	Pending *PendingDelete
	Err     error

	Journal []entry.JournalEntry
	Moods   []entry.MoodEntry
}

// JournalResults filters the journal with the current term and date.
func (s State) JournalResults() []entry.JournalEntry {
	return journal.SearchJournal(s.Journal, s.JournalTerm, s.JournalDate)
}

// JournalQueryIdle reports whether the journal search has nothing to search
// for yet.
func (s State) JournalQueryIdle() bool {
	return s.JournalTerm == "" && s.JournalDate == ""
}

// MoodResults returns nil until a mood search has been triggered.
func (s State) MoodResults() []entry.MoodEntry {
	if !s.MoodSearched {
		return nil
	}
	return journal.SearchMoods(s.Moods, s.MoodQuery.Mood, s.MoodQuery.Date)
}

// VisibleNotice is the success notice belonging to the active view, if any.
func (s State) VisibleNotice() string {
	switch s.View {
	case ViewJournal:
		return s.JournalNotice
	case ViewMood:
		return s.MoodNotice
	}
	return ""
}

func (s State) Summary(now time.Time) journal.Summary {
	return journal.Summarize(s.Journal, s.Moods, now)
}

type noticeKind int

const (
	noticeJournal noticeKind = iota
	noticeMood
)

type noticeSlot struct {
	gen    uint64
	cancel func() bool
}

// Controller is the only way to change State. It is safe for concurrent use;
// listeners are called outside the lock.
type Controller struct {
	mu        sync.Mutex
	store     *journal.Store
	sched     Scheduler
	logger    *zap.Logger
	state     State
	notices   [2]noticeSlot
	listeners map[int]func(State)
	nextID    int
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New starts on the dashboard with the collections currently in s.
func New(s *journal.Store, opts ...Option) (*Controller, error) {
	if s == nil {
		return nil, errors.New("app: no store configured")
	}
	c := &Controller{
		store:     s,
		sched:     TimerScheduler{},
		logger:    zap.NewNop(),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{
		View:          ViewDashboard,
		MoodSelection: entry.Neutral,
		MoodFilter:    entry.MoodAll,
		Journal:       s.Journal(),
		Moods:         s.Moods(),
	}
	return c, nil
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe calls fn after every change until the returned func is called.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// update applies fn under the lock and notifies listeners afterwards.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	listeners := make([]func(State), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()
	for _, l := range listeners {
		l(snapshot)
	}
}

// Navigate switches to v. Leaving a view cancels any pending delete, leaving
// the mood search forgets its results and opening the composer clears it.
func (c *Controller) Navigate(v View) error {
	if !v.Valid() {
		return fmt.Errorf("app: unknown view %q", v)
	}
	c.update(func(s *State) {
		if s.View == v {
			return
		}
		if s.View == ViewSearchMoods {
			s.MoodSearched = false
			s.MoodQuery = MoodQuery{}
		}
		if v == ViewNewJournal {
			s.JournalDraft = ""
		}
		s.Pending = nil
		s.Err = nil
		s.View = v
	})
	return nil
}

func (c *Controller) SetJournalDraft(text string) {
	c.update(func(s *State) { s.JournalDraft = text })
}

// SubmitJournal records the draft. A blank draft changes nothing and reports
// false. From the composer a submission returns to the journal list.
func (c *Controller) SubmitJournal(ctx context.Context) (bool, error) {
	draft := c.State().JournalDraft
	if strings.TrimSpace(draft) == "" {
		return false, nil
	}
	e, err := c.store.AddJournal(ctx, draft)
	if errors.Is(err, journal.ErrEmptyContent) {
		return false, nil
	}
	if err != nil && e.ID == 0 {
		c.update(func(s *State) { s.Err = err })
		return false, err
	}
	c.logger.Debug("journal entry submitted", zap.Int64("id", e.ID))

	c.update(func(s *State) {
		s.Journal = c.store.Journal()
		s.JournalDraft = ""
		if s.View == ViewNewJournal {
			s.View = ViewJournal
		}
		s.Err = err
		if err == nil {
			c.showNoticeLocked(s, noticeJournal, JournalSubmitted)
		}
	})
	return true, err
}

func (c *Controller) SelectMood(m entry.Mood) error {
	if !m.Valid() {
		return fmt.Errorf("app: unknown mood %q", m)
	}
	c.update(func(s *State) { s.MoodSelection = m })
	return nil
}

func (c *Controller) SetMoodNote(note string) {
	c.update(func(s *State) { s.MoodNote = note })
}

// SubmitMood records the selected mood and note, then resets the selection
// to neutral and clears the note.
func (c *Controller) SubmitMood(ctx context.Context) error {
	st := c.State()
	e, err := c.store.AddMood(ctx, st.MoodSelection, st.MoodNote)
	if err != nil && e.ID == 0 {
		c.update(func(s *State) { s.Err = err })
		return err
	}
	c.logger.Debug("mood entry submitted", zap.Int64("id", e.ID), zap.String("mood", string(e.Mood)))

	c.update(func(s *State) {
		s.Moods = c.store.Moods()
		s.MoodSelection = entry.Neutral
		s.MoodNote = ""
		s.Err = err
		if err == nil {
			c.showNoticeLocked(s, noticeMood, MoodSubmitted)
		}
	})
	return err
}

// SetJournalQuery updates the live journal search.
func (c *Controller) SetJournalQuery(term, date string) {
	c.update(func(s *State) {
		s.JournalTerm = term
		s.JournalDate = date
	})
}

// SetMoodFilter edits the mood search inputs. Results only change when
// SearchMoods is called.
func (c *Controller) SetMoodFilter(mood, date string) error {
	filter, err := entry.ParseMoodFilter(mood)
	if err != nil {
		return err
	}
	c.update(func(s *State) {
		s.MoodFilter = filter
		s.MoodDate = date
	})
	return nil
}

// SearchMoods applies the current mood filters.
func (c *Controller) SearchMoods() {
	c.update(func(s *State) {
		s.MoodQuery = MoodQuery{Mood: s.MoodFilter, Date: s.MoodDate}
		s.MoodSearched = true
	})
}

// RequestDelete asks for confirmation before removing an entry. It fails with
// ErrDeleteNotAllowed unless the active view lists that collection.
func (c *Controller) RequestDelete(col journal.Collection, id int64) error {
	var err error
	c.update(func(s *State) {
		if !s.View.CanDelete(col) {
			err = fmt.Errorf("%w: %s from %s", ErrDeleteNotAllowed, col, s.View)
			return
		}
		s.Pending = &PendingDelete{Collection: col, ID: id}
	})
	return err
}

// ConfirmDelete removes the pending entry. It reports false when nothing was
// pending or the entry was already gone.
func (c *Controller) ConfirmDelete(ctx context.Context) (bool, error) {
	pending := c.State().Pending
	if pending == nil {
		return false, nil
	}
	removed, err := c.store.Delete(ctx, pending.Collection, pending.ID)
	if removed {
		c.logger.Debug("entry deleted",
			zap.String("collection", string(pending.Collection)),
			zap.Int64("id", pending.ID))
	}
	c.update(func(s *State) {
		s.Pending = nil
		s.Journal = c.store.Journal()
		s.Moods = c.store.Moods()
		s.Err = err
	})
	return removed, err
}

func (c *Controller) CancelDelete() {
	c.update(func(s *State) { s.Pending = nil })
}

// Close stops outstanding notice timers and drops all listeners.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.notices {
		if cancel := c.notices[i].cancel; cancel != nil {
			cancel()
		}
		c.notices[i] = noticeSlot{gen: c.notices[i].gen + 1}
	}
	c.listeners = make(map[int]func(State))
}

// showNoticeLocked replaces the notice of kind k and schedules its clear,
// cancelling the clear of the notice it replaces.
func (c *Controller) showNoticeLocked(s *State, k noticeKind, msg string) {
	slot := &c.notices[k]
	if slot.cancel != nil {
		slot.cancel()
	}
	slot.gen++
	gen := slot.gen
	setNotice(s, k, msg)
	slot.cancel = c.sched.AfterFunc(NoticeLifetime, func() { c.clearNotice(k, gen) })
}

func (c *Controller) clearNotice(k noticeKind, gen uint64) {
	c.mu.Lock()
	stale := c.notices[k].gen != gen
	if !stale {
		c.notices[k].cancel = nil
	}
	c.mu.Unlock()
	if stale {
		return
	}
	c.update(func(s *State) {
		if c.notices[k].gen == gen {
			setNotice(s, k, "")
		}
	})
}

func setNotice(s *State, k noticeKind, msg string) {
	switch k {
	case noticeJournal:
		s.JournalNotice = msg
	case noticeMood:
		s.MoodNotice = msg
	}
}
