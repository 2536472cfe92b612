package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/store"
)

// manualScheduler fires tasks only when the test advances its clock.
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	at        time.Duration
	f         func()
	cancelled bool
	fired     bool
}

func (m *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTask{at: m.now + d, f: f}
	m.tasks = append(m.tasks, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t.fired || t.cancelled {
			return false
		}
		t.cancelled = true
		return true
	}
}

func (m *manualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.fired && !t.cancelled && t.at <= m.now {
			t.fired = true
			due = append(due, t)
		}
	}
	m.mu.Unlock()
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func (m *manualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

func newController(t *testing.T) (*Controller, *manualScheduler, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	s, err := journal.Load(context.Background(), kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sched := &manualScheduler{}
	c, err := New(s, WithScheduler(sched))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(c.Close)
	return c, sched, kv
}

func mustNavigate(t *testing.T, c *Controller, v View) {
	t.Helper()
	if err := c.Navigate(v); err != nil {
		t.Fatalf("navigate %s: %v", v, err)
	}
}

func TestInitialState(t *testing.T) {
	c, _, _ := newController(t)
	s := c.State()
	if s.View != ViewDashboard || s.MoodSelection != entry.Neutral || s.MoodFilter != entry.MoodAll {
		t.Fatalf("unexpected initial state %+v", s)
	}
	if s.MoodResults() != nil {
		t.Fatalf("mood search should start unsearched")
	}
}

func TestSubmitJournalFromComposer(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()

	mustNavigate(t, c, ViewJournal)
	c.SetJournalDraft("left over")
	mustNavigate(t, c, ViewNewJournal)
	if c.State().JournalDraft != "" {
		t.Fatalf("opening the composer should clear the draft")
	}

	c.SetJournalDraft("Hello world")
	ok, err := c.SubmitJournal(ctx)
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	s := c.State()
	if s.View != ViewJournal {
		t.Fatalf("expected to return to the journal list, got %s", s.View)
	}
	if s.JournalDraft != "" {
		t.Fatalf("draft not cleared")
	}
	if len(s.Journal) != 1 || s.Journal[0].Content != "Hello world" {
		t.Fatalf("unexpected journal %+v", s.Journal)
	}
	if s.VisibleNotice() != JournalSubmitted {
		t.Fatalf("expected journal notice, got %q", s.VisibleNotice())
	}
}

func TestSubmitBlankJournalIsNoop(t *testing.T) {
	c, sched, kv := newController(t)
	mustNavigate(t, c, ViewNewJournal)
	c.SetJournalDraft("   ")
	ok, err := c.SubmitJournal(context.Background())
	if ok || err != nil {
		t.Fatalf("blank submit: ok=%v err=%v", ok, err)
	}
	s := c.State()
	if s.View != ViewNewJournal || s.JournalDraft != "   " || len(s.Journal) != 0 {
		t.Fatalf("blank submit changed state: %+v", s)
	}
	if kv.Writes() != 0 || sched.Pending() != 0 {
		t.Fatalf("blank submit wrote or scheduled")
	}
}

func TestSubmitMoodResetsInputs(t *testing.T) {
	c, _, _ := newController(t)
	mustNavigate(t, c, ViewMood)
	if err := c.SelectMood(entry.Happy); err != nil {
		t.Fatalf("select: %v", err)
	}
	c.SetMoodNote("sunny")
	if err := c.SubmitMood(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	s := c.State()
	if s.MoodSelection != entry.Neutral || s.MoodNote != "" {
		t.Fatalf("inputs not reset: %+v", s)
	}
	if len(s.Moods) != 1 || s.Moods[0].Mood != entry.Happy || s.Moods[0].Note != "sunny" {
		t.Fatalf("unexpected moods %+v", s.Moods)
	}
	if s.VisibleNotice() != MoodSubmitted {
		t.Fatalf("expected mood notice, got %q", s.VisibleNotice())
	}
	if err := c.SelectMood("grumpy"); err == nil {
		t.Fatalf("expected unknown mood to be rejected")
	}
}

func TestNoticesAreViewScoped(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()

	mustNavigate(t, c, ViewMood)
	_ = c.SubmitMood(ctx)
	mustNavigate(t, c, ViewNewJournal)
	c.SetJournalDraft("entry")
	_, _ = c.SubmitJournal(ctx)

	s := c.State()
	if s.VisibleNotice() != JournalSubmitted {
		t.Fatalf("journal view shows %q", s.VisibleNotice())
	}
	mustNavigate(t, c, ViewMood)
	if got := c.State().VisibleNotice(); got != MoodSubmitted {
		t.Fatalf("mood view shows %q", got)
	}
	mustNavigate(t, c, ViewDashboard)
	if got := c.State().VisibleNotice(); got != "" {
		t.Fatalf("dashboard shows %q", got)
	}
}

func TestNoticeClearsAfterLifetime(t *testing.T) {
	c, sched, _ := newController(t)
	mustNavigate(t, c, ViewMood)
	_ = c.SubmitMood(context.Background())

	sched.Advance(NoticeLifetime - time.Millisecond)
	if c.State().MoodNotice == "" {
		t.Fatalf("notice cleared early")
	}
	sched.Advance(time.Millisecond)
	if c.State().MoodNotice != "" {
		t.Fatalf("notice not cleared")
	}
}

func TestResubmitRestartsNoticeLifetime(t *testing.T) {
	c, sched, _ := newController(t)
	ctx := context.Background()
	mustNavigate(t, c, ViewMood)

	_ = c.SubmitMood(ctx)
	sched.Advance(2 * time.Second)
	_ = c.SubmitMood(ctx)
	if sched.Pending() != 1 {
		t.Fatalf("expected the first clear to be cancelled, %d pending", sched.Pending())
	}
	sched.Advance(2 * time.Second)
	if c.State().MoodNotice != MoodSubmitted {
		t.Fatalf("second notice cleared by the first timer")
	}
	sched.Advance(time.Second)
	if c.State().MoodNotice != "" {
		t.Fatalf("second notice not cleared")
	}
}

func TestNoticeKindsAreIndependent(t *testing.T) {
	c, sched, _ := newController(t)
	ctx := context.Background()

	mustNavigate(t, c, ViewMood)
	_ = c.SubmitMood(ctx)
	sched.Advance(2 * time.Second)
	mustNavigate(t, c, ViewNewJournal)
	c.SetJournalDraft("x")
	_, _ = c.SubmitJournal(ctx)

	sched.Advance(time.Second)
	s := c.State()
	if s.MoodNotice != "" || s.JournalNotice != JournalSubmitted {
		t.Fatalf("unexpected notices mood=%q journal=%q", s.MoodNotice, s.JournalNotice)
	}
}

func TestStaleClearIsIgnored(t *testing.T) {
	c, _, _ := newController(t)
	c.mu.Lock()
	c.notices[noticeMood].gen = 5
	c.state.MoodNotice = MoodSubmitted
	c.mu.Unlock()

	c.clearNotice(noticeMood, 4)
	if c.State().MoodNotice != MoodSubmitted {
		t.Fatalf("stale clear removed a newer notice")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()
	mustNavigate(t, c, ViewNewJournal)
	c.SetJournalDraft("keep")
	_, _ = c.SubmitJournal(ctx)
	mustNavigate(t, c, ViewNewJournal)
	c.SetJournalDraft("drop")
	_, _ = c.SubmitJournal(ctx)

	target := c.State().Journal[0]
	if err := c.RequestDelete(journal.CollectionJournal, target.ID); err != nil {
		t.Fatalf("request: %v", err)
	}
	if p := c.State().Pending; p == nil || p.ID != target.ID || p.Collection != journal.CollectionJournal {
		t.Fatalf("unexpected pending %+v", p)
	}

	c.CancelDelete()
	s := c.State()
	if s.Pending != nil || len(s.Journal) != 2 {
		t.Fatalf("cancel should keep entries and clear pending")
	}

	_ = c.RequestDelete(journal.CollectionJournal, target.ID)
	removed, err := c.ConfirmDelete(ctx)
	if err != nil || !removed {
		t.Fatalf("confirm: removed=%v err=%v", removed, err)
	}
	s = c.State()
	if s.Pending != nil || len(s.Journal) != 1 || s.Journal[0].Content != "keep" {
		t.Fatalf("unexpected state after delete: %+v", s)
	}

	removed, err = c.ConfirmDelete(ctx)
	if removed || err != nil {
		t.Fatalf("confirm with nothing pending: removed=%v err=%v", removed, err)
	}
}

func TestDeleteAllowedOnlyFromListingViews(t *testing.T) {
	c, _, _ := newController(t)

	tests := []struct {
		view View
		col  journal.Collection
		ok   bool
	}{
		{ViewJournal, journal.CollectionJournal, true},
		{ViewSearchJournal, journal.CollectionJournal, true},
		{ViewSearchMoods, journal.CollectionMood, true},
		{ViewDashboard, journal.CollectionJournal, false},
		{ViewMoodLog, journal.CollectionMood, false},
		{ViewJournal, journal.CollectionMood, false},
		{ViewSearchMoods, journal.CollectionJournal, false},
	}
	for _, tt := range tests {
		mustNavigate(t, c, tt.view)
		err := c.RequestDelete(tt.col, 1)
		if tt.ok && err != nil {
			t.Fatalf("%s/%s: unexpected error %v", tt.view, tt.col, err)
		}
		if !tt.ok && !errors.Is(err, ErrDeleteNotAllowed) {
			t.Fatalf("%s/%s: expected ErrDeleteNotAllowed, got %v", tt.view, tt.col, err)
		}
		c.CancelDelete()
	}
}

func TestNavigateCancelsPendingDelete(t *testing.T) {
	c, _, _ := newController(t)
	mustNavigate(t, c, ViewJournal)
	_ = c.RequestDelete(journal.CollectionJournal, 42)
	mustNavigate(t, c, ViewSearchJournal)
	if c.State().Pending != nil {
		t.Fatalf("pending delete survived navigation")
	}
}

func TestMoodSearchIsTriggered(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()
	for _, m := range []entry.Mood{entry.Happy, entry.Sad, entry.Happy} {
		_ = c.SelectMood(m)
		_ = c.SubmitMood(ctx)
	}

	mustNavigate(t, c, ViewSearchMoods)
	if err := c.SetMoodFilter("happy", ""); err != nil {
		t.Fatalf("filter: %v", err)
	}
	if c.State().MoodResults() != nil {
		t.Fatalf("results before search")
	}
	c.SearchMoods()
	if got := len(c.State().MoodResults()); got != 2 {
		t.Fatalf("expected 2 happy moods, got %d", got)
	}

	// Editing the filter does not change results until the next search.
	_ = c.SetMoodFilter("sad", "")
	if got := len(c.State().MoodResults()); got != 2 {
		t.Fatalf("results changed without a search: %d", got)
	}
	c.SearchMoods()
	if got := len(c.State().MoodResults()); got != 1 {
		t.Fatalf("expected 1 sad mood, got %d", got)
	}

	if err := c.SetMoodFilter("grumpy", ""); err == nil {
		t.Fatalf("expected unknown filter to be rejected")
	}

	mustNavigate(t, c, ViewMoodLog)
	mustNavigate(t, c, ViewSearchMoods)
	if c.State().MoodResults() != nil {
		t.Fatalf("leaving the search should reset it")
	}
}

func TestJournalSearchIsLive(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()
	for _, text := range []string{"Hello world", "goodbye"} {
		mustNavigate(t, c, ViewNewJournal)
		c.SetJournalDraft(text)
		_, _ = c.SubmitJournal(ctx)
	}
	mustNavigate(t, c, ViewSearchJournal)
	if !c.State().JournalQueryIdle() {
		t.Fatalf("expected idle search")
	}
	c.SetJournalQuery("hello", "")
	got := c.State().JournalResults()
	if len(got) != 1 || got[0].Content != "Hello world" {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestSubscribe(t *testing.T) {
	c, _, _ := newController(t)
	var seen []View
	unsubscribe := c.Subscribe(func(s State) { seen = append(seen, s.View) })

	mustNavigate(t, c, ViewJournal)
	mustNavigate(t, c, ViewMood)
	unsubscribe()
	mustNavigate(t, c, ViewDashboard)

	if len(seen) != 2 || seen[0] != ViewJournal || seen[1] != ViewMood {
		t.Fatalf("unexpected notifications %v", seen)
	}
}

func TestNavigateRejectsUnknownView(t *testing.T) {
	c, _, _ := newController(t)
	if err := c.Navigate(View("settings")); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := ParseView("Search-Moods"); err != nil {
		t.Fatalf("parse: %v", err)
	}
}
