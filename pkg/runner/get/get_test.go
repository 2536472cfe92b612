package get

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/store"
)

func init() {
	color.NoColor = true
}

func seeded(t *testing.T) *journal.Store {
	t.Helper()
	current := time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now := current
		current = current.Add(2 * time.Hour)
		return now
	}
	s, err := journal.Load(context.Background(), store.NewMemory(), journal.WithClock(clock))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	for _, c := range []string{"January wrap-up", "February plans"} {
		if _, err := s.AddJournal(ctx, c); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	for _, m := range []entry.Mood{entry.Happy, entry.Sad} {
		if _, err := s.AddMood(ctx, m, ""); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	return s
}

func TestGetJournalByDate(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	n := Get{Collection: journal.CollectionJournal, Date: "2024-02", Store: s, Out: &out}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "February plans") || strings.Contains(got, "January wrap-up") {
		t.Fatalf("unexpected output %q", got)
	}
	if !strings.Contains(got, "Journal on 2024-02 - 1 entry") {
		t.Fatalf("missing title: %q", got)
	}
}

func TestGetJournalByTerm(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	n := Get{Collection: journal.CollectionJournal, Term: "WRAP", Store: s, Out: &out}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if !strings.Contains(out.String(), "January wrap-up") || strings.Contains(out.String(), "February") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestGetMoodsJSONEmpty(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	n := Get{Collection: journal.CollectionMood, Mood: "angry", JSON: true, Store: s, Out: &out}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestGetMoodsRejectsUnknownFilter(t *testing.T) {
	s := seeded(t)
	n := Get{Collection: journal.CollectionMood, Mood: "bored", Store: s, Out: &bytes.Buffer{}}
	if err := n.Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
}

func TestGetSince(t *testing.T) {
	s := seeded(t)
	var out bytes.Buffer
	n := Get{
		Collection: journal.CollectionMood,
		Since:      3 * time.Hour,
		Now:        func() time.Time { return time.Date(2024, time.February, 1, 7, 30, 0, 0, time.UTC) },
		Store:      s,
		Out:        &out,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Moods in the last 3h - 1 entry") || !strings.Contains(got, "sad") {
		t.Fatalf("unexpected output %q", got)
	}
}
