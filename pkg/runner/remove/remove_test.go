package remove

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/store"
)

func setup(t *testing.T) (*journal.Store, *store.Memory, entry.MoodEntry) {
	t.Helper()
	kv := store.NewMemory()
	s, err := journal.Load(context.Background(), kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	e, err := s.AddMood(context.Background(), entry.Anxious, "deadline")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return s, kv, e
}

func TestDeclinedConfirmationKeepsEntry(t *testing.T) {
	s, kv, e := setup(t)
	var asked string
	n := Remove{
		Collection: journal.CollectionMood,
		ID:         e.ID,
		Confirm: func(label string) (bool, error) {
			asked = label
			return false, nil
		},
		Store: s,
		Out:   &bytes.Buffer{},
	}
	if err := n.Do(context.Background()); !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if asked != Prompt {
		t.Fatalf("unexpected prompt %q", asked)
	}
	if len(s.Moods()) != 1 || kv.Writes() != 1 {
		t.Fatalf("declined delete changed data")
	}
}

func TestConfirmedDelete(t *testing.T) {
	s, kv, e := setup(t)
	var out bytes.Buffer
	n := Remove{
		Collection: journal.CollectionMood,
		ID:         e.ID,
		Confirm:    func(string) (bool, error) { return true, nil },
		Store:      s,
		Out:        &out,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if len(s.Moods()) != 0 || kv.Writes() != 2 {
		t.Fatalf("entry not deleted")
	}
	if out.Len() == 0 {
		t.Fatalf("expected a confirmation line")
	}
}

func TestUnknownIDNeverPrompts(t *testing.T) {
	s, kv, e := setup(t)
	n := Remove{
		Collection: journal.CollectionJournal,
		ID:         e.ID,
		Confirm: func(string) (bool, error) {
			t.Fatalf("should not prompt for a missing entry")
			return false, nil
		},
		Store: s,
	}
	if err := n.Do(context.Background()); !errors.Is(err, journal.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if kv.Writes() != 1 {
		t.Fatalf("unexpected write")
	}
}
