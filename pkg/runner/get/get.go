// Package get lists and searches entries.
package get

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/printers"
	"tableflip.dev/mellow/pkg/timeutil"
)

type Get struct {
	Collection journal.Collection
	// Term filters journal content. Ignored for moods.
	Term string
	// Mood filters mood entries; empty or "all" keeps every mood.
	Mood string
	// Date is a UTC date prefix such as 2024-01-31 or 2024-01.
	Date string
	// Since keeps only entries written within this window before Now.
	Since time.Duration
	Now   func() time.Time

	ShowID bool
	JSON   bool
	Out    io.Writer

	Store *journal.Store
}

func (n *Get) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not get, no store")
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}

	switch n.Collection {
	case journal.CollectionJournal:
		all := journal.SearchJournal(n.Store.Journal(), n.Term, n.Date)
		all = within(all, n.cutoff(), func(e entry.JournalEntry) time.Time { return e.Date.Time })
		if n.JSON {
			return printers.JSON(n.Out, nonNil(all))
		}
		pp.TitleWithCount(n.title("Journal"), len(all))
		pp.Journal(all...)
	case journal.CollectionMood:
		filter, err := entry.ParseMoodFilter(n.Mood)
		if err != nil {
			return err
		}
		all := journal.SearchMoods(n.Store.Moods(), filter, n.Date)
		all = within(all, n.cutoff(), func(e entry.MoodEntry) time.Time { return e.Date.Time })
		if n.JSON {
			return printers.JSON(n.Out, nonNil(all))
		}
		pp.TitleWithCount(n.title("Moods"), len(all))
		pp.Moods(all...)
	default:
		return journal.ErrUnknownCollection
	}
	return nil
}

func (n *Get) title(base string) string {
	switch {
	case n.Date != "":
		return base + " on " + n.Date
	case n.Since > 0:
		return base + " in the last " + timeutil.Label(n.Since)
	}
	return base
}

func (n *Get) cutoff() time.Time {
	if n.Since <= 0 {
		return time.Time{}
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return now().Add(-n.Since)
}

// within keeps entries dated at or after cutoff. A zero cutoff keeps all.
func within[T any](list []T, cutoff time.Time, dateOf func(T) time.Time) []T {
	if cutoff.IsZero() {
		return list
	}
	out := make([]T, 0, len(list))
	for _, e := range list {
		if !dateOf(e).Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// nonNil keeps an empty result encoding as [] rather than null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
