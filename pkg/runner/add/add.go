// Package add records new journal and mood entries from the command line.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/printers"
)

// Journal writes one journal entry.
type Journal struct {
	Content string
	JSON    bool
	ShowID  bool
	Out     io.Writer

	Store *journal.Store
}

func (n *Journal) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no store")
	}
	e, err := n.Store.AddJournal(ctx, n.Content)
	if e.ID == 0 {
		return err
	}
	// The entry stays in memory even when the write failed; show it, then
	// report the failure.
	if n.JSON {
		if jerr := printers.JSON(n.Out, e); jerr != nil {
			return jerr
		}
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Title("Journal")
	pp.Journal(e)
	return err
}

// Mood records one mood entry.
type Mood struct {
	Mood   entry.Mood
	Note   string
	JSON   bool
	ShowID bool
	Out    io.Writer

	Store *journal.Store
}

func (n *Mood) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no store")
	}
	e, err := n.Store.AddMood(ctx, n.Mood, n.Note)
	if e.ID == 0 {
		return err
	}
	if n.JSON {
		if jerr := printers.JSON(n.Out, e); jerr != nil {
			return jerr
		}
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Title("Mood")
	pp.Moods(e)
	return err
}
