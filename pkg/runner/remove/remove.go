// Package remove deletes entries after confirmation.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/printers"
)

// Prompt is the question asked before anything is removed.
const Prompt = "Are you sure you want to delete this entry"

// ErrCanceled is returned when the confirmation was declined.
var ErrCanceled = errors.New("delete canceled")

type Remove struct {
	Collection journal.Collection
	ID         int64
	// Confirm is asked before deleting. Nil means confirmed.
	Confirm func(label string) (bool, error)
	JSON    bool
	Out     io.Writer

	Store *journal.Store
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not delete, no store")
	}
	if !n.exists() {
		return fmt.Errorf("%w: %s %d", journal.ErrNotFound, n.Collection, n.ID)
	}
	if n.Confirm != nil {
		ok, err := n.Confirm(Prompt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrCanceled
		}
	}
	removed, err := n.Store.Delete(ctx, n.Collection, n.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s %d", journal.ErrNotFound, n.Collection, n.ID)
	}
	if n.JSON {
		return printers.JSON(n.Out, map[string]any{"collection": n.Collection, "id": n.ID, "deleted": true})
	}
	_, err = fmt.Fprintf(out(n.Out), "Deleted %s entry %d.\n", n.Collection, n.ID)
	return err
}

func (n *Remove) exists() bool {
	switch n.Collection {
	case journal.CollectionJournal:
		for _, e := range n.Store.Journal() {
			if e.ID == n.ID {
				return true
			}
		}
	case journal.CollectionMood:
		for _, e := range n.Store.Moods() {
			if e.ID == n.ID {
				return true
			}
		}
	}
	return false
}

func out(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
