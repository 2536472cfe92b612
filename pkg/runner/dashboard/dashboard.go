// Package dashboard prints the mood and journal summary.
package dashboard

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/printers"
)

type Dashboard struct {
	Now    func() time.Time
	ShowID bool
	JSON   bool
	Out    io.Writer

	Store *journal.Store
}

func (n *Dashboard) Do(_ context.Context) error {
	if n.Store == nil {
		return errors.New("can not summarize, no store")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	s := journal.Summarize(n.Store.Journal(), n.Store.Moods(), now())
	if n.JSON {
		return printers.JSON(n.Out, s)
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}
	pp.Summary(s)
	return nil
}
