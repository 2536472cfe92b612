package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
)

// PrettyPrint renders entries for humans.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

// idWidth fits a millisecond timestamp id plus separator.
const idWidth = len("1704101415123  ")

var spacing = strings.Repeat(" ", idWidth)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}

func (pp *PrettyPrint) id(id int64) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	s := fmt.Sprint(id)
	_, _ = y.Fprint(pp.out(), s+strings.Repeat(" ", max(idWidth-len(s), 1)))
}

// Journal prints journal entries, newest first, with wrapped content.
func (pp *PrettyPrint) Journal(entries ...entry.JournalEntry) {
	if len(entries) == 0 {
		pp.none("no journal entries")
		return
	}
	d := color.New(color.FgMagenta)
	indent := "  "
	if pp.ShowID {
		indent = spacing
	}
	for _, e := range entries {
		pp.id(e.ID)
		_, _ = d.Fprintln(pp.out(), e.Date.Display())
		wrapped := wordwrap.String(e.Content, pp.width()-len(indent))
		for _, line := range strings.Split(wrapped, "\n") {
			_, _ = fmt.Fprintln(pp.out(), indent+line)
		}
		pp.NewLine()
	}
}

// Moods prints mood entries as a table.
func (pp *PrettyPrint) Moods(entries ...entry.MoodEntry) {
	if len(entries) == 0 {
		pp.none("no mood entries")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Wrap = true
	faint := color.New(color.Faint)
	for _, e := range entries {
		row := []interface{}{e.Mood.Emoji(), moodColor(e.Mood).Sprint(e.Mood), faint.Sprint(e.Date.Display()), e.Note}
		if pp.ShowID {
			row = append([]interface{}{color.New(color.FgHiYellow, color.Faint).Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Summary prints the dashboard.
func (pp *PrettyPrint) Summary(s journal.Summary) {
	pp.Title("Recent Moods")
	pp.Moods(s.RecentMoods...)

	pp.Title("Latest Journal Entry")
	if s.LatestJournal == nil {
		pp.none("no journal entries")
	} else {
		e := *s.LatestJournal
		e.Content = s.Preview
		pp.Journal(e)
	}

	pp.Title("Mood Summary")
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mood"), bold.Sprint("Count"), "")
	for _, c := range s.MoodCounts {
		tbl.AddRow(c.Mood.Emoji()+" "+moodColor(c.Mood).Sprint(c.Mood), c.Count, moodColor(c.Mood).Sprint(strings.Repeat("▇", min(c.Count, 40))))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.TitleWithCount("Last 7 Days", len(s.WeekMoods))
	if len(s.WeekMoods) > 0 {
		emojis := make([]string, 0, len(s.WeekMoods))
		for _, e := range s.WeekMoods {
			emojis = append(emojis, e.Mood.Emoji())
		}
		_, _ = fmt.Fprintln(pp.out(), strings.Join(emojis, " "))
	}
	pp.NewLine()
}

func moodColor(m entry.Mood) *color.Color {
	switch m {
	case entry.Happy:
		return color.New(color.FgHiYellow)
	case entry.Excited:
		return color.New(color.FgYellow)
	case entry.Relaxed:
		return color.New(color.FgGreen)
	case entry.Sad:
		return color.New(color.FgBlue)
	case entry.Anxious:
		return color.New(color.FgMagenta)
	case entry.Angry:
		return color.New(color.FgRed)
	}
	return color.New(color.FgWhite)
}
