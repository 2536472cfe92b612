package app

import (
	"fmt"
	"strings"

	"tableflip.dev/mellow/pkg/journal"
)

// View is one screen of the interactive application.
type View string

const (
	ViewDashboard     View = "dashboard"
	ViewMood          View = "mood"
	ViewJournal       View = "journal"
	ViewNewJournal    View = "new-journal"
	ViewSearchJournal View = "search-journal"
	ViewMoodLog       View = "mood-log"
	ViewSearchMoods   View = "search-moods"
)

// Tabs lists the views reachable from the tab bar, in display order. The
// composer is opened from the journal list and is not a tab.
func Tabs() []View {
	return []View{ViewDashboard, ViewMood, ViewJournal, ViewSearchJournal, ViewMoodLog, ViewSearchMoods}
}

func Views() []View {
	return append(Tabs(), ViewNewJournal)
}

// Title is the heading shown for the view.
func (v View) Title() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewMood:
		return "Mood Tracker"
	case ViewJournal:
		return "Journal"
	case ViewNewJournal:
		return "New Journal Entry"
	case ViewSearchJournal:
		return "Search Journal"
	case ViewMoodLog:
		return "Mood Log"
	case ViewSearchMoods:
		return "Search Moods"
	}
	return string(v)
}

// CanDelete reports whether entries of collection c may be deleted from v.
func (v View) CanDelete(c journal.Collection) bool {
	switch c {
	case journal.CollectionJournal:
		return v == ViewJournal || v == ViewSearchJournal
	case journal.CollectionMood:
		return v == ViewSearchMoods
	}
	return false
}

func (v View) Valid() bool {
	for _, known := range Views() {
		if v == known {
			return true
		}
	}
	return false
}

func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("app: unknown view %q", s)
	}
	return v, nil
}
