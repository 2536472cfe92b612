package journal

import (
	"strings"

	"tableflip.dev/mellow/pkg/entry"
)

// SearchJournal returns the entries whose content contains term, ignoring
// case, and whose date starts with date. Empty term or date match everything.
// Order is preserved.
func SearchJournal(entries []entry.JournalEntry, term, date string) []entry.JournalEntry {
	needle := strings.ToLower(term)
	out := make([]entry.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if !strings.Contains(strings.ToLower(e.Content), needle) {
			continue
		}
		if !matchesDate(e.Date, date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SearchMoods returns the entries recorded with mood, or every mood when mood
// is "all" or empty, whose date starts with date.
func SearchMoods(entries []entry.MoodEntry, mood, date string) []entry.MoodEntry {
	out := make([]entry.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if mood != "" && mood != entry.MoodAll && string(e.Mood) != mood {
			continue
		}
		if !matchesDate(e.Date, date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesDate compares against the stored ISO string, so "2024-01" selects a
// month and "2024-01-01" a day, both in UTC.
func matchesDate(ts entry.Timestamp, filter string) bool {
	return filter == "" || strings.HasPrefix(ts.ISO(), filter)
}
