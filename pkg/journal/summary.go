package journal

import (
	"time"

	"tableflip.dev/mellow/pkg/entry"
)

const (
	recentMoodLimit = 5
	previewLength   = 150
	recentWindow    = 7 * 24 * time.Hour
)

// MoodCount is how many entries recorded a mood.
type MoodCount struct {
	Mood  entry.Mood `json:"mood"`
	Count int        `json:"count"`
}

// Summary is the dashboard view of both collections.
type Summary struct {
	RecentMoods   []entry.MoodEntry   `json:"recentMoods"`
	LatestJournal *entry.JournalEntry `json:"latestJournal,omitempty"`
	Preview       string              `json:"preview,omitempty"`
	MoodCounts    []MoodCount         `json:"moodCounts"`
	WeekMoods     []entry.MoodEntry   `json:"weekMoods"`
	JournalTotal  int                 `json:"journalTotal"`
	MoodTotal     int                 `json:"moodTotal"`
}

// Summarize builds the dashboard from collections kept newest first.
func Summarize(journal []entry.JournalEntry, moods []entry.MoodEntry, now time.Time) Summary {
	s := Summary{
		MoodCounts:   CountMoods(moods),
		WeekMoods:    RecentMoods(moods, now),
		JournalTotal: len(journal),
		MoodTotal:    len(moods),
	}
	n := len(moods)
	if n > recentMoodLimit {
		n = recentMoodLimit
	}
	s.RecentMoods = append([]entry.MoodEntry{}, moods[:n]...)
	if len(journal) > 0 {
		latest := journal[0]
		s.LatestJournal = &latest
		s.Preview = Preview(latest.Content)
	}
	return s
}

// CountMoods counts entries per mood. Every mood is present, in display
// order, even with a zero count.
func CountMoods(moods []entry.MoodEntry) []MoodCount {
	counts := make(map[entry.Mood]int, len(moods))
	for _, e := range moods {
		counts[e.Mood]++
	}
	all := entry.Moods()
	out := make([]MoodCount, 0, len(all))
	for _, m := range all {
		out = append(out, MoodCount{Mood: m, Count: counts[m]})
	}
	return out
}

// RecentMoods returns the entries created within the seven days before now.
func RecentMoods(moods []entry.MoodEntry, now time.Time) []entry.MoodEntry {
	since := now.Add(-recentWindow)
	out := make([]entry.MoodEntry, 0)
	for _, e := range moods {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

// Preview shortens content to 150 characters followed by "...".
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength]) + "..."
}
