package journal

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"tableflip.dev/mellow/pkg/entry"
)

func journalAt(id int64, date string, content string) entry.JournalEntry {
	t, err := entry.ParseTime(date)
	if err != nil {
		panic(err)
	}
	return entry.JournalEntry{ID: id, Date: entry.NewTimestamp(t), Content: content}
}

func moodAt(id int64, date string, m entry.Mood) entry.MoodEntry {
	t, err := entry.ParseTime(date)
	if err != nil {
		panic(err)
	}
	return entry.MoodEntry{ID: id, Date: entry.NewTimestamp(t), Mood: m}
}

func ids[T any](list []T, idOf func(T) int64) []int64 {
	out := make([]int64, 0, len(list))
	for _, e := range list {
		out = append(out, idOf(e))
	}
	return out
}

func journalIDs(list []entry.JournalEntry) []int64 {
	return ids(list, func(e entry.JournalEntry) int64 { return e.ID })
}

func moodIDs(list []entry.MoodEntry) []int64 {
	return ids(list, func(e entry.MoodEntry) int64 { return e.ID })
}

func TestSearchJournal(t *testing.T) {
	entries := []entry.JournalEntry{
		journalAt(3, "2024-01-02T10:00:00.000Z", "Walked in the park"),
		journalAt(2, "2024-01-01T12:00:00.000Z", "goodbye"),
		journalAt(1, "2024-01-01T08:00:00.000Z", "Hello world"),
	}

	tests := []struct {
		name string
		term string
		date string
		want []int64
	}{
		{name: "empty matches all", want: []int64{3, 2, 1}},
		{name: "case insensitive", term: "hello", want: []int64{1}},
		{name: "upper term", term: "HELLO", want: []int64{1}},
		{name: "substring", term: "oo", want: []int64{2}},
		{name: "date only", date: "2024-01-01", want: []int64{2, 1}},
		{name: "month prefix", date: "2024-01", want: []int64{3, 2, 1}},
		{name: "term and date", term: "park", date: "2024-01-01", want: []int64{}},
		{name: "no match", term: "zebra", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := journalIDs(SearchJournal(entries, tt.term, tt.date))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchJournalExample(t *testing.T) {
	entries := []entry.JournalEntry{
		{ID: 1, Content: "Hello world"},
		{ID: 2, Content: "goodbye"},
	}
	got := SearchJournal(entries, "Hello", "")
	if len(got) != 1 || got[0].Content != "Hello world" {
		t.Fatalf("expected only the first entry, got %+v", got)
	}
}

func TestSearchMoods(t *testing.T) {
	entries := []entry.MoodEntry{
		moodAt(4, "2024-01-02T09:00:00.000Z", entry.Happy),
		moodAt(3, "2024-01-01T20:00:00.000Z", entry.Sad),
		moodAt(2, "2024-01-01T12:00:00.000Z", entry.Happy),
		moodAt(1, "2023-12-31T23:00:00.000Z", entry.Happy),
	}

	tests := []struct {
		name string
		mood string
		date string
		want []int64
	}{
		{name: "all", mood: entry.MoodAll, want: []int64{4, 3, 2, 1}},
		{name: "empty filter is all", want: []int64{4, 3, 2, 1}},
		{name: "happy", mood: "happy", want: []int64{4, 2, 1}},
		{name: "happy on day", mood: "happy", date: "2024-01-01", want: []int64{2}},
		{name: "all on day", mood: entry.MoodAll, date: "2024-01-01", want: []int64{3, 2}},
		{name: "no entries for mood", mood: "angry", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moodIDs(SearchMoods(entries, tt.mood, tt.date))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	moods := make([]entry.MoodEntry, 0, 8)
	for i := 0; i < 8; i++ {
		day := now.Add(-time.Duration(i) * 36 * time.Hour)
		m := entry.Happy
		if i%2 == 1 {
			m = entry.Anxious
		}
		moods = append(moods, entry.MoodEntry{ID: int64(100 - i), Date: entry.NewTimestamp(day), Mood: m})
	}
	long := strings.Repeat("a", 160)
	journal := []entry.JournalEntry{
		{ID: 2, Date: entry.NewTimestamp(now), Content: long},
		{ID: 1, Date: entry.NewTimestamp(now.Add(-time.Hour)), Content: "older"},
	}

	s := Summarize(journal, moods, now)
	if len(s.RecentMoods) != 5 || s.RecentMoods[0].ID != 100 {
		t.Fatalf("expected five most recent moods, got %v", moodIDs(s.RecentMoods))
	}
	if s.LatestJournal == nil || s.LatestJournal.ID != 2 {
		t.Fatalf("expected latest journal entry 2, got %+v", s.LatestJournal)
	}
	if s.Preview != strings.Repeat("a", 150)+"..." {
		t.Fatalf("unexpected preview %q", s.Preview)
	}
	if len(s.MoodCounts) != 7 {
		t.Fatalf("expected all seven moods counted, got %d", len(s.MoodCounts))
	}
	counts := map[entry.Mood]int{}
	for _, c := range s.MoodCounts {
		counts[c.Mood] = c.Count
	}
	if counts[entry.Happy] != 4 || counts[entry.Anxious] != 4 || counts[entry.Angry] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}
	// 36h steps: offsets 0..144h fall inside seven days, 180h does not.
	if len(s.WeekMoods) != 5 {
		t.Fatalf("expected 5 moods in the last week, got %d", len(s.WeekMoods))
	}
	if s.JournalTotal != 2 || s.MoodTotal != 8 {
		t.Fatalf("unexpected totals %d/%d", s.JournalTotal, s.MoodTotal)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, time.Now())
	if s.LatestJournal != nil || len(s.RecentMoods) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	for _, c := range s.MoodCounts {
		if c.Count != 0 {
			t.Fatalf("expected zero counts, got %+v", c)
		}
	}
}

func TestPreviewKeepsShortContent(t *testing.T) {
	short := strings.Repeat("é", 150)
	if Preview(short) != short {
		t.Fatalf("150 characters should not be truncated")
	}
}
