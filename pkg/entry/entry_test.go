package entry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestIDSourceMonotonic(t *testing.T) {
	var ids IDSource
	now := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	first := ids.Next(now)
	second := ids.Next(now)
	third := ids.Next(now.Add(-time.Minute))
	if first != now.UnixMilli() {
		t.Fatalf("expected first id to be creation millis %d, got %d", now.UnixMilli(), first)
	}
	if second <= first || third <= second {
		t.Fatalf("expected strictly increasing ids, got %d %d %d", first, second, third)
	}
}

func TestIDSourceObserve(t *testing.T) {
	var ids IDSource
	now := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	ids.Observe(now.UnixMilli() + 500)
	if got := ids.Next(now); got != now.UnixMilli()+501 {
		t.Fatalf("expected id above observed value, got %d", got)
	}
}

func TestNewMoodDefaultsToNeutral(t *testing.T) {
	e := NewMood(1, time.Now(), "", "")
	if e.Mood != Neutral {
		t.Fatalf("expected neutral, got %q", e.Mood)
	}
}

func TestParseMood(t *testing.T) {
	tests := []struct {
		in      string
		want    Mood
		wantErr bool
	}{
		{in: "", want: Neutral},
		{in: "happy", want: Happy},
		{in: "  Anxious ", want: Anxious},
		{in: "grumpy", wantErr: true},
		{in: "all", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMood(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseMood(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMood(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMood(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMoodFilter(t *testing.T) {
	for in, want := range map[string]string{"": MoodAll, "ALL": MoodAll, "sad": "sad"} {
		got, err := ParseMoodFilter(in)
		if err != nil {
			t.Fatalf("ParseMoodFilter(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMoodFilter(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMoodFilter("meh"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}
}

func TestMoodsHaveEmoji(t *testing.T) {
	all := Moods()
	if len(all) != 7 {
		t.Fatalf("expected 7 moods, got %d", len(all))
	}
	for _, m := range all {
		if m.Emoji() == "" {
			t.Fatalf("mood %q has no emoji", m)
		}
	}
}

func TestJournalValidateRejectsBlank(t *testing.T) {
	now := time.Now()
	for _, content := range []string{"", "   ", "\n\t"} {
		err := NewJournal(1, now, content).Validate()
		if err == nil {
			t.Fatalf("expected %q to be rejected", content)
		}
		var errs validation.Errors
		if !errors.As(err, &errs) || errs["content"] == nil {
			t.Fatalf("expected content error, got %v", err)
		}
	}
	if err := NewJournal(1, now, "hello").Validate(); err != nil {
		t.Fatalf("expected valid entry, got %v", err)
	}
}

func TestMoodValidateRejectsUnknown(t *testing.T) {
	e := NewMood(1, time.Now(), Mood("grumpy"), "")
	if err := e.Validate(); err == nil {
		t.Fatalf("expected unknown mood to be rejected")
	}
	if err := NewMood(1, time.Now(), Sad, "rain").Validate(); err != nil {
		t.Fatalf("expected valid entry, got %v", err)
	}
}

func TestJournalEntryJSONShape(t *testing.T) {
	now := time.Date(2024, time.January, 1, 9, 30, 15, 123456789, time.UTC)
	e := NewJournal(1704101415123, now, "Hello world")

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":1704101415123,"date":"2024-01-01T09:30:15.123Z","content":"Hello world"}`
	if string(b) != want {
		t.Fatalf("unexpected json\n got: %s\nwant: %s", b, want)
	}

	var back JournalEntry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != e.ID || back.Content != e.Content || !back.Date.Equal(e.Date.Time) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, e)
	}
}

func TestMoodEntryJSONShape(t *testing.T) {
	now := time.Date(2024, time.March, 3, 18, 0, 0, 0, time.UTC)
	e := NewMood(42, now, Excited, "")

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":42,"date":"2024-03-03T18:00:00.000Z","mood":"excited","note":""}`
	if string(b) != want {
		t.Fatalf("unexpected json\n got: %s\nwant: %s", b, want)
	}
}

func TestTimestampAcceptsMillisecondISO(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2023-12-31T23:59:59.999Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ts.ISO() != "2023-12-31T23:59:59.999Z" {
		t.Fatalf("unexpected iso %q", ts.ISO())
	}
}
