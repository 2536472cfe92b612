package entry

import (
	"fmt"
	"strings"
)

// Mood is one of the fixed moods a MoodEntry can record.
type Mood string

const (
	Happy   Mood = "happy"
	Excited Mood = "excited"
	Relaxed Mood = "relaxed"
	Neutral Mood = "neutral"
	Sad     Mood = "sad"
	Anxious Mood = "anxious"
	Angry   Mood = "angry"
)

// MoodAll is the filter value that matches every mood.
const MoodAll = "all"

var moods = []Mood{Happy, Excited, Relaxed, Neutral, Sad, Anxious, Angry}

var emojis = map[Mood]string{
	Happy:   "😊",
	Excited: "🤩",
	Relaxed: "😌",
	Neutral: "😐",
	Sad:     "😢",
	Anxious: "😰",
	Angry:   "😠",
}

// Moods returns every mood in display order.
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

func (m Mood) Valid() bool {
	_, ok := emojis[m]
	return ok
}

func (m Mood) Emoji() string {
	return emojis[m]
}

func (m Mood) String() string {
	return string(m)
}

// ParseMood resolves user input to a Mood. Empty input falls back to Neutral.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Neutral, nil
	}
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("entry: unknown mood %q", s)
	}
	return m, nil
}

// ParseMoodFilter accepts a mood name or "all". Empty input means "all".
func ParseMoodFilter(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == MoodAll {
		return MoodAll, nil
	}
	if !Mood(s).Valid() {
		return "", fmt.Errorf("entry: unknown mood filter %q", s)
	}
	return s, nil
}

func moodValues() []interface{} {
	out := make([]interface{}, 0, len(moods))
	for _, m := range moods {
		out = append(out, m)
	}
	return out
}
