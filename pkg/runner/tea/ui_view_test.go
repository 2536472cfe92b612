package teaui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/mellow/pkg/app"
)

func TestViewDashboardEmpty(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := stripANSI(m.View())
	for _, want := range []string{"1 Dashboard", "6 Search Moods", "No mood entries yet.", "No journal entries yet.", "Mood Summary"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in dashboard; view=%q", want, view)
		}
	}
}

func TestViewDashboardSummary(t *testing.T) {
	m, _, _ := newTestModel(t)
	long := strings.Repeat("word ", 40)
	m = press(t, m, "n")
	m = typeText(t, m, long)
	m = press(t, m, "enter", "2", "enter", "1")

	view := stripANSI(m.View())
	if !strings.Contains(view, "...") {
		t.Fatalf("expected truncated preview; view=%q", view)
	}
	if !strings.Contains(view, "Neutral") {
		t.Fatalf("expected recent neutral mood; view=%q", view)
	}
	if strings.Count(view, "word") >= 40 {
		t.Fatalf("preview should not contain the whole entry")
	}
}

func TestViewMoodTrackerListsEveryMood(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "2")
	view := stripANSI(m.View())
	for _, want := range []string{"How are you feeling?", "Happy", "Excited", "Relaxed", "Neutral", "Sad", "Anxious", "Angry", "Note:"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in mood tracker; view=%q", want, view)
		}
	}
}

func TestViewNoticeOnlyInOwningView(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "2", "enter")
	if !strings.Contains(stripANSI(m.View()), app.MoodSubmitted) {
		t.Fatalf("expected mood notice in tracker")
	}
	m = press(t, m, "3")
	if strings.Contains(stripANSI(m.View()), app.MoodSubmitted) {
		t.Fatalf("mood notice leaked into the journal view")
	}
}

func TestViewHelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "?")
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, "Moving around") {
		t.Fatalf("expected help content; view=%q", view)
	}
	m = press(t, m, "?")
	if m.mode != modeNormal {
		t.Fatalf("? should close help")
	}
}

func TestViewCommandModeShowsSuggestions(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, ":")
	m = typeText(t, m, "mo")
	view := stripANSI(m.View())
	if !strings.Contains(view, ":mood") || !strings.Contains(view, ":moods") {
		t.Fatalf("expected matching commands; view=%q", view)
	}
	if strings.Contains(view, ":journal") {
		t.Fatalf("non-matching command listed; view=%q", view)
	}
	lines := strings.Split(view, "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); !strings.HasPrefix(last, ":") {
		t.Fatalf("expected prompt on final line, got %q", last)
	}
}

func TestViewResizesHelp(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "?")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = assertModel(t, next)
	if m.termWidth != 60 || m.termHeight != 30 {
		t.Fatalf("window size not applied")
	}
	if !strings.Contains(stripANSI(m.View()), "Journal") {
		t.Fatalf("help should still render after resize")
	}
}
