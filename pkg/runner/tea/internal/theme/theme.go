package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/mellow/pkg/entry"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Tabs   TabTheme
	Panel  PanelTheme
	Modal  ModalTheme
	Notice lipgloss.Style
	Error  lipgloss.Style
	Muted  lipgloss.Style
	Moods  map[entry.Mood]MoodStyle
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help               lipgloss.Style
	Status             lipgloss.Style
	CommandName        lipgloss.Style
	CommandDescription lipgloss.Style
}

// TabTheme styles the view selector.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Date  lipgloss.Style
	Focus lipgloss.Style
}

// ModalTheme styles the delete confirmation.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// MoodStyle colors one mood: Label for its name, Bar for count bars and
// Selected for the highlighted choice in the tracker.
type MoodStyle struct {
	Base     color.Color
	Label    lipgloss.Style
	Bar      lipgloss.Style
	Selected lipgloss.Style
}

var (
	background = colorful.Color{R: 0.1, G: 0.08, B: 0.14}
	moodHex    = map[entry.Mood]string{
		entry.Happy:   "#f9c74f",
		entry.Excited: "#f8961e",
		entry.Neutral: "#a0a0b8",
		entry.Relaxed: "#90be6d",
		entry.Sad:     "#577590",
		entry.Anxious: "#9d4edd",
		entry.Angry:   "#f94144",
	}
)

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	commandName := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	moods := make(map[entry.Mood]MoodStyle, len(moodHex))
	for m, hex := range moodHex {
		moods[m] = moodStyle(hex)
	}

	return Theme{
		Footer: FooterTheme{
			Help:               lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:             lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			CommandName:        commandName,
			CommandDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Tabs: TabTheme{
			Active:   lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true).Padding(0, 1),
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("97")).Padding(0, 1),
			Title: lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true),
			Body:  lipgloss.NewStyle(),
			Date:  lipgloss.NewStyle().Foreground(lipgloss.Color("140")),
			Focus: lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("204")).Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Moods:  moods,
	}
}

// Mood returns the style for m, falling back to neutral.
func (t Theme) Mood(m entry.Mood) MoodStyle {
	if s, ok := t.Moods[m]; ok {
		return s
	}
	return t.Moods[entry.Neutral]
}

func moodStyle(hex string) MoodStyle {
	base, err := colorful.Hex(hex)
	if err != nil {
		base = colorful.Color{R: 0.6, G: 0.6, B: 0.7}
	}
	// Bars sit on the dark background, so they are a softer blend of the base.
	bar := base.BlendLab(background, 0.35).Clamped()
	return MoodStyle{
		Base:     base,
		Label:    lipgloss.NewStyle().Foreground(base),
		Bar:      lipgloss.NewStyle().Foreground(bar),
		Selected: lipgloss.NewStyle().Foreground(background).Background(base).Bold(true).Padding(0, 1),
	}
}
