package bottombar

import (
	"fmt"
	"strings"

	"tableflip.dev/mellow/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeCommand
	ModeConfirm
	ModeHelp
)

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	helpLine        string
	statusLine      string
	commandInput    string
	commandView     string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	maxSuggestions  int
	styles          theme.FooterTheme
}

// New returns a footer model using the footer styles of th.
func New(th theme.Theme) Model {
	return Model{
		mode:           ModeNormal,
		maxSuggestions: 8,
		styles:         th.Footer,
	}
}

func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeCommand {
		m.filteredOptions = nil
		m.commandInput = ""
		m.commandView = ""
	}
}

func (m Model) Mode() Mode { return m.mode }

// SetHelp sets the contextual key help.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateCommandInput refreshes the command palette filter and rendered line.
func (m *Model) UpdateCommandInput(value string, view string) {
	m.commandInput = value
	m.commandView = ":" + view
	m.filterSuggestions(value)
}

// Suggestions are the commands matching the typed prefix.
func (m Model) Suggestions() []CommandOption {
	return append([]CommandOption(nil), m.filteredOptions...)
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	if m.mode != ModeCommand {
		return 1
	}
	lines := len(m.filteredOptions)
	if lines > m.maxSuggestions {
		lines = m.maxSuggestions
	}
	return lines + 1
}

// View renders the footer.
func (m Model) View() string {
	if m.mode == ModeCommand {
		return m.renderCommandMode()
	}
	return m.renderStatusLine()
}

func (m Model) renderStatusLine() string {
	var segments []string
	if m.helpLine != "" {
		segments = append(segments, m.styles.Help.Render(m.helpLine))
	}
	if m.statusLine != "" {
		segments = append(segments, m.styles.Status.Render(m.statusLine))
	}
	if len(segments) == 0 {
		return " "
	}
	return strings.Join(segments, " │ ")
}

func (m Model) renderCommandMode() string {
	limit := len(m.filteredOptions)
	if limit > m.maxSuggestions {
		limit = m.maxSuggestions
	}
	lines := make([]string, 0, limit+1)
	for _, opt := range m.filteredOptions[:limit] {
		name := m.styles.CommandName.Render(":" + opt.Name)
		if opt.Description == "" {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", name, m.styles.CommandDescription.Render(opt.Description)))
	}
	commandLine := m.commandView
	if commandLine == "" {
		commandLine = ":"
	}
	return strings.Join(append(lines, commandLine), "\n")
}

func (m *Model) filterSuggestions(prefix string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	m.filteredOptions = m.filteredOptions[:0]
	for _, opt := range m.commandOptions {
		if strings.HasPrefix(strings.ToLower(opt.Name), prefix) {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
}
