package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mellow/pkg/app"
	"tableflip.dev/mellow/pkg/entry"
	"tableflip.dev/mellow/pkg/journal"
	"tableflip.dev/mellow/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/mellow/pkg/runner/tea/internal/help"
	"tableflip.dev/mellow/pkg/runner/tea/internal/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeCommand
	modeHelp
)

// field is the state buffer the shared text input is editing.
type field int

const (
	fieldNone field = iota
	fieldDraft
	fieldNote
	fieldTerm
	fieldJournalDate
	fieldMoodDate
)

// stateMsg signals that the controller state changed outside of Update, for
// example when a notice expires.
type stateMsg struct{}

var commands = []bottombar.CommandOption{
	{Name: "dashboard", Description: "summary of moods and journal"},
	{Name: "mood", Description: "record how you feel"},
	{Name: "journal", Description: "journal entries"},
	{Name: "new", Description: "write a journal entry"},
	{Name: "search", Description: "search the journal"},
	{Name: "log", Description: "mood history"},
	{Name: "moods", Description: "search mood entries"},
	{Name: "help", Description: "key reference"},
	{Name: "quit", Description: "leave mellow"},
}

// Model contains UI state. Entry data and input buffers live in the
// controller; the model keeps only cursors and editing state.
type Model struct {
	ctrl        *app.Controller
	ctx         context.Context
	state       app.State
	changes     chan struct{}
	unsubscribe func()

	mode   mode
	field  field
	input  textinput.Model
	cursor map[app.View]int

	theme     theme.Theme
	bottom    bottombar.Model
	help      *help.Model
	helpStyle string
	status    string
	now       func() time.Time

	termWidth  int
	termHeight int
}

type Option func(*Model)

// WithHelpStyle selects the glamour style of the help overlay.
func WithHelpStyle(style string) Option {
	return func(m *Model) { m.helpStyle = style }
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a UI model driven by ctrl.
func New(ctrl *app.Controller, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 2000
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	th := theme.Default()
	m := &Model{
		ctrl:    ctrl,
		ctx:     context.Background(),
		state:   ctrl.State(),
		changes: make(chan struct{}, 1),
		input:   ti,
		cursor:  make(map[app.View]int),
		theme:   th,
		bottom:  bottombar.New(th),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.bottom.SetCommandDefinitions(commands)
	m.unsubscribe = ctrl.Subscribe(func(app.State) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	m.updateFooter()
	return m
}

// Close stops listening to the controller.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return stateMsg{}
	}
}

// Update handles messages and keybindings
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case stateMsg:
		m.sync()
		cmds = append(cmds, m.waitForChange())
	case tea.KeyPressMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case m.state.Pending != nil:
			m.handleConfirm(msg)
		case m.mode == modeHelp:
			cmds = append(cmds, m.handleHelp(msg))
		case m.mode == modeCommand:
			cmds = append(cmds, m.handleCommand(msg))
		case m.mode == modeInput:
			cmds = append(cmds, m.handleInput(msg))
		default:
			cmds = append(cmds, m.handleNormal(msg))
		}
	default:
		if m.mode == modeInput || m.mode == modeCommand {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.updateFooter()
	return m, tea.Batch(cmds...)
}

// sync copies the controller state and keeps cursors within their lists.
func (m *Model) sync() {
	m.state = m.ctrl.State()
	for v := range m.cursor {
		n := m.listLen(v)
		if m.cursor[v] >= n {
			m.cursor[v] = max(n-1, 0)
		}
	}
}

func (m *Model) handleConfirm(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "y", "enter":
		removed, err := m.ctrl.ConfirmDelete(m.ctx)
		switch {
		case err != nil:
			m.status = "ERR: " + err.Error()
		case removed:
			m.status = "Deleted"
		}
	case "n", "esc", "q":
		m.ctrl.CancelDelete()
		m.status = "Delete cancelled"
	}
	m.sync()
}

func (m *Model) handleHelp(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "q", "esc":
		m.mode = modeNormal
		return nil
	}
	if m.help != nil {
		return m.help.Update(msg)
	}
	return nil
}

func (m *Model) handleNormal(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.openHelp()
		return nil
	case ":":
		m.mode = modeCommand
		m.bottom.SetMode(bottombar.ModeCommand)
		m.input.Reset()
		m.input.Placeholder = "command"
		m.bottom.UpdateCommandInput("", m.input.View())
		return tea.Batch(m.input.Focus(), textinput.Blink)
	case "tab":
		return m.navigate(m.adjacentTab(1))
	case "shift+tab":
		return m.navigate(m.adjacentTab(-1))
	case "1", "2", "3", "4", "5", "6":
		tabs := app.Tabs()
		return m.navigate(tabs[int(key[0]-'1')])
	case "j", "down":
		m.moveCursor(1)
		return nil
	case "k", "up":
		m.moveCursor(-1)
		return nil
	case "g", "home":
		m.cursor[m.state.View] = 0
		return nil
	case "G", "end":
		m.cursor[m.state.View] = max(m.listLen(m.state.View)-1, 0)
		return nil
	}

	switch m.state.View {
	case app.ViewDashboard:
		switch key {
		case "m":
			return m.navigate(app.ViewMood)
		case "n":
			return m.navigate(app.ViewNewJournal)
		}
	case app.ViewMood:
		switch key {
		case "h", "left":
			m.cycleMood(-1)
		case "l", "right":
			m.cycleMood(1)
		case "e", "i":
			return m.edit(fieldNote)
		case "enter":
			m.submitMood()
		}
	case app.ViewJournal:
		switch key {
		case "n", "o":
			return m.navigate(app.ViewNewJournal)
		case "/":
			return tea.Batch(m.navigate(app.ViewSearchJournal), m.edit(fieldTerm))
		case "d", "x":
			m.requestDelete(journal.CollectionJournal)
		}
	case app.ViewNewJournal:
		switch key {
		case "esc":
			return m.navigate(app.ViewJournal)
		case "enter", "i":
			return m.edit(fieldDraft)
		}
	case app.ViewSearchJournal:
		switch key {
		case "/", "i":
			return m.edit(fieldTerm)
		case "t":
			return m.edit(fieldJournalDate)
		case "c":
			m.ctrl.SetJournalQuery("", "")
			m.sync()
		case "d", "x":
			m.requestDelete(journal.CollectionJournal)
		}
	case app.ViewSearchMoods:
		switch key {
		case "h", "left":
			m.cycleMoodFilter(-1)
		case "l", "right":
			m.cycleMoodFilter(1)
		case "t":
			return m.edit(fieldMoodDate)
		case "enter", "s":
			m.ctrl.SearchMoods()
			m.sync()
			m.cursor[app.ViewSearchMoods] = 0
		case "d", "x":
			m.requestDelete(journal.CollectionMood)
		}
	}
	return nil
}

func (m *Model) handleInput(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.commitInput()
	case "esc":
		f := m.field
		m.stopEditing()
		if f == fieldDraft {
			return m.navigate(app.ViewJournal)
		}
		return nil
	case "tab":
		switch m.field {
		case fieldTerm:
			return m.edit(fieldJournalDate)
		case fieldJournalDate:
			return m.edit(fieldTerm)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.storeField(m.input.Value())
	return cmd
}

func (m *Model) handleCommand(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.leaveCommand()
		m.status = "Command cancelled"
		return nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if s := m.bottom.Suggestions(); len(s) > 0 && name != "" && !isCommand(name) {
			name = s[0].Name
		}
		m.leaveCommand()
		return m.runCommand(name)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.bottom.UpdateCommandInput(m.input.Value(), m.input.View())
	return cmd
}

func isCommand(name string) bool {
	for _, c := range commands {
		if c.Name == name {
			return true
		}
	}
	return name == "q" || name == "exit"
}

func (m *Model) leaveCommand() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
	m.bottom.SetMode(bottombar.ModeNormal)
}

func (m *Model) runCommand(name string) tea.Cmd {
	switch name {
	case "":
		return nil
	case "q", "quit", "exit":
		return tea.Quit
	case "dashboard":
		return m.navigate(app.ViewDashboard)
	case "mood":
		return m.navigate(app.ViewMood)
	case "journal":
		return m.navigate(app.ViewJournal)
	case "new":
		return m.navigate(app.ViewNewJournal)
	case "search":
		return m.navigate(app.ViewSearchJournal)
	case "log":
		return m.navigate(app.ViewMoodLog)
	case "moods":
		return m.navigate(app.ViewSearchMoods)
	case "help":
		m.openHelp()
		return nil
	}
	m.status = fmt.Sprintf("Unknown command: %s", name)
	return nil
}

// navigate switches views. The composer starts editing immediately.
func (m *Model) navigate(v app.View) tea.Cmd {
	m.stopEditing()
	if err := m.ctrl.Navigate(v); err != nil {
		m.status = "ERR: " + err.Error()
		return nil
	}
	m.status = ""
	m.sync()
	if v == app.ViewNewJournal {
		return m.edit(fieldDraft)
	}
	return nil
}

func (m *Model) adjacentTab(step int) app.View {
	tabs := app.Tabs()
	current := m.state.View
	if current == app.ViewNewJournal {
		current = app.ViewJournal
	}
	idx := 0
	for i, v := range tabs {
		if v == current {
			idx = i
		}
	}
	idx = (idx + step + len(tabs)) % len(tabs)
	return tabs[idx]
}

// edit focuses the shared input on f, seeded with the buffer's value.
func (m *Model) edit(f field) tea.Cmd {
	m.mode = modeInput
	m.field = f
	m.bottom.SetMode(bottombar.ModeInput)
	m.input.Reset()
	m.input.Placeholder = placeholder(f)
	m.input.SetValue(m.fieldValue(f))
	m.input.CursorEnd()
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) stopEditing() {
	if m.mode != modeInput {
		return
	}
	m.mode = modeNormal
	m.field = fieldNone
	m.input.Blur()
	m.bottom.SetMode(bottombar.ModeNormal)
}

func placeholder(f field) string {
	switch f {
	case fieldDraft:
		return "Write your thoughts here..."
	case fieldNote:
		return "Add a note (optional)"
	case fieldTerm:
		return "Search entries..."
	case fieldJournalDate, fieldMoodDate:
		return "YYYY-MM-DD"
	}
	return ""
}

func (m *Model) fieldValue(f field) string {
	switch f {
	case fieldDraft:
		return m.state.JournalDraft
	case fieldNote:
		return m.state.MoodNote
	case fieldTerm:
		return m.state.JournalTerm
	case fieldJournalDate:
		return m.state.JournalDate
	case fieldMoodDate:
		return m.state.MoodDate
	}
	return ""
}

func (m *Model) storeField(value string) {
	switch m.field {
	case fieldDraft:
		m.ctrl.SetJournalDraft(value)
	case fieldNote:
		m.ctrl.SetMoodNote(value)
	case fieldTerm:
		m.ctrl.SetJournalQuery(value, m.state.JournalDate)
		m.cursor[app.ViewSearchJournal] = 0
	case fieldJournalDate:
		m.ctrl.SetJournalQuery(m.state.JournalTerm, value)
		m.cursor[app.ViewSearchJournal] = 0
	case fieldMoodDate:
		if err := m.ctrl.SetMoodFilter(m.state.MoodFilter, value); err != nil {
			m.status = "ERR: " + err.Error()
		}
	}
	m.sync()
}

// commitInput handles enter while editing.
func (m *Model) commitInput() tea.Cmd {
	switch m.field {
	case fieldDraft:
		ok, err := m.ctrl.SubmitJournal(m.ctx)
		if err != nil {
			m.status = "ERR: " + err.Error()
		}
		if !ok {
			if err == nil {
				m.status = "Write something first"
			}
			return nil
		}
		m.stopEditing()
		m.cursor[app.ViewJournal] = 0
	case fieldNote:
		m.stopEditing()
		m.submitMood()
	case fieldMoodDate:
		m.stopEditing()
		m.ctrl.SearchMoods()
		m.cursor[app.ViewSearchMoods] = 0
	default:
		m.stopEditing()
	}
	m.sync()
	return nil
}

func (m *Model) submitMood() {
	if err := m.ctrl.SubmitMood(m.ctx); err != nil {
		m.status = "ERR: " + err.Error()
	}
	m.cursor[app.ViewMoodLog] = 0
	m.sync()
}

func (m *Model) cycleMood(step int) {
	moods := entry.Moods()
	idx := indexOf(moods, m.state.MoodSelection)
	next := moods[(idx+step+len(moods))%len(moods)]
	if err := m.ctrl.SelectMood(next); err != nil {
		m.status = "ERR: " + err.Error()
	}
	m.sync()
}

func (m *Model) cycleMoodFilter(step int) {
	options := append([]string{entry.MoodAll}, moodNames()...)
	idx := 0
	for i, o := range options {
		if o == m.state.MoodFilter {
			idx = i
		}
	}
	next := options[(idx+step+len(options))%len(options)]
	if err := m.ctrl.SetMoodFilter(next, m.state.MoodDate); err != nil {
		m.status = "ERR: " + err.Error()
	}
	m.sync()
}

func moodNames() []string {
	moods := entry.Moods()
	out := make([]string, 0, len(moods))
	for _, mood := range moods {
		out = append(out, string(mood))
	}
	return out
}

func indexOf(moods []entry.Mood, m entry.Mood) int {
	for i, v := range moods {
		if v == m {
			return i
		}
	}
	return 0
}

func (m *Model) requestDelete(c journal.Collection) {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	if err := m.ctrl.RequestDelete(c, id); err != nil {
		m.status = "ERR: " + err.Error()
	}
	m.sync()
}

// selectedID is the id under the cursor in the active view.
func (m *Model) selectedID() (int64, bool) {
	idx := m.cursor[m.state.View]
	switch m.state.View {
	case app.ViewJournal, app.ViewSearchJournal:
		list := m.journalList(m.state.View)
		if idx < len(list) {
			return list[idx].ID, true
		}
	case app.ViewMoodLog, app.ViewSearchMoods:
		list := m.moodList(m.state.View)
		if idx < len(list) {
			return list[idx].ID, true
		}
	}
	return 0, false
}

func (m *Model) journalList(v app.View) []entry.JournalEntry {
	switch v {
	case app.ViewJournal:
		return m.state.Journal
	case app.ViewSearchJournal:
		if m.state.JournalQueryIdle() {
			return nil
		}
		return m.state.JournalResults()
	}
	return nil
}

func (m *Model) moodList(v app.View) []entry.MoodEntry {
	switch v {
	case app.ViewMoodLog:
		return m.state.Moods
	case app.ViewSearchMoods:
		return m.state.MoodResults()
	}
	return nil
}

func (m *Model) listLen(v app.View) int {
	return len(m.journalList(v)) + len(m.moodList(v))
}

func (m *Model) moveCursor(step int) {
	v := m.state.View
	n := m.listLen(v)
	if n == 0 {
		m.cursor[v] = 0
		return
	}
	idx := m.cursor[v] + step
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	m.cursor[v] = idx
}

func (m *Model) openHelp() {
	if m.help == nil {
		w, h := m.helpSize()
		m.help = help.New(w, h, m.helpStyle)
	}
	m.mode = modeHelp
}

func (m *Model) helpSize() (int, int) {
	return max(m.width()-4, 32), max(m.termHeight-6, 12)
}

func (m *Model) width() int {
	if m.termWidth <= 0 {
		return 80
	}
	return m.termWidth
}

func (m *Model) updateFooter() {
	switch {
	case m.state.Pending != nil:
		m.bottom.SetMode(bottombar.ModeConfirm)
		m.bottom.SetHelp("y delete · n cancel")
	case m.mode == modeHelp:
		m.bottom.SetMode(bottombar.ModeHelp)
		m.bottom.SetHelp("j/k scroll · ? close")
	case m.mode == modeCommand:
		return
	case m.mode == modeInput:
		m.bottom.SetMode(bottombar.ModeInput)
		m.bottom.SetHelp(inputHelp(m.field))
	default:
		m.bottom.SetMode(bottombar.ModeNormal)
		m.bottom.SetHelp(viewHelp(m.state.View))
	}
	m.bottom.SetStatus(m.status)
}

func inputHelp(f field) string {
	switch f {
	case fieldDraft:
		return "enter save · esc cancel"
	case fieldNote:
		return "enter save mood · esc done"
	case fieldTerm, fieldJournalDate:
		return "tab switch field · enter/esc done"
	case fieldMoodDate:
		return "enter search · esc done"
	}
	return "enter/esc done"
}

func viewHelp(v app.View) string {
	switch v {
	case app.ViewDashboard:
		return "tab views · m mood · n write · ? help · q quit"
	case app.ViewMood:
		return "h/l choose · e note · enter save"
	case app.ViewJournal:
		return "j/k move · n write · d delete · / search"
	case app.ViewNewJournal:
		return "i edit · esc back"
	case app.ViewSearchJournal:
		return "/ text · t date · c clear · d delete"
	case app.ViewMoodLog:
		return "j/k move"
	case app.ViewSearchMoods:
		return "h/l mood · t date · enter search · d delete"
	}
	return ""
}

// View renders the tab bar, the active view and any overlay.
func (m *Model) View() string {
	sections := []string{m.renderTabs()}

	if m.mode == modeHelp && m.help != nil {
		sections = append(sections, m.help.View())
	} else {
		title := m.theme.Panel.Title.Render(m.state.View.Title())
		sections = append(sections, title+"\n\n"+m.renderBody())
	}
	if notice := m.state.VisibleNotice(); notice != "" {
		sections = append(sections, m.theme.Notice.Render(notice))
	}
	if m.state.Err != nil {
		sections = append(sections, m.theme.Error.Render("storage error: "+m.state.Err.Error()))
	}
	if m.state.Pending != nil {
		sections = append(sections, m.renderConfirm())
	}
	sections = append(sections, m.bottom.View())
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderTabs() string {
	active := m.state.View
	if active == app.ViewNewJournal {
		active = app.ViewJournal
	}
	tabs := make([]string, 0, len(app.Tabs()))
	for i, v := range app.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == active {
			tabs = append(tabs, m.theme.Tabs.Active.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tabs.Inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderConfirm() string {
	body := app.DeletePrompt + "\n\n" + m.theme.Modal.Body.Render("[y] Delete    [n] Cancel")
	return m.theme.Modal.Frame.Render(m.theme.Modal.Title.Render(body))
}

func (m *Model) renderBody() string {
	switch m.state.View {
	case app.ViewDashboard:
		return m.renderDashboard()
	case app.ViewMood:
		return m.renderMoodTracker()
	case app.ViewJournal:
		if len(m.state.Journal) == 0 {
			return m.theme.Muted.Render("No journal entries yet. Press n to write one.")
		}
		return m.renderJournalList(m.state.Journal, m.cursor[app.ViewJournal])
	case app.ViewNewJournal:
		return m.renderField(fieldDraft, "Content")
	case app.ViewSearchJournal:
		return m.renderJournalSearch()
	case app.ViewMoodLog:
		if len(m.state.Moods) == 0 {
			return m.theme.Muted.Render("No mood entries yet.")
		}
		return m.renderMoodList(m.state.Moods, m.cursor[app.ViewMoodLog])
	case app.ViewSearchMoods:
		return m.renderMoodSearch()
	}
	return ""
}

func (m *Model) renderDashboard() string {
	s := m.state.Summary(m.now())
	var b strings.Builder
	lineWidth := uint(max(m.width()-4, 20))

	b.WriteString(m.theme.Panel.Title.Render("Recent Moods") + "\n")
	if len(s.RecentMoods) == 0 {
		b.WriteString(m.theme.Muted.Render("No mood entries yet.") + "\n")
	}
	for _, e := range s.RecentMoods {
		line := fmt.Sprintf("%s %s  %s", e.Mood.Emoji(), m.moodLabel(e.Mood), m.theme.Panel.Date.Render(e.Date.Display()))
		if e.Note != "" {
			line += "  " + e.Note
		}
		b.WriteString(truncate.StringWithTail(line, lineWidth, "…") + "\n")
	}

	b.WriteString("\n" + m.theme.Panel.Title.Render("Latest Journal Entry") + "\n")
	if s.LatestJournal == nil {
		b.WriteString(m.theme.Muted.Render("No journal entries yet.") + "\n")
	} else {
		b.WriteString(m.theme.Panel.Date.Render(s.LatestJournal.Date.Display()) + "\n")
		b.WriteString(wordwrap.String(s.Preview, int(lineWidth)) + "\n")
	}

	b.WriteString("\n" + m.theme.Panel.Title.Render("Mood Summary") + "\n")
	for _, c := range s.MoodCounts {
		bar := m.theme.Mood(c.Mood).Bar.Render(strings.Repeat("█", min(c.Count, 30)))
		b.WriteString(fmt.Sprintf("%s %-8s %3d %s\n", c.Mood.Emoji(), titleCase(string(c.Mood)), c.Count, bar))
	}

	b.WriteString("\n" + m.theme.Panel.Title.Render("This Week") + "\n")
	if len(s.WeekMoods) == 0 {
		b.WriteString(m.theme.Muted.Render("No moods recorded in the last 7 days."))
	} else {
		emojis := make([]string, 0, len(s.WeekMoods))
		for _, e := range s.WeekMoods {
			emojis = append(emojis, e.Mood.Emoji())
		}
		b.WriteString(fmt.Sprintf("%d moods: %s", len(s.WeekMoods), strings.Join(emojis, " ")))
	}
	return b.String()
}

func (m *Model) renderMoodTracker() string {
	var b strings.Builder
	b.WriteString("How are you feeling?\n\n")
	choices := make([]string, 0, len(entry.Moods()))
	for _, mood := range entry.Moods() {
		label := mood.Emoji() + " " + titleCase(string(mood))
		style := m.theme.Mood(mood)
		if mood == m.state.MoodSelection {
			choices = append(choices, style.Selected.Render(label))
		} else {
			choices = append(choices, style.Label.Padding(0, 1).Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, choices...))
	b.WriteString("\n\n" + m.renderField(fieldNote, "Note"))
	return b.String()
}

func (m *Model) renderJournalSearch() string {
	fields := m.renderField(fieldTerm, "Search") + "\n" + m.renderField(fieldJournalDate, "Date")
	if m.state.JournalQueryIdle() {
		return fields + "\n\n" + m.theme.Muted.Render("Type to search your journal entries.")
	}
	results := m.state.JournalResults()
	if len(results) == 0 {
		return fields + "\n\n" + m.theme.Muted.Render("No matching journal entries found.")
	}
	return fields + "\n\n" + m.renderJournalList(results, m.cursor[app.ViewSearchJournal])
}

func (m *Model) renderMoodSearch() string {
	filter := m.state.MoodFilter
	label := "All Moods"
	if mood, err := entry.ParseMood(filter); err == nil && filter != entry.MoodAll {
		label = mood.Emoji() + " " + titleCase(filter)
	}
	fields := "Mood: " + m.theme.Panel.Focus.Render("‹ "+label+" ›") + "\n" + m.renderField(fieldMoodDate, "Date")
	if !m.state.MoodSearched {
		return fields + "\n\n" + m.theme.Muted.Render("Use the filters above and press enter to search.")
	}
	results := m.state.MoodResults()
	if len(results) == 0 {
		return fields + "\n\n" + m.theme.Muted.Render("No matching mood entries found.")
	}
	return fields + "\n\n" + m.renderMoodList(results, m.cursor[app.ViewSearchMoods])
}

// renderField shows the live input for the field being edited and the stored
// buffer otherwise.
func (m *Model) renderField(f field, label string) string {
	prefix := label + ": "
	if m.mode == modeInput && m.field == f {
		return m.theme.Panel.Focus.Render(prefix) + m.input.View()
	}
	value := m.fieldValue(f)
	if value == "" {
		return prefix + m.theme.Muted.Render(placeholder(f))
	}
	return prefix + value
}

func (m *Model) renderJournalList(entries []entry.JournalEntry, cursor int) string {
	wrap := max(m.width()-6, 20)
	blocks := make([]string, 0, len(entries))
	for i, e := range entries {
		marker := "  "
		if i == cursor {
			marker = m.theme.Panel.Focus.Render("→ ")
		}
		content := indent(wordwrap.String(e.Content, wrap), "   ")
		blocks = append(blocks, marker+m.theme.Panel.Date.Render(e.Date.Display())+"\n"+content)
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) renderMoodList(entries []entry.MoodEntry, cursor int) string {
	lineWidth := uint(max(m.width()-2, 20))
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		marker := "  "
		if i == cursor {
			marker = m.theme.Panel.Focus.Render("→ ")
		}
		line := fmt.Sprintf("%s%s %s  %s", marker, e.Mood.Emoji(), m.moodLabel(e.Mood), m.theme.Panel.Date.Render(e.Date.Display()))
		if e.Note != "" {
			line += "  " + e.Note
		}
		lines = append(lines, truncate.StringWithTail(line, lineWidth, "…"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) moodLabel(mood entry.Mood) string {
	return m.theme.Mood(mood).Label.Render(titleCase(string(mood)))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// Run launches the interactive TUI program and blocks until it exits.
func Run(ctx context.Context, ctrl *app.Controller, opts ...Option) error {
	m := New(ctrl, opts...)
	defer m.Close()
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
