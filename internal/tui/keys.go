package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/slots"
	"github.com/javiermolinar/agenda/internal/tui/commands"
	"github.com/javiermolinar/agenda/internal/tui/input"
)

// keyMap lists the week view bindings. It satisfies help.KeyMap.
type keyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	ThisWeek key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Duration key.Binding
	Copy     key.Binding
	CopyDay  key.Binding
	GoTo     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevWeek: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev week")),
		NextWeek: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next week")),
		ThisWeek: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "this week")),
		PrevDay:  key.NewBinding(key.WithKeys("shift+tab", "k"), key.WithHelp("S-tab/k", "prev day")),
		NextDay:  key.NewBinding(key.WithKeys("tab", "j"), key.WithHelp("tab/j", "next day")),
		Duration: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duration")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy week")),
		CopyDay:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		GoTo:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to date")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.Duration, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek, k.ThisWeek, k.GoTo},
		{k.PrevDay, k.NextDay, k.Duration, k.Reload},
		{k.Copy, k.CopyDay, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key", zap.String("key", msg.String()), zap.Bool("prompting", m.prompting))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.prompting {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys while browsing the week.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevWeek):
		m.date = m.date.AddDate(0, 0, -7)
		return m.reload()
	case key.Matches(msg, m.keys.NextWeek):
		m.date = m.date.AddDate(0, 0, 7)
		return m.reload()
	case key.Matches(msg, m.keys.ThisWeek):
		m.date = dateutil.TruncateToDay(m.now())
		m.selected = dayIndex(m.date)
		return m.reload()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.PrevDay):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, m.keys.NextDay):
		m.selected = min(m.selected+1, dateutil.WorkDays-1)

	case key.Matches(msg, m.keys.Duration):
		m.duration = nextDuration(m.duration)
		m.statusMsg = "Duration " + m.duration
		m.statusErr = false
		return m.reload()

	case key.Matches(msg, m.keys.Copy):
		if m.week == nil {
			return m, nil
		}
		return m, commands.CopyText(m.copyText, availability.ExportText(m.week), "Week")
	case key.Matches(msg, m.keys.CopyDay):
		day := m.selectedDay()
		if day == nil {
			return m, nil
		}
		return m, commands.CopyText(m.copyText, availability.DayText(day), availability.DayLabel(day))

	case key.Matches(msg, m.keys.GoTo):
		m.prompting = true
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handlePromptKeys handles keys while the go-to-date prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil

	case "tab":
		if name, ok := input.Autocomplete(m.prompt.Value(), input.DateShortcuts); ok {
			m.prompt.SetValue(name)
			m.prompt.CursorEnd()
		}
		return m, nil

	case "enter":
		date, err := dateutil.ResolveDate(m.prompt.Value(), m.now())
		m.closePrompt()
		if err != nil {
			m.statusMsg = err.Error()
			m.statusErr = true
			return m, nil
		}
		m.date = date
		m.selected = dayIndex(date)
		return m.reload()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// nextDuration cycles through the standard duration codes.
func nextDuration(current string) string {
	codes := slots.DurationCodes
	for i, c := range codes {
		if c == current {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}
