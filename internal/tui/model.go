// Package tui provides the terminal week view of free times.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/tui/commands"
	"github.com/javiermolinar/agenda/internal/tui/theme"
)

// Options configures the week view.
type Options struct {
	Theme    string
	Duration string             // initial duration code
	Copy     func(string) error // clipboard writer
	Now      func() time.Time
	Logger   *zap.Logger
}

// Model is the week view model.
type Model struct {
	// Dependencies
	loader       commands.WeekLoader
	professional uuid.UUID
	copyText     func(string) error
	now          func() time.Time
	logger       *zap.Logger

	styles *Styles
	keys   keyMap
	help   help.Model
	prompt textinput.Model

	// State
	date      time.Time // any day of the displayed week
	duration  string
	week      *availability.WeekView
	selected  int // 0=Monday, 5=Saturday
	loading   bool
	prompting bool

	width  int
	height int

	statusMsg string
	statusErr bool
}

// New creates a new week view model.
func New(loader commands.WeekLoader, professionalID uuid.UUID, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	t, err := theme.Load(opts.Theme)
	if err != nil {
		opts.Logger.Warn("loading theme", zap.String("theme", opts.Theme), zap.Error(err))
	}
	styles := NewStyles(t)
	if opts.Duration == "" {
		opts.Duration = "1h"
	}

	ti := textinput.New()
	ti.Prompt = "Ir para: "
	ti.Placeholder = "YYYY-MM-DD, amanhã, sexta..."
	ti.CharLimit = 32
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.PromptStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	today := dateutil.TruncateToDay(opts.Now())
	return &Model{
		loader:       loader,
		professional: professionalID,
		copyText:     opts.Copy,
		now:          opts.Now,
		logger:       opts.Logger,
		styles:       styles,
		keys:         defaultKeyMap(),
		help:         h,
		prompt:       ti,
		date:         today,
		duration:     opts.Duration,
		selected:     dayIndex(today),
		loading:      true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return commands.LoadWeek(m.loader, m.professional, m.date, m.duration)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	return m, m.load()
}

// selectedDay returns the highlighted day, or nil before the first load.
func (m Model) selectedDay() *availability.DayView {
	if m.week == nil || m.selected < 0 || m.selected >= len(m.week.Days) {
		return nil
	}
	return m.week.Days[m.selected]
}

// dayIndex maps a date to its column. Sunday belongs to the week before it.
func dayIndex(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return dateutil.WorkDays - 1
	}
	return int(t.Weekday()) - 1
}

// Run starts the week view.
func Run(loader commands.WeekLoader, professionalID uuid.UUID, opts Options) error {
	p := tea.NewProgram(New(loader, professionalID, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running week view: %w", err)
	}
	return nil
}
