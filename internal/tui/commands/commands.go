// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/javiermolinar/agenda/internal/availability"
)

// WeekLoader computes a week of free times. *availability.Service satisfies it.
type WeekLoader interface {
	Week(ctx context.Context, professionalID uuid.UUID, date time.Time, durationCode string) (*availability.WeekView, error)
}

// WeekLoadedMsg is sent when week data is loaded.
type WeekLoadedMsg struct {
	Week *availability.WeekView
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// StatusTimeout is how long a status message stays on screen.
const StatusTimeout = 3 * time.Second

// LoadWeek loads the Monday to Saturday week containing date.
func LoadWeek(loader WeekLoader, professionalID uuid.UUID, date time.Time, durationCode string) tea.Cmd {
	return func() tea.Msg {
		week, err := loader.Week(context.Background(), professionalID, date, durationCode)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading week: %w", err)}
		}
		return WeekLoadedMsg{Week: week}
	}
}

// CopyText writes text to the clipboard through copyFn.
func CopyText(copyFn func(string) error, text, what string) tea.Cmd {
	return func() tea.Msg {
		if text == "" {
			return StatusMsgCmd{Msg: "Nothing to copy"}
		}
		if copyFn == nil {
			return ErrMsg{Err: errors.New("clipboard unavailable")}
		}
		if err := copyFn(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: what + " copied to clipboard"}
	}
}

// ClearStatusAfter emits ClearStatusMsg after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
