package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/slots"
	"github.com/javiermolinar/agenda/internal/tui"
)

func (a *App) agendaCmd() *cobra.Command {
	var duration string

	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"tui"},
		Short:   "Open the interactive week view",
		Long: `Open a full-screen Monday to Saturday grid with the marked sessions and
the free start times of each day.

Keys: ←/→ change week, t this week, d cycle duration, c copy the week
message, y copy the selected day, g go to a date, r reload, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWeekView(cmd.Context(), duration)
		},
	}

	cmd.Flags().StringVar(&duration, "duration", "", "Initial duration code (default from config)")
	return cmd
}

// runAgenda opens the week view with the configured duration.
func (a *App) runAgenda(ctx context.Context) error {
	return a.runWeekView(ctx, "")
}

func (a *App) runWeekView(ctx context.Context, duration string) error {
	if duration == "" {
		duration = a.config.Schedule.Duration
	}
	if !slots.ValidDurationCode(duration) {
		return fmt.Errorf("%w: %q", agenda.ErrInvalidDuration, duration)
	}

	id, err := a.setup(ctx)
	if err != nil {
		return err
	}

	return tui.Run(a.service(), id, tui.Options{
		Theme:    a.config.UI.Theme,
		Duration: duration,
		Copy:     a.copyText,
		Now:      a.now,
		Logger:   a.log(),
	})
}
