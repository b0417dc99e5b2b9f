package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) freeCmd() *cobra.Command {
	var (
		date     string
		duration string
		copyOut  bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free start times for a day",
		Long: `Show the start times still open on a day for a booking of the given
duration, alongside the sessions already marked.

--date accepts YYYY-MM-DD, today, tomorrow or a weekday name.`,
		Example: `  agenda free
  agenda free --date=tomorrow --duration=1h30
  agenda free --date=2025-02-03 --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			ctx := cmd.Context()
			id, err := a.setup(ctx)
			if err != nil {
				return err
			}

			d, err := dateutil.ResolveDate(date, a.now())
			if err != nil {
				return err
			}

			v, err := a.service().Day(ctx, id, d, duration)
			if err != nil {
				return fmt.Errorf("computing free times: %w", err)
			}

			printDay(cmd.OutOrStdout(), v)

			if copyOut {
				return a.copyOut(cmd, availability.DayText(v))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to check (default: today)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration code: 30min, 1h, 1h30, 2h or <N>h<M> up to 24h (default from config)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the free times to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
