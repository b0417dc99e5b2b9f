package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date     string
		duration string
		copyOut  bool
		export   bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week's agenda and free times",
		Long: `Display Monday to Saturday of the week containing --date as a grid of
marked sessions and free start times.

--export prints the message sent to clients instead of the grid;
--copy puts that message on the clipboard.`,
		Example: `  agenda week
  agenda week --date=next-week --duration=30min
  agenda week --export --copy`,
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

			week, err := a.service().Week(ctx, id, d, duration)
			if err != nil {
				return fmt.Errorf("computing week: %w", err)
			}

			out := cmd.OutOrStdout()
			text := availability.ExportText(week)
			if export {
				fmt.Fprintln(out, text)
			} else {
				header := fmt.Sprintf("WEEK: %s - %s · %s",
					dateutil.DayMonth(week.Start), dateutil.DayMonth(week.End), week.Duration)
				fmt.Fprintf(out, "\n  %s\n\n", formatHeader(header))
				printWeekGrid(out, week, termWidth())
				fmt.Fprintln(out)
			}

			if copyOut {
				return a.copyOut(cmd, text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day of the week to show (default: today)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration code (default from config)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the week message to the clipboard")
	cmd.Flags().BoolVar(&export, "export", false, "Print the week message instead of the grid")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}
