package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Book and manage sessions",
	}

	cmd.AddCommand(a.sessionAddCmd())
	cmd.AddCommand(a.sessionListCmd())
	cmd.AddCommand(a.sessionStatusCmd("done", "Mark a session as done", agenda.StatusDone))
	cmd.AddCommand(a.sessionStatusCmd("confirm", "Mark a session as confirmed", agenda.StatusConfirmed))
	cmd.AddCommand(a.sessionCancelCmd())
	return cmd
}

func (a *App) sessionAddCmd() *cobra.Command {
	var (
		date     string
		at       string
		duration string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add [client]",
		Short: "Book a session",
		Long: `Book a session for a client.

Example:
  agenda session add "Ana Souza" --date=2025-02-03 --time=09:00 --duration=1h30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := a.setup(ctx)
			if err != nil {
				return err
			}

			d, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			if duration == "" {
				duration = a.config.Schedule.Duration
			}

			s, err := agenda.NewSession(id, args[0], d.Format(dateutil.Layout), at, duration)
			if err != nil {
				return err
			}
			s.Notes = notes

			if err := a.repo.CreateSession(ctx, s); err != nil {
				return fmt.Errorf("creating session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Booked session #%d: %s %s %s (%s)\n",
				s.ID, s.ClientName, s.Date.Format(dateutil.Layout), s.Time, s.Duration)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD, today, tomorrow, weekday)")
	cmd.Flags().StringVar(&at, "time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&duration, "duration", "", "Duration code (default from config)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func (a *App) sessionListCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions in a date range",
		Long: `List every session, in any status, within a date range.

If no dates are specified, lists today's sessions.`,
		Example: `  agenda session list
  agenda session list --start=2025-02-03 --end=2025-02-08`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			id, err := a.setup(ctx)
			if err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			sessions, err := a.repo.ListSessions(ctx, id, dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found in the specified date range.")
				return nil
			}

			var currentDate string
			for _, s := range sessions {
				date := s.Date.Format(dateutil.Layout)
				if date != currentDate {
					if currentDate != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s %s ===\n", dateutil.WeekdayLabel(s.Date.Weekday()), date)
					currentDate = date
				}

				at := s.Time
				if at == "" {
					at = "--:--"
				}
				line := fmt.Sprintf("#%d %s-%s %s %s", s.ID, at, orDash(s.End()), s.ClientName,
					formatMuted(FormatDuration(s.Minutes())))
				if s.Status.IsCancelled() {
					line = formatClosed(line)
				}
				fmt.Fprintf(out, "  %s %s\n", statusSymbol(s.Status), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}

func (a *App) sessionStatusCmd(use, short string, status agenda.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [session-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setSessionStatus(cmd, args[0], status)
		},
	}
}

func (a *App) sessionCancelCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "cancel [session-id]",
		Short: "Cancel a session, freeing its time",
		Long: `Cancel a session by its ID.

Example:
  agenda session cancel 42 --by=client`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := agenda.StatusCancelled
			switch by {
			case "":
			case "client":
				status = agenda.StatusCancelledByClient
			case "professional":
				status = agenda.StatusCancelledByProfessional
			default:
				return fmt.Errorf("--by must be client or professional, got %q", by)
			}
			return a.setSessionStatus(cmd, args[0], status)
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Who cancelled: client or professional")
	return cmd
}

func (a *App) setSessionStatus(cmd *cobra.Command, arg string, status agenda.Status) error {
	if err := a.ensureRepo(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	if err := a.repo.SetSessionStatus(cmd.Context(), id, status); err != nil {
		return fmt.Errorf("updating session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Session #%d is now %s\n", id, status)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "--:--"
	}
	return s
}
