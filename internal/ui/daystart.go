package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) dayStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daystart",
		Short: "Override the opening time of a day",
	}

	cmd.AddCommand(a.dayStartSetCmd())
	cmd.AddCommand(a.dayStartClearCmd())
	return cmd
}

func (a *App) dayStartSetCmd() *cobra.Command {
	var (
		date string
		at   string
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Open a day at a different time",
		Example: "  agenda daystart set --date=2025-02-03 --time=09:30",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			id, err := a.setup(ctx)
			if err != nil {
				return err
			}

			d, err := dateutil.ResolveDate(date, a.now())
			if err != nil {
				return err
			}

			ds, err := agenda.NewDayStart(id, d.Format(dateutil.Layout), at)
			if err != nil {
				return err
			}
			if err := a.repo.SetDayStart(ctx, ds); err != nil {
				return fmt.Errorf("setting day start: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s now opens at %s\n", ds.Date.Format(dateutil.Layout), ds.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (default: today)")
	cmd.Flags().StringVar(&at, "time", "", "Opening time (HH:MM)")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func (a *App) dayStartClearCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Restore the default opening time of a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			id, err := a.setup(ctx)
			if err != nil {
				return err
			}

			d, err := dateutil.ResolveDate(date, a.now())
			if err != nil {
				return err
			}
			if err := a.repo.ClearDayStart(ctx, id, d); err != nil {
				return fmt.Errorf("clearing day start: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s opens at the default %s\n", d.Format(dateutil.Layout), a.config.Schedule.DayStart)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (default: today)")
	return cmd
}
