package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) slotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Add or remove custom free times",
		Long: `Custom times are offered on top of the computed ones whenever they keep
clear of marked sessions and blocks.`,
	}

	cmd.AddCommand(a.slotChangeCmd("add", "Offer a custom time on a day"))
	cmd.AddCommand(a.slotChangeCmd("rm", "Remove a custom time"))
	return cmd
}

func (a *App) slotChangeCmd(use, short string) *cobra.Command {
	var (
		date string
		at   string
	)

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "  agenda slot " + use + " --date=2025-02-03 --time=19:00",
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

			c, err := agenda.NewCustomSlot(id, d.Format(dateutil.Layout), at)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if use == "rm" {
				if err := a.repo.RemoveCustomSlot(ctx, id, c.Date, c.Time); err != nil {
					return fmt.Errorf("removing custom slot: %w", err)
				}
				fmt.Fprintf(out, "Removed custom time %s %s\n", c.Date.Format(dateutil.Layout), c.Time)
				return nil
			}

			if err := a.repo.AddCustomSlot(ctx, c); err != nil {
				return fmt.Errorf("adding custom slot: %w", err)
			}
			fmt.Fprintf(out, "Added custom time %s %s\n", c.Date.Format(dateutil.Layout), c.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day (default: today)")
	cmd.Flags().StringVar(&at, "time", "", "Time (HH:MM)")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}
