package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
)

func (a *App) blockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Close a day or part of it",
	}

	cmd.AddCommand(a.blockAddCmd())
	cmd.AddCommand(a.blockListCmd())
	cmd.AddCommand(a.blockRmCmd())
	return cmd
}

func (a *App) blockAddCmd() *cobra.Command {
	var (
		date    string
		start   string
		end     string
		fullDay bool
		reason  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Block a time range or a whole day",
		Long: `Block a time range, or the whole day with --full-day.

A block that ends shortly after opening delays the first free time.

Example:
  agenda block add --date=2025-02-03 --start=12:00 --end=13:00 --reason=lunch
  agenda block add --date=2025-02-04 --full-day --reason=course`,
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
			day := d.Format(dateutil.Layout)

			var b *agenda.Block
			switch {
			case fullDay && (start != "" || end != ""):
				return fmt.Errorf("--full-day cannot be combined with --start/--end")
			case fullDay:
				b, err = agenda.NewFullDayBlock(id, day, reason)
			default:
				b, err = agenda.NewBlock(id, day, start, end, reason)
			}
			if err != nil {
				return err
			}

			if err := a.repo.CreateBlock(ctx, b); err != nil {
				return fmt.Errorf("creating block: %w", err)
			}

			span := "full day"
			if !b.FullDay {
				span = b.Start + "-" + b.End
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created block #%d: %s %s\n", b.ID, day, span)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to block (default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVar(&fullDay, "full-day", false, "Close the whole day")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the time is blocked")
	return cmd
}

func (a *App) blockListCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blocks in a date range",
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

			blocks, err := a.repo.ListBlocks(ctx, id, dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing blocks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(blocks) == 0 {
				fmt.Fprintln(out, "No blocks found in the specified date range.")
				return nil
			}
			for _, b := range blocks {
				span := "full day"
				if !b.FullDay {
					span = b.Start + "-" + b.End
				}
				fmt.Fprintf(out, "  #%d %s %s %s\n", b.ID, b.Date.Format(dateutil.Layout), span, formatMuted(b.Reason))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	return cmd
}

func (a *App) blockRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [block-id]",
		Short: "Remove a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid block ID: %w", err)
			}

			if err := a.repo.DeleteBlock(cmd.Context(), id); err != nil {
				return fmt.Errorf("removing block: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed block #%d\n", id)
			return nil
		},
	}
}
