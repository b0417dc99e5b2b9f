package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/config"
	"github.com/javiermolinar/agenda/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  agenda config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInteractive(a.configPath, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runConfigInteractive(configPath string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Schedule.DayStart = promptValue(reader, out, "Day start", cfg.Schedule.DayStart)
	cfg.Schedule.WeekdayEnd = promptValue(reader, out, "Weekday closing time", cfg.Schedule.WeekdayEnd)
	cfg.Schedule.SaturdayEnd = promptValue(reader, out, "Saturday closing time", cfg.Schedule.SaturdayEnd)
	cfg.Schedule.Granularity = promptInt(reader, out, "Minutes between bookings", cfg.Schedule.Granularity)
	cfg.Schedule.Duration = promptValue(reader, out, "Default duration (30min, 1h, 1h30, 2h)", cfg.Schedule.Duration)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Server.Addr = promptValue(reader, out, "API address", cfg.Server.Addr)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[schedule]")
	fmt.Fprintf(out, "  day_start    = %s\n", cfg.Schedule.DayStart)
	fmt.Fprintf(out, "  weekday_end  = %s\n", cfg.Schedule.WeekdayEnd)
	fmt.Fprintf(out, "  saturday_end = %s\n", cfg.Schedule.SaturdayEnd)
	fmt.Fprintf(out, "  granularity  = %d\n", cfg.Schedule.Granularity)
	fmt.Fprintf(out, "  duration     = %s\n", cfg.Schedule.Duration)
	fmt.Fprintf(out, "  block_push   = %d\n", cfg.Schedule.BlockPush)
	fmt.Fprintln(out, "\n[professional]")
	fmt.Fprintf(out, "  id           = %s\n", cfg.Professional.ID)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[server]")
	fmt.Fprintf(out, "  addr         = %s\n", cfg.Server.Addr)
	fmt.Fprintln(out, "\n[log]")
	fmt.Fprintf(out, "  level        = %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  file         = %s\n", cfg.Log.File)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme        = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
