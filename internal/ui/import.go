package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/db"
)

// importRange bounds the dates copied by import.
var (
	importFrom = time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)
	importTo   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.Local)
)

// importStats counts what an import copied.
type importStats struct {
	Professionals int
	Sessions      int
	Blocks        int
	CustomSlots   int
	DayStarts     int
}

func (s importStats) String() string {
	return fmt.Sprintf("%d professionals, %d sessions, %d blocks, %d custom slots, %d day starts",
		s.Professionals, s.Sessions, s.Blocks, s.CustomSlots, s.DayStarts)
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import agendas from another database",
		Long: `Import every professional from another agenda database into the current
one, with their sessions, blocks, custom slots and day-start overrides.

Professionals already present are kept and receive the imported entries.
Custom slots that already exist are skipped.`,
		Example: `  agenda import /path/to/other.db`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return errors.New("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			stats, err := importAgenda(cmd.Context(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s from %s\n", stats, sourcePath)
			return nil
		},
	}

	return cmd
}

func importAgenda(ctx context.Context, dest agenda.Repository, sourcePath string) (importStats, error) {
	var stats importStats

	source, err := db.New(sourcePath)
	if err != nil {
		return stats, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	pros, err := source.ListProfessionals(ctx)
	if err != nil {
		return stats, fmt.Errorf("listing source professionals: %w", err)
	}

	for _, p := range pros {
		_, err := dest.GetProfessional(ctx, p.ID)
		switch {
		case errors.Is(err, agenda.ErrNotFound):
			if err := dest.CreateProfessional(ctx, p); err != nil {
				return stats, fmt.Errorf("importing professional %q: %w", p.Name, err)
			}
			stats.Professionals++
		case err != nil:
			return stats, fmt.Errorf("checking professional %q: %w", p.Name, err)
		}

		if err := importEntries(ctx, dest, source, p.ID, &stats); err != nil {
			return stats, fmt.Errorf("importing agenda of %q: %w", p.Name, err)
		}
	}

	return stats, nil
}

func importEntries(ctx context.Context, dest, source agenda.Repository, id uuid.UUID, stats *importStats) error {
	sessions, err := source.ListSessions(ctx, id, importFrom, importTo)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	for _, s := range sessions {
		copied := *s
		copied.ID = 0
		if err := dest.CreateSession(ctx, &copied); err != nil {
			return fmt.Errorf("session of %q: %w", s.ClientName, err)
		}
		stats.Sessions++
	}

	blocks, err := source.ListBlocks(ctx, id, importFrom, importTo)
	if err != nil {
		return fmt.Errorf("listing blocks: %w", err)
	}
	for _, b := range blocks {
		copied := *b
		copied.ID = 0
		if err := dest.CreateBlock(ctx, &copied); err != nil {
			return fmt.Errorf("block on %s: %w", b.Date.Format(agenda.DateLayout), err)
		}
		stats.Blocks++
	}

	customs, err := source.ListCustomSlots(ctx, id, importFrom, importTo)
	if err != nil {
		return fmt.Errorf("listing custom slots: %w", err)
	}
	for _, c := range customs {
		err := dest.AddCustomSlot(ctx, c)
		if errors.Is(err, agenda.ErrDuplicateCustomSlot) {
			continue
		}
		if err != nil {
			return fmt.Errorf("custom slot %s %s: %w", c.Date.Format(agenda.DateLayout), c.Time, err)
		}
		stats.CustomSlots++
	}

	starts, err := source.ListDayStarts(ctx, id, importFrom, importTo)
	if err != nil {
		return fmt.Errorf("listing day starts: %w", err)
	}
	for _, d := range starts {
		if err := dest.SetDayStart(ctx, d); err != nil {
			return fmt.Errorf("day start %s: %w", d.Date.Format(agenda.DateLayout), err)
		}
		stats.DayStarts++
	}

	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
