package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/config"
	"github.com/javiermolinar/agenda/internal/db"
	"github.com/javiermolinar/agenda/internal/logging"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo         agenda.Repository
	config       *config.Config
	configPath   string
	root         *cobra.Command
	logger       *zap.Logger
	debug        bool   // Enable debug logging
	professional string // --professional override

	// Replaceable in tests.
	copyText func(string) error
	now      func() time.Time
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo agenda.Repository, cfg *config.Config) *App {
	a := &App{
		repo:       repo,
		config:     cfg,
		configPath: config.DefaultConfigPath(),
		copyText:   clipboard.WriteAll,
		now:        time.Now,
	}

	a.root = &cobra.Command{
		Use:   "agenda",
		Short: "Free-slot agenda for a single professional",
		Long: `Agenda keeps a professional's sessions, blocks and custom times and
computes the start times still open for a new booking.

Run without a subcommand to open the interactive week view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.initLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAgenda(cmd.Context())
		},
	}

	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.professional, "professional", "", "Professional ID (default from config)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.freeCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.sessionCmd())
	a.root.AddCommand(a.blockCmd())
	a.root.AddCommand(a.slotCmd())
	a.root.AddCommand(a.dayStartCmd())
	a.root.AddCommand(a.proCmd())
	a.root.AddCommand(a.agendaCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agenda %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// ExecuteContext runs the CLI application with ctx available to every command.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the repository and flushes the logger.
func (a *App) Close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

func (a *App) initLogger() error {
	if a.logger != nil {
		return nil
	}
	logger, err := logging.ForCLI(a.config.Log.Level, a.config.Log.File, a.debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logger = logger
	return nil
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(path, db.WithLogger(a.log()))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

// serverLogger logs at the configured level; debug mode still wins.
func (a *App) serverLogger() (*zap.Logger, error) {
	if a.debug {
		return a.log(), nil
	}
	logger, err := logging.New(a.config.Log.Level, a.config.Log.File)
	if err != nil {
		return nil, fmt.Errorf("initializing server logger: %w", err)
	}
	return logger, nil
}

func (a *App) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

// service builds the availability service from the config.
func (a *App) service() *availability.Service {
	return availability.NewService(a.repo,
		availability.WithHours(a.config.Hours()),
		availability.WithGranularity(a.config.Schedule.Granularity),
		availability.WithDefaultDuration(a.config.Schedule.Duration),
		availability.WithLogger(a.log()),
	)
}

// professionalID resolves whose agenda to act on: the --professional flag,
// then the config, then the only stored professional.
func (a *App) professionalID(ctx context.Context) (uuid.UUID, error) {
	if a.professional != "" {
		return agenda.ParseProfessionalID(a.professional)
	}
	if id := a.config.ProfessionalID(); id != uuid.Nil {
		return id, nil
	}

	pros, err := a.repo.ListProfessionals(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("listing professionals: %w", err)
	}
	if len(pros) == 1 {
		return pros[0].ID, nil
	}
	return uuid.Nil, fmt.Errorf("%w: pass --professional or run 'agenda pro use ID'", agenda.ErrNoProfessional)
}

// setup opens the repository and resolves the professional.
func (a *App) setup(ctx context.Context) (uuid.UUID, error) {
	if err := a.ensureRepo(); err != nil {
		return uuid.Nil, err
	}
	return a.professionalID(ctx)
}

// copyOut writes text to the clipboard and reports it on out.
func (a *App) copyOut(cmd *cobra.Command, text string) error {
	if text == "" {
		return errors.New("nothing to copy")
	}
	if err := a.copyText(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatMuted("Copied to clipboard."))
	return nil
}
