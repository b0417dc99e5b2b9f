// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/agenda/internal/slots"
)

// Config holds the application configuration.
type Config struct {
	Schedule     ScheduleConfig     `toml:"schedule"`
	Professional ProfessionalConfig `toml:"professional"`
	Storage      StorageConfig      `toml:"storage"`
	Server       ServerConfig       `toml:"server"`
	Log          LogConfig          `toml:"log"`
	UI           UIConfig           `toml:"ui"`
}

// ScheduleConfig holds the opening hours and free-slot settings.
type ScheduleConfig struct {
	DayStart    string `toml:"day_start"`    // e.g., "08:00"
	WeekdayEnd  string `toml:"weekday_end"`  // closing time Monday to Friday
	SaturdayEnd string `toml:"saturday_end"` // closing time on Saturday
	Granularity int    `toml:"granularity"`  // minutes between bookings
	Duration    string `toml:"duration"`     // default duration code, e.g. "1h"
	BlockPush   int    `toml:"block_push"`   // minutes after opening a block can delay it
}

// ProfessionalConfig selects whose agenda commands act on.
type ProfessionalConfig struct {
	ID string `toml:"id"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ServerConfig holds JSON API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // empty logs to stderr
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "rose", "night"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:    "08:00",
			WeekdayEnd:  "20:10",
			SaturdayEnd: "16:10",
			Granularity: slots.DefaultGranularity,
			Duration:    "1h",
			BlockPush:   slots.DefaultBlockPush,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: "rose",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "agenda.db"
	}
	return filepath.Join(home, ".local", "share", "agenda", "agenda.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "agenda", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AGENDA_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("AGENDA_GRANULARITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENDA_GRANULARITY must be a number of minutes, got %q", v)
		}
		cfg.Schedule.Granularity = n
	}
	if v := os.Getenv("AGENDA_DURATION"); v != "" {
		cfg.Schedule.Duration = v
	}
	if v := os.Getenv("AGENDA_PROFESSIONAL_ID"); v != "" {
		cfg.Professional.ID = v
	}
	if v := os.Getenv("AGENDA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("AGENDA_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("AGENDA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AGENDA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validThemes = map[string]bool{"rose": true, "night": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.WeekdayEnd, "weekday_end"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.SaturdayEnd, "saturday_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.WeekdayEnd {
		return errors.New("day_start must be before weekday_end")
	}
	if c.Schedule.DayStart >= c.Schedule.SaturdayEnd {
		return errors.New("day_start must be before saturday_end")
	}
	if c.Schedule.Granularity < 0 {
		return errors.New("granularity cannot be negative")
	}
	if c.Schedule.BlockPush < 0 {
		return errors.New("block_push cannot be negative")
	}
	if !slots.ValidDurationCode(c.Schedule.Duration) {
		return fmt.Errorf("invalid duration: %q", c.Schedule.Duration)
	}
	if c.Professional.ID != "" {
		if _, err := uuid.Parse(c.Professional.ID); err != nil {
			return fmt.Errorf("professional id must be a uuid, got %q", c.Professional.ID)
		}
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}
	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if !slots.ValidClock(t) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// Hours converts the schedule to the engine's opening hours.
func (c *Config) Hours() slots.Hours {
	start, _ := slots.ParseClock(c.Schedule.DayStart)
	weekdayEnd, _ := slots.ParseClock(c.Schedule.WeekdayEnd)
	saturdayEnd, _ := slots.ParseClock(c.Schedule.SaturdayEnd)
	return slots.Hours{
		DayStart:    start,
		WeekdayEnd:  weekdayEnd,
		SaturdayEnd: saturdayEnd,
		BlockPush:   c.Schedule.BlockPush,
	}
}

// ProfessionalID returns the configured professional, or uuid.Nil when none is set.
func (c *Config) ProfessionalID() uuid.UUID {
	id, err := uuid.Parse(c.Professional.ID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
