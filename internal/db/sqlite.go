// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/agenda/internal/agenda"
)

// SQLite implements agenda.Repository using SQLite.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
}

// Option configures a SQLite repository.
type Option func(*SQLite)

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *SQLite) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a new SQLite repository and runs migrations.
func New(path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	s.logger.Debug("database ready", zap.String("path", path))

	return s, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// CreateProfessional stores a new professional.
func (s *SQLite) CreateProfessional(ctx context.Context, p *agenda.Professional) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `INSERT INTO professionals (id, name, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, p.ID.String(), p.Name, p.CreatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting professional: %w", err)
	}
	return nil
}

// GetProfessional retrieves a professional by ID.
func (s *SQLite) GetProfessional(ctx context.Context, id uuid.UUID) (*agenda.Professional, error) {
	query := `SELECT id, name, created_at FROM professionals WHERE id = ?`

	p, err := scanProfessional(s.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("professional %s: %w", id, agenda.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying professional: %w", err)
	}
	return p, nil
}

// ListProfessionals returns all professionals ordered by name.
func (s *SQLite) ListProfessionals(ctx context.Context) ([]*agenda.Professional, error) {
	query := `SELECT id, name, created_at FROM professionals ORDER BY name, created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying professionals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*agenda.Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning professional: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating professionals: %w", err)
	}
	return out, nil
}

// CreateSession adds a new session and sets its ID.
func (s *SQLite) CreateSession(ctx context.Context, sess *agenda.Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now()
	}
	if sess.Status == "" {
		sess.Status = agenda.StatusScheduled
	}

	query := `
		INSERT INTO sessions (
			professional_id, client_name, session_date, session_time,
			duration, status, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		sess.ProfessionalID.String(),
		sess.ClientName,
		formatDate(sess.Date),
		sess.Time,
		sess.Duration,
		sess.Status,
		sess.Notes,
		sess.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	sess.ID = id

	s.logger.Debug("session created",
		zap.Int64("id", id),
		zap.String("date", formatDate(sess.Date)),
		zap.String("time", sess.Time),
	)
	return nil
}

const sessionColumns = `
	id, professional_id, client_name, session_date, session_time,
	duration, status, notes, created_at
`

// GetSession retrieves a session by ID.
func (s *SQLite) GetSession(ctx context.Context, id int64) (*agenda.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %d: %w", id, agenda.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return sess, nil
}

// ListSessions returns the professional's sessions within the date range (inclusive).
func (s *SQLite) ListSessions(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*agenda.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE professional_id = ? AND session_date >= ? AND session_date <= ?
		ORDER BY session_date, session_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, professionalID.String(), formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*agenda.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}

// SetSessionStatus moves a session to a new status.
func (s *SQLite) SetSessionStatus(ctx context.Context, id int64, status agenda.Status) error {
	if !status.Valid() {
		return agenda.ErrInvalidStatus
	}

	query := `UPDATE sessions SET status = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating session status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session %d: %w", id, agenda.ErrNotFound)
	}
	return nil
}

// CreateBlock adds a block and sets its ID.
func (s *SQLite) CreateBlock(ctx context.Context, b *agenda.Block) error {
	query := `
		INSERT INTO blocks (professional_id, block_date, start_time, end_time, full_day, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		b.ProfessionalID.String(),
		formatDate(b.Date),
		b.Start,
		b.End,
		b.FullDay,
		b.Reason,
	)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	b.ID = id
	return nil
}

// DeleteBlock removes a block.
func (s *SQLite) DeleteBlock(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("block %d: %w", id, agenda.ErrNotFound)
	}
	return nil
}

// ListBlocks returns the professional's blocks within the date range (inclusive).
func (s *SQLite) ListBlocks(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*agenda.Block, error) {
	query := `
		SELECT id, professional_id, block_date, start_time, end_time, full_day, reason
		FROM blocks
		WHERE professional_id = ? AND block_date >= ? AND block_date <= ?
		ORDER BY block_date, full_day DESC, start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, professionalID.String(), formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("querying blocks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*agenda.Block
	for rows.Next() {
		var (
			b       agenda.Block
			profID  string
			date    string
			fullDay bool
		)
		if err := rows.Scan(&b.ID, &profID, &date, &b.Start, &b.End, &fullDay, &b.Reason); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		b.FullDay = fullDay
		if b.ProfessionalID, err = uuid.Parse(profID); err != nil {
			return nil, fmt.Errorf("parsing professional id: %w", err)
		}
		if b.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing block date: %w", err)
		}
		out = append(out, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return out, nil
}

// AddCustomSlot stores a custom slot.
// Returns ErrDuplicateCustomSlot if the same date and time already exist.
func (s *SQLite) AddCustomSlot(ctx context.Context, c *agenda.CustomSlot) error {
	query := `
		INSERT INTO custom_slots (professional_id, slot_date, slot_time)
		VALUES (?, ?, ?)
		ON CONFLICT(professional_id, slot_date, slot_time) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query, c.ProfessionalID.String(), formatDate(c.Date), c.Time)
	if err != nil {
		return fmt.Errorf("inserting custom slot: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%s %s: %w", formatDate(c.Date), c.Time, agenda.ErrDuplicateCustomSlot)
	}
	return nil
}

// RemoveCustomSlot deletes a custom slot.
func (s *SQLite) RemoveCustomSlot(ctx context.Context, professionalID uuid.UUID, date time.Time, at string) error {
	query := `DELETE FROM custom_slots WHERE professional_id = ? AND slot_date = ? AND slot_time = ?`

	result, err := s.db.ExecContext(ctx, query, professionalID.String(), formatDate(date), at)
	if err != nil {
		return fmt.Errorf("deleting custom slot: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("custom slot %s %s: %w", formatDate(date), at, agenda.ErrNotFound)
	}
	return nil
}

// ListCustomSlots returns the professional's custom slots within the date range (inclusive).
func (s *SQLite) ListCustomSlots(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*agenda.CustomSlot, error) {
	query := `
		SELECT slot_date, slot_time
		FROM custom_slots
		WHERE professional_id = ? AND slot_date >= ? AND slot_date <= ?
		ORDER BY slot_date, slot_time
	`

	rows, err := s.db.QueryContext(ctx, query, professionalID.String(), formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("querying custom slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*agenda.CustomSlot
	for rows.Next() {
		var date string
		c := agenda.CustomSlot{ProfessionalID: professionalID}
		if err := rows.Scan(&date, &c.Time); err != nil {
			return nil, fmt.Errorf("scanning custom slot: %w", err)
		}
		if c.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing custom slot date: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom slots: %w", err)
	}
	return out, nil
}

// SetDayStart creates or replaces the day-start override for a date.
func (s *SQLite) SetDayStart(ctx context.Context, d *agenda.DayStart) error {
	query := `
		INSERT INTO day_starts (professional_id, start_date, start_time)
		VALUES (?, ?, ?)
		ON CONFLICT(professional_id, start_date) DO UPDATE SET start_time = excluded.start_time
	`

	if _, err := s.db.ExecContext(ctx, query, d.ProfessionalID.String(), formatDate(d.Date), d.Time); err != nil {
		return fmt.Errorf("upserting day start: %w", err)
	}
	return nil
}

// ClearDayStart removes the override for a date. Clearing a date with no
// override is not an error.
func (s *SQLite) ClearDayStart(ctx context.Context, professionalID uuid.UUID, date time.Time) error {
	query := `DELETE FROM day_starts WHERE professional_id = ? AND start_date = ?`

	if _, err := s.db.ExecContext(ctx, query, professionalID.String(), formatDate(date)); err != nil {
		return fmt.Errorf("deleting day start: %w", err)
	}
	return nil
}

// ListDayStarts returns the overrides within the date range (inclusive).
func (s *SQLite) ListDayStarts(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*agenda.DayStart, error) {
	query := `
		SELECT start_date, start_time
		FROM day_starts
		WHERE professional_id = ? AND start_date >= ? AND start_date <= ?
		ORDER BY start_date
	`

	rows, err := s.db.QueryContext(ctx, query, professionalID.String(), formatDate(from), formatDate(to))
	if err != nil {
		return nil, fmt.Errorf("querying day starts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*agenda.DayStart
	for rows.Next() {
		var date string
		d := agenda.DayStart{ProfessionalID: professionalID}
		if err := rows.Scan(&date, &d.Time); err != nil {
			return nil, fmt.Errorf("scanning day start: %w", err)
		}
		if d.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing day start date: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day starts: %w", err)
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfessional(row scanner) (*agenda.Professional, error) {
	var (
		p         agenda.Professional
		id        string
		createdAt string
	)
	if err := row.Scan(&id, &p.Name, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing professional id: %w", err)
	}
	if p.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &p, nil
}

func scanSession(row scanner) (*agenda.Session, error) {
	var (
		sess      agenda.Session
		profID    string
		date      string
		createdAt string
	)
	err := row.Scan(
		&sess.ID,
		&profID,
		&sess.ClientName,
		&date,
		&sess.Time,
		&sess.Duration,
		&sess.Status,
		&sess.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if sess.ProfessionalID, err = uuid.Parse(profID); err != nil {
		return nil, fmt.Errorf("parsing professional id: %w", err)
	}
	if sess.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("parsing session date: %w", err)
	}
	if sess.CreatedAt, err = parseDate(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	return &sess, nil
}

func formatDate(t time.Time) string {
	return t.Format(agenda.DateLayout)
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(agenda.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; the value is a
	// local calendar date, not a UTC instant.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' && s[11:19] == "00:00:00" {
		if t, err := time.ParseInLocation(agenda.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
