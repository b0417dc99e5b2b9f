// Package agenda defines the core domain types for a professional's agenda.
package agenda

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/slots"
)

// Validation errors.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidDuration   = errors.New("duration must be 30min, 1h, 1h30, 2h or <N>h<M> up to 24h")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidStatus     = errors.New("status must be scheduled, confirmed, done or cancelled")
	ErrInvalidID         = errors.New("professional id must be a uuid")
	ErrInvalidDate       = dateutil.ErrInvalidDateFormat
)

// Domain errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateCustomSlot = errors.New("custom slot already exists")
	ErrNoProfessional      = errors.New("no professional selected")
)

// DateLayout is the on-disk and wire format for calendar dates.
const DateLayout = "2006-01-02"

// Status represents the state of a session.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"

	StatusCancelledByClient       Status = "cancelled_by_client"
	StatusCancelledByProfessional Status = "cancelled_by_professional"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusDone,
		StatusCancelled, StatusCancelledByClient, StatusCancelledByProfessional:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the status is any of the cancelled variants.
func (s Status) IsCancelled() bool {
	return strings.HasPrefix(string(s), string(StatusCancelled))
}

// Occupies reports whether a session with this status holds its time.
func (s Status) Occupies() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusDone
}

// ParseStatus validates a user supplied status.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// Professional is the resource whose agenda is computed. Every read and write
// is scoped by its ID.
type Professional struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfessional creates a professional with a fresh identifier.
func NewProfessional(name string) (*Professional, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Professional{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// ParseProfessionalID parses a professional identifier.
func ParseProfessionalID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Session is a booked appointment.
type Session struct {
	ID             int64     `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ClientName     string    `json:"client_name"`
	Date           time.Time `json:"date"`
	Time           string    `json:"time"`     // "HH:MM", empty when not yet set
	Duration       string    `json:"duration"` // duration code, e.g. "1h30"
	Status         Status    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewSession creates a scheduled session with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// at may be empty for sessions whose time is still open.
func NewSession(professionalID uuid.UUID, client, date, at, duration string) (*Session, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, ErrEmptyName
	}

	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if at != "" && !slots.ValidClock(at) {
		return nil, fmt.Errorf("session time: %w", ErrInvalidTimeFormat)
	}

	if duration == "" {
		duration = "1h"
	}
	if !slots.ValidDurationCode(duration) {
		return nil, ErrInvalidDuration
	}

	return &Session{
		ProfessionalID: professionalID,
		ClientName:     client,
		Date:           d,
		Time:           at,
		Duration:       duration,
		Status:         StatusScheduled,
		CreatedAt:      time.Now(),
	}, nil
}

// Minutes returns the session length in minutes.
func (s *Session) Minutes() int {
	return slots.DurationMinutes(s.Duration)
}

// End returns the "HH:MM" end time, or "" when the session has no time.
func (s *Session) End() string {
	start, ok := slots.ParseClock(s.Time)
	if !ok {
		return ""
	}
	return slots.FormatClock(start + s.Minutes())
}

// SlotSession converts the session to the engine's input shape.
func (s *Session) SlotSession() slots.Session {
	return slots.Session{
		Date:     s.Date.Format(DateLayout),
		Time:     s.Time,
		Duration: s.Duration,
		Status:   string(s.Status),
	}
}

// Block closes a professional's whole day or part of it.
type Block struct {
	ID             int64
	ProfessionalID uuid.UUID
	Date           time.Time
	Start          string // "HH:MM", empty for full-day blocks
	End            string
	FullDay        bool
	Reason         string
}

// NewBlock creates a partial block. start and end must be HH:MM with end after start.
func NewBlock(professionalID uuid.UUID, date, start, end, reason string) (*Block, error) {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if !slots.ValidClock(start) {
		return nil, fmt.Errorf("start time: %w", ErrInvalidTimeFormat)
	}
	if !slots.ValidClock(end) {
		return nil, fmt.Errorf("end time: %w", ErrInvalidTimeFormat)
	}
	if end <= start {
		return nil, ErrEndBeforeStart
	}
	return &Block{
		ProfessionalID: professionalID,
		Date:           d,
		Start:          start,
		End:            end,
		Reason:         strings.TrimSpace(reason),
	}, nil
}

// NewFullDayBlock creates a block that closes the whole day.
func NewFullDayBlock(professionalID uuid.UUID, date, reason string) (*Block, error) {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return &Block{
		ProfessionalID: professionalID,
		Date:           d,
		FullDay:        true,
		Reason:         strings.TrimSpace(reason),
	}, nil
}

// SlotBlock converts the block to the engine's input shape.
func (b *Block) SlotBlock() slots.Block {
	return slots.Block{
		Date:    b.Date.Format(DateLayout),
		Start:   b.Start,
		End:     b.End,
		FullDay: b.FullDay,
	}
}

// CustomSlot is an operator-declared start time that is always offered when
// it keeps clear of real bookings.
type CustomSlot struct {
	ProfessionalID uuid.UUID
	Date           time.Time
	Time           string
}

// NewCustomSlot validates a custom slot.
func NewCustomSlot(professionalID uuid.UUID, date, at string) (*CustomSlot, error) {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if !slots.ValidClock(at) {
		return nil, ErrInvalidTimeFormat
	}
	return &CustomSlot{ProfessionalID: professionalID, Date: d, Time: at}, nil
}

// DayStart overrides the opening time for one date.
type DayStart struct {
	ProfessionalID uuid.UUID
	Date           time.Time
	Time           string
}

// NewDayStart validates a day-start override.
func NewDayStart(professionalID uuid.UUID, date, at string) (*DayStart, error) {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if !slots.ValidClock(at) {
		return nil, ErrInvalidTimeFormat
	}
	return &DayStart{ProfessionalID: professionalID, Date: d, Time: at}, nil
}
