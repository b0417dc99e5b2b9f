package agenda

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the storage interface for a professional's agenda.
// Every query is scoped to one professional; date ranges are inclusive.
type Repository interface {
	// CreateProfessional stores a new professional.
	CreateProfessional(ctx context.Context, p *Professional) error

	// GetProfessional retrieves a professional by ID.
	// Returns ErrNotFound if it does not exist.
	GetProfessional(ctx context.Context, id uuid.UUID) (*Professional, error)

	// ListProfessionals returns all professionals ordered by name.
	ListProfessionals(ctx context.Context) ([]*Professional, error)

	// CreateSession adds a new session and sets its ID.
	CreateSession(ctx context.Context, s *Session) error

	// GetSession retrieves a session by ID.
	// Returns ErrNotFound if it does not exist.
	GetSession(ctx context.Context, id int64) (*Session, error)

	// ListSessions returns the professional's sessions in the date range,
	// in every status, ordered by date and time.
	ListSessions(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*Session, error)

	// SetSessionStatus moves a session to a new status.
	SetSessionStatus(ctx context.Context, id int64, status Status) error

	// CreateBlock adds a full-day or partial block and sets its ID.
	CreateBlock(ctx context.Context, b *Block) error

	// DeleteBlock removes a block.
	DeleteBlock(ctx context.Context, id int64) error

	// ListBlocks returns the professional's blocks in the date range.
	ListBlocks(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*Block, error)

	// AddCustomSlot stores a custom slot.
	// Returns ErrDuplicateCustomSlot when the same date and time already exist.
	AddCustomSlot(ctx context.Context, c *CustomSlot) error

	// RemoveCustomSlot deletes a custom slot. Returns ErrNotFound if absent.
	RemoveCustomSlot(ctx context.Context, professionalID uuid.UUID, date time.Time, at string) error

	// ListCustomSlots returns the professional's custom slots in the date range.
	ListCustomSlots(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*CustomSlot, error)

	// SetDayStart creates or replaces the opening time override for a date.
	SetDayStart(ctx context.Context, d *DayStart) error

	// ClearDayStart removes the override for a date, if any.
	ClearDayStart(ctx context.Context, professionalID uuid.UUID, date time.Time) error

	// ListDayStarts returns the overrides in the date range.
	ListDayStarts(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*DayStart, error)

	// Close releases any resources held by the repository.
	Close() error
}
