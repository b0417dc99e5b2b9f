// Package availability loads a professional's day from storage, runs the
// free-slot engine over it and shapes the result for the CLI, the week view
// and the API.
package availability

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/slots"
)

// DayView is one day of a professional's agenda.
type DayView struct {
	Date     time.Time         `json:"-"`
	Day      string            `json:"date"`
	Weekday  string            `json:"weekday"`
	Closed   bool              `json:"closed"`
	DayStart string            `json:"day_start,omitempty"`
	DayEnd   string            `json:"day_end,omitempty"`
	Duration string            `json:"duration"`
	Free     []string          `json:"free"`
	Marked   []*agenda.Session `json:"marked"`
}

// WeekView is the Monday to Saturday agenda of one week.
type WeekView struct {
	Start    time.Time  `json:"-"`
	End      time.Time  `json:"-"`
	From     string     `json:"from"`
	To       string     `json:"to"`
	Duration string     `json:"duration"`
	Days     []*DayView `json:"days"`
}

// Service computes free times on top of an agenda.Repository.
type Service struct {
	repo        agenda.Repository
	hours       slots.Hours
	granularity int
	duration    string
	logger      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHours overrides the opening hours handed to the engine.
func WithHours(h slots.Hours) Option {
	return func(s *Service) { s.hours = h }
}

// WithGranularity sets the minimum gap, in minutes, between bookings.
func WithGranularity(minutes int) Option {
	return func(s *Service) { s.granularity = minutes }
}

// WithDefaultDuration sets the duration code used when a request names none.
func WithDefaultDuration(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.duration = code
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service reading from repo.
func NewService(repo agenda.Repository, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		hours:       slots.DefaultHours(),
		granularity: slots.DefaultGranularity,
		duration:    "1h",
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultDuration returns the duration code used when none is requested.
func (s *Service) DefaultDuration() string {
	return s.duration
}

// Day computes the free times of one day for the given duration code.
// An empty code uses the service default.
func (s *Service) Day(ctx context.Context, professionalID uuid.UUID, date time.Time, durationCode string) (*DayView, error) {
	code, err := s.resolveDuration(durationCode)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	return s.day(ctx, professionalID, dateutil.TruncateToDay(date), code)
}

// Week computes the Monday to Saturday week containing date. Days are
// loaded and computed concurrently.
func (s *Service) Week(ctx context.Context, professionalID uuid.UUID, date time.Time, durationCode string) (*WeekView, error) {
	code, err := s.resolveDuration(durationCode)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	days := dateutil.WorkWeek(date)
	views := make([]*DayView, len(days))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range days {
		i, d := i, d
		g.Go(func() error {
			v, err := s.day(gctx, professionalID, d, code)
			if err != nil {
				return fmt.Errorf("computing %s: %w", d.Format(dateutil.Layout), err)
			}
			views[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start, end := days[0], days[len(days)-1]
	s.logger.Debug("week computed",
		zap.String("professional", professionalID.String()),
		zap.String("from", start.Format(dateutil.Layout)),
		zap.String("duration", code),
	)

	return &WeekView{
		Start:    start,
		End:      end,
		From:     start.Format(dateutil.Layout),
		To:       end.Format(dateutil.Layout),
		Duration: code,
		Days:     views,
	}, nil
}

func (s *Service) resolveDuration(code string) (string, error) {
	if code == "" {
		code = s.duration
	}
	if !slots.ValidDurationCode(code) {
		return "", fmt.Errorf("%w: %q", agenda.ErrInvalidDuration, code)
	}
	return code, nil
}

func (s *Service) day(ctx context.Context, professionalID uuid.UUID, date time.Time, code string) (*DayView, error) {
	snap, err := s.load(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	p := snap.params(date, code, s.granularity, s.hours)
	free := slots.Compute(p)

	v := &DayView{
		Date:     date,
		Day:      date.Format(dateutil.Layout),
		Weekday:  dateutil.WeekdayLabel(date.Weekday()),
		Duration: code,
		Free:     free,
		Marked:   snap.marked(),
	}
	if start, end, ok := slots.Window(p); ok {
		v.DayStart = slots.FormatClock(start)
		v.DayEnd = slots.FormatClock(end)
	} else {
		v.Closed = true
	}

	s.logger.Debug("day computed",
		zap.String("date", v.Day),
		zap.Bool("closed", v.Closed),
		zap.Int("free", len(free)),
		zap.Int("marked", len(v.Marked)),
	)
	return v, nil
}

// snapshot is everything stored for one professional on one date.
type snapshot struct {
	sessions  []*agenda.Session
	blocks    []*agenda.Block
	custom    []*agenda.CustomSlot
	dayStarts []*agenda.DayStart
}

func (s *Service) load(ctx context.Context, professionalID uuid.UUID, date time.Time) (*snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	if snap.sessions, err = s.repo.ListSessions(ctx, professionalID, date, date); err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}
	if snap.blocks, err = s.repo.ListBlocks(ctx, professionalID, date, date); err != nil {
		return nil, fmt.Errorf("loading blocks: %w", err)
	}
	if snap.custom, err = s.repo.ListCustomSlots(ctx, professionalID, date, date); err != nil {
		return nil, fmt.Errorf("loading custom slots: %w", err)
	}
	if snap.dayStarts, err = s.repo.ListDayStarts(ctx, professionalID, date, date); err != nil {
		return nil, fmt.Errorf("loading day start: %w", err)
	}
	return &snap, nil
}

func (snap *snapshot) params(date time.Time, code string, granularity int, hours slots.Hours) slots.Params {
	p := slots.Params{
		Date:         date,
		DurationCode: code,
		Granularity:  granularity,
		Hours:        hours,
	}
	for _, sess := range snap.sessions {
		p.Sessions = append(p.Sessions, sess.SlotSession())
	}
	for _, b := range snap.blocks {
		p.Blocks = append(p.Blocks, b.SlotBlock())
	}
	for _, c := range snap.custom {
		p.CustomSlots = append(p.CustomSlots, c.Time)
	}
	if len(snap.dayStarts) > 0 {
		p.DayStartOverride = snap.dayStarts[0].Time
	}
	return p
}

// marked returns the day's occupying sessions that have a time, by time.
func (snap *snapshot) marked() []*agenda.Session {
	out := []*agenda.Session{}
	for _, sess := range snap.sessions {
		if sess.Status.Occupies() && sess.Time != "" {
			out = append(out, sess)
		}
	}
	slices.SortStableFunc(out, func(a, b *agenda.Session) int {
		am, _ := slots.ParseClock(a.Time)
		bm, _ := slots.ParseClock(b.Time)
		return am - bm
	})
	return out
}
