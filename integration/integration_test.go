package integration

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/availability"
	"github.com/javiermolinar/agenda/internal/db"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// mustParseDate parses a local date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

func createProfessional(t *testing.T, repo *db.SQLite, name string) uuid.UUID {
	t.Helper()
	p, err := agenda.NewProfessional(name)
	if err != nil {
		t.Fatalf("failed to build professional: %v", err)
	}
	if err := repo.CreateProfessional(context.Background(), p); err != nil {
		t.Fatalf("failed to insert professional: %v", err)
	}
	return p.ID
}

// createSession is a helper to create and insert a session.
func createSession(t *testing.T, repo *db.SQLite, pro uuid.UUID, client, date, at, duration string) *agenda.Session {
	t.Helper()
	s, err := agenda.NewSession(pro, client, date, at, duration)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := repo.CreateSession(context.Background(), s); err != nil {
		t.Fatalf("failed to insert session: %v", err)
	}
	return s
}

func freeTimes(t *testing.T, svc *availability.Service, pro uuid.UUID, date, duration string) []string {
	t.Helper()
	v, err := svc.Day(context.Background(), pro, mustParseDate(t, date), duration)
	if err != nil {
		t.Fatalf("Day(%s) failed: %v", date, err)
	}
	return v.Free
}

func assertTimes(t *testing.T, got []string, want ...string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("free = %v, want %v", got, want)
	}
}

func TestFreeTimes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, repo *db.SQLite, pro uuid.UUID)
		date  string
		want  []string
	}{
		{
			name: "empty weekday",
			date: "2025-02-03",
			want: []string{"08:00", "09:15", "10:30", "11:45", "13:00", "14:15", "15:30", "16:45", "18:00"},
		},
		{
			name: "empty saturday closes early",
			date: "2025-02-08",
			want: []string{"08:00", "09:15", "10:30", "11:45", "13:00", "14:15"},
		},
		{
			name: "sunday is closed",
			date: "2025-02-09",
			want: []string{},
		},
		{
			name: "session anchors the day, cancelled session ignored",
			setup: func(t *testing.T, repo *db.SQLite, pro uuid.UUID) {
				createSession(t, repo, pro, "Ana", "2025-02-03", "12:00", "1h")
				bia := createSession(t, repo, pro, "Bia", "2025-02-03", "09:00", "1h")
				if err := repo.SetSessionStatus(context.Background(), bia.ID, agenda.StatusCancelledByClient); err != nil {
					t.Fatalf("SetSessionStatus failed: %v", err)
				}
			},
			date: "2025-02-03",
			want: []string{"08:15", "09:30", "10:45", "13:15", "14:30", "15:45", "17:00", "18:15"},
		},
		{
			name: "early block pushes opening",
			setup: func(t *testing.T, repo *db.SQLite, pro uuid.UUID) {
				b, err := agenda.NewBlock(pro, "2025-02-03", "08:00", "09:00", "reunião")
				if err != nil {
					t.Fatalf("NewBlock failed: %v", err)
				}
				if err := repo.CreateBlock(context.Background(), b); err != nil {
					t.Fatalf("CreateBlock failed: %v", err)
				}
			},
			date: "2025-02-03",
			want: []string{"09:15", "10:30", "11:45", "13:00", "14:15", "15:30", "16:45", "18:00"},
		},
		{
			name: "full day block closes the day",
			setup: func(t *testing.T, repo *db.SQLite, pro uuid.UUID) {
				b, err := agenda.NewFullDayBlock(pro, "2025-02-04", "curso")
				if err != nil {
					t.Fatalf("NewFullDayBlock failed: %v", err)
				}
				if err := repo.CreateBlock(context.Background(), b); err != nil {
					t.Fatalf("CreateBlock failed: %v", err)
				}
			},
			date: "2025-02-04",
			want: []string{},
		},
		{
			name: "day start override",
			setup: func(t *testing.T, repo *db.SQLite, pro uuid.UUID) {
				d, err := agenda.NewDayStart(pro, "2025-02-03", "09:30")
				if err != nil {
					t.Fatalf("NewDayStart failed: %v", err)
				}
				if err := repo.SetDayStart(context.Background(), d); err != nil {
					t.Fatalf("SetDayStart failed: %v", err)
				}
			},
			date: "2025-02-03",
			want: []string{"09:30", "10:45", "12:00", "13:15", "14:30", "15:45", "17:00", "18:15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := openRepo(t)
			pro := createProfessional(t, repo, "Ana Paula")
			if tt.setup != nil {
				tt.setup(t, repo, pro)
			}
			svc := availability.NewService(repo)
			assertTimes(t, freeTimes(t, svc, pro, tt.date, "1h"), tt.want...)
		})
	}
}

func TestSessionLifecycleFreesTime(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	pro := createProfessional(t, repo, "Ana Paula")
	svc := availability.NewService(repo)

	s := createSession(t, repo, pro, "Ana", "2025-02-03", "12:00", "1h")
	booked := []string{"08:15", "09:30", "10:45", "13:15", "14:30", "15:45", "17:00", "18:15"}

	for _, status := range []agenda.Status{agenda.StatusConfirmed, agenda.StatusDone} {
		if err := repo.SetSessionStatus(ctx, s.ID, status); err != nil {
			t.Fatalf("SetSessionStatus(%s) failed: %v", status, err)
		}
		assertTimes(t, freeTimes(t, svc, pro, "2025-02-03", "1h"), booked...)
	}

	if err := repo.SetSessionStatus(ctx, s.ID, agenda.StatusCancelled); err != nil {
		t.Fatalf("SetSessionStatus(cancelled) failed: %v", err)
	}
	assertTimes(t, freeTimes(t, svc, pro, "2025-02-03", "1h"),
		"08:00", "09:15", "10:30", "11:45", "13:00", "14:15", "15:30", "16:45", "18:00")
}

func TestProfessionalsAreIsolated(t *testing.T) {
	repo := openRepo(t)
	ana := createProfessional(t, repo, "Ana Paula")
	bia := createProfessional(t, repo, "Bia")
	createSession(t, repo, ana, "Carla", "2025-02-03", "12:00", "1h")

	svc := availability.NewService(repo)
	assertTimes(t, freeTimes(t, svc, bia, "2025-02-03", "1h"),
		"08:00", "09:15", "10:30", "11:45", "13:00", "14:15", "15:30", "16:45", "18:00")

	v, err := svc.Day(context.Background(), bia, mustParseDate(t, "2025-02-03"), "1h")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if len(v.Marked) != 0 {
		t.Errorf("Bia sees %d marked sessions, want 0", len(v.Marked))
	}

	_, err = svc.Day(context.Background(), uuid.New(), mustParseDate(t, "2025-02-03"), "1h")
	if !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("unknown professional err = %v, want ErrNotFound", err)
	}
}

func TestWeekExport(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	pro := createProfessional(t, repo, "Ana Paula")

	s := createSession(t, repo, pro, "Ana", "2025-02-03", "12:00", "1h")
	if err := repo.SetSessionStatus(ctx, s.ID, agenda.StatusDone); err != nil {
		t.Fatalf("SetSessionStatus failed: %v", err)
	}
	for _, day := range []string{"2025-02-04", "2025-02-05", "2025-02-06", "2025-02-07", "2025-02-08"} {
		b, err := agenda.NewFullDayBlock(pro, day, "férias")
		if err != nil {
			t.Fatalf("NewFullDayBlock failed: %v", err)
		}
		if err := repo.CreateBlock(ctx, b); err != nil {
			t.Fatalf("CreateBlock failed: %v", err)
		}
	}

	svc := availability.NewService(repo)
	week, err := svc.Week(ctx, pro, mustParseDate(t, "2025-02-06"), "")
	if err != nil {
		t.Fatalf("Week failed: %v", err)
	}
	if week.From != "2025-02-03" || week.To != "2025-02-08" || len(week.Days) != 6 {
		t.Fatalf("week = %s..%s with %d days", week.From, week.To, len(week.Days))
	}

	want := strings.Join([]string{
		"Horários da semana:",
		"",
		"Segunda (03/02)",
		"08:15",
		"09:30",
		"10:45",
		"12:00 Ana 1h ✅",
		"13:15",
		"14:30",
		"15:45",
		"17:00",
		"18:15",
	}, "\n")
	if got := availability.ExportText(week); got != want {
		t.Errorf("ExportText() =\n%s\nwant\n%s", got, want)
	}
}

func TestCustomSlots(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	pro := createProfessional(t, repo, "Ana Paula")

	c, err := agenda.NewCustomSlot(pro, "2025-02-03", "19:00")
	if err != nil {
		t.Fatalf("NewCustomSlot failed: %v", err)
	}
	if err := repo.AddCustomSlot(ctx, c); err != nil {
		t.Fatalf("AddCustomSlot failed: %v", err)
	}
	if err := repo.AddCustomSlot(ctx, c); !errors.Is(err, agenda.ErrDuplicateCustomSlot) {
		t.Fatalf("duplicate AddCustomSlot err = %v", err)
	}

	svc := availability.NewService(repo)
	assertTimes(t, freeTimes(t, svc, pro, "2025-02-03", "1h"),
		"09:00", "10:15", "11:30", "12:45", "14:00", "15:15", "16:30", "17:45", "19:00")
}
