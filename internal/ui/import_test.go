package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/db"
)

func TestImportAgenda(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "source.db")
	destPath := filepath.Join(dir, "dest.db")

	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("creating source repo: %v", err)
	}

	pro, err := agenda.NewProfessional("Ana Paula")
	if err != nil {
		t.Fatalf("NewProfessional() error = %v", err)
	}
	if err := sourceRepo.CreateProfessional(ctx, pro); err != nil {
		t.Fatalf("CreateProfessional() error = %v", err)
	}

	session, err := agenda.NewSession(pro.ID, "Bia", "2025-02-03", "12:00", "1h30")
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	session.Status = agenda.StatusDone
	if err := sourceRepo.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	block, err := agenda.NewFullDayBlock(pro.ID, "2025-02-04", "curso")
	if err != nil {
		t.Fatalf("NewFullDayBlock() error = %v", err)
	}
	if err := sourceRepo.CreateBlock(ctx, block); err != nil {
		t.Fatalf("CreateBlock() error = %v", err)
	}

	custom, err := agenda.NewCustomSlot(pro.ID, "2025-02-05", "19:00")
	if err != nil {
		t.Fatalf("NewCustomSlot() error = %v", err)
	}
	if err := sourceRepo.AddCustomSlot(ctx, custom); err != nil {
		t.Fatalf("AddCustomSlot() error = %v", err)
	}

	start, err := agenda.NewDayStart(pro.ID, "2025-02-06", "09:30")
	if err != nil {
		t.Fatalf("NewDayStart() error = %v", err)
	}
	if err := sourceRepo.SetDayStart(ctx, start); err != nil {
		t.Fatalf("SetDayStart() error = %v", err)
	}
	_ = sourceRepo.Close()

	destRepo, err := db.New(destPath)
	if err != nil {
		t.Fatalf("creating destination repo: %v", err)
	}
	defer func() { _ = destRepo.Close() }()

	stats, err := importAgenda(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("importAgenda failed: %v", err)
	}
	want := importStats{Professionals: 1, Sessions: 1, Blocks: 1, CustomSlots: 1, DayStarts: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}

	got, err := destRepo.GetProfessional(ctx, pro.ID)
	if err != nil {
		t.Fatalf("imported professional missing: %v", err)
	}
	if got.Name != "Ana Paula" {
		t.Errorf("Name = %q, want Ana Paula", got.Name)
	}

	week := time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)
	sessions, err := destRepo.ListSessions(ctx, pro.ID, week, week.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if s := sessions[0]; s.ClientName != "Bia" || s.Time != "12:00" || s.Duration != "1h30" || s.Status != agenda.StatusDone {
		t.Errorf("imported session = %+v", s)
	}

	// Importing again keeps the professional and skips existing custom slots.
	stats, err = importAgenda(ctx, destRepo, sourcePath)
	if err != nil {
		t.Fatalf("second importAgenda failed: %v", err)
	}
	want = importStats{Sessions: 1, Blocks: 1, DayStarts: 1}
	if stats != want {
		t.Errorf("second stats = %+v, want %+v", stats, want)
	}
}

func TestImportCmd_SameDatabase(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.run(t, "import", ta.app.config.Storage.DBPath)
	if err == nil || !strings.Contains(err.Error(), "matches current database") {
		t.Errorf("err = %v, want same database error", err)
	}
	_, err = ta.run(t, "import", filepath.Join(ta.dir, "missing.db"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("err = %v, want missing database error", err)
	}
}

func TestResolvePath(t *testing.T) {
	if _, err := resolvePath("  "); err == nil {
		t.Error("empty path should fail")
	}
	got, err := resolvePath("agenda.db")
	if err != nil {
		t.Fatalf("resolvePath() error = %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("resolvePath() = %q, want absolute", got)
	}
}
