package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/agenda/internal/agenda"
)

var monday = time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}

func newTestProfessional(t *testing.T, repo *SQLite, name string) *agenda.Professional {
	t.Helper()

	p, err := agenda.NewProfessional(name)
	if err != nil {
		t.Fatalf("NewProfessional failed: %v", err)
	}
	if err := repo.CreateProfessional(context.Background(), p); err != nil {
		t.Fatalf("CreateProfessional failed: %v", err)
	}
	return p
}

func createSession(t *testing.T, repo *SQLite, profID uuid.UUID, client, date, at, duration string) *agenda.Session {
	t.Helper()

	s, err := agenda.NewSession(profID, client, date, at, duration)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := repo.CreateSession(context.Background(), s); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return s
}

func TestProfessionals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	leticia := newTestProfessional(t, repo, "Letícia")
	newTestProfessional(t, repo, "Ana")

	got, err := repo.GetProfessional(ctx, leticia.ID)
	if err != nil {
		t.Fatalf("GetProfessional failed: %v", err)
	}
	if got.Name != "Letícia" || got.ID != leticia.ID {
		t.Errorf("got %+v, want %+v", got, leticia)
	}

	all, err := repo.ListProfessionals(ctx)
	if err != nil {
		t.Fatalf("ListProfessionals failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d professionals, want 2", len(all))
	}
	if all[0].Name != "Ana" {
		t.Errorf("expected professionals ordered by name, got %q first", all[0].Name)
	}

	_, err = repo.GetProfessional(ctx, uuid.New())
	if !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("got error %v, want %v", err, agenda.ErrNotFound)
	}
}

func TestCreateSession(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")

	s := createSession(t, repo, p.ID, "Ana", "2025-02-03", "09:00", "1h30")
	if s.ID == 0 {
		t.Fatal("expected ID to be set after insert")
	}

	got, err := repo.GetSession(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ClientName != "Ana" || got.Time != "09:00" || got.Duration != "1h30" {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.Status != agenda.StatusScheduled {
		t.Errorf("got status %q, want %q", got.Status, agenda.StatusScheduled)
	}
	if !got.Date.Equal(monday) {
		t.Errorf("got date %v, want %v", got.Date, monday)
	}
	if got.ProfessionalID != p.ID {
		t.Errorf("got professional %s, want %s", got.ProfessionalID, p.ID)
	}
}

func TestGetSession_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetSession(context.Background(), 999)
	if !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("got error %v, want %v", err, agenda.ErrNotFound)
	}
}

func TestListSessions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")
	other := newTestProfessional(t, repo, "Ana")

	createSession(t, repo, p.ID, "Late", "2025-02-03", "15:00", "1h")
	createSession(t, repo, p.ID, "Early", "2025-02-03", "09:00", "1h")
	createSession(t, repo, p.ID, "Tuesday", "2025-02-04", "10:00", "1h")
	createSession(t, repo, p.ID, "Next week", "2025-02-10", "10:00", "1h")
	createSession(t, repo, other.ID, "Other", "2025-02-03", "10:00", "1h")

	got, err := repo.ListSessions(ctx, p.ID, monday, monday.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}

	want := []string{"Early", "Late", "Tuesday"}
	if len(got) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].ClientName != name {
			t.Errorf("session %d: got %q, want %q", i, got[i].ClientName, name)
		}
	}
}

func TestSetSessionStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")
	s := createSession(t, repo, p.ID, "Ana", "2025-02-03", "09:00", "1h")

	statuses := []agenda.Status{
		agenda.StatusConfirmed,
		agenda.StatusDone,
		agenda.StatusCancelledByClient,
	}
	for _, status := range statuses {
		if err := repo.SetSessionStatus(ctx, s.ID, status); err != nil {
			t.Fatalf("SetSessionStatus(%s) failed: %v", status, err)
		}
		got, err := repo.GetSession(ctx, s.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.Status != status {
			t.Errorf("got status %q, want %q", got.Status, status)
		}
	}

	if err := repo.SetSessionStatus(ctx, 999, agenda.StatusDone); !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("got error %v, want %v", err, agenda.ErrNotFound)
	}
	if err := repo.SetSessionStatus(ctx, s.ID, "archived"); !errors.Is(err, agenda.ErrInvalidStatus) {
		t.Errorf("got error %v, want %v", err, agenda.ErrInvalidStatus)
	}
}

func TestBlocks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")

	partial, err := agenda.NewBlock(p.ID, "2025-02-03", "12:00", "13:00", "lunch")
	if err != nil {
		t.Fatalf("NewBlock failed: %v", err)
	}
	full, err := agenda.NewFullDayBlock(p.ID, "2025-02-03", "course")
	if err != nil {
		t.Fatalf("NewFullDayBlock failed: %v", err)
	}
	for _, b := range []*agenda.Block{partial, full} {
		if err := repo.CreateBlock(ctx, b); err != nil {
			t.Fatalf("CreateBlock failed: %v", err)
		}
		if b.ID == 0 {
			t.Error("expected ID to be set after insert")
		}
	}

	got, err := repo.ListBlocks(ctx, p.ID, monday, monday)
	if err != nil {
		t.Fatalf("ListBlocks failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got))
	}
	if !got[0].FullDay || got[0].Reason != "course" {
		t.Errorf("expected full-day block first, got %+v", got[0])
	}
	if got[1].Start != "12:00" || got[1].End != "13:00" || got[1].FullDay {
		t.Errorf("unexpected partial block: %+v", got[1])
	}

	if err := repo.DeleteBlock(ctx, full.ID); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}
	got, err = repo.ListBlocks(ctx, p.ID, monday, monday)
	if err != nil {
		t.Fatalf("ListBlocks failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d blocks after delete, want 1", len(got))
	}

	if err := repo.DeleteBlock(ctx, full.ID); !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("got error %v, want %v", err, agenda.ErrNotFound)
	}
}

func TestCustomSlots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")

	for _, at := range []string{"14:00", "09:00"} {
		c, err := agenda.NewCustomSlot(p.ID, "2025-02-03", at)
		if err != nil {
			t.Fatalf("NewCustomSlot failed: %v", err)
		}
		if err := repo.AddCustomSlot(ctx, c); err != nil {
			t.Fatalf("AddCustomSlot failed: %v", err)
		}
	}

	dup, _ := agenda.NewCustomSlot(p.ID, "2025-02-03", "09:00")
	if err := repo.AddCustomSlot(ctx, dup); !errors.Is(err, agenda.ErrDuplicateCustomSlot) {
		t.Errorf("got error %v, want %v", err, agenda.ErrDuplicateCustomSlot)
	}

	got, err := repo.ListCustomSlots(ctx, p.ID, monday, monday)
	if err != nil {
		t.Fatalf("ListCustomSlots failed: %v", err)
	}
	if len(got) != 2 || got[0].Time != "09:00" || got[1].Time != "14:00" {
		t.Fatalf("unexpected custom slots: %+v", got)
	}

	if err := repo.RemoveCustomSlot(ctx, p.ID, monday, "09:00"); err != nil {
		t.Fatalf("RemoveCustomSlot failed: %v", err)
	}
	if err := repo.RemoveCustomSlot(ctx, p.ID, monday, "09:00"); !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("got error %v, want %v", err, agenda.ErrNotFound)
	}
}

func TestDayStarts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := newTestProfessional(t, repo, "Letícia")

	for _, at := range []string{"09:00", "09:30"} {
		d, err := agenda.NewDayStart(p.ID, "2025-02-03", at)
		if err != nil {
			t.Fatalf("NewDayStart failed: %v", err)
		}
		if err := repo.SetDayStart(ctx, d); err != nil {
			t.Fatalf("SetDayStart failed: %v", err)
		}
	}

	got, err := repo.ListDayStarts(ctx, p.ID, monday, monday.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("ListDayStarts failed: %v", err)
	}
	if len(got) != 1 || got[0].Time != "09:30" {
		t.Fatalf("expected a single upserted override at 09:30, got %+v", got)
	}
	if !got[0].Date.Equal(monday) {
		t.Errorf("got date %v, want %v", got[0].Date, monday)
	}

	if err := repo.ClearDayStart(ctx, p.ID, monday); err != nil {
		t.Fatalf("ClearDayStart failed: %v", err)
	}
	if err := repo.ClearDayStart(ctx, p.ID, monday); err != nil {
		t.Errorf("clearing a missing override should succeed, got %v", err)
	}

	got, err = repo.ListDayStarts(ctx, p.ID, monday, monday)
	if err != nil {
		t.Fatalf("ListDayStarts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d overrides after clear, want 0", len(got))
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "date only", input: "2025-02-03", want: monday},
		{name: "sqlite midnight", input: "2025-02-03T00:00:00Z", want: monday},
		{name: "rfc3339", input: "2025-02-03T10:30:00Z", want: time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)},
		{name: "sqlite datetime", input: "2025-02-03 10:30:00", want: time.Date(2025, 2, 3, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := parseDate("03/02/2025"); err == nil {
		t.Error("expected error for unknown format")
	}
}
