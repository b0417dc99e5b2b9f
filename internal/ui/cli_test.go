package ui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/agenda/internal/agenda"
	"github.com/javiermolinar/agenda/internal/config"
	"github.com/javiermolinar/agenda/internal/dateutil"
	"github.com/javiermolinar/agenda/internal/db"
)

var testNow = time.Date(2025, 2, 3, 9, 0, 0, 0, time.Local) // Monday

type testApp struct {
	app    *App
	dir    string
	copied []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	DisableColor()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "agenda.db")

	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}

	ta := &testApp{dir: dir}
	ta.app = NewApp(repo, cfg)
	ta.app.configPath = filepath.Join(dir, "config.toml")
	ta.app.logger = zap.NewNop()
	ta.app.now = func() time.Time { return testNow }
	ta.app.copyText = func(s string) error {
		ta.copied = append(ta.copied, s)
		return nil
	}
	t.Cleanup(func() { _ = ta.app.Close() })
	return ta
}

func (ta *testApp) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ta.app.root.SetOut(&out)
	ta.app.root.SetErr(&out)
	ta.app.root.SetArgs(args)
	err := ta.app.ExecuteContext(context.Background())
	return out.String(), err
}

func (ta *testApp) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := ta.run(t, args...)
	if err != nil {
		t.Fatalf("agenda %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// withProfessional registers "Ana Paula" as the active professional.
func (ta *testApp) withProfessional(t *testing.T) *agenda.Professional {
	t.Helper()
	ta.mustRun(t, "pro", "add", "Ana Paula", "--use")
	pros, err := ta.app.repo.ListProfessionals(context.Background())
	if err != nil || len(pros) != 1 {
		t.Fatalf("ListProfessionals() = %v, %v", pros, err)
	}
	return pros[0]
}

func TestVersion(t *testing.T) {
	ta := newTestApp(t)
	out := ta.mustRun(t, "version")
	if !strings.HasPrefix(out, "agenda ") {
		t.Errorf("version output = %q", out)
	}
}

func TestProAddUseAndList(t *testing.T) {
	ta := newTestApp(t)
	p := ta.withProfessional(t)

	saved, err := config.LoadFrom(ta.app.configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if saved.ProfessionalID() != p.ID {
		t.Errorf("saved professional = %v, want %v", saved.ProfessionalID(), p.ID)
	}

	// Flag values persist between runs of the same command tree.
	ta.mustRun(t, "pro", "add", "Bia", "--use=false")
	out := ta.mustRun(t, "pro", "list")
	if !strings.Contains(out, "* "+p.ID.String()+"  Ana Paula") {
		t.Errorf("active professional not marked:\n%s", out)
	}
	if !strings.Contains(out, "  Bia") {
		t.Errorf("second professional missing:\n%s", out)
	}
}

func TestProUse_Unknown(t *testing.T) {
	ta := newTestApp(t)
	_, err := ta.run(t, "pro", "use", "6f1c2f4e-2f55-4d43-9c7e-8d3f7f1b2a10")
	if !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := ta.run(t, "pro", "use", "not-a-uuid"); !errors.Is(err, agenda.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestProfessionalResolution(t *testing.T) {
	ta := newTestApp(t)

	if _, err := ta.run(t, "free"); !errors.Is(err, agenda.ErrNoProfessional) {
		t.Fatalf("err = %v, want ErrNoProfessional", err)
	}

	// A single stored professional is used without configuration.
	ta.mustRun(t, "pro", "add", "Ana")
	if _, err := ta.run(t, "free"); err != nil {
		t.Fatalf("free with one professional: %v", err)
	}

	// Two professionals without a choice is ambiguous.
	ta.mustRun(t, "pro", "add", "Bia")
	if _, err := ta.run(t, "free"); !errors.Is(err, agenda.ErrNoProfessional) {
		t.Errorf("err = %v, want ErrNoProfessional", err)
	}
}

func TestFree(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)

	out := ta.mustRun(t, "session", "add", "Ana", "--date", "2025-02-03", "--time", "12:00", "--duration", "1h")
	if !strings.Contains(out, "Booked session #1: Ana 2025-02-03 12:00 (1h)") {
		t.Fatalf("session add output = %q", out)
	}

	out = ta.mustRun(t, "free", "--date", "2025-02-03", "--copy")
	for _, want := range []string{"Segunda (03/02)", "08:00-20:10 · 1h", "○ 12:00 Ana 1h", "08:15", "18:15", "Copied to clipboard."} {
		if !strings.Contains(out, want) {
			t.Errorf("free output missing %q:\n%s", want, out)
		}
	}

	want := "08:15\n09:30\n10:45\n13:15\n14:30\n15:45\n17:00\n18:15"
	if len(ta.copied) != 1 || ta.copied[0] != want {
		t.Errorf("copied = %q, want %q", ta.copied, want)
	}
}

func TestFree_InvalidInput(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)

	if _, err := ta.run(t, "free", "--duration", "45min"); !errors.Is(err, agenda.ErrInvalidDuration) {
		t.Errorf("err = %v, want ErrInvalidDuration", err)
	}
	if _, err := ta.run(t, "free", "--date", "03/02/2025"); !errors.Is(err, dateutil.ErrInvalidDateFormat) {
		t.Errorf("err = %v, want ErrInvalidDateFormat", err)
	}
}

func TestWeekExport(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)
	ta.mustRun(t, "block", "add", "--date", "2025-02-04", "--full-day", "--reason", "curso")

	out := ta.mustRun(t, "week", "--date", "2025-02-05", "--export", "--copy")
	if !strings.HasPrefix(out, "Horários da semana:\n\nSegunda (03/02)\n08:00\n") {
		t.Errorf("export = %q", out)
	}
	if strings.Contains(out, "Terça") {
		t.Errorf("closed Tuesday should be left out:\n%s", out)
	}
	if len(ta.copied) != 1 || !strings.HasPrefix(ta.copied[0], "Horários da semana:") {
		t.Errorf("copied = %q", ta.copied)
	}
}

func TestWeekGrid(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)
	ta.mustRun(t, "block", "add", "--date", "2025-02-04", "--full-day")

	out := ta.mustRun(t, "week")
	for _, want := range []string{"WEEK: 03/02 - 08/02 · 1h", "Segunda", "fechado", "08:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("week output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)
	ta.mustRun(t, "session", "add", "Ana", "--time", "12:00", "--notes", "corte")

	out := ta.mustRun(t, "session", "done", "1")
	if !strings.Contains(out, "Session #1 is now done") {
		t.Errorf("done output = %q", out)
	}
	out = ta.mustRun(t, "session", "list")
	if !strings.Contains(out, "=== Segunda 2025-02-03 ===") || !strings.Contains(out, "✓ #1 12:00-13:00 Ana") {
		t.Errorf("list output:\n%s", out)
	}

	out = ta.mustRun(t, "session", "cancel", "1", "--by", "client")
	if !strings.Contains(out, "cancelled_by_client") {
		t.Errorf("cancel output = %q", out)
	}
	s, err := ta.app.repo.GetSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if s.Status != agenda.StatusCancelledByClient || s.Notes != "corte" {
		t.Errorf("session = %+v", s)
	}
}

func TestSessionCommands_Errors(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "bad time", args: []string{"session", "add", "Ana", "--time", "9h"}, want: agenda.ErrInvalidTimeFormat},
		{name: "past date", args: []string{"session", "add", "Ana", "--date", "2025-01-31", "--time", "09:00"}, want: dateutil.ErrDateInPast},
		{name: "unknown session", args: []string{"session", "done", "99"}, want: agenda.ErrNotFound},
		{name: "bad id", args: []string{"session", "confirm", "abc"}, want: nil},
		{name: "bad cancel by", args: []string{"session", "cancel", "1", "--by", "salon"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ta.run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBlocks(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)

	out := ta.mustRun(t, "block", "add", "--date", "2025-02-03", "--start", "12:00", "--end", "13:00", "--reason", "almoço")
	if !strings.Contains(out, "Created block #1: 2025-02-03 12:00-13:00") {
		t.Errorf("block add output = %q", out)
	}
	out = ta.mustRun(t, "block", "list", "--start", "2025-02-03")
	if !strings.Contains(out, "#1 2025-02-03 12:00-13:00") {
		t.Errorf("block list output = %q", out)
	}
	ta.mustRun(t, "block", "rm", "1")
	out = ta.mustRun(t, "block", "list", "--start", "2025-02-03")
	if !strings.Contains(out, "No blocks found") {
		t.Errorf("block list after rm = %q", out)
	}

	if _, err := ta.run(t, "block", "add", "--full-day", "--start", "09:00"); err == nil {
		t.Error("--full-day with --start should fail")
	}
}

func TestCustomSlotsAndDayStart(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)

	out := ta.mustRun(t, "daystart", "set", "--date", "2025-02-03", "--time", "09:30")
	if !strings.Contains(out, "2025-02-03 now opens at 09:30") {
		t.Errorf("daystart output = %q", out)
	}
	ta.mustRun(t, "free", "--date", "2025-02-03", "--copy")

	// A usable custom slot anchors the day, so times pack back from it.
	ta.mustRun(t, "slot", "add", "--date", "2025-02-03", "--time", "19:00")
	if _, err := ta.run(t, "slot", "add", "--date", "2025-02-03", "--time", "19:00"); !errors.Is(err, agenda.ErrDuplicateCustomSlot) {
		t.Errorf("err = %v, want ErrDuplicateCustomSlot", err)
	}
	ta.mustRun(t, "free", "--date", "2025-02-03", "--copy")

	want := []string{
		"09:30\n10:45\n12:00\n13:15\n14:30\n15:45\n17:00\n18:15",
		"10:15\n11:30\n12:45\n14:00\n15:15\n16:30\n17:45\n19:00",
	}
	if len(ta.copied) != 2 || ta.copied[0] != want[0] || ta.copied[1] != want[1] {
		t.Errorf("copied = %q, want %q", ta.copied, want)
	}

	ta.mustRun(t, "slot", "rm", "--date", "2025-02-03", "--time", "19:00")
	if _, err := ta.run(t, "slot", "rm", "--date", "2025-02-03", "--time", "19:00"); !errors.Is(err, agenda.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	out = ta.mustRun(t, "daystart", "clear", "--date", "2025-02-03")
	if !strings.Contains(out, "opens at the default 08:00") {
		t.Errorf("daystart clear output = %q", out)
	}
}

func TestView_InvalidDuration(t *testing.T) {
	ta := newTestApp(t)
	if _, err := ta.run(t, "view", "--duration", "45min"); !errors.Is(err, agenda.ErrInvalidDuration) {
		t.Errorf("err = %v, want ErrInvalidDuration", err)
	}
}

func TestCopyOut_Empty(t *testing.T) {
	ta := newTestApp(t)
	ta.withProfessional(t)
	ta.mustRun(t, "block", "add", "--date", "2025-02-03", "--full-day")

	if _, err := ta.run(t, "free", "--date", "2025-02-03", "--copy"); err == nil {
		t.Error("copying a closed day should fail")
	}
	if len(ta.copied) != 0 {
		t.Errorf("copied = %q, want nothing", ta.copied)
	}
}
