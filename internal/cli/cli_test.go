package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/archiver/internal/backup"
	"github.com/julianstephens/archiver/internal/constants"
	"github.com/julianstephens/archiver/internal/day"
	apperrors "github.com/julianstephens/archiver/internal/errors"
	"github.com/julianstephens/archiver/internal/storage"
)

func setupTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.Open(ctx, storage.Config{Path: filepath.Join(t.TempDir(), "archive.db")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &Context{Ctx: ctx, Store: store, Out: out, In: strings.NewReader("")}, out
}

func mustDay(t *testing.T, text string) DayArg {
	t.Helper()
	var a DayArg
	if err := a.UnmarshalText([]byte(text)); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	return a
}

func TestDayArgUnmarshalText(t *testing.T) {
	today := day.Today()
	tests := []struct {
		input   string
		want    day.Day
		wantErr error
	}{
		{"2024-06-01", day.MustParse("2024-06-01"), nil},
		{"today", today, nil},
		{" Yesterday ", today.AddDays(-1), nil},
		{"tomorrow", today.AddDays(1), nil},
		{"2024-02-30", day.Day{}, apperrors.ErrInvalidCalendarDate},
		{"soon", day.Day{}, apperrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var a DayArg
			err := a.UnmarshalText([]byte(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.Day != tt.want {
				t.Errorf("expected %s, got %s", tt.want, a.Day)
			}
		})
	}
}

func TestEntryAddAndDayShow(t *testing.T) {
	ctx, out := setupTestContext(t)

	add := &EntryAddCmd{Date: mustDay(t, "2024-06-01"), Content: []string{"Kaffee", "getrunken"}}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("entry add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Entry added to 2024-06-01") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	show := &DayShowCmd{Date: mustDay(t, "2024-06-01")}
	if err := show.Run(ctx); err != nil {
		t.Fatalf("day show failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Einträge für: 01. Juni 2024") {
		t.Errorf("missing header in %q", got)
	}
	if !strings.Contains(got, "Kaffee getrunken") {
		t.Errorf("missing entry in %q", got)
	}
}

func TestEntryAddRejectsEmptyContent(t *testing.T) {
	ctx, _ := setupTestContext(t)

	add := &EntryAddCmd{Date: mustDay(t, "2024-06-01"), Content: []string{"  "}}
	if err := add.Run(ctx); !errors.Is(err, apperrors.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestDaysListsAndFilters(t *testing.T) {
	ctx, out := setupTestContext(t)

	for _, d := range []string{"2024-07-03", "2024-06-01"} {
		if err := (&DayAddCmd{Date: mustDay(t, d)}).Run(ctx); err != nil {
			t.Fatalf("day add %s failed: %v", d, err)
		}
	}

	out.Reset()
	if err := (&DaysCmd{}).Run(ctx); err != nil {
		t.Fatalf("days failed: %v", err)
	}
	got := out.String()
	if strings.Index(got, "2024-06-01") > strings.Index(got, "2024-07-03") {
		t.Errorf("days not chronological: %q", got)
	}

	out.Reset()
	if err := (&DaysCmd{Filter: "07"}).Run(ctx); err != nil {
		t.Fatalf("days failed: %v", err)
	}
	got = out.String()
	if strings.Contains(got, "2024-06-01") || !strings.Contains(got, "2024-07-03") {
		t.Errorf("filter not applied: %q", got)
	}

	out.Reset()
	if err := (&DaysCmd{Filter: "1999"}).Run(ctx); err != nil {
		t.Fatalf("days failed: %v", err)
	}
	if !strings.Contains(out.String(), "No days found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDayDeletePolicy(t *testing.T) {
	ctx, out := setupTestContext(t)
	d := mustDay(t, "2024-06-01")

	if err := (&EntryAddCmd{Date: d, Content: []string{"Regen"}}).Run(ctx); err != nil {
		t.Fatalf("entry add failed: %v", err)
	}

	if err := (&DayDeleteCmd{Date: d}).Run(ctx); !errors.Is(err, apperrors.ErrDayNotEmpty) {
		t.Fatalf("expected ErrDayNotEmpty, got %v", err)
	}

	ctx.Config.CascadeDelete = true
	out.Reset()
	if err := (&DayDeleteCmd{Date: d}).Run(ctx); err != nil {
		t.Fatalf("cascade delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Day 2024-06-01 deleted") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&DayDeleteCmd{Date: d}).Run(ctx); err != nil {
		t.Fatalf("delete of unknown day failed: %v", err)
	}
	if !strings.Contains(out.String(), "not registered") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestEntryEditAndDelete(t *testing.T) {
	ctx, out := setupTestContext(t)
	d := mustDay(t, "2024-06-01")

	entry, err := ctx.Store.AddEntry(ctx.Ctx, d.Day, "Entwurf")
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := (&EntryEditCmd{ID: entry.ID, Content: []string{"Fertig"}}).Run(ctx); err != nil {
		t.Fatalf("entry edit failed: %v", err)
	}
	entries, err := ctx.Store.GetEntries(ctx.Ctx, d.Day)
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "Fertig" {
		t.Fatalf("unexpected entries after edit: %+v", entries)
	}

	out.Reset()
	if err := (&DayShowCmd{Date: d}).Run(ctx); err != nil {
		t.Fatalf("day show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Fertig "+constants.EditedMarker) {
		t.Errorf("edited entry not marked: %q", out.String())
	}

	if err := (&EntryEditCmd{ID: "missing", Content: []string{"x"}}).Run(ctx); !errors.Is(err, apperrors.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}

	out.Reset()
	if err := (&EntryDeleteCmd{ID: entry.ID}).Run(ctx); err != nil {
		t.Fatalf("entry delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "deleted") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&EntryDeleteCmd{ID: entry.ID}).Run(ctx); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if !strings.Contains(out.String(), "does not exist") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSearchGroupsByDay(t *testing.T) {
	ctx, out := setupTestContext(t)

	for _, e := range []struct{ date, content string }{
		{"2024-06-15", "Äpfel gekauft"},
		{"2024-06-01", "äpfel gepflückt"},
		{"2024-06-01", "Regen"},
	} {
		if _, err := ctx.Store.AddEntry(ctx.Ctx, day.MustParse(e.date), e.content); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}

	if err := (&SearchCmd{Term: []string{"ÄPFEL"}}).Run(ctx); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "Regen") {
		t.Errorf("non-matching entry listed: %q", got)
	}
	first, second := strings.Index(got, "01. Juni 2024"), strings.Index(got, "15. Juni 2024")
	if first < 0 || second < 0 || first > second {
		t.Errorf("groups missing or out of order: %q", got)
	}

	out.Reset()
	if err := (&SearchCmd{Term: []string{"Schnee"}}).Run(ctx); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "No matching entries.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitAndMigrate(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "schema version 2") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "No migrations to apply") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDoctor(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}
	got := out.String()
	for _, want := range []string{"✓ Archive reachable", "✓ Schema version: OK (version 2)", "✓ Data validation: OK", "⚠ Backups present: WARNING"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}

	ctx.PerformAutomaticBackup()
	out.Reset()
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("backup not detected: %q", out.String())
	}
}

func TestDoctorClosedStore(t *testing.T) {
	ctx, out := setupTestContext(t)
	ctx.Store.Close()

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on a closed store")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Archive reachable: FAIL") || !strings.Contains(got, "⊘ Schema version: SKIPPED") {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setupTestContext(t)
	d := day.MustParse("2024-06-01")

	if _, err := ctx.Store.AddEntry(ctx.Ctx, d, "vorher"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("unexpected output: %q", out.String())
	}

	backups, err := backup.NewManager(ctx.Store.Path()).List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %d (%v)", len(backups), err)
	}

	if _, err := ctx.Store.AddEntry(ctx.Ctx, d, "nachher"); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	out.Reset()
	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Name}).Run(ctx); err != nil {
		t.Fatalf("declined restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	path := ctx.Store.Path()
	out.Reset()
	ctx.In = strings.NewReader("y\n")
	if err := (&BackupRestoreCmd{BackupFile: backups[0].Name}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Archive restored successfully") {
		t.Errorf("unexpected output: %q", out.String())
	}

	reopened, err := storage.Open(ctx.Ctx, storage.Config{Path: path})
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.GetEntries(ctx.Ctx, d)
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "vorher" {
		t.Errorf("expected restored archive with one entry, got %+v", entries)
	}
}

func TestBackupRestoreUnknownFile(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&BackupRestoreCmd{BackupFile: "missing.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup not found") {
		t.Fatalf("expected backup not found, got %v", err)
	}
}

func TestBackupListEmpty(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := os.Stat(backup.NewManager(ctx.Store.Path()).Dir()); !os.IsNotExist(err) {
		t.Errorf("listing should not create the backup directory")
	}
}
