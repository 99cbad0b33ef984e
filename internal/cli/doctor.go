package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/archiver/internal/backup"
	"github.com/julianstephens/archiver/internal/migration"
	"github.com/julianstephens/archiver/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*Context) (string, error)
	warning bool
}

// errSkipped marks a check that could not run because an earlier one failed.
var errSkipped = errors.New("skipped")

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	reachable := false
	checks := []check{
		{name: "Archive reachable", run: func(ctx *Context) (string, error) {
			stats, err := ctx.Store.Stats(ctx.Ctx)
			if err != nil {
				return "", err
			}
			reachable = true
			return fmt.Sprintf("%d days, %d entries", stats.Days, stats.Entries), nil
		}},
		{name: "Schema version", run: func(ctx *Context) (string, error) {
			if !reachable {
				return "", errSkipped
			}
			return checkSchemaVersion(ctx)
		}},
		{name: "Data validation", run: func(ctx *Context) (string, error) {
			if !reachable {
				return "", errSkipped
			}
			return checkValidation(ctx)
		}},
		{name: "Archive file", run: checkArchiveFile},
		{name: "Backups present", run: checkBackupsPresent, warning: true},
	}

	hasError := false
	for _, c := range checks {
		detail, err := c.run(ctx)
		switch {
		case errors.Is(err, errSkipped):
			ctx.printf("⊘ %s: SKIPPED (archive not reachable)\n", c.name)
		case err != nil && c.warning:
			ctx.printf("⚠ %s: WARNING\n", c.name)
			ctx.printf("   %v\n", err)
		case err != nil:
			ctx.printf("❌ %s: FAIL\n", c.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
		case detail != "":
			ctx.printf("✓ %s: OK (%s)\n", c.name, detail)
		default:
			ctx.printf("✓ %s: OK\n", c.name)
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *Context) (string, error) {
	stats, err := ctx.Store.Stats(ctx.Ctx)
	if err != nil {
		return "", err
	}

	schema, err := ctx.SchemaFS()
	if err != nil {
		return "", err
	}
	latest, err := migration.NewRunner(nil, schema).GetLatestVersion()
	if err != nil {
		return "", fmt.Errorf("failed to get latest schema version: %w", err)
	}

	switch {
	case stats.SchemaVersion > latest:
		return "", fmt.Errorf("archive schema version (%d) is newer than supported version (%d)", stats.SchemaVersion, latest)
	case stats.SchemaVersion < latest:
		return "", fmt.Errorf("migrations incomplete: current version %d, latest version %d", stats.SchemaVersion, latest)
	}
	return fmt.Sprintf("version %d", stats.SchemaVersion), nil
}

func checkValidation(ctx *Context) (string, error) {
	days, err := ctx.Store.ListDays(ctx.Ctx, "")
	if err != nil {
		return "", err
	}
	entries, err := ctx.Store.SearchEntries(ctx.Ctx, "")
	if err != nil {
		return "", err
	}

	result := validation.New().ValidateArchive(days, entries)
	if result.HasConflicts() {
		return "", fmt.Errorf("%d conflict(s)\n%s", len(result.Conflicts), result.FormatReport())
	}
	return "", nil
}

func checkArchiveFile(ctx *Context) (string, error) {
	st, err := os.Stat(ctx.Store.Path())
	if err != nil {
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}
	return humanize.Bytes(uint64(st.Size())), nil
}

func checkBackupsPresent(ctx *Context) (string, error) {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return "", fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return "", fmt.Errorf("no backups found - consider creating one with 'archiver backup create'")
	}
	return fmt.Sprintf("%d, latest %s", len(backups), humanize.Time(backups[0].Timestamp)), nil
}
