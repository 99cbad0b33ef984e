package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/archiver/internal/backup"
	"github.com/julianstephens/archiver/internal/constants"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a snapshot of the archive."`
	List    BackupListCmd    `cmd:"" help:"List available snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the archive with a snapshot."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	info, err := mgr.Create(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("✓ Backup created: %s (%s)\n", info.Name, humanize.Bytes(uint64(info.Size)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		ctx.printf("  %s  %s  (%s, %s)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), b.Name,
			humanize.Bytes(uint64(b.Size)), humanize.Time(b.Timestamp))
	}
	ctx.printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Do not ask for confirmation." short:"y"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.Path())

	path, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.println("⚠️  WARNING: This will replace your current archive with the backup.")
		ctx.println("A backup of your current archive will be created before restoring.")
		ctx.printf("\nRestore from: %s\n", path)
		ok, err := confirm(ctx, "Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Restore cancelled.")
			return nil
		}
	}

	// The archive file is replaced underneath, so the connection goes first.
	if err := ctx.Store.Close(); err != nil {
		ctx.printf("Warning: failed to close archive connection: %v\n", err)
	}

	previous, err := mgr.Restore(ctx.Ctx, path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.println("✓ Archive restored successfully!")
	if previous.Name != "" {
		ctx.printf("Previous archive saved as: %s\n", previous.Name)
	}
	return nil
}
