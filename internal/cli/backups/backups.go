// Package backups implements the backup subcommands for file storage.
package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
)

type CreateCmd struct{}

func (c *CreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Out, "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(ctx.Out, "No backups found.")
		fmt.Fprintf(ctx.Out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(ctx.Out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		fmt.Fprintf(ctx.Out, "  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(ctx.Out, "\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	// Bare file names are looked up in the backup directory.
	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
		if _, err := os.Stat(candidate); err == nil {
			backupPath = candidate
		}
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		fmt.Fprintln(ctx.Out, "WARNING: This will replace your current habit data with the backup.")
		fmt.Fprintln(ctx.Out, "A backup of your current data will be created before restoring.")
		fmt.Fprintf(ctx.Out, "\nRestore from: %s\n", filepath.Base(backupPath))
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(ctx.Out, "Restore cancelled.")
			return nil
		}
	}

	// The store must release the file before it is replaced.
	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close storage before restore", "error", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(ctx.Out, "✓ Habit data restored successfully!")
	fmt.Fprintln(ctx.Out, "Restart any running habitual sessions to use the restored data.")
	return nil
}
