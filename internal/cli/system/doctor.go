package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks never fail the run.
	warnOnly bool
	// needsStorage checks are skipped when storage is unreachable.
	needsStorage bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsStorage: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsStorage: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStorage && !reachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(ctx.Out, "   %v\n", err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(ctx.Out, "   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		fmt.Fprintln(ctx.Out, "Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Fprintln(ctx.Out, "All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if _, err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	checker, ok := ctx.Store.(storage.SchemaChecker)
	if !ok {
		return nil
	}

	current, latest, err := checker.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !storage.DetectKind(ctx.Store.GetConfigPath()).IsFileBackend() {
		return nil
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitual backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	result := validation.New(t.Location()).ValidateHabits(t.Habits())
	if result.HasConflicts() {
		return fmt.Errorf("%d issue(s) found\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if ctx.Config != nil {
		fmt.Fprintf(ctx.Out, "   Note: calendar days use timezone %s\n", ctx.Config.Location())
	}
	return nil
}
