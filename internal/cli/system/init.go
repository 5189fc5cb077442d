package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing storage file before initialization."`
	Source string `help:"Storage target to copy habits from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	target := ctx.Store.GetConfigPath()

	if c.Force {
		if !storage.DetectKind(target).IsFileBackend() {
			return fmt.Errorf("--force only applies to file storage")
		}
		if c.Source != "" && samePath(c.Source, target) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", target)
		}
		if _, err := os.Stat(target); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(target); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Fprintf(ctx.Out, "Deleted existing storage at: %s\n", target)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Initialized habitual storage at: %s\n", target)

	if ctx.Config != nil {
		written, err := config.WriteDefault(ctx.Config.ConfigFile)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintf(ctx.Out, "Wrote default config to: %s\n", ctx.Config.ConfigFile)
		}
	}

	if c.Source != "" {
		fmt.Fprintf(ctx.Out, "Copying habits from: %s\n", c.Source)
		n, err := copyHabits(c.Source, ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintf(ctx.Out, "  Copied %d habits\n", n)
	}

	return nil
}

// copyHabits replaces the destination collection with the source one.
func copyHabits(source string, dest storage.Provider) (int, error) {
	src, err := storage.Open(source)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	habits, err := src.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	if err := dest.Save(habits); err != nil {
		return 0, fmt.Errorf("failed to save habits to destination: %w", err)
	}
	return len(habits), nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
