package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage"
)

// KeyringSetCmd stores a PostgreSQL or Redis connection string in the OS keyring
type KeyringSetCmd struct {
	Target string `arg:"" help:"PostgreSQL or Redis connection string to store in the keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	switch storage.DetectKind(cmd.Target) {
	case storage.KindPostgres:
		if _, err := storage.ValidateConnString(cmd.Target); err != nil {
			if !errors.Is(err, storage.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Fprintln(ctx.Out, "Warning: connection string contains embedded credentials.")
			fmt.Fprintln(ctx.Out, "   It will be stored as-is in the encrypted OS keyring.")
		}
	case storage.KindRedis:
		store, err := storage.NewRedisStore(cmd.Target)
		if err != nil {
			return err
		}
		store.Close()
	default:
		return keyring.ErrUnsupportedTarget
	}

	if err := keyring.SetStorageTarget(cmd.Target); err != nil {
		return err
	}

	fmt.Fprintln(ctx.Out, "✓ Connection string stored in OS keyring")
	fmt.Fprintln(ctx.Out, "  Use --storage keyring (or storage: keyring in config.yaml) to connect with it")
	return nil
}

// KeyringGetCmd prints the stored connection string with its password masked
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	target, err := keyring.GetStorageTarget()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'habitual keyring set' to store one")
		}
		return err
	}

	fmt.Fprintln(ctx.Out, "Connection string retrieved from keyring:")
	fmt.Fprintln(ctx.Out, maskPassword(target))
	return nil
}

// KeyringDeleteCmd removes the stored connection string
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteStorageTarget(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}

	fmt.Fprintln(ctx.Out, "✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports whether the OS keyring is usable
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Fprintln(ctx.Out, "❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	fmt.Fprintln(ctx.Out, "✓ OS keyring is available")
	if _, err := keyring.GetStorageTarget(); err == nil {
		fmt.Fprintln(ctx.Out, "✓ Connection string is stored in keyring")
	} else if errors.Is(err, keyring.ErrNotFound) {
		fmt.Fprintln(ctx.Out, "ℹ No connection string stored in keyring")
	}
	return nil
}

// maskPassword hides the password of URL and key=value connection strings.
func maskPassword(target string) string {
	if u, err := url.Parse(target); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return target
	}

	if strings.Contains(target, "password=") {
		parts := strings.Fields(target)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return target
}
