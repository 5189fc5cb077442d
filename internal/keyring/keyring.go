package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitual/internal/constants"
)

var (
	// ErrNotFound is returned when no storage target is stored in the keyring
	ErrNotFound = errors.New("storage target not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnsupportedTarget is returned for targets that are not server URLs
	ErrUnsupportedTarget = errors.New("only postgres:// and redis:// targets can be stored in the keyring")
)

var remoteSchemes = []string{"postgres://", "postgresql://", "redis://", "rediss://"}

// IsRemoteTarget reports whether target addresses a PostgreSQL or Redis server.
func IsRemoteTarget(target string) bool {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(target, scheme) {
			return true
		}
	}
	return false
}

// GetStorageTarget retrieves the storage connection string from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func GetStorageTarget() (string, error) {
	target, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return target, nil
}

// SetStorageTarget stores a PostgreSQL or Redis connection string in the OS keyring.
func SetStorageTarget(target string) error {
	if target == "" {
		return errors.New("storage target cannot be empty")
	}
	if !IsRemoteTarget(target) {
		return ErrUnsupportedTarget
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, target); err != nil {
		return fmt.Errorf("failed to store storage target in keyring: %w", err)
	}
	return nil
}

// DeleteStorageTarget removes the storage connection string from the OS keyring.
func DeleteStorageTarget() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete storage target from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
