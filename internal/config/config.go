package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/utils"
)

// Config holds the resolved application configuration
type Config struct {
	// Storage is the resolved storage target: a file path or a server URL.
	Storage  string
	Timezone string
	Debug    bool

	BackupsEnabled bool

	// ConfigDir holds logs and backups.
	ConfigDir string
	// ConfigFile is the YAML file that was consulted, whether or not it exists.
	ConfigFile string
	// FromKeyring is set when Storage was read from the OS keyring.
	FromKeyring bool

	loc *time.Location
}

// Overrides carries command-line flags; empty values are ignored.
type Overrides struct {
	ConfigFile string
	Storage    string
	Timezone   string
	Debug      bool
}

// fileConfig is the YAML shape of config.yaml
type fileConfig struct {
	Storage  string `yaml:"storage,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`
	Debug    *bool  `yaml:"debug,omitempty"`
	Backups  struct {
		Enabled *bool `yaml:"enabled,omitempty"`
	} `yaml:"backups,omitempty"`
}

// Load resolves configuration with precedence flag > env > file > defaults.
// A .env file in the working directory is loaded first if present.
func Load(o Overrides) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	cfg := &Config{
		Storage:        constants.DefaultStoragePath,
		Timezone:       constants.DefaultTimezone,
		BackupsEnabled: constants.DefaultBackupsEnabled,
	}

	var err error
	if cfg.ConfigDir, err = ExpandHome(constants.DefaultConfigDir); err != nil {
		return nil, err
	}

	cfg.ConfigFile = firstNonEmpty(o.ConfigFile, os.Getenv(constants.EnvConfig), constants.DefaultConfigFile)
	if cfg.ConfigFile, err = ExpandHome(cfg.ConfigFile); err != nil {
		return nil, err
	}

	fc, err := readFile(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	if fc.Storage != "" {
		cfg.Storage = fc.Storage
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	if fc.Backups.Enabled != nil {
		cfg.BackupsEnabled = *fc.Backups.Enabled
	}

	if v := os.Getenv(constants.EnvStorage); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv(constants.EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	if o.Storage != "" {
		cfg.Storage = o.Storage
	}
	if o.Timezone != "" {
		cfg.Timezone = o.Timezone
	}
	if o.Debug {
		cfg.Debug = true
	}

	if err := cfg.resolveStorage(); err != nil {
		return nil, err
	}

	cfg.loc, err = utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// BackupDir returns the directory holding file-backend backups.
func (c *Config) BackupDir() string {
	return filepath.Join(c.ConfigDir, constants.BackupDirName)
}

func (c *Config) resolveStorage() error {
	if strings.EqualFold(c.Storage, constants.KeyringStorage) {
		target, err := keyring.GetStorageTarget()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return fmt.Errorf("storage is set to %q but no target is stored; run 'habitual keyring set' first", constants.KeyringStorage)
			}
			return err
		}
		c.Storage = target
		c.FromKeyring = true
		return nil
	}

	if keyring.IsRemoteTarget(c.Storage) {
		return nil
	}

	path, err := ExpandHome(c.Storage)
	if err != nil {
		return err
	}
	c.Storage = path
	return nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// WriteDefault creates a config file with the default settings unless one
// already exists. It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	fc := fileConfig{
		Storage:  constants.DefaultStoragePath,
		Timezone: constants.DefaultTimezone,
	}
	debug := false
	backups := constants.DefaultBackupsEnabled
	fc.Debug = &debug
	fc.Backups.Enabled = &backups

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return false, fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
