package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/mirror"
)

// APIKeyEnv overrides remote.api_key when set.
const APIKeyEnv = "POLAR_REMOTE_API_KEY"

// Config is the resolved application configuration.
type Config struct {
	DataDir       string
	MirrorBackend string
	MirrorKey     string
	SeedFile      string
	LogFile       string
	LogLevel      string
	Remote        Remote
}

// Remote configures the optional upstream asset store.
type Remote struct {
	URL         string
	APIKey      string
	Table       string
	PullEvery   time.Duration
	PullOnStart bool
}

// Enabled reports whether a remote store is configured.
func (r Remote) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

const (
	defaultConfigPath = "~/.config/polar/config.toml"
	defaultDataDir    = "~/.local/share/polar"
	defaultLogLevel   = "info"
	defaultTable      = "assets"
	logFileName       = "polar.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	dir := mustExpand(defaultDataDir)
	return Config{
		DataDir:       dir,
		MirrorBackend: mirror.KindFile,
		MirrorKey:     asset.StorageKey,
		LogFile:       filepath.Join(dir, logFileName),
		LogLevel:      defaultLogLevel,
		Remote:        Remote{Table: defaultTable},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.Remote.APIKey = envOr(APIKeyEnv, cfg.Remote.APIKey)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir       string `toml:"data_dir"`
		MirrorBackend string `toml:"mirror_backend"`
		MirrorKey     string `toml:"mirror_key"`
		SeedFile      string `toml:"seed_file"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
		Remote        struct {
			URL         string `toml:"url"`
			APIKey      string `toml:"api_key"`
			Table       string `toml:"table"`
			PullSeconds int    `toml:"pull_seconds"`
			PullOnStart bool   `toml:"pull_on_start"`
		} `toml:"remote"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Config{
		DataDir:       mustExpand(or(raw.DataDir, defaultDataDir)),
		MirrorBackend: strings.ToLower(or(raw.MirrorBackend, mirror.KindFile)),
		MirrorKey:     or(raw.MirrorKey, asset.StorageKey),
		LogLevel:      strings.ToLower(or(raw.LogLevel, defaultLogLevel)),
		Remote: Remote{
			URL:         strings.TrimSpace(raw.Remote.URL),
			APIKey:      envOr(APIKeyEnv, strings.TrimSpace(raw.Remote.APIKey)),
			Table:       or(raw.Remote.Table, defaultTable),
			PullOnStart: raw.Remote.PullOnStart,
		},
	}
	if raw.Remote.PullSeconds > 0 {
		cfg.Remote.PullEvery = time.Duration(raw.Remote.PullSeconds) * time.Second
	}
	if seed := strings.TrimSpace(raw.SeedFile); seed != "" {
		cfg.SeedFile = mustExpand(seed)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	} else {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.MirrorBackend {
	case mirror.KindFile, mirror.KindSQLite, mirror.KindMemory:
	default:
		return fmt.Errorf("invalid config: mirror_backend %q (want file, sqlite or memory)", c.MirrorBackend)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid config: log_level %q", c.LogLevel)
	}
	return nil
}

func or(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
