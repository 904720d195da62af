package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Window contains launcher window geometry.
type Window struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Apps contains desktop-entry scanning configuration.
type Apps struct {
	ExtraDirs []string `toml:"extra_dirs"`
	Watch     bool     `toml:"watch"`
}

// Clipboard contains clipboard history configuration.
type Clipboard struct {
	Enabled      bool   `toml:"enabled"`
	HistoryLimit int    `toml:"history_limit"`
	DBPath       string `toml:"db_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for lumen.
type Config struct {
	Theme     string    `toml:"theme"`
	Window    Window    `toml:"window"`
	Apps      Apps      `toml:"apps"`
	Clipboard Clipboard `toml:"clipboard"`
	Logging   Logging   `toml:"logging"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:  "default",
		Window: Window{Width: 780, Height: 520},
		Apps:   Apps{Watch: true},
		Clipboard: Clipboard{
			Enabled:      true,
			HistoryLimit: 100,
		},
		Logging: Logging{Format: "console", Level: "info"},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lumen/config.toml")
}

// Load locates and parses a configuration file. The bool result reports
// whether the file existed; a missing file is not an error.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Theme = strings.TrimSpace(c.Theme)
	if c.Theme == "" {
		c.Theme = "default"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = Default().Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = Default().Window.Height
	}
	if c.Clipboard.HistoryLimit <= 0 {
		c.Clipboard.HistoryLimit = Default().Clipboard.HistoryLimit
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir()
	}
	expanded, err := expandPath(c.Logging.Dir)
	if err != nil {
		return err
	}
	c.Logging.Dir = expanded
	if strings.TrimSpace(c.Clipboard.DBPath) == "" {
		c.Clipboard.DBPath = defaultClipboardDBPath()
	}
	expanded, err = expandPath(c.Clipboard.DBPath)
	if err != nil {
		return err
	}
	c.Clipboard.DBPath = expanded
	for i, dir := range c.Apps.ExtraDirs {
		expanded, err := expandPath(dir)
		if err != nil {
			return err
		}
		c.Apps.ExtraDirs[i] = expanded
	}
	return nil
}

// Validate rejects configuration values the daemon cannot operate with.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Clipboard.HistoryLimit > 10000 {
		return fmt.Errorf("clipboard.history_limit: %d exceeds maximum of 10000", c.Clipboard.HistoryLimit)
	}
	return nil
}

func defaultLogDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lumen")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lumen")
	}
	return filepath.Join(home, ".local", "state", "lumen")
}

func defaultClipboardDBPath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lumen", "clipboard.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lumen", "clipboard.db")
	}
	return filepath.Join(home, ".cache", "lumen", "clipboard.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
