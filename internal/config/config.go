package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "todo"
	DefaultConfigFileName = "config.toml"
	DefaultDirName        = ".todo"
	DefaultExtension      = "txt"
	DefaultEditor         = "vim"
	DefaultWarningDays    = 7
	DefaultLogLevel       = "info"
)

// Environment variables read by Apply.
const (
	EnvConfig    = "TODO_CONFIG"
	EnvDirectory = "TODO_DIRECTORY"
	EnvEditor    = "EDITOR"
	EnvLogLevel  = "TODO_LOG_LEVEL"
)

type Config struct {
	// Directory holding the category files; empty means ~/.todo.
	Directory           string `toml:"directory"`
	Extension           string `toml:"extension"`
	Editor              string `toml:"editor"`
	DeadlineWarningDays int    `toml:"deadline_warning_days"`
	LogLevel            string `toml:"log_level"`
}

// ResolveConfigPath returns $TODO_CONFIG or the per-user config file.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Apply overrides cfg with the environment, using getenv to look values up.
func (c *Config) Apply(getenv func(string) string) {
	if v := getenv(EnvDirectory); v != "" {
		c.Directory = v
	}
	if v := getenv(EnvEditor); v != "" {
		c.Editor = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	c.normalize()
}

// TodoDir resolves Directory, expanding a leading "~".
func (c Config) TodoDir() (string, error) {
	dir := c.Directory
	if dir != "" && dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if dir == "" {
		return filepath.Join(home, DefaultDirName), nil
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
}

func (c *Config) normalize() {
	c.Extension = strings.TrimPrefix(strings.TrimSpace(c.Extension), ".")
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = DefaultEditor
	}
	if c.DeadlineWarningDays <= 0 {
		c.DeadlineWarningDays = DefaultWarningDays
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Extension:           DefaultExtension,
		Editor:              DefaultEditor,
		DeadlineWarningDays: DefaultWarningDays,
		LogLevel:            DefaultLogLevel,
	}
}
