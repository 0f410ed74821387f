package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	appName         = "duedo"
	userFileName    = "config.toml"
	projectFileName = ".duedo.toml"

	DefaultTheme     = "classic"
	DefaultCharLimit = 200
)

type Config struct {
	Theme         string `toml:"theme"`
	AltScreen     bool   `toml:"alt_screen"`
	SummaryOnExit bool   `toml:"summary_on_exit"`
	Group         bool   `toml:"group"`

	Log  LogConfig  `toml:"log"`
	List ListConfig `toml:"list"`

	// Path is the last config file that was applied, empty when only
	// defaults and environment were used. Paths lists every applied file
	// in the order they were layered.
	Path  string   `toml:"-"`
	Paths []string `toml:"-"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type ListConfig struct {
	CharLimit int `toml:"char_limit"`
	// DefaultDue prefills the due-date input: "", "today" or "tomorrow".
	DefaultDue string `toml:"default_due"`
}

var (
	themes     = []string{"classic", "neon", "mono"}
	levels     = []string{"debug", "info", "warn", "error"}
	formats    = []string{"text", "json", "logfmt"}
	defaultDue = []string{"", "today", "tomorrow"}
)

func Default() *Config {
	return &Config{
		Theme:     DefaultTheme,
		AltScreen: true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		List: ListConfig{
			CharLimit: DefaultCharLimit,
		},
	}
}

// Load builds the config from, in increasing priority:
//  1. defaults
//  2. user file ($XDG_CONFIG_HOME/duedo/config.toml or ~/.config/duedo/config.toml)
//  3. project file (./.duedo.toml)
//  4. environment (DUEDO_*)
//
// When explicit (or DUEDO_CONFIG) names a file, it replaces steps 2 and 3
// and must exist. Flags are applied by the caller on top.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	if explicit == "" {
		explicit = os.Getenv("DUEDO_CONFIG")
	}
	if explicit != "" {
		if err := cfg.loadFile(explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		for _, p := range []string{userFile(), projectFileName} {
			if p == "" {
				continue
			}
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := cfg.loadFile(p); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", p, err)
			}
		}
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	c.Path = path
	c.Paths = append(c.Paths, path)
	return nil
}

func (c *Config) loadEnv() {
	if v := strings.TrimSpace(os.Getenv("DUEDO_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("DUEDO_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("DUEDO_LOG_FILE")); v != "" {
		c.Log.File = v
	}
}

// Validate checks enumerated fields and normalizes their case.
func (c *Config) Validate() error {
	c.Theme = strings.ToLower(c.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	c.List.DefaultDue = strings.ToLower(c.List.DefaultDue)

	var errs []error
	if !oneOf(c.Theme, themes) {
		errs = append(errs, fmt.Errorf("invalid theme: %s", c.Theme))
	}
	if !oneOf(c.Log.Level, levels) {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Log.Level))
	}
	if !oneOf(c.Log.Format, formats) {
		errs = append(errs, fmt.Errorf("invalid log format: %s", c.Log.Format))
	}
	if !oneOf(c.List.DefaultDue, defaultDue) {
		errs = append(errs, fmt.Errorf("invalid default_due: %s", c.List.DefaultDue))
	}
	if c.List.CharLimit <= 0 {
		errs = append(errs, fmt.Errorf("invalid char_limit: %d", c.List.CharLimit))
	}
	return errors.Join(errs...)
}

func userFile() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, userFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, userFileName)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
