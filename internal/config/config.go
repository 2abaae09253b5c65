// Package config resolves yap's settings from defaults, an optional TOML
// file, YAP_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. YAP_HOME.
const EnvPrefix = "YAP"

// DefaultFile is the config file looked up in the user's home directory.
const DefaultFile = ".yap.toml"

// Keys.
const (
	KeyHome          = "home"
	KeyDBFile        = "db_file"
	KeyContextFile   = "context_file"
	KeyDebug         = "debug"
	KeyLogFile       = "log_file"
	KeyLogMaxSizeMB  = "log_max_size_mb"
	KeyLogMaxBackups = "log_max_backups"
	KeyLogMaxAgeDays = "log_max_age_days"
	KeyDoneLimit     = "done_limit"
	KeyNextFiller    = "next_filler"
	KeyNaturalDates  = "natural_dates"
	KeyColor         = "color"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the resolved configuration.
type Config struct {
	Home          string `toml:"home" mapstructure:"home"`
	DBFile        string `toml:"db_file" mapstructure:"db_file"`
	ContextFile   string `toml:"context_file" mapstructure:"context_file"`
	Debug         bool   `toml:"debug" mapstructure:"debug"`
	LogFile       string `toml:"log_file" mapstructure:"log_file"`
	LogMaxSizeMB  int    `toml:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `toml:"log_max_backups" mapstructure:"log_max_backups"`
	LogMaxAgeDays int    `toml:"log_max_age_days" mapstructure:"log_max_age_days"`
	DoneLimit     int    `toml:"done_limit" mapstructure:"done_limit"`
	NextFiller    int    `toml:"next_filler" mapstructure:"next_filler"`
	NaturalDates  bool   `toml:"natural_dates" mapstructure:"natural_dates"`
	Color         string `toml:"color" mapstructure:"color"`
}

// Default returns the built-in settings. Home is left as "~" and
// expanded by Load.
func Default() *Config {
	return &Config{
		Home:          "~",
		DBFile:        ".yap.sqlite",
		ContextFile:   ".yap.context",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
		DoneLimit:     20,
		NextFiller:    1,
		Color:         ColorAuto,
	}
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Flags override every other source when changed. A flag is bound
	// when its name matches a key with dashes for underscores.
	Flags *pflag.FlagSet
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, k := range keys {
			f := opts.Flags.Lookup(strings.ReplaceAll(k, "_", "-"))
			if f == nil {
				continue
			}
			if err := v.BindPFlag(k, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
	}

	v.SetConfigType("toml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
	} else if path, err := DefaultPath(); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var keys = []string{
	KeyHome, KeyDBFile, KeyContextFile, KeyDebug, KeyLogFile,
	KeyLogMaxSizeMB, KeyLogMaxBackups, KeyLogMaxAgeDays,
	KeyDoneLimit, KeyNextFiller, KeyNaturalDates, KeyColor,
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(KeyHome, d.Home)
	v.SetDefault(KeyDBFile, d.DBFile)
	v.SetDefault(KeyContextFile, d.ContextFile)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogMaxSizeMB, d.LogMaxSizeMB)
	v.SetDefault(KeyLogMaxBackups, d.LogMaxBackups)
	v.SetDefault(KeyLogMaxAgeDays, d.LogMaxAgeDays)
	v.SetDefault(KeyDoneLimit, d.DoneLimit)
	v.SetDefault(KeyNextFiller, d.NextFiller)
	v.SetDefault(KeyNaturalDates, d.NaturalDates)
	v.SetDefault(KeyColor, d.Color)
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) normalize() error {
	home, err := homedir.Expand(c.Home)
	if err != nil {
		return fmt.Errorf("failed to expand home %q: %w", c.Home, err)
	}
	c.Home = home
	if c.LogFile != "" {
		if c.LogFile, err = homedir.Expand(c.LogFile); err != nil {
			return fmt.Errorf("failed to expand log file %q: %w", c.LogFile, err)
		}
	}

	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	if c.DoneLimit <= 0 {
		c.DoneLimit = Default().DoneLimit
	}
	if c.NextFiller < 0 {
		c.NextFiller = 0
	}
	return nil
}

// DBPath is the database file inside Home.
func (c *Config) DBPath() string {
	return c.resolve(c.DBFile)
}

// ContextPath is the context file inside Home.
func (c *Config) ContextPath() string {
	return c.resolve(c.ContextFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Home, name)
}

// DefaultPath is the config file looked up when none is given.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFile), nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// WriteDefault writes the default settings to path. It refuses to
// replace an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintln(f, "# yap configuration. Environment variables (YAP_HOME, YAP_DEBUG, ...)")
	fmt.Fprintln(f, "# and command line flags take precedence over this file.")
	fmt.Fprintln(f)
	if err := Default().Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}
	return nil
}
