package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Curve   CurveConfig   `mapstructure:"curve"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig locates the NRL tree.
type CatalogConfig struct {
	Root      string `mapstructure:"root"`
	CacheSize int    `mapstructure:"cache_size"`
}

// CurveConfig is the frequency grid of response plots.
type CurveConfig struct {
	MinFrequency float64 `mapstructure:"min_frequency"`
	MaxFrequency float64 `mapstructure:"max_frequency"`
	Points       int     `mapstructure:"points"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and env. The file is $NRL_CONFIG, or
// ~/.config/nrl/config.toml when present. Env var overrides use prefix NRL_,
// e.g. NRL_CATALOG_ROOT.
func Load() (Config, error) {
	return LoadFile(os.Getenv("NRL_CONFIG"))
}

// LoadFile is Load with an explicit config file. An empty path searches
// the default location and tolerates its absence.
func LoadFile(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("catalog.root", filepath.Join(os.Getenv("HOME"), ".local", "share", "nrl"))
	v.SetDefault("catalog.cache_size", 1024)
	v.SetDefault("curve.min_frequency", 0.01)
	v.SetDefault("curve.max_frequency", 100.0)
	v.SetDefault("curve.points", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "nrl"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NRL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Catalog.CacheSize < 0:
		return fmt.Errorf("%w: catalog.cache_size %d", ErrInvalid, c.Catalog.CacheSize)
	case c.Curve.MinFrequency <= 0 || c.Curve.MaxFrequency <= c.Curve.MinFrequency:
		return fmt.Errorf("%w: curve range %g..%g Hz", ErrInvalid, c.Curve.MinFrequency, c.Curve.MaxFrequency)
	case c.Curve.Points <= 0:
		return fmt.Errorf("%w: curve.points %d", ErrInvalid, c.Curve.Points)
	}

	_, err := c.Log.level()
	if err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level

	err := lvl.UnmarshalText([]byte(l.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}

	return lvl, nil
}

// NewLogger builds a text or JSON slog logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(l.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: log.format %q", ErrInvalid, l.Format)
	}
}
