// Package config loads runtime settings from tempo.yaml and TEMPO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
)

const EnvPrefix = "TEMPO"

var (
	ErrInvalidDateFormat = errors.New("config: invalid date_format")
	ErrInvalidLogFormat  = errors.New("config: invalid log.format")
	ErrInvalidBudget     = errors.New("config: plan.budget_minutes must be positive")
)

type Config struct {
	DBPath     string           `mapstructure:"db_path"`
	DateFormat parse.DateFormat `mapstructure:"date_format"`
	Locale     string           `mapstructure:"locale"`
	LogFile    string           `mapstructure:"log_file"`

	Plan      PlanConfig      `mapstructure:"plan"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Focus     FocusConfig     `mapstructure:"focus"`
	Log       LogConfig       `mapstructure:"log"`
	Events    EventsConfig    `mapstructure:"events"`
}

type PlanConfig struct {
	BudgetMinutes int `mapstructure:"budget_minutes"`
	MaxTasks      int `mapstructure:"max_tasks"`
}

type CalendarConfig struct {
	// PixelsPerSlot is the drag distance, in terminal rows, of one 30 minute slot.
	PixelsPerSlot float64 `mapstructure:"pixels_per_slot"`
}

type FocusConfig struct {
	IncludeDue bool `mapstructure:"include_due"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type EventsConfig struct {
	// Buffer sizes the timed event channel.
	Buffer int `mapstructure:"buffer"`
}

// Load reads configuration. An explicit path must exist; otherwise tempo.yaml
// is searched in ./config, the working directory and $HOME/.config/tempo, and
// a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tempo")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tempo"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("date_format", string(parse.FormatAuto))
	v.SetDefault("locale", "")
	v.SetDefault("log_file", "")

	v.SetDefault("plan.budget_minutes", 240)
	v.SetDefault("plan.max_tasks", 10)
	v.SetDefault("calendar.pixels_per_slot", 2)
	v.SetDefault("focus.include_due", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("events.buffer", 64)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tempo.db"
	}
	return filepath.Join(home, ".local", "share", "tempo", "tempo.db")
}

func (c *Config) Validate() error {
	if !c.DateFormat.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDateFormat, c.DateFormat)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Log.Format)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: invalid log.level: %w", err)
	}
	if c.Plan.BudgetMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBudget, c.Plan.BudgetMinutes)
	}
	return nil
}

// ParseOptions builds the date parser options for today. An empty locale
// falls back to the process environment.
func (c *Config) ParseOptions(today model.Date) parse.Options {
	locale := c.Locale
	if locale == "" {
		locale = parse.LocaleFromEnv()
	}
	return parse.Options{
		Today:  today,
		Format: parse.ResolveFormat(c.DateFormat, locale),
		Locale: locale,
	}
}

// NewLogger builds a logger from the log section. When LogFile is set output
// goes there instead of w; the returned closer releases the file.
func (c *Config) NewLogger(w io.Writer) (*log.Logger, io.Closer, error) {
	logger := log.New()
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: invalid log.level: %w", err)
	}
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{DisableColors: c.LogFile != "", FullTimestamp: true})
	}

	if c.LogFile == "" {
		logger.SetOutput(w)
		return logger, io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
