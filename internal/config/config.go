package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/taskflow/internal/model"
)

const (
	EnvPrefix           = "TASKFLOW"
	DefaultToastHistory = 40
)

var (
	ErrEmptyDBPath      = errors.New("config: db_path is empty")
	ErrNegativeDelay    = errors.New("config: sign_in_delay is negative")
	ErrInvalidLogLevel  = errors.New("config: invalid log_level")
	ErrInvalidSort      = errors.New("config: invalid default_sort")
	ErrInvalidToastSize = errors.New("config: toast_history must be positive")
)

type Config struct {
	DBPath               string        `mapstructure:"db_path" yaml:"db_path"`
	LogPath              string        `mapstructure:"log_path" yaml:"log_path"`
	LogLevel             string        `mapstructure:"log_level" yaml:"log_level"`
	SignInDelay          time.Duration `mapstructure:"sign_in_delay" yaml:"sign_in_delay"`
	DesktopNotifications bool          `mapstructure:"desktop_notifications" yaml:"desktop_notifications"`
	PurgeTasksOnSignOut  bool          `mapstructure:"purge_tasks_on_sign_out" yaml:"purge_tasks_on_sign_out"`
	DefaultSort          string        `mapstructure:"default_sort" yaml:"default_sort"`
	MetricsAddr          string        `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	ToastHistory         int           `mapstructure:"toast_history" yaml:"toast_history"`
}

// Dir is the per-user directory holding the database, log and config file.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskflow"
	}
	return filepath.Join(home, ".taskflow")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() Config {
	dir := Dir()
	return Config{
		DBPath:               filepath.Join(dir, "taskflow.db"),
		LogPath:              filepath.Join(dir, "taskflow.log"),
		LogLevel:             "info",
		SignInDelay:          1500 * time.Millisecond,
		DesktopNotifications: false,
		PurgeTasksOnSignOut:  true,
		DefaultSort:          string(model.SortDueDate),
		MetricsAddr:          "",
		ToastHistory:         DefaultToastHistory,
	}
}

// Load layers defaults, the YAML file at path (or DefaultPath when path is
// empty and that file exists) and TASKFLOW_* environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := strings.TrimSpace(path)
	if file == "" {
		if _, err := os.Stat(DefaultPath()); err == nil {
			file = DefaultPath()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.LogPath = expandHome(cfg.LogPath)
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("sign_in_delay", d.SignInDelay)
	v.SetDefault("desktop_notifications", d.DesktopNotifications)
	v.SetDefault("purge_tasks_on_sign_out", d.PurgeTasksOnSignOut)
	v.SetDefault("default_sort", d.DefaultSort)
	v.SetDefault("metrics_addr", d.MetricsAddr)
	v.SetDefault("toast_history", d.ToastHistory)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return ErrEmptyDBPath
	}
	if c.SignInDelay < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDelay, c.SignInDelay)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := model.ParseSortKey(c.DefaultSort); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSort, c.DefaultSort)
	}
	if c.ToastHistory <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidToastSize, c.ToastHistory)
	}
	return nil
}

func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}

// SortKey is DefaultSort parsed; call Validate first.
func (c Config) SortKey() model.SortKey {
	k, err := model.ParseSortKey(c.DefaultSort)
	if err != nil {
		return model.SortDueDate
	}
	return k
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
