package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where and how moodtrack persists data.
type Config interface {
	BasePath() string
	Backend() string
	MonitorInterval() time.Duration
	LogLevel() string
	LogFormat() string
}

// Defaults applied when neither the config file nor the environment sets a key.
const (
	DefaultPath            = "~/.moodtrack"
	DefaultMonitorInterval = time.Minute
	DefaultLogLevel        = "warn"
	DefaultLogFormat       = "console"

	// EnvConfigPath names a directory searched first for the config file.
	EnvConfigPath = "MOOD_CONFIG_PATH"
)

// LoadConfig reads .moodtrack.yaml from $MOOD_CONFIG_PATH, the working
// directory or $HOME, overlaid with MOOD_* environment variables.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(viper.New())
}

// LoadConfigFrom is LoadConfig against a caller supplied viper instance, so
// command flags bound to v take part.
func LoadConfigFrom(v *viper.Viper) (Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("backend", BackendDisk)
	v.SetDefault("monitor.interval", DefaultMonitorInterval)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetConfigName(".moodtrack") // .yaml is implicit
	v.SetEnvPrefix("MOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	interval := v.GetDuration("monitor.interval")
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}

	return &fileConfig{
		Path:     path,
		Kind:     strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		Interval: interval,
		Level:    v.GetString("log.level"),
		Format:   v.GetString("log.format"),
		File:     v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	Kind     string        `json:"backend"`
	Interval time.Duration `json:"monitorInterval"`
	Level    string        `json:"logLevel"`
	Format   string        `json:"logFormat"`
	File     string        `json:"configFile,omitempty"`
}

func (f *fileConfig) BasePath() string               { return f.Path }
func (f *fileConfig) Backend() string                { return f.Kind }
func (f *fileConfig) MonitorInterval() time.Duration { return f.Interval }
func (f *fileConfig) LogLevel() string               { return f.Level }
func (f *fileConfig) LogFormat() string              { return f.Format }

// ConfigFile returns the config file that was read, if any.
func (f *fileConfig) ConfigFile() string { return f.File }

// StaticConfig is a Config with fixed values, handy for tests and embedding.
type StaticConfig struct {
	Path     string
	Kind     string
	Interval time.Duration
	Level    string
	Format   string
}

func (s StaticConfig) BasePath() string { return s.Path }
func (s StaticConfig) Backend() string  { return s.Kind }
func (s StaticConfig) MonitorInterval() time.Duration {
	if s.Interval <= 0 {
		return DefaultMonitorInterval
	}
	return s.Interval
}
func (s StaticConfig) LogLevel() string {
	if s.Level == "" {
		return DefaultLogLevel
	}
	return s.Level
}
func (s StaticConfig) LogFormat() string {
	if s.Format == "" {
		return DefaultLogFormat
	}
	return s.Format
}
