package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	DefaultSeed        int64 = 42
	DefaultDatasetFile       = "synthetic_partners.csv"
	DefaultRunsDBFile        = "novagen-runs.sqlite"
)

// Config is read once at startup and treated as immutable afterwards.
type Config struct {
	DataDir     string
	Seed        int64
	SampleRows  int
	RunsDBPath  string
	LogLevel    string
	DefaultMode string
	ConfigFile  string

	// runs history follows DataDir unless runs_db was set explicitly
	runsDBFollowsDataDir bool
}

// DatasetPath is where generated datasets are written unless overridden.
func (c *Config) DatasetPath() string {
	return filepath.Join(c.DataDir, DefaultDatasetFile)
}

// WithDataDir returns a copy rooted at dir. A derived RunsDBPath moves with it.
func (c *Config) WithDataDir(dir string) *Config {
	cp := *c
	cp.DataDir = dir
	if cp.runsDBFollowsDataDir {
		cp.RunsDBPath = filepath.Join(dir, DefaultRunsDBFile)
	}
	return &cp
}

// Load resolves settings from defaults, an optional ./novagen.yaml and
// NOVA_* environment variables, in increasing priority.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for novagen.yaml and tolerates its absence.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("seed", DefaultSeed)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("log_level", "info")
	v.SetDefault("default_mode", "create_if_missing")

	v.SetEnvPrefix("NOVA")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("novagen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		DataDir:     v.GetString("data_dir"),
		Seed:        v.GetInt64("seed"),
		SampleRows:  v.GetInt("sample_rows"),
		RunsDBPath:  v.GetString("runs_db"),
		LogLevel:    v.GetString("log_level"),
		DefaultMode: v.GetString("default_mode"),
		ConfigFile:  v.ConfigFileUsed(),
	}
	if cfg.RunsDBPath == "" {
		cfg.RunsDBPath = filepath.Join(cfg.DataDir, DefaultRunsDBFile)
		cfg.runsDBFollowsDataDir = true
	}
	return cfg, nil
}
