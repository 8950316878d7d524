// Package config handles application configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/staffdesk/staffdesk/internal/errors"
)

const (
	// EnvPrefix prefixes every environment override, e.g. STAFFDESK_API_BASE_URL.
	EnvPrefix = "STAFFDESK"

	// DirName is the per-user state directory under $HOME.
	DirName = ".staffdesk"

	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api" json:"api"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage" json:"storage"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output" json:"output"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// APIConfig describes the backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// StorageConfig selects where the session is persisted.
type StorageConfig struct {
	// Driver is "file" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"`
	Path   string `mapstructure:"path" yaml:"path" json:"path"`
}

// OutputConfig holds display defaults.
type OutputConfig struct {
	Format  string `mapstructure:"format" yaml:"format" json:"format"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color" json:"no_color"`
}

// LogConfig configures internal/log.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// MetricsConfig enables the prometheus textfile dump.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	File    string `mapstructure:"file" yaml:"file" json:"file"`
}

// Dir returns ~/.staffdesk, honoring STAFFDESK_HOME.
func Dir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, "cannot determine home directory", err)
	}
	return filepath.Join(home, DirName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "file",
			Path:   filepath.Join(dir, "session.json"),
		},
		Output: OutputConfig{Format: "text"},
		Log:    LogConfig{Level: "warn", Format: "text"},
		Metrics: MetricsConfig{
			File: filepath.Join(dir, "metrics.prom"),
		},
	}
}

func setDefaults(v *viper.Viper, dir string) {
	d := Default(dir)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.no_color", d.Output.NoColor)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.file", d.Metrics.File)
}

// Load reads configuration from file and environment. An empty configPath uses
// ~/.staffdesk/config.yaml; a missing default file is not an error.
func Load(configPath string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(errors.ErrCodeConfigLoad, "failed to read config", err).
				WithSuggestion("Run 'staffdesk config view' to inspect the effective configuration")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to decode config", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Metrics.File = expandHome(cfg.Metrics.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later and far from the cause.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "api.base_url must not be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL))
	}
	switch c.Storage.Driver {
	case "file", "sqlite":
	default:
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver)).
			WithSuggestion("Use 'file' or 'sqlite'")
	}
	switch c.Output.Format {
	case "text", "json", "yaml", "xlsx":
	default:
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("unknown output.format %q", c.Output.Format))
	}
	return nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "failed to create config directory", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to encode config", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config", err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
