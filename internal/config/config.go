package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"siemctl/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	API struct {
		URL     string        `mapstructure:"url" yaml:"url"`
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	} `mapstructure:"api" yaml:"api"`
	Session struct {
		Storage string `mapstructure:"storage" yaml:"storage"`
		Dir     string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"session" yaml:"session"`
	Events struct {
		Mode     string        `mapstructure:"mode" yaml:"mode"`
		Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
	} `mapstructure:"events" yaml:"events"`
	Export struct {
		Dir      string `mapstructure:"dir" yaml:"dir"`
		Compress bool   `mapstructure:"compress" yaml:"compress"`
	} `mapstructure:"export" yaml:"export"`
	Logging struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"logging" yaml:"logging"`
	Telemetry struct {
		SentryDSN string `mapstructure:"sentry_dsn" yaml:"sentry_dsn"`
	} `mapstructure:"telemetry" yaml:"telemetry"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.API.URL = DefaultAPIURL
	cfg.API.Timeout = DefaultTimeout

	cfg.Session.Storage = StorageFile
	cfg.Session.Dir = defaultSessionDir()

	cfg.Events.Mode = ModeScroll
	cfg.Events.Debounce = SearchDebounce

	cfg.Export.Dir = ExportDir

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	return cfg
}

// Load reads .env, the config file and SIEMCTL_* overrides, then validates the result
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ErrFailedToReadConfig
	}

	if len(data) > 0 {
		if err := checkDocument(data); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParseConfig, err)
		}

		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToReadConfig
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Path returns the config file location, honouring SIEMCTL_DIR
func Path() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}

	return ConfigFile
}

// YAML renders the effective configuration
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}

	switch c.Session.Storage {
	case StorageFile, StorageMemory:
	default:
		return fmt.Errorf("%w: '%s' (must be 'file' or 'memory')", errors.ErrInvalidSessionStorage, c.Session.Storage)
	}

	switch c.Events.Mode {
	case ModeScroll, ModePaged:
	default:
		return fmt.Errorf("%w: '%s' (must be 'scroll' or 'paged')", errors.ErrInvalidEventsMode, c.Events.Mode)
	}

	if c.Events.Debounce <= 0 {
		return errors.ErrInvalidDebounce
	}

	return nil
}

// validateAPI validates api settings
func (c *Config) validateAPI() error {
	if c.API.URL == "" {
		return errors.ErrAPIURLRequired
	}

	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: '%s'", errors.ErrInvalidAPIURL, c.API.URL)
	}

	if c.API.Timeout <= 0 {
		return errors.ErrInvalidTimeout
	}

	return nil
}

// normalize trims values that are compared verbatim later on
func (c *Config) normalize() {
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	c.Session.Storage = strings.ToLower(strings.TrimSpace(c.Session.Storage))
	c.Events.Mode = strings.ToLower(strings.TrimSpace(c.Events.Mode))
}

// setDefaults registers every key so env overrides apply without a config file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.url", cfg.API.URL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("session.storage", cfg.Session.Storage)
	v.SetDefault("session.dir", cfg.Session.Dir)
	v.SetDefault("events.mode", cfg.Events.Mode)
	v.SetDefault("events.debounce", cfg.Events.Debounce)
	v.SetDefault("export.dir", cfg.Export.Dir)
	v.SetDefault("export.compress", cfg.Export.Compress)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("telemetry.sentry_dsn", cfg.Telemetry.SentryDSN)
}

// checkDocument rejects config files whose root is not a mapping
func checkDocument(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}

	if doc := root.Content[0]; doc.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: top level must be a mapping", doc.Line)
	}

	return nil
}

func defaultSessionDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return SessionDir
	}

	return filepath.Join(home, SessionDir)
}
