// Package config provides declarative job configuration for dataglide.
// A job config describes one read endpoint, one write endpoint, and the
// logging setup; the CLI turns it into a source and sink connector pair.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/dataglide/dataglide/pkg/errors"
)

// JobConfig is the top-level configuration for one pipeline job.
type JobConfig struct {
	// Name identifies the job in logs
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// Source describes the read endpoint
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Sink describes the write endpoint
	Sink SinkConfig `mapstructure:"sink" yaml:"sink" json:"sink"`

	// Logging configures the structured logger
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// SourceConfig describes the database read endpoint.
type SourceConfig struct {
	// Driver is the database/sql driver name (e.g. "pgx", "mysql", "sqlite3")
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"`
	// URL is the driver-specific DSN
	URL string `mapstructure:"url" yaml:"url" json:"url"`
	// Username and Password identify the connecting principal
	Username string `mapstructure:"username" yaml:"username" json:"username"`
	Password string `mapstructure:"password" yaml:"password" json:"password"`
	// Query is the SQL text to read with
	Query string `mapstructure:"query" yaml:"query" json:"query"`
	// FetchSize overrides the runner's row buffer size (0 = runner default)
	FetchSize int `mapstructure:"fetch_size" yaml:"fetch_size" json:"fetch_size"`
}

// SinkConfig describes the database write endpoint.
type SinkConfig struct {
	Driver   string `mapstructure:"driver" yaml:"driver" json:"driver"`
	URL      string `mapstructure:"url" yaml:"url" json:"url"`
	Username string `mapstructure:"username" yaml:"username" json:"username"`
	Password string `mapstructure:"password" yaml:"password" json:"password"`
	// Statement is the DML text to write with
	Statement string `mapstructure:"statement" yaml:"statement" json:"statement"`
	// Columns names the record fields bound as statement parameters, in
	// placeholder order. Empty means the statement takes no parameters.
	Columns []string `mapstructure:"columns" yaml:"columns" json:"columns"`
	// BatchSize overrides the runner's write batch size (0 = runner default)
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size" json:"batch_size"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level" json:"level"`
	Development bool   `mapstructure:"development" yaml:"development" json:"development"`
	Encoding    string `mapstructure:"encoding" yaml:"encoding" json:"encoding"`
}

// Load reads a job configuration file. Environment variables prefixed with
// DATAGLIDE_ override file values (e.g. DATAGLIDE_SINK_PASSWORD).
func Load(path string) (*JobConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("DATAGLIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
			WithDetail("path", path)
	}

	cfg := &JobConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config file").
			WithDetail("path", path)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required field is present.
func (c *JobConfig) Validate() error {
	if c.Source.Driver == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: source.driver")
	}
	if c.Source.URL == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: source.url")
	}
	if c.Source.Query == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: source.query")
	}
	if c.Source.FetchSize < 0 {
		return errors.New(errors.ErrorTypeConfig, "source.fetch_size must not be negative")
	}
	if c.Sink.Driver == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: sink.driver")
	}
	if c.Sink.URL == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: sink.url")
	}
	if c.Sink.Statement == "" {
		return errors.New(errors.ErrorTypeConfig, "missing required field: sink.statement")
	}
	if c.Sink.BatchSize < 0 {
		return errors.New(errors.ErrorTypeConfig, "sink.batch_size must not be negative")
	}
	return nil
}
