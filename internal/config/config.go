// Package config defines the application configuration and loads it from
// YAML files and the environment.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/takhmino/takhmino/internal/runlog"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/validation"
)

// EnvPrefix prefixes environment overrides, e.g. TAKHMINO_DATABASE_DSN.
const EnvPrefix = "TAKHMINO"

// Database drivers.
const (
	DriverPostgres = runlog.DriverPostgres
	DriverSQLite   = runlog.DriverSQLite
)

// Configuration holds all configuration for takhmino.
type Configuration struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging,omitempty"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output,omitempty"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database,omitempty"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis,omitempty"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing,omitempty"`
	Gold     GoldConfig     `mapstructure:"gold" yaml:"gold,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
	Locale string `mapstructure:"locale" yaml:"locale,omitempty"` // BCP 47 tag for number display
}

// DatabaseConfig selects the run-log store. An empty driver disables it.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver,omitempty"` // postgres, sqlite
	DSN    string `mapstructure:"dsn" yaml:"dsn,omitempty"`
}

// Enabled reports whether a run-log store is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.Driver != ""
}

// RedisConfig configures API rate limiting. An empty address disables it.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr" yaml:"addr,omitempty"`
	Password  string        `mapstructure:"password" yaml:"password,omitempty"`
	DB        int           `mapstructure:"db" yaml:"db,omitempty"`
	RateLimit int           `mapstructure:"rateLimit" yaml:"rateLimit,omitempty"` // requests per window
	Window    time.Duration `mapstructure:"window" yaml:"window,omitempty"`
}

// Enabled reports whether rate limiting is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// TracingConfig configures OTLP trace export. An empty endpoint disables it.
type TracingConfig struct {
	Endpoint    string `mapstructure:"endpoint" yaml:"endpoint,omitempty"` // host:port of the OTLP/HTTP collector
	ServiceName string `mapstructure:"serviceName" yaml:"serviceName,omitempty"`
	Insecure    bool   `mapstructure:"insecure" yaml:"insecure,omitempty"`
}

// GoldConfig tunes the gold simulator.
type GoldConfig struct {
	RandomRuns int   `mapstructure:"randomRuns" yaml:"randomRuns,omitempty"`
	MaxMonths  int   `mapstructure:"maxMonths" yaml:"maxMonths,omitempty"`
	Seed       int64 `mapstructure:"seed" yaml:"seed,omitempty"` // 0 seeds from the clock
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with TAKHMINO_
// override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// LoadEnvironment builds a configuration from TAKHMINO_ environment
// variables alone, for deployments without a config file.
func LoadEnvironment() (*Configuration, error) {
	return decode(newViper())
}

// Default returns a configuration with every default applied.
func Default() *Configuration {
	conf := &Configuration{}
	_ = conf.Normalize()
	return conf
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about, so bind every key to let
	// the environment set values the file omits.
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}

var envKeys = []string{
	"logging.level", "logging.format", "logging.outputFile",
	"output.format", "output.locale",
	"database.driver", "database.dsn",
	"redis.addr", "redis.password", "redis.db", "redis.rateLimit", "redis.window",
	"tracing.endpoint", "tracing.serviceName", "tracing.insecure",
	"gold.randomRuns", "gold.maxMonths", "gold.seed",
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := configuration.Normalize(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Normalize applies defaults and rejects values that cannot be used.
func (c *Configuration) Normalize() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}

	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if c.Output.Locale == "" {
		c.Output.Locale = constants.DefaultLocale
	}
	if err := validation.ValidateLocale(c.Output.Locale); err != nil {
		return err
	}

	switch c.Database.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q, expected %s or %s", c.Database.Driver, DriverPostgres, DriverSQLite)
	}
	if c.Database.Enabled() && c.Database.DSN == "" {
		return fmt.Errorf("database driver %s requires a dsn", c.Database.Driver)
	}

	if c.Redis.RateLimit <= 0 {
		c.Redis.RateLimit = constants.DefaultRateLimit
	}
	if c.Redis.Window <= 0 {
		c.Redis.Window = time.Minute
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = constants.ServiceName
	}

	if c.Gold.RandomRuns <= 0 {
		c.Gold.RandomRuns = constants.DefaultRandomRuns
	}
	if c.Gold.MaxMonths <= 0 || c.Gold.MaxMonths > constants.MaxSimulationMonths {
		c.Gold.MaxMonths = constants.MaxSimulationMonths
	}
	return nil
}
