// Package config loads runtime configuration from defaults, an optional
// YAML file and VIEWANGLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/paunstefan/view-angle-calculator/internal/transform"
)

// EnvPrefix is prepended to every environment override:
// VIEWANGLE_ELLIPSOID_SEMI_MAJOR_AXIS → ellipsoid.semi_major_axis.
const EnvPrefix = "VIEWANGLE"

// Config holds all application configuration.
type Config struct {
	Ellipsoid EllipsoidConfig `mapstructure:"ellipsoid"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	CLI       CLIConfig       `mapstructure:"cli"`
}

// EllipsoidConfig defines the reference ellipsoid, WGS-84 by default.
type EllipsoidConfig struct {
	SemiMajorAxis     float64 `mapstructure:"semi_major_axis"`
	InverseFlattening float64 `mapstructure:"inverse_flattening"`
}

// Ellipsoid returns the configured reference ellipsoid.
func (e EllipsoidConfig) Ellipsoid() transform.Ellipsoid {
	return transform.Ellipsoid{
		SemiMajorAxis:     e.SemiMajorAxis,
		InverseFlattening: e.InverseFlattening,
	}
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP surface. A non-empty AuthToken is
// required as a bearer token on the API routes.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	TrustProxy   bool          `mapstructure:"trust_proxy"`
	AuthToken    string        `mapstructure:"auth_token"`
}

// CLIConfig holds settings read only by the lookangle command.
type CLIConfig struct {
	// Lenient turns unparsable numeric arguments into 0 instead of failing.
	Lenient bool `mapstructure:"lenient"`
}

// Load reads configuration. When file is empty, config.yaml is looked up in
// the working directory and ./configs and may be absent; an explicit file
// must exist.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ellipsoid.semi_major_axis", transform.WGS84SemiMajorAxis)
	v.SetDefault("ellipsoid.inverse_flattening", transform.WGS84InverseFlattening)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("server.auth_token", "")
	v.SetDefault("cli.lenient", false)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Ellipsoid.Ellipsoid().Validate(); err != nil {
		errs = append(errs, "ellipsoid: "+err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
