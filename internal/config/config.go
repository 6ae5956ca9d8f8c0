// Package config holds app wide settings unmarshalled from viper. Values come,
// in rising precedence, from built-in defaults, an optional YAML file, NWALIGN_
// environment variables and command line flags bound in cmd/nwalign.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aria-lang/nwalign/internal/alignment"
	"github.com/spf13/viper"
)

// DefaultMaxLength caps API sequences so a request cannot allocate an
// arbitrarily large DP table.
const DefaultMaxLength = 10000

// EnvPrefix is prepended to every environment variable, e.g. NWALIGN_SCORING_GAP.
const EnvPrefix = "NWALIGN"

var (
	// ErrInvalidPort indicates a server port outside 1..65535.
	ErrInvalidPort = errors.New("config: server port must be between 1 and 65535")

	// ErrInvalidMaxPaths indicates a negative path ceiling.
	ErrInvalidMaxPaths = errors.New("config: max-paths must be >= 0")

	// ErrInvalidMaxLength indicates a negative sequence length cap.
	ErrInvalidMaxLength = errors.New("config: server max-length must be >= 0")
)

// ServerConfig is for the HTTP API
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`

	// per-request deadline, also bounds path enumeration
	RequestTimeout time.Duration `mapstructure:"request-timeout"`

	// longest sequence a request may carry; 0 disables the check
	MaxLength int `mapstructure:"max-length"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the root-level settings struct
type Config struct {
	// scoring scheme used when a request or command does not set one
	Scoring alignment.Scheme `mapstructure:"scoring"`

	// ceiling on enumerated optimal paths; 0 disables it
	MaxPaths int `mapstructure:"max-paths"`

	// fail instead of truncating when MaxPaths is reached
	StrictLimit bool `mapstructure:"strict-limit"`

	// reject symbols outside ACGTN
	Strict bool `mapstructure:"strict"`

	// debug logging
	Verbose bool `mapstructure:"verbose"`

	Server ServerConfig `mapstructure:"server"`
}

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	scheme := alignment.DefaultScheme()
	v.SetDefault("scoring.identity", scheme.Identity)
	v.SetDefault("scoring.transition", scheme.Transition)
	v.SetDefault("scoring.transversion", scheme.Transversion)
	v.SetDefault("scoring.gap", scheme.Gap)

	v.SetDefault("max-paths", alignment.DefaultMaxPaths)
	v.SetDefault("strict-limit", false)
	v.SetDefault("strict", false)
	v.SetDefault("verbose", false)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read-timeout", 15*time.Second)
	v.SetDefault("server.write-timeout", 15*time.Second)
	v.SetDefault("server.idle-timeout", 60*time.Second)
	v.SetDefault("server.request-timeout", 60*time.Second)
	v.SetDefault("server.max-length", DefaultMaxLength)
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Server.Port)
	}
	if c.MaxPaths < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxPaths, c.MaxPaths)
	}
	if c.Server.MaxLength < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxLength, c.Server.MaxLength)
	}
	return nil
}

// AlignOptions turns the enumeration settings into pipeline options.
func (c *Config) AlignOptions() []alignment.Option {
	opts := []alignment.Option{alignment.WithMaxPaths(c.MaxPaths)}
	if c.StrictLimit {
		opts = append(opts, alignment.WithStrictLimit())
	}
	return opts
}
