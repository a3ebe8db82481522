package config

import (
	"fmt"
)

// Config represents the complete configuration for the langid application.
// It includes settings for all commands (identify, batch, serve, profile)
// and supports loading from configuration files, environment variables, and
// command-line flags.
type Config struct {
	// Global settings
	ProfilesDir string `mapstructure:"profiles_dir" yaml:"profiles_dir" json:"profiles_dir"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Decision rule settings
	Identify IdentifyConfig `mapstructure:"identify" yaml:"identify" json:"identify"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// IdentifyConfig contains the decision-rule policy for identification.
type IdentifyConfig struct {
	// Threshold is the minimum cosine similarity the best match must exceed.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	// Margin is the minimum gap between the best and second-best score.
	// Zero disables the margin gate.
	Margin float64 `mapstructure:"margin" yaml:"margin" json:"margin"`
	// MaxLines caps how many input lines are profiled. Zero means no cap.
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines" json:"max_lines"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// Rate limiting
	RateLimitEnabled  bool  `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	MaxDataPerDay     int64 `mapstructure:"max_data_per_day" yaml:"max_data_per_day" json:"max_data_per_day"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		ProfilesDir: "profiles",
		LogLevel:    "info",
		Verbose:     false,
		Identify: IdentifyConfig{
			Threshold: 0.3,
			Margin:    0,
			MaxLines:  0,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:              "localhost",
			Port:              8080,
			CORSOrigin:        "*",
			MaxUploadMB:       10,
			TimeoutSec:        30,
			ShutdownTimeout:   10,
			RateLimitEnabled:  false,
			RequestsPerMinute: 60,
			MaxDataPerDay:     100 * 1024 * 1024,
		},
		Batch: BatchConfig{
			Workers:         4,
			Recursive:       false,
			ContinueOnError: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if c.Identify.Threshold < 0 || c.Identify.Threshold > 1 {
		return fmt.Errorf("invalid identify threshold: %.2f (must be between 0.0 and 1.0)", c.Identify.Threshold)
	}
	if c.Identify.Margin < 0 || c.Identify.Margin > 1 {
		return fmt.Errorf("invalid identify margin: %.2f (must be between 0.0 and 1.0)", c.Identify.Margin)
	}
	if c.Identify.MaxLines < 0 {
		return fmt.Errorf("invalid identify max_lines: %d (must not be negative)", c.Identify.MaxLines)
	}

	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, csv)", c.Output.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("invalid max upload size: %d MB (must be positive)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec <= 0 {
		return fmt.Errorf("invalid server timeout: %d (must be positive)", c.Server.TimeoutSec)
	}

	if c.Batch.Workers <= 0 {
		return fmt.Errorf("invalid batch workers: %d (must be positive)", c.Batch.Workers)
	}

	return nil
}
