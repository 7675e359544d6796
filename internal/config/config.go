package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds server settings. JWTSecret is the HS256 verification secret
// and is required for any authenticated route. TracingEndpoint empty means
// tracing is disabled. BootstrapAdminEmail, when set, seeds an admin account
// on first start.
type Config struct {
	Port                   int      `mapstructure:"port"`
	DatabasePath           string   `mapstructure:"database_path"`
	LogLevel               string   `mapstructure:"log_level"`
	AllowedOrigins         []string `mapstructure:"allowed_origins"`
	JWTSecret              string   `mapstructure:"jwt_secret"`
	RequestTimeoutSec      int      `mapstructure:"request_timeout_sec"`
	ShutdownTimeoutSec     int      `mapstructure:"shutdown_timeout_sec"`
	MaxBodyBytes           int      `mapstructure:"max_body_bytes"`
	RateLimitEnabled       bool     `mapstructure:"rate_limit_enabled"`
	TracingEndpoint        string   `mapstructure:"tracing_endpoint"`
	TracingSampleRate      float64  `mapstructure:"tracing_sample_rate"`
	BootstrapAdminEmail    string   `mapstructure:"bootstrap_admin_email"`
	BootstrapAdminPassword string   `mapstructure:"bootstrap_admin_password"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/gigvora/")
	viper.AddConfigPath("$HOME/.gigvora")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "./gigvora.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("jwt_secret", "")
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("max_body_bytes", 512*1024)
	viper.SetDefault("rate_limit_enabled", true)
	viper.SetDefault("tracing_endpoint", "")
	viper.SetDefault("tracing_sample_rate", 1.0)
	viper.SetDefault("bootstrap_admin_email", "")
	viper.SetDefault("bootstrap_admin_password", "")

	// Environment variables
	viper.SetEnvPrefix("GIGVORA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
