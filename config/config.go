package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	BaseURL       string
	QuoteTimeout  time.Duration
	WalletAddress string
	GracePeriod   time.Duration
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".chaincompass")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("base_url", "http://localhost:8000")
	viper.SetDefault("quote_timeout_seconds", 15)
	viper.SetDefault("grace_period_seconds", 3)

	// Read from environment variables
	viper.SetEnvPrefix("CHAINCOMPASS")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		BaseURL:       viper.GetString("base_url"),
		QuoteTimeout:  time.Duration(viper.GetInt("quote_timeout_seconds")) * time.Second,
		WalletAddress: viper.GetString("wallet_address"),
		GracePeriod:   time.Duration(viper.GetInt("grace_period_seconds")) * time.Second,
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL not set. Please set CHAINCOMPASS_BASE_URL or base_url in .chaincompass.yaml")
	}
	if cfg.QuoteTimeout <= 0 {
		return nil, fmt.Errorf("quote_timeout_seconds must be positive")
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
