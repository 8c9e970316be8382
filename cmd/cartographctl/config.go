// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	cartograph "github.com/cartograph-io/cartograph-go"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config holds the CLI connection settings, loaded from cartograph.yml, the
// CARTOGRAPH_* environment, and flags, in increasing precedence.
type config struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	BulkThreshold int64  `mapstructure:"bulk_threshold"`
}

// loadConfig reads the configuration and resolves flag overrides.
func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("cartograph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("cartograph")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if flag, _ := cmd.Flags().GetString("base-url"); flag != "" {
		cfg.BaseURL = flag
	}
	if flag, _ := cmd.Flags().GetString("api-key"); flag != "" {
		cfg.APIKey = flag
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required (flag --base-url, env CARTOGRAPH_BASE_URL, or cartograph.yml)")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (flag --api-key, env CARTOGRAPH_API_KEY, or cartograph.yml)")
	}

	return &cfg, nil
}

// newClient builds an SDK client from the resolved configuration.
func newClient(cmd *cobra.Command) (*cartograph.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	opts := []cartograph.Option{
		cartograph.WithBaseURL(cfg.BaseURL),
		cartograph.WithAPIKey(cfg.APIKey),
	}
	if cfg.BulkThreshold > 0 {
		opts = append(opts, cartograph.WithBulkThreshold(cfg.BulkThreshold))
	}
	return cartograph.New(opts...)
}
