// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"os"
	"time"
)

// Config holds the connection settings for the catalog REST API.
type Config struct {
	// BaseURL of the catalog tenant, e.g. https://tenant.cartograph.io
	BaseURL string
	// APIKey is the bearer token presented on every request
	APIKey string
	// Timeout for each HTTP request
	Timeout time.Duration
	// MaxRetries for transient failures (rate limits, 5xx, network)
	MaxRetries int
	// RetryDelay between retry attempts
	RetryDelay time.Duration
}

// NewConfigFromEnv builds a Config from CARTOGRAPH_BASE_URL and
// CARTOGRAPH_API_KEY with default timeouts.
func NewConfigFromEnv() Config {
	return Config{
		BaseURL:    os.Getenv("CARTOGRAPH_BASE_URL"),
		APIKey:     os.Getenv("CARTOGRAPH_API_KEY"),
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: 1 * time.Second,
	}
}
