// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cartograph-io/cartograph-go/pkg/errors"
	"github.com/cartograph-io/cartograph-go/pkg/httpclient"
)

// Client talks to the catalog REST API. It implements both collaborator
// ports: registry snapshot reads and search page execution.
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// NewClient creates a catalog API client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.NewInvalidRequest("catalog base URL is required")
	}
	if config.APIKey == "" {
		return nil, errors.NewInvalidRequest("catalog API key is required")
	}

	httpConfig := httpclient.Config{
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryDelay:   config.RetryDelay,
		RetryBackoff: true,
	}

	return &Client{
		config:     config,
		httpClient: httpclient.NewClient(httpConfig),
	}, nil
}

// makeRequest performs one HTTP call and decodes the JSON response into out.
// Transient retries happen inside the HTTP client; errors surfacing here are
// final and already mapped to the typed taxonomy.
func (c *Client) makeRequest(ctx context.Context, method, path string, body io.Reader, out any) error {
	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", c.config.APIKey),
	}

	resp, err := c.httpClient.Request(ctx, method, c.config.BaseURL+path, body, headers)
	if err != nil {
		return mapTransportError(err)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return errors.NewUnexpected("failed to decode response", err)
		}
	}
	return nil
}

// postJSON marshals payload and POSTs it to path.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NewUnexpected("failed to encode request", err)
	}
	return c.makeRequest(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// mapTransportError converts HTTP client failures into the typed taxonomy.
// Retryable statuses arriving here have already exhausted the retry budget.
func mapTransportError(err error) error {
	if httpErr, ok := err.(*httpclient.RetryableError); ok {
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("resource not found", err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.NewInvalidRequest("invalid request", err)
		case http.StatusConflict:
			return errors.NewConflict("conflicting state", err)
		case http.StatusTooManyRequests:
			return errors.NewRateLimit("rate limited", err)
		default:
			return errors.NewApiConnection("catalog API error", err)
		}
	}
	return errors.NewApiConnection("request failed", err)
}

// IsReady checks whether the catalog API answers on its health endpoint.
func (c *Client) IsReady(ctx context.Context) error {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, c.config.BaseURL+"/api/health", nil, nil)
	if err != nil {
		return errors.NewApiConnection("failed to reach catalog API", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewApiConnection("catalog API is not ready", fmt.Errorf("status code: %d", resp.StatusCode))
	}
	return nil
}
