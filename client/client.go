// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"time"

	"github.com/cartograph-io/cartograph-go/internal/cache"
	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/domain/port"
	"github.com/cartograph-io/cartograph-go/internal/infrastructure/catalogapi"
	"github.com/cartograph-io/cartograph-go/internal/search"
	"github.com/cartograph-io/cartograph-go/pkg/paging"
)

// Client is one authenticated connection to a catalog tenant. Each Client
// exclusively owns its translation caches; nothing is shared across client
// instances, so two clients with different credentials can never leak
// definitions to each other. There is deliberately no package-level default
// client: every cache and iterator takes its owning client explicitly.
type Client struct {
	fetcher  port.RegistryFetcher
	mutator  port.RegistryMutator
	executor port.PageExecutor

	cache        *cache.TranslationCache
	materializer *cache.AssetMaterializer
	tunables     search.Tunables
	tokenKey     *[32]byte

	api *catalogapi.Client
}

type options struct {
	config   catalogapi.Config
	tunables search.Tunables
}

// Option customizes client construction.
type Option func(*options)

// WithBaseURL sets the catalog tenant URL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.config.BaseURL = baseURL }
}

// WithAPIKey sets the bearer token.
func WithAPIKey(apiKey string) Option {
	return func(o *options) { o.config.APIKey = apiKey }
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.config.Timeout = timeout }
}

// WithBulkThreshold overrides the first-page estimate above which iteration
// escalates to bulk paging. Tune it to the target deployment's engine limits.
func WithBulkThreshold(threshold int64) Option {
	return func(o *options) { o.tunables.BulkThreshold = threshold }
}

// WithMaxOffset overrides the engine's maximum offset ceiling.
func WithMaxOffset(maxOffset int) Option {
	return func(o *options) { o.tunables.MaxOffset = maxOffset }
}

// New creates a client from options, falling back to the CARTOGRAPH_BASE_URL
// and CARTOGRAPH_API_KEY environment variables.
func New(opts ...Option) (*Client, error) {
	o := &options{
		config:   catalogapi.NewConfigFromEnv(),
		tunables: search.DefaultTunables(),
	}
	for _, opt := range opts {
		opt(o)
	}

	api, err := catalogapi.NewClient(o.config)
	if err != nil {
		return nil, err
	}

	c, err := newFromPorts(api, api, api, o.tunables)
	if err != nil {
		return nil, err
	}
	c.api = api
	return c, nil
}

// NewFromPorts wires a client from explicit collaborators. Tests and callers
// embedding the SDK behind custom transports use this instead of New.
func NewFromPorts(fetcher port.RegistryFetcher, mutator port.RegistryMutator, executor port.PageExecutor, opts ...Option) (*Client, error) {
	o := &options{tunables: search.DefaultTunables()}
	for _, opt := range opts {
		opt(o)
	}
	return newFromPorts(fetcher, mutator, executor, o.tunables)
}

func newFromPorts(fetcher port.RegistryFetcher, mutator port.RegistryMutator, executor port.PageExecutor, tunables search.Tunables) (*Client, error) {
	tokenKey, err := paging.NewTokenKey()
	if err != nil {
		return nil, err
	}

	translationCache := cache.New(fetcher)
	return &Client{
		fetcher:      fetcher,
		mutator:      mutator,
		executor:     executor,
		cache:        translationCache,
		materializer: cache.NewAssetMaterializer(translationCache),
		tunables:     tunables,
		tokenKey:     tokenKey,
	}, nil
}

// IsReady checks connectivity to the catalog API. Always ready for clients
// built from explicit ports.
func (c *Client) IsReady(ctx context.Context) error {
	if c.api == nil {
		return nil
	}
	return c.api.IsReady(ctx)
}

// ResolveAsset maps a raw record to its concrete typed variant, falling back
// to the Indistinct variant for unknown type names.
func (c *Client) ResolveAsset(a model.Asset) model.TypedAsset {
	return model.ResolveAsset(a)
}
