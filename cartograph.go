// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

// Package cartograph is the Go client SDK for the Cartograph metadata
// catalog. The facade re-exports the client surface and the domain types so
// consumers import a single package:
//
//	c, err := cartograph.New(cartograph.WithBaseURL(url), cartograph.WithAPIKey(key))
//	it, err := c.Search(ctx, cartograph.SearchCriteria{Tags: []string{"PII"}})
//	for asset, err := range it.All(ctx) { ... }
package cartograph

import (
	"github.com/cartograph-io/cartograph-go/client"
	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/search"
)

type (
	// Client is one authenticated connection to a catalog tenant.
	Client = client.Client

	// Option customizes client construction.
	Option = client.Option

	// PageResult is one page from the raw single-page search API.
	PageResult = client.PageResult

	// Asset is one catalog record.
	Asset = model.Asset

	// TypedAsset is the resolved concrete variant of an asset.
	TypedAsset = model.TypedAsset

	// TypeDef is one registry definition: tag, custom-metadata set, or enum.
	TypeDef = model.TypeDef

	// AttributeDef is one attribute of a custom-metadata set.
	AttributeDef = model.AttributeDef

	// Kind identifies a registry definition family.
	Kind = model.Kind

	// SearchCriteria encapsulates the search parameters.
	SearchCriteria = model.SearchCriteria

	// Iterator is a lazy, single-use sequence over search results.
	Iterator = search.Iterator
)

const (
	// KindTag covers classification tag definitions.
	KindTag = model.KindTag
	// KindCustomMetadata covers user-defined attribute sets.
	KindCustomMetadata = model.KindCustomMetadata
	// KindEnum covers enumeration definitions.
	KindEnum = model.KindEnum

	// DeletedSentinel replaces the name of a definition deleted after being
	// stamped on historical assets.
	DeletedSentinel = model.DeletedSentinel
)

// New creates a client from options, falling back to CARTOGRAPH_BASE_URL and
// CARTOGRAPH_API_KEY.
func New(opts ...Option) (*Client, error) {
	return client.New(opts...)
}

var (
	// WithBaseURL sets the catalog tenant URL.
	WithBaseURL = client.WithBaseURL
	// WithAPIKey sets the bearer token.
	WithAPIKey = client.WithAPIKey
	// WithTimeout sets the per-request HTTP timeout.
	WithTimeout = client.WithTimeout
	// WithBulkThreshold overrides the bulk-escalation threshold.
	WithBulkThreshold = client.WithBulkThreshold
	// WithMaxOffset overrides the engine's offset ceiling.
	WithMaxOffset = client.WithMaxOffset
)

// ResolveAsset maps a raw record to its concrete typed variant, falling back
// to the Indistinct variant for unknown type names.
func ResolveAsset(a Asset) TypedAsset {
	return model.ResolveAsset(a)
}
