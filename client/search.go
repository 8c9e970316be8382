// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"log/slog"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/search"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
	"github.com/cartograph-io/cartograph-go/pkg/paging"
)

// Search starts a lazy iteration over every record matching the criteria.
// Tag filters are given by human-readable name and resolved to their opaque
// IDs through the translation cache before any page is fetched; an unknown
// tag name fails here with NotFound. Pages are fetched on demand as the
// caller advances; the iterator escalates to bulk paging by itself when the
// result set crosses the client's threshold. Iterators are single-use: call
// Search again to restart.
func (c *Client) Search(ctx context.Context, criteria model.SearchCriteria) (*search.Iterator, error) {
	if err := search.ValidateCriteria(criteria); err != nil {
		return nil, err
	}
	resolved, err := c.resolveTagFilters(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return search.NewIterator(c.executor, c.materializer, resolved, c.tunables)
}

// resolveTagFilters maps the caller's tag names onto the opaque IDs the
// search engine indexes. Criteria without tag filters pass through untouched.
func (c *Client) resolveTagFilters(ctx context.Context, criteria model.SearchCriteria) (model.SearchCriteria, error) {
	if len(criteria.Tags) == 0 {
		return criteria, nil
	}
	ids := make([]string, len(criteria.Tags))
	for i, name := range criteria.Tags {
		id, err := c.cache.IDForName(ctx, model.KindTag, name)
		if err != nil {
			return criteria, err
		}
		ids[i] = id
	}
	resolved := criteria
	resolved.Tags = ids
	return resolved, nil
}

// PageResult is one page from the raw single-page search API.
type PageResult struct {
	// Assets with tag and custom-metadata names materialized
	Assets []model.Asset
	// TotalEstimate is the engine's approximate total hit count
	TotalEstimate int64
	// NextPageToken fetches the following page; empty when exhausted. Tokens
	// are opaque and only redeemable against the client that issued them, for
	// the criteria they were issued with.
	NextPageToken string
}

// SearchPage fetches a single page. Pass an empty token for the first page
// and the returned token for each subsequent one. The same pagination state
// machine as Search drives the paging, so mode escalation and boundary
// handling behave identically. Tokens are bound to their criteria: redeeming
// one with different criteria fails with InvalidRequest.
func (c *Client) SearchPage(ctx context.Context, criteria model.SearchCriteria, pageToken string) (*PageResult, error) {
	if criteria.Domain == "" {
		criteria.Domain = model.DomainAssets
	}
	digest := search.CriteriaDigest(criteria)

	var cursor *search.Cursor
	if pageToken == "" {
		if err := search.ValidateCriteria(criteria); err != nil {
			return nil, err
		}
		cursor = search.NewCursor(criteria, c.tunables)
	} else {
		var snapshot search.CursorSnapshot
		if err := paging.DecodePageToken(ctx, pageToken, c.tokenKey, &snapshot); err != nil {
			return nil, err
		}
		if snapshot.CriteriaDigest != digest {
			return nil, errors.NewInvalidRequest("page token was issued for different search criteria")
		}
		cursor = search.FromSnapshot(snapshot, c.tunables)
	}

	if cursor.Exhausted() {
		return &PageResult{TotalEstimate: cursor.TotalEstimate()}, nil
	}

	resolved, err := c.resolveTagFilters(ctx, criteria)
	if err != nil {
		return nil, err
	}

	req := cursor.NextRequest(resolved)
	page, err := c.executor.ExecutePage(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := cursor.Advance(page)
	if err != nil {
		return nil, err
	}

	assets := make([]model.Asset, 0, len(items))
	for _, item := range items {
		materialized, err := c.materializer.MaterializeAsset(ctx, item)
		if err != nil {
			return nil, err
		}
		assets = append(assets, materialized)
	}

	result := &PageResult{
		Assets:        assets,
		TotalEstimate: cursor.TotalEstimate(),
	}
	if !cursor.Exhausted() {
		snapshot := cursor.Snapshot()
		snapshot.CriteriaDigest = digest
		token, err := paging.EncodePageToken(snapshot, c.tokenKey)
		if err != nil {
			return nil, err
		}
		result.NextPageToken = token
	}

	slog.DebugContext(ctx, "search page served",
		"items", len(result.Assets),
		"has_next", result.NextPageToken != "",
	)
	return result, nil
}
