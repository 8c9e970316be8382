// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package model

// SearchDomain selects which paged search operation a criteria targets.
type SearchDomain string

const (
	// DomainAssets searches the asset index.
	DomainAssets SearchDomain = "assets"
	// DomainAudit searches the audit log.
	DomainAudit SearchDomain = "audit"
)

// SearchCriteria encapsulates all caller-facing search parameters
type SearchCriteria struct {
	// Domain selects the asset index or the audit log
	Domain SearchDomain
	// TypeName restricts results to one asset type
	TypeName *string
	// Name matches the display name; supports prefix matching
	Name *string
	// Tags filters to assets carrying any of the given tags. Callers give
	// human-readable names; the client resolves them to opaque IDs before the
	// request reaches the engine
	Tags []string
	// Query is an optional raw filter clause merged into the rendered query
	Query map[string]any
	// SortBy pins an explicit sort field; empty means the default stable sort
	SortBy string
	// SortOrder is "asc" or "desc"; meaningful only with SortBy
	SortOrder string
	// PageSize for pagination; defaulted when zero
	PageSize int
	// ForceBulk starts the iteration in timestamp-token mode immediately
	ForceBulk bool
}

// HasCustomSort reports whether the caller pinned an explicit sort order.
// Bulk pagination needs full control of the sort clause, so a pinned sort is
// incompatible with it.
func (c SearchCriteria) HasCustomSort() bool {
	return c.SortBy != ""
}

// SortClause is one element of the effective sort order sent to the engine.
type SortClause struct {
	Field     string
	Ascending bool
}

// SortKey is the stable, unique tiebreaker used by timestamp-token paging:
// creation timestamp plus asset GUID.
type SortKey struct {
	Timestamp int64  `json:"timestamp"`
	Guid      string `json:"guid"`
}

// Less reports whether k orders strictly before other under the
// (timestamp, guid) lexicographic order.
func (k SortKey) Less(other SortKey) bool {
	if k.Timestamp != other.Timestamp {
		return k.Timestamp < other.Timestamp
	}
	return k.Guid < other.Guid
}

// KeyOf extracts the pagination sort key of an asset.
func KeyOf(a Asset) SortKey {
	return SortKey{Timestamp: a.CreateTime, Guid: a.Guid}
}

// PageRequest is one page fetch handed to the search execution collaborator.
type PageRequest struct {
	// Criteria carries the caller's filters
	Criteria SearchCriteria
	// Sort is the effective sort order for this page
	Sort []SortClause
	// From is the result offset (offset paging only)
	From int
	// Size is the number of records requested
	Size int
	// After constrains results to sort keys strictly greater than this
	// tiebreaker (timestamp-token paging only)
	After *SortKey
}

// SearchPage is one page of raw results from the search engine.
type SearchPage struct {
	// Items in engine sort order
	Items []Asset
	// TotalEstimate is the engine's approximate total hit count
	TotalEstimate int64
	// HasMore indicates further pages exist
	HasMore bool
}
