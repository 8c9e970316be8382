// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package constants

const (

	// DefaultPageSize is the default number of results per page for searches
	DefaultPageSize = 300

	// DefaultBulkThreshold is the first-page total estimate above which an
	// iteration escalates from offset paging to timestamp-token paging.
	// Tuned against the catalog's search tier; override per client if the
	// deployment raises or lowers the engine's window limits.
	DefaultBulkThreshold = 10_000

	// DefaultMaxOffset is the deepest offset the search engine serves before
	// offset paging must hand over to timestamp-token paging.
	DefaultMaxOffset = 100_000

	// MaxBulkFetchSize caps how far a single bulk page fetch may be widened
	// when a whole page shares one creation timestamp.
	MaxBulkFetchSize = 3_000
)

const (

	// SortCreateTime is the stable sort key used for bulk pagination.
	SortCreateTime = "__timestamp"

	// SortGuid is the unique tiebreaker appended to the stable sort.
	SortGuid = "__guid"
)
