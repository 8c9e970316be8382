// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package constants

// RequestIDHeader is the header name for the request ID
const RequestIDHeader = "X-REQUEST-ID"

const (

	// TypedefsPath is the registry snapshot endpoint, parameterized by category.
	TypedefsPath = "/api/meta/typedefs"

	// IndexSearchPath is the asset index search endpoint.
	IndexSearchPath = "/api/meta/search/indexsearch"

	// AuditSearchPath is the audit-log search endpoint.
	AuditSearchPath = "/api/meta/search/auditsearch"
)
