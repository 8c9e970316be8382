// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package model

// Asset is one raw catalog record as returned by the search index. Tag and
// custom-metadata fields arrive as opaque hashed IDs; the translated fields
// are populated on the way out by the cache-backed materializer.
type Asset struct {
	// Guid is the globally unique asset identifier
	Guid string `json:"guid"`
	// TypeName is the asset's declared type
	TypeName string `json:"typeName"`
	// QualifiedName is the hierarchical unique name within the tenant
	QualifiedName string `json:"qualifiedName"`
	// Name is the display name
	Name string `json:"name"`
	// CreateTime is the creation timestamp in epoch milliseconds
	CreateTime int64 `json:"createTime"`
	// UpdateTime is the last-modification timestamp in epoch milliseconds
	UpdateTime int64 `json:"updateTime"`
	// Status is the lifecycle status (ACTIVE, DELETED)
	Status string `json:"status"`
	// TagIDs holds the raw hashed tag identifiers from the index
	TagIDs []string `json:"classificationIds,omitempty"`
	// CustomMetadata holds raw set-ID -> attribute-ID -> value
	CustomMetadata map[string]map[string]any `json:"businessAttributes,omitempty"`
	// Attributes holds the remaining type-specific attributes
	Attributes map[string]any `json:"attributes,omitempty"`

	// TagNames is the translated form of TagIDs; deleted tags appear as the
	// deletion sentinel
	TagNames []string `json:"-"`
	// CustomMetadataByName is the translated form of CustomMetadata,
	// set name -> attribute name -> value
	CustomMetadataByName map[string]map[string]any `json:"-"`
}
