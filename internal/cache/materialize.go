// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// AssetMaterializer is the response wrapper between raw search hits and the
// caller: it resolves the opaque tag and custom-metadata IDs stamped on a
// record into human-readable names. Purely an outbound transformation; it
// never writes to the cache beyond the refreshes its lookups may trigger.
type AssetMaterializer struct {
	cache *TranslationCache
}

// NewAssetMaterializer creates a materializer backed by the given cache.
func NewAssetMaterializer(c *TranslationCache) *AssetMaterializer {
	return &AssetMaterializer{cache: c}
}

// MaterializeAsset returns a copy of the asset with TagNames and
// CustomMetadataByName populated. Deleted definitions surface as the deletion
// sentinel rather than failing the whole record.
func (m *AssetMaterializer) MaterializeAsset(ctx context.Context, a model.Asset) (model.Asset, error) {
	if len(a.TagIDs) > 0 {
		names := make([]string, 0, len(a.TagIDs))
		for _, id := range a.TagIDs {
			name, err := m.cache.NameForID(ctx, model.KindTag, id)
			if err != nil {
				return a, err
			}
			names = append(names, name)
		}
		a.TagNames = names
	}

	if len(a.CustomMetadata) > 0 {
		bySet := make(map[string]map[string]any, len(a.CustomMetadata))
		for setID, attrs := range a.CustomMetadata {
			setName, err := m.cache.NameForID(ctx, model.KindCustomMetadata, setID)
			if err != nil {
				return a, err
			}
			named := make(map[string]any, len(attrs))
			for attrID, value := range attrs {
				_, attrName, err := m.cache.AttributeNameForID(ctx, attrID)
				if err != nil {
					return a, err
				}
				named[attrName] = value
			}
			bySet[setName] = named
		}
		a.CustomMetadataByName = bySet
	}

	return a, nil
}
