// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/infrastructure/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeAsset(t *testing.T) {
	ctx := context.Background()
	registry := mock.NewMockRegistry()
	pii := registry.AddTypeDef(model.TypeDef{Kind: model.KindTag, Name: "PII"})
	gov := registry.AddTypeDef(model.TypeDef{
		Kind: model.KindCustomMetadata,
		Name: "Governance",
		Attributes: []model.AttributeDef{
			{Name: "owner", TypeName: "string"},
		},
	})

	translationCache := New(registry)
	m := NewAssetMaterializer(translationCache)

	t.Run("translates tag and custom metadata IDs", func(t *testing.T) {
		asset := model.Asset{
			Guid:   "a-1",
			TagIDs: []string{pii.ID},
			CustomMetadata: map[string]map[string]any{
				gov.ID: {gov.Attributes[0].ID: "data-team"},
			},
		}

		out, err := m.MaterializeAsset(ctx, asset)
		require.NoError(t, err)
		assert.Equal(t, []string{"PII"}, out.TagNames)
		assert.Equal(t, map[string]map[string]any{
			"Governance": {"owner": "data-team"},
		}, out.CustomMetadataByName)
	})

	t.Run("deleted tag surfaces as sentinel, not an error", func(t *testing.T) {
		asset := model.Asset{
			Guid:   "a-2",
			TagIDs: []string{pii.ID, "long-gone-tag-id"},
		}

		out, err := m.MaterializeAsset(ctx, asset)
		require.NoError(t, err)
		assert.Equal(t, []string{"PII", model.DeletedSentinel}, out.TagNames)
	})

	t.Run("leaves assets without IDs untouched", func(t *testing.T) {
		asset := model.Asset{Guid: "a-3", Name: "orders"}

		out, err := m.MaterializeAsset(ctx, asset)
		require.NoError(t, err)
		assert.Nil(t, out.TagNames)
		assert.Nil(t, out.CustomMetadataByName)
	})
}
