// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAsset(t *testing.T) {
	tests := []struct {
		typeName string
		expected TypedAsset
	}{
		{typeName: "Table", expected: &Table{}},
		{typeName: "Column", expected: &Column{}},
		{typeName: "Database", expected: &Database{}},
		{typeName: "Schema", expected: &Schema{}},
		{typeName: "View", expected: &View{}},
		{typeName: "Process", expected: &Process{}},
	}

	for _, tc := range tests {
		t.Run(tc.typeName, func(t *testing.T) {
			typed := ResolveAsset(Asset{Guid: "g1", TypeName: tc.typeName})
			assert.IsType(t, tc.expected, typed)
			assert.Equal(t, tc.typeName, typed.Variant())
			assert.Equal(t, "g1", typed.Asset().Guid)
		})
	}
}

func TestResolveAssetFallback(t *testing.T) {
	// Type names added server-side after this SDK was built must not fail.
	typed := ResolveAsset(Asset{Guid: "g2", TypeName: "QuantumLedger"})
	require.IsType(t, &Indistinct{}, typed)
	assert.Equal(t, "Indistinct", typed.Variant())
	assert.Equal(t, "QuantumLedger", typed.Asset().TypeName)
}
