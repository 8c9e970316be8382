// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package paging

import (
	"context"
	"testing"

	"github.com/cartograph-io/cartograph-go/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenState struct {
	Mode   int      `json:"mode"`
	Offset int      `json:"offset"`
	Guids  []string `json:"guids,omitempty"`
}

func testKey(seed string) *[32]byte {
	var key [32]byte
	copy(key[:], []byte(seed))
	return &key
}

func TestNewTokenKey(t *testing.T) {
	key1, err := NewTokenKey()
	require.NoError(t, err)
	key2, err := NewTokenKey()
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	secretKey := testKey("12345678901234567890123456789012")
	ctx := context.Background()

	state := tokenState{Mode: 1, Offset: 600, Guids: []string{"g1", "g2"}}

	token, err := EncodePageToken(state, secretKey)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// RawURLEncoding: no padding, URL-safe alphabet.
	assert.NotContains(t, token, "=")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")

	var decoded tokenState
	require.NoError(t, DecodePageToken(ctx, token, secretKey, &decoded))
	assert.Equal(t, state, decoded)
}

func TestDecodePageToken_Invalid(t *testing.T) {
	secretKey := testKey("12345678901234567890123456789012")
	ctx := context.Background()

	tests := []struct {
		name       string
		setupToken func() string
	}{
		{
			name:       "invalid base64",
			setupToken: func() string { return "invalid-base64-!!!" },
		},
		{
			name:       "empty token",
			setupToken: func() string { return "" },
		},
		{
			name: "token too short",
			setupToken: func() string {
				return "dGVzdA" // "test": shorter than nonce + overhead
			},
		},
		{
			name: "token from another key",
			setupToken: func() string {
				token, err := EncodePageToken(tokenState{Offset: 3}, testKey("another-32-byte-key-for-testing!"))
				require.NoError(t, err)
				return token
			},
		},
		{
			name: "corrupted token",
			setupToken: func() string {
				token, err := EncodePageToken(tokenState{Offset: 3}, secretKey)
				require.NoError(t, err)
				corrupted := []rune(token)
				corrupted[len(corrupted)/2] = 'X'
				return string(corrupted)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var state tokenState
			err := DecodePageToken(ctx, tc.setupToken(), secretKey, &state)
			require.Error(t, err)
			assert.IsType(t, errors.InvalidRequest{}, err)
		})
	}
}

func TestPageTokenUniqueness(t *testing.T) {
	// Random nonces: same state, different tokens.
	secretKey := testKey("12345678901234567890123456789012")
	state := tokenState{Mode: 1, Offset: 42}

	token1, err := EncodePageToken(state, secretKey)
	require.NoError(t, err)
	token2, err := EncodePageToken(state, secretKey)
	require.NoError(t, err)
	assert.NotEqual(t, token1, token2)

	ctx := context.Background()
	var decoded1, decoded2 tokenState
	require.NoError(t, DecodePageToken(ctx, token1, secretKey, &decoded1))
	require.NoError(t, DecodePageToken(ctx, token2, secretKey, &decoded2))
	assert.Equal(t, decoded1, decoded2)
}
