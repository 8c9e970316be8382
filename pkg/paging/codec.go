// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package paging

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// NewTokenKey generates a fresh secretbox key. Each client instance gets its
// own key at construction, so tokens are only redeemable against the client
// that issued them and die with it.
func NewTokenKey() (*[32]byte, error) {
	var key [32]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, errors.NewUnexpected("failed to generate page token key", err)
	}
	return &key, nil
}

// EncodePageToken takes a JSON-serializable cursor snapshot, encrypts it with
// secretbox, and returns a secure base64 token.
func EncodePageToken(state any, secretKey *[32]byte) (string, error) {
	encodedState, err := json.Marshal(state)
	if err != nil {
		return "", errors.NewUnexpected("failed to marshal page token state", err)
	}

	var nonce [constants.NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", errors.NewUnexpected("failed to generate nonce for page token", err)
	}

	encrypted := secretbox.Seal(nonce[:], encodedState, &nonce, secretKey)

	token := base64.RawURLEncoding.EncodeToString(encrypted)
	return token, nil
}

// DecodePageToken takes a base64-encoded, secretbox-encrypted token and
// unmarshals the cursor snapshot into state. Returns an error if decoding,
// decryption, or unmarshaling fails.
func DecodePageToken(ctx context.Context, encoded string, secretKey *[32]byte, state any) error {

	slog.DebugContext(ctx, "decoding page token",
		"encoded_token", encoded,
	)

	encrypted, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return errors.NewInvalidRequest("invalid encoded page token", err)
	}

	if len(encrypted) < constants.NonceSize+secretbox.Overhead {
		return errors.NewInvalidRequest(
			"invalid page token length",
			fmt.Errorf("expected at least %d bytes, got %d", constants.NonceSize+secretbox.Overhead, len(encrypted)),
		)
	}

	var decryptNonce [constants.NonceSize]byte
	copy(decryptNonce[:], encrypted[:constants.NonceSize])
	decrypted, ok := secretbox.Open(nil, encrypted[constants.NonceSize:], &decryptNonce, secretKey)
	if !ok {
		return errors.NewInvalidRequest("failed to decrypt page token")
	}

	if err := json.Unmarshal(decrypted, state); err != nil {
		return errors.NewInvalidRequest("failed to unmarshal page token state", err)
	}

	return nil
}
