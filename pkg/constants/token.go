// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package constants

// NonceSize is the secretbox nonce length used for page tokens.
const NonceSize = 24
