// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// RegistryMutator defines the behavior for registry write operations. The
// client invalidates the matching cache kind after each successful call to
// keep read-after-write consistency.
type RegistryMutator interface {
	// CreateTypeDef registers a new definition, returning it with the
	// server-assigned ID
	CreateTypeDef(ctx context.Context, def model.TypeDef) (model.TypeDef, error)

	// DeleteTypeDef removes a definition by opaque ID
	DeleteTypeDef(ctx context.Context, kind model.Kind, id string) error
}
