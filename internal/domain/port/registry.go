// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// RegistryFetcher defines the behavior for reading registry snapshots
// This abstraction allows different registry implementations (REST, mock)
// without the cache layer knowing about specific implementations
type RegistryFetcher interface {
	// FetchAll returns the full registry snapshot for a kind visible to the
	// current credentials. Idempotent and side-effect-free.
	FetchAll(ctx context.Context, kind model.Kind) ([]model.TypeDef, error)
}
