// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// PageExecutor defines the behavior for executing one search page
// This abstraction allows different search implementations (REST, mock)
// without the iterator knowing about specific implementations
type PageExecutor interface {
	// ExecutePage issues exactly one request against the search engine and
	// returns the resulting page. Typed errors surface transport, auth, and
	// rate-limit failures.
	ExecutePage(ctx context.Context, req model.PageRequest) (*model.SearchPage, error)
}
