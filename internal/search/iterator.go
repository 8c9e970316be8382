// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package search

import (
	"context"
	"iter"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/domain/port"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
)

// Translator resolves the opaque IDs on a raw record into human-readable
// names before the record reaches the caller.
type Translator interface {
	MaterializeAsset(ctx context.Context, a model.Asset) (model.Asset, error)
}

// Iterator presents one paginated search as a lazy sequence of translated
// records. Pages are fetched strictly on demand, in order, with no prefetch,
// so abandoning the iteration never leaves a fetch in flight. An iterator is
// not restartable; construct a fresh one to iterate from the beginning.
type Iterator struct {
	executor   port.PageExecutor
	translator Translator
	criteria   model.SearchCriteria
	cursor     *Cursor
	pending    []model.Asset
	err        error
}

// ValidateCriteria rejects option combinations no iteration can satisfy.
// Requesting bulk mode together with an explicit sort fails here, before any
// page fetch happens.
func ValidateCriteria(criteria model.SearchCriteria) error {
	if criteria.ForceBulk && criteria.HasCustomSort() {
		return errors.NewInvalidRequest("bulk search rewrites the sort order and cannot honor a custom sort; remove one of the two")
	}
	return nil
}

// NewIterator validates the criteria and creates an iterator.
func NewIterator(executor port.PageExecutor, translator Translator, criteria model.SearchCriteria, tunables Tunables) (*Iterator, error) {
	if err := ValidateCriteria(criteria); err != nil {
		return nil, err
	}
	if criteria.Domain == "" {
		criteria.Domain = model.DomainAssets
	}
	return &Iterator{
		executor:   executor,
		translator: translator,
		criteria:   criteria,
		cursor:     NewCursor(criteria, tunables),
	}, nil
}

// Next returns the next record, or (nil, nil) once the iteration is
// exhausted. A page-fetch failure is returned at the call that needed the
// page and makes the iterator terminal; records yielded before it stay valid.
func (it *Iterator) Next(ctx context.Context) (*model.Asset, error) {
	if it.err != nil {
		return nil, it.err
	}

	for len(it.pending) == 0 {
		if it.cursor.Exhausted() {
			return nil, nil
		}

		req := it.cursor.NextRequest(it.criteria)
		page, err := it.executor.ExecutePage(ctx, req)
		if err != nil {
			it.err = err
			return nil, err
		}

		items, err := it.cursor.Advance(page)
		if err != nil {
			it.err = err
			return nil, err
		}
		it.pending = items
	}

	a := it.pending[0]
	it.pending = it.pending[1:]

	if it.translator != nil {
		translated, err := it.translator.MaterializeAsset(ctx, a)
		if err != nil {
			it.err = err
			return nil, err
		}
		a = translated
	}
	return &a, nil
}

// All returns the iteration as a range-over-func sequence sharing the same
// pull-based engine as Next: each element is fetched only when the consumer
// asks for it, and breaking out of the range stops all fetching.
func (it *Iterator) All(ctx context.Context) iter.Seq2[model.Asset, error] {
	return func(yield func(model.Asset, error) bool) {
		for {
			a, err := it.Next(ctx)
			if err != nil {
				yield(model.Asset{}, err)
				return
			}
			if a == nil {
				return
			}
			if !yield(*a, nil) {
				return
			}
		}
	}
}

// TotalEstimate exposes the engine's hit-count estimate once the first page
// has been fetched.
func (it *Iterator) TotalEstimate() int64 {
	return it.cursor.TotalEstimate()
}
