// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
)

// MockSearchEngine is an in-memory implementation of the PageExecutor port.
// It honors offset windows, the (timestamp, guid) tiebreaker constraint, and
// the effective sort order, so iterator tests exercise the real pagination
// decision logic against faithful engine semantics.
type MockSearchEngine struct {
	mu     sync.Mutex
	assets []model.Asset

	calls atomic.Int64

	// FailAtCall, when positive, fails that fetch (1-based) with a transport
	// error.
	FailAtCall int64
}

// NewMockSearchEngine creates an engine over the given dataset.
func NewMockSearchEngine(assets ...model.Asset) *MockSearchEngine {
	return &MockSearchEngine{assets: assets}
}

// AddAsset appends a record to the dataset.
func (m *MockSearchEngine) AddAsset(a model.Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, a)
}

// Calls returns how many page fetches have been executed.
func (m *MockSearchEngine) Calls() int64 {
	return m.calls.Load()
}

// ExecutePage implements the PageExecutor port against the in-memory dataset.
func (m *MockSearchEngine) ExecutePage(ctx context.Context, req model.PageRequest) (*model.SearchPage, error) {
	call := m.calls.Add(1)
	if m.FailAtCall > 0 && call == m.FailAtCall {
		return nil, errors.NewApiConnection(fmt.Sprintf("injected failure on page fetch %d", call))
	}

	m.mu.Lock()
	matched := make([]model.Asset, 0, len(m.assets))
	for _, a := range m.assets {
		if matches(a, req.Criteria) {
			matched = append(matched, a)
		}
	}
	m.mu.Unlock()

	sortAssets(matched, req.Sort)
	total := int64(len(matched))

	if req.After != nil {
		cut := 0
		for cut < len(matched) && !req.After.Less(model.KeyOf(matched[cut])) {
			cut++
		}
		matched = matched[cut:]
	}

	from := req.From
	if from > len(matched) {
		from = len(matched)
	}
	end := from + req.Size
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]model.Asset, end-from)
	copy(items, matched[from:end])

	return &model.SearchPage{
		Items:         items,
		TotalEstimate: total,
		HasMore:       end < len(matched),
	}, nil
}

func matches(a model.Asset, criteria model.SearchCriteria) bool {
	if criteria.TypeName != nil && a.TypeName != *criteria.TypeName {
		return false
	}
	if criteria.Name != nil && !strings.HasPrefix(a.Name, *criteria.Name) {
		return false
	}
	// Tags arrive already resolved to opaque IDs; the client translates the
	// caller's tag names before the request reaches an executor.
	if len(criteria.Tags) > 0 {
		found := false
		for _, want := range criteria.Tags {
			for _, id := range a.TagIDs {
				if id == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortAssets(assets []model.Asset, clauses []model.SortClause) {
	sort.SliceStable(assets, func(i, j int) bool {
		for _, clause := range clauses {
			a, b := fieldOf(assets[i], clause.Field), fieldOf(assets[j], clause.Field)
			if a == b {
				continue
			}
			if clause.Ascending {
				return a < b
			}
			return a > b
		}
		return false
	})
}

// fieldOf renders a sortable string for the clause field. Timestamps are
// zero-padded so lexicographic order matches numeric order.
func fieldOf(a model.Asset, field string) string {
	switch field {
	case constants.SortCreateTime:
		return fmt.Sprintf("%020d", a.CreateTime)
	case constants.SortGuid:
		return a.Guid
	case "name":
		return a.Name
	default:
		if v, ok := a.Attributes[field]; ok {
			return fmt.Sprint(v)
		}
		return ""
	}
}
