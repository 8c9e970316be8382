// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/errors"

	"github.com/google/uuid"
)

// MockRegistry is an in-memory implementation of the RegistryFetcher and
// RegistryMutator ports. It counts snapshot fetches so tests can assert that
// concurrent cache misses coalesce into a single fetch.
type MockRegistry struct {
	mu   sync.Mutex
	defs map[model.Kind][]model.TypeDef

	fetchCalls atomic.Int64

	// FetchErr, when set, fails every FetchAll with the given error.
	FetchErr error
	// FetchDelay, when set, is invoked at the start of each fetch so tests
	// can hold a refresh open while other lookups pile up.
	FetchDelay func()
}

// NewMockRegistry creates an empty mock registry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		defs: make(map[model.Kind][]model.TypeDef),
	}
}

// AddTypeDef seeds a definition, assigning an opaque ID when absent.
func (m *MockRegistry) AddTypeDef(def model.TypeDef) model.TypeDef {
	m.mu.Lock()
	defer m.mu.Unlock()
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	for i := range def.Attributes {
		if def.Attributes[i].ID == "" {
			def.Attributes[i].ID = uuid.NewString()
		}
	}
	m.defs[def.Kind] = append(m.defs[def.Kind], def)
	return def
}

// RemoveTypeDef deletes a definition by ID, reporting whether it existed.
func (m *MockRegistry) RemoveTypeDef(kind model.Kind, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	defs := m.defs[kind]
	for i, def := range defs {
		if def.ID == id {
			m.defs[kind] = append(defs[:i], defs[i+1:]...)
			return true
		}
	}
	return false
}

// FetchCalls returns how many snapshot fetches have been issued.
func (m *MockRegistry) FetchCalls() int64 {
	return m.fetchCalls.Load()
}

// FetchAll implements the RegistryFetcher port with the in-memory dataset.
func (m *MockRegistry) FetchAll(ctx context.Context, kind model.Kind) ([]model.TypeDef, error) {
	m.fetchCalls.Add(1)
	if m.FetchDelay != nil {
		m.FetchDelay()
	}
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.TypeDef, len(m.defs[kind]))
	copy(out, m.defs[kind])
	return out, nil
}

// CreateTypeDef implements the RegistryMutator port.
func (m *MockRegistry) CreateTypeDef(ctx context.Context, def model.TypeDef) (model.TypeDef, error) {
	m.mu.Lock()
	for _, existing := range m.defs[def.Kind] {
		if existing.Name == def.Name {
			m.mu.Unlock()
			return model.TypeDef{}, errors.NewConflict(fmt.Sprintf("%s definition %q already exists", def.Kind, def.Name))
		}
	}
	m.mu.Unlock()
	return m.AddTypeDef(def), nil
}

// DeleteTypeDef implements the RegistryMutator port.
func (m *MockRegistry) DeleteTypeDef(ctx context.Context, kind model.Kind, id string) error {
	if !m.RemoveTypeDef(kind, id) {
		return errors.NewNotFound(fmt.Sprintf("no %s definition with ID %q", kind, id))
	}
	return nil
}
