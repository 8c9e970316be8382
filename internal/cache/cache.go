// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/internal/domain/port"
	"github.com/cartograph-io/cartograph-go/pkg/errors"

	"golang.org/x/sync/singleflight"
)

// TranslationCache resolves between human-readable names and server-opaque
// IDs for tags, custom-metadata definitions, and enums. One instance is owned
// exclusively by one client; caches are never shared across clients, so
// credentials scope what each cache can see.
type TranslationCache struct {
	fetcher port.RegistryFetcher
	entries map[model.Kind]*entry

	// group coalesces concurrent refreshes so each kind has at most one
	// registry fetch in flight per client instance.
	group singleflight.Group
}

// attrKey addresses one custom-metadata attribute by set and attribute name.
type attrKey struct {
	set  string
	name string
}

// attrRef is the inverse: the human-readable location of an attribute ID.
type attrRef struct {
	Set  string
	Name string
}

// entry holds one kind's snapshot. The two maps are only ever replaced
// together under the write lock, never mutated in place, so readers always
// observe a consistent pair.
type entry struct {
	mu              sync.RWMutex
	nameToID        map[string]string
	idToName        map[string]string
	attrIDByKey     map[attrKey]string
	attrRefByID     map[string]attrRef
	lastRefreshedAt time.Time
	generation      uint64
	stale           bool
}

// New creates a TranslationCache backed by the given registry fetcher. All
// kinds start empty and populate lazily on first lookup miss.
func New(fetcher port.RegistryFetcher) *TranslationCache {
	entries := make(map[model.Kind]*entry, len(model.Kinds))
	for _, kind := range model.Kinds {
		entries[kind] = &entry{}
	}
	return &TranslationCache{
		fetcher: fetcher,
		entries: entries,
	}
}

// IDForName returns the opaque ID for a human-readable name, refreshing the
// kind's snapshot once on a miss. Returns a NotFound error if the name is
// absent even after the refresh.
func (c *TranslationCache) IDForName(ctx context.Context, kind model.Kind, name string) (string, error) {
	e, err := c.entry(kind)
	if err != nil {
		return "", err
	}

	id, ok, seenGen := e.lookupID(name)
	if ok {
		return id, nil
	}

	if err := c.refreshIfStale(ctx, kind, seenGen); err != nil {
		return "", err
	}

	if id, ok, _ := e.lookupID(name); ok {
		return id, nil
	}
	return "", errors.NewNotFound(fmt.Sprintf("no %s definition named %q", kind, name))
}

// NameForID returns the human-readable name for an opaque ID, refreshing the
// kind's snapshot once on a miss. An ID that stays unresolved after the
// refresh yields the deletion sentinel instead of an error: callers routinely
// resolve IDs stamped on historical assets whose definition has since been
// removed.
func (c *TranslationCache) NameForID(ctx context.Context, kind model.Kind, id string) (string, error) {
	e, err := c.entry(kind)
	if err != nil {
		return "", err
	}

	name, ok, seenGen := e.lookupName(id)
	if ok {
		return name, nil
	}

	if err := c.refreshIfStale(ctx, kind, seenGen); err != nil {
		return "", err
	}

	if name, ok, _ := e.lookupName(id); ok {
		return name, nil
	}

	slog.DebugContext(ctx, "registry ID no longer resolves, returning deletion sentinel",
		"kind", kind,
		"id", id,
	)
	return model.DeletedSentinel, nil
}

// AttributeIDForName returns the opaque ID of one custom-metadata attribute,
// addressed by set name and attribute name.
func (c *TranslationCache) AttributeIDForName(ctx context.Context, setName, attrName string) (string, error) {
	e, err := c.entry(model.KindCustomMetadata)
	if err != nil {
		return "", err
	}

	key := attrKey{set: setName, name: attrName}
	id, ok, seenGen := e.lookupAttrID(key)
	if ok {
		return id, nil
	}

	if err := c.refreshIfStale(ctx, model.KindCustomMetadata, seenGen); err != nil {
		return "", err
	}

	if id, ok, _ := e.lookupAttrID(key); ok {
		return id, nil
	}
	return "", errors.NewNotFound(fmt.Sprintf("no custom metadata attribute %q in set %q", attrName, setName))
}

// AttributeNameForID resolves an attribute ID back to its set and attribute
// names. Unresolvable IDs yield the deletion sentinel for both, mirroring
// NameForID.
func (c *TranslationCache) AttributeNameForID(ctx context.Context, id string) (setName, attrName string, err error) {
	e, err := c.entry(model.KindCustomMetadata)
	if err != nil {
		return "", "", err
	}

	ref, ok, seenGen := e.lookupAttrRef(id)
	if ok {
		return ref.Set, ref.Name, nil
	}

	if err := c.refreshIfStale(ctx, model.KindCustomMetadata, seenGen); err != nil {
		return "", "", err
	}

	if ref, ok, _ := e.lookupAttrRef(id); ok {
		return ref.Set, ref.Name, nil
	}
	return model.DeletedSentinel, model.DeletedSentinel, nil
}

// Names returns the sorted human-readable names of a kind, loading the
// snapshot first if it was never fetched or has been invalidated.
func (c *TranslationCache) Names(ctx context.Context, kind model.Kind) ([]string, error) {
	e, err := c.entry(kind)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	loaded := e.generation > 0 && !e.stale
	e.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx, kind); err != nil {
			return nil, err
		}
	}

	e.mu.RLock()
	names := make([]string, 0, len(e.nameToID))
	for name := range e.nameToID {
		names = append(names, name)
	}
	e.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

// Refresh unconditionally re-fetches the kind's registry snapshot and
// atomically replaces the maps. Concurrent callers coalesce into a single
// in-flight fetch; late callers await its result.
func (c *TranslationCache) Refresh(ctx context.Context, kind model.Kind) error {
	if _, err := c.entry(kind); err != nil {
		return err
	}

	_, err, _ := c.group.Do(string(kind), func() (any, error) {
		return nil, c.fetchAndSwap(ctx, kind)
	})
	return err
}

// Invalidate marks the kind's snapshot stale without fetching. The next
// lookup miss triggers a refresh. Mutation operations call this after a
// successful create, update, or delete of a definition.
func (c *TranslationCache) Invalidate(kind model.Kind) {
	e, err := c.entry(kind)
	if err != nil {
		return
	}
	e.mu.Lock()
	e.stale = true
	e.mu.Unlock()
}

// LastRefreshed returns when the kind's snapshot was last replaced, zero if
// never.
func (c *TranslationCache) LastRefreshed(kind model.Kind) time.Time {
	e, err := c.entry(kind)
	if err != nil {
		return time.Time{}
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastRefreshedAt
}

// refreshIfStale refreshes the kind unless another caller already did so
// since the observed generation. This is the double-checked half of the
// miss path: many goroutines missing at warm-up coalesce into one fetch, and
// callers queued behind a completed refresh skip the redundant one.
func (c *TranslationCache) refreshIfStale(ctx context.Context, kind model.Kind, seenGen uint64) error {
	e, err := c.entry(kind)
	if err != nil {
		return err
	}

	_, err, _ = c.group.Do(string(kind), func() (any, error) {
		e.mu.RLock()
		refreshedMeanwhile := e.generation != seenGen && !e.stale
		e.mu.RUnlock()
		if refreshedMeanwhile {
			return nil, nil
		}
		return nil, c.fetchAndSwap(ctx, kind)
	})
	return err
}

// fetchAndSwap fetches the full snapshot and installs both maps as a pair
// under the write lock. On fetch failure the previous snapshot stays intact
// and the error propagates to the triggering lookup.
func (c *TranslationCache) fetchAndSwap(ctx context.Context, kind model.Kind) error {
	defs, err := c.fetcher.FetchAll(ctx, kind)
	if err != nil {
		slog.ErrorContext(ctx, "registry snapshot fetch failed",
			"kind", kind,
			"error", err,
		)
		return err
	}

	// Tag definitions may carry attribute defs too, so the attribute maps are
	// built for every kind; only the custom-metadata entry is ever queried.
	nameToID := make(map[string]string, len(defs))
	idToName := make(map[string]string, len(defs))
	attrIDByKey := make(map[attrKey]string)
	attrRefByID := make(map[string]attrRef)

	for _, def := range defs {
		nameToID[def.Name] = def.ID
		// Inverse collisions resolve last-write-wins.
		idToName[def.ID] = def.Name
		for _, attr := range def.Attributes {
			attrIDByKey[attrKey{set: def.Name, name: attr.Name}] = attr.ID
			attrRefByID[attr.ID] = attrRef{Set: def.Name, Name: attr.Name}
		}
	}

	e := c.entries[kind]
	e.mu.Lock()
	e.nameToID = nameToID
	e.idToName = idToName
	e.attrIDByKey = attrIDByKey
	e.attrRefByID = attrRefByID
	e.lastRefreshedAt = time.Now()
	e.generation++
	e.stale = false
	e.mu.Unlock()

	slog.DebugContext(ctx, "registry snapshot refreshed",
		"kind", kind,
		"definitions", len(defs),
	)
	return nil
}

func (c *TranslationCache) entry(kind model.Kind) (*entry, error) {
	e, ok := c.entries[kind]
	if !ok {
		return nil, errors.NewUnexpected(fmt.Sprintf("unknown registry kind %q", kind))
	}
	return e, nil
}

func (e *entry) lookupID(name string) (string, bool, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stale {
		return "", false, e.generation
	}
	id, ok := e.nameToID[name]
	return id, ok, e.generation
}

func (e *entry) lookupName(id string) (string, bool, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stale {
		return "", false, e.generation
	}
	name, ok := e.idToName[id]
	return name, ok, e.generation
}

func (e *entry) lookupAttrID(key attrKey) (string, bool, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stale {
		return "", false, e.generation
	}
	id, ok := e.attrIDByKey[key]
	return id, ok, e.generation
}

func (e *entry) lookupAttrRef(id string) (attrRef, bool, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.stale {
		return attrRef{}, false, e.generation
	}
	ref, ok := e.attrRefByID[id]
	return ref, ok, e.generation
}
