// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
)

// Mode is the pagination strategy a cursor is currently using.
type Mode int

const (
	// ModeOffset pages with a result offset; cheap for small result sets.
	ModeOffset Mode = iota
	// ModeBulkToken pages with a (timestamp, guid) tiebreaker; required past
	// the engine's offset depth limits. Once a cursor enters this mode it
	// never returns to ModeOffset.
	ModeBulkToken
)

// Tunables are the pagination limits of the backing search engine. The
// defaults match the catalog's standard deployment; override them when the
// target engine's offset or scroll limits differ.
type Tunables struct {
	// BulkThreshold is the first-page total estimate above which iteration
	// escalates to ModeBulkToken
	BulkThreshold int64
	// MaxOffset is the deepest offset the engine serves
	MaxOffset int
	// MaxFetchSize caps page widening at timestamp plateaus
	MaxFetchSize int
}

// DefaultTunables returns the standard engine limits.
func DefaultTunables() Tunables {
	return Tunables{
		BulkThreshold: constants.DefaultBulkThreshold,
		MaxOffset:     constants.DefaultMaxOffset,
		MaxFetchSize:  constants.MaxBulkFetchSize,
	}
}

// Cursor is the pagination state machine for one search iteration. All of
// its decision logic is pure: NextRequest and Advance perform no I/O, so the
// same cursor drives the blocking iterator, the range-over-func sequence, and
// the raw single-page API.
type Cursor struct {
	mode          Mode
	offset        int
	pageSize      int
	fetchSize     int
	totalEstimate int64
	last          model.SortKey
	haveLast      bool
	// boundaryGuids tracks every GUID already yielded at last.Timestamp so a
	// timestamp shared across a page boundary can never re-yield a record.
	boundaryGuids map[string]struct{}
	firstPageDone bool
	exhausted     bool
	customSort    bool
	tunables      Tunables
}

// defaultSort is the forced stable sort for bulk paging and the default for
// offset paging: creation timestamp ascending, GUID ascending.
var defaultSort = []model.SortClause{
	{Field: constants.SortCreateTime, Ascending: true},
	{Field: constants.SortGuid, Ascending: true},
}

// NewCursor creates a cursor for the given criteria. Criteria must already be
// validated (bulk mode and a custom sort are mutually exclusive).
func NewCursor(criteria model.SearchCriteria, tunables Tunables) *Cursor {
	pageSize := criteria.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	c := &Cursor{
		mode:          ModeOffset,
		pageSize:      pageSize,
		fetchSize:     pageSize,
		customSort:    criteria.HasCustomSort(),
		boundaryGuids: make(map[string]struct{}),
		tunables:      tunables,
	}
	if criteria.ForceBulk {
		c.mode = ModeBulkToken
	}
	return c
}

// Exhausted reports whether the iteration has seen its final page.
func (c *Cursor) Exhausted() bool {
	return c.exhausted
}

// TotalEstimate returns the engine's approximate hit count from the first
// page, zero before the first page arrives.
func (c *Cursor) TotalEstimate() int64 {
	return c.totalEstimate
}

// Mode returns the current pagination strategy.
func (c *Cursor) Mode() Mode {
	return c.mode
}

// NextRequest builds the page fetch for the cursor's current position.
func (c *Cursor) NextRequest(criteria model.SearchCriteria) model.PageRequest {
	req := model.PageRequest{
		Criteria: criteria,
		Size:     c.requestSize(),
	}

	if c.customSort {
		req.Sort = []model.SortClause{{
			Field:     criteria.SortBy,
			Ascending: criteria.SortOrder != "desc",
		}}
	} else {
		req.Sort = defaultSort
	}

	switch c.mode {
	case ModeOffset:
		req.From = c.offset
	case ModeBulkToken:
		// Sort is forced regardless of the caller's clause; bulk correctness
		// depends on the (timestamp, guid) order.
		req.Sort = defaultSort
		if c.haveLast {
			after := c.last
			req.After = &after
		}
	}
	return req
}

// Advance consumes one fetched page, returning the records to yield in order.
// It updates the paging mode, the tiebreaker, and the exhaustion state, and
// surfaces InvalidRequest when escalation to bulk mode conflicts with a
// caller-pinned sort.
func (c *Cursor) Advance(page *model.SearchPage) ([]model.Asset, error) {
	requested := c.requestSize()

	firstPage := !c.firstPageDone
	if firstPage {
		c.totalEstimate = page.TotalEstimate
		c.firstPageDone = true
	}

	switch c.mode {
	case ModeOffset:
		out := page.Items
		c.offset += len(page.Items)
		c.noteYielded(out)

		if len(page.Items) < requested || !page.HasMore {
			c.exhausted = true
			return out, nil
		}

		if firstPage && c.totalEstimate > c.tunables.BulkThreshold {
			if c.customSort {
				return nil, errors.NewInvalidRequest(fmt.Sprintf(
					"result set estimated at %d exceeds the offset paging threshold of %d; bulk paging requires the default sort order, remove the custom sort",
					c.totalEstimate, c.tunables.BulkThreshold,
				))
			}
			c.switchToBulk()
			return out, nil
		}

		if c.offset+c.pageSize > c.tunables.MaxOffset {
			if c.customSort {
				return nil, errors.NewInvalidRequest(fmt.Sprintf(
					"iteration reached the engine's maximum offset of %d; continuing requires bulk paging, which is incompatible with a custom sort",
					c.tunables.MaxOffset,
				))
			}
			c.switchToBulk()
		}
		return out, nil

	case ModeBulkToken:
		out := make([]model.Asset, 0, len(page.Items))
		for _, item := range page.Items {
			if c.haveLast && item.CreateTime == c.last.Timestamp {
				if _, seen := c.boundaryGuids[item.Guid]; seen {
					continue
				}
			}
			out = append(out, item)
		}
		c.noteYielded(out)

		if len(page.Items) < requested || !page.HasMore {
			c.exhausted = true
			return out, nil
		}

		// A full page sharing one timestamp means the plateau may extend past
		// the page boundary; widen the next fetch so it is crossed in fewer
		// round trips.
		prevFetch := c.fetchSize
		if page.Items[0].CreateTime == page.Items[len(page.Items)-1].CreateTime {
			c.fetchSize = min(c.fetchSize*2, c.tunables.MaxFetchSize)
		} else {
			c.fetchSize = c.pageSize
		}

		if len(out) == 0 && c.fetchSize == prevFetch {
			// Full page, nothing new, and no room left to widen: the engine
			// keeps re-serving records below the tiebreaker.
			return nil, errors.NewUnexpected(fmt.Sprintf(
				"bulk pagination made no progress at timestamp %d with fetch size %d",
				c.last.Timestamp, prevFetch,
			))
		}
		return out, nil
	}

	return nil, errors.NewUnexpected(fmt.Sprintf("unknown pagination mode %d", c.mode))
}

// switchToBulk escalates the cursor, re-deriving the tiebreaker from the last
// yielded record. noteYielded has already positioned last and boundaryGuids.
func (c *Cursor) switchToBulk() {
	c.mode = ModeBulkToken
	c.fetchSize = c.pageSize
}

// noteYielded records the tail of a yielded batch: the last-seen sort key and
// every GUID yielded at that timestamp, carrying the set across pages while
// the timestamp plateau continues.
func (c *Cursor) noteYielded(items []model.Asset) {
	if len(items) == 0 {
		return
	}
	key := model.KeyOf(items[len(items)-1])
	if !c.haveLast || c.last.Timestamp != key.Timestamp {
		c.boundaryGuids = make(map[string]struct{})
	}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].CreateTime != key.Timestamp {
			break
		}
		c.boundaryGuids[items[i].Guid] = struct{}{}
	}
	c.last = key
	c.haveLast = true
}

func (c *Cursor) requestSize() int {
	if c.mode == ModeBulkToken {
		return c.fetchSize
	}
	return c.pageSize
}
