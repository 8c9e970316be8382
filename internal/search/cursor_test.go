// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package search

import (
	"fmt"
	"testing"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asset(guid string, ts int64) model.Asset {
	return model.Asset{Guid: guid, CreateTime: ts}
}

func testTunables() Tunables {
	return Tunables{BulkThreshold: 1000, MaxOffset: 10_000, MaxFetchSize: 20}
}

func TestCursorOffsetPaging(t *testing.T) {
	criteria := model.SearchCriteria{PageSize: 2}
	c := NewCursor(criteria, testTunables())

	req := c.NextRequest(criteria)
	assert.Equal(t, 0, req.From)
	assert.Equal(t, 2, req.Size)
	assert.Nil(t, req.After)
	require.Len(t, req.Sort, 2)
	assert.Equal(t, constants.SortCreateTime, req.Sort[0].Field)
	assert.Equal(t, constants.SortGuid, req.Sort[1].Field)

	out, err := c.Advance(&model.SearchPage{
		Items:         []model.Asset{asset("g1", 1), asset("g2", 2)},
		TotalEstimate: 5,
		HasMore:       true,
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.False(t, c.Exhausted())
	assert.Equal(t, ModeOffset, c.Mode())
	assert.Equal(t, int64(5), c.TotalEstimate())

	req = c.NextRequest(criteria)
	assert.Equal(t, 2, req.From)

	// Short page ends the iteration.
	out, err = c.Advance(&model.SearchPage{
		Items:   []model.Asset{asset("g3", 3)},
		HasMore: false,
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.True(t, c.Exhausted())
}

func TestCursorThresholdEscalation(t *testing.T) {
	t.Run("default sort switches to bulk after the first page", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2}
		tunables := testTunables()
		tunables.BulkThreshold = 4
		c := NewCursor(criteria, tunables)

		out, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 20)},
			TotalEstimate: 10,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, ModeBulkToken, c.Mode())

		// The next request constrains on the last-yielded tiebreaker and
		// forces the stable sort.
		req := c.NextRequest(criteria)
		require.NotNil(t, req.After)
		assert.Equal(t, int64(20), req.After.Timestamp)
		assert.Equal(t, "g2", req.After.Guid)
		assert.Equal(t, constants.SortCreateTime, req.Sort[0].Field)
	})

	t.Run("custom sort fails instead of escalating", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2, SortBy: "name"}
		tunables := testTunables()
		tunables.BulkThreshold = 4
		c := NewCursor(criteria, tunables)

		_, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 20)},
			TotalEstimate: 10,
			HasMore:       true,
		})
		require.Error(t, err)
		assert.IsType(t, errors.InvalidRequest{}, err)
	})

	t.Run("estimate at the threshold stays in offset mode", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2}
		tunables := testTunables()
		tunables.BulkThreshold = 10
		c := NewCursor(criteria, tunables)

		_, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 20)},
			TotalEstimate: 10,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, ModeOffset, c.Mode())
	})
}

func TestCursorOffsetCeiling(t *testing.T) {
	t.Run("switches transparently at the ceiling", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2}
		tunables := testTunables()
		tunables.MaxOffset = 3
		c := NewCursor(criteria, tunables)

		out, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 20)},
			TotalEstimate: 3,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Len(t, out, 2)
		// offset would reach 4 > 3, so the cursor re-derives the tiebreaker
		// from the last yielded record.
		assert.Equal(t, ModeBulkToken, c.Mode())

		req := c.NextRequest(criteria)
		require.NotNil(t, req.After)
		assert.Equal(t, model.SortKey{Timestamp: 20, Guid: "g2"}, *req.After)
	})

	t.Run("custom sort cannot cross the ceiling", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2, SortBy: "name"}
		tunables := testTunables()
		tunables.MaxOffset = 3
		c := NewCursor(criteria, tunables)

		_, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 20)},
			TotalEstimate: 3,
			HasMore:       true,
		})
		require.Error(t, err)
		assert.IsType(t, errors.InvalidRequest{}, err)
	})
}

func TestCursorBulkBoundary(t *testing.T) {
	t.Run("records already yielded at the boundary timestamp are skipped", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2, ForceBulk: true}
		c := NewCursor(criteria, testTunables())

		out, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 10)},
			TotalEstimate: 4,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Len(t, out, 2)

		// The engine re-serves g2 at the shared timestamp; only g3 is new.
		out, err = c.Advance(&model.SearchPage{
			Items:   []model.Asset{asset("g2", 10), asset("g3", 10)},
			HasMore: false,
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "g3", out[0].Guid)
		assert.True(t, c.Exhausted())
	})

	t.Run("full single-timestamp page widens the next fetch", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 2, ForceBulk: true}
		c := NewCursor(criteria, testTunables())

		_, err := c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g1", 10), asset("g2", 10)},
			TotalEstimate: 10,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, c.NextRequest(criteria).Size)

		// Mixed timestamps reset the fetch size back to the page size.
		_, err = c.Advance(&model.SearchPage{
			Items:         []model.Asset{asset("g3", 10), asset("g4", 10), asset("g5", 11), asset("g6", 12)},
			TotalEstimate: 10,
			HasMore:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, c.NextRequest(criteria).Size)
	})

	t.Run("widening caps at the maximum fetch size", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 16, ForceBulk: true}
		tunables := testTunables()
		c := NewCursor(criteria, tunables)

		items := make([]model.Asset, 16)
		for i := range items {
			items[i] = asset(fmt.Sprintf("g%02d", i), 10)
		}
		_, err := c.Advance(&model.SearchPage{Items: items, TotalEstimate: 100, HasMore: true})
		require.NoError(t, err)
		assert.Equal(t, tunables.MaxFetchSize, c.NextRequest(criteria).Size)
	})

	t.Run("no progress at a capped plateau is an error, not a spin", func(t *testing.T) {
		criteria := model.SearchCriteria{PageSize: 16, ForceBulk: true}
		tunables := testTunables()
		tunables.MaxFetchSize = 16
		c := NewCursor(criteria, tunables)

		items := make([]model.Asset, 16)
		for i := range items {
			items[i] = asset(fmt.Sprintf("g%02d", i), 10)
		}
		_, err := c.Advance(&model.SearchPage{Items: items, TotalEstimate: 100, HasMore: true})
		require.NoError(t, err)

		// Same full page again: every record filtered, no room to widen.
		_, err = c.Advance(&model.SearchPage{Items: items, TotalEstimate: 100, HasMore: true})
		require.Error(t, err)
		assert.IsType(t, errors.Unexpected{}, err)
	})
}

func TestCursorSnapshotRoundTrip(t *testing.T) {
	criteria := model.SearchCriteria{PageSize: 2}
	tunables := testTunables()
	tunables.BulkThreshold = 2
	c := NewCursor(criteria, tunables)

	_, err := c.Advance(&model.SearchPage{
		Items:         []model.Asset{asset("g1", 10), asset("g2", 10)},
		TotalEstimate: 8,
		HasMore:       true,
	})
	require.NoError(t, err)
	require.Equal(t, ModeBulkToken, c.Mode())

	restored := FromSnapshot(c.Snapshot(), tunables)
	assert.Equal(t, c.Mode(), restored.Mode())
	assert.Equal(t, c.TotalEstimate(), restored.TotalEstimate())
	assert.Equal(t, c.NextRequest(criteria), restored.NextRequest(criteria))

	// The boundary set survives the round trip: a re-served record is still
	// filtered after restore.
	out, err := restored.Advance(&model.SearchPage{
		Items:   []model.Asset{asset("g2", 10), asset("g3", 10)},
		HasMore: false,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "g3", out[0].Guid)
}
