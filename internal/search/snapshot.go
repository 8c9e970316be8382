// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package search

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// CursorSnapshot is the serializable form of a cursor, embedded in the opaque
// page tokens handed out by the raw single-page API. Field names are frozen
// by the token format.
type CursorSnapshot struct {
	Mode          Mode           `json:"mode"`
	Offset        int            `json:"offset"`
	PageSize      int            `json:"page_size"`
	FetchSize     int            `json:"fetch_size"`
	TotalEstimate int64          `json:"total_estimate"`
	Last          *model.SortKey `json:"last,omitempty"`
	BoundaryGuids []string       `json:"boundary_guids,omitempty"`
	FirstPageDone bool           `json:"first_page_done"`
	Exhausted     bool           `json:"exhausted"`
	CustomSort    bool           `json:"custom_sort"`
	// CriteriaDigest binds the token to the criteria it was issued for;
	// redeeming it with different criteria is rejected.
	CriteriaDigest string `json:"criteria_digest,omitempty"`
}

// CriteriaDigest fingerprints search criteria for token binding. A cursor
// position is only meaningful against the result set it was paging, so a
// token carries this digest and decode-side callers compare it against the
// criteria presented at redemption.
func CriteriaDigest(criteria model.SearchCriteria) string {
	payload, err := json.Marshal(criteria)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}

// Snapshot captures the cursor's position for token encoding.
func (c *Cursor) Snapshot() CursorSnapshot {
	s := CursorSnapshot{
		Mode:          c.mode,
		Offset:        c.offset,
		PageSize:      c.pageSize,
		FetchSize:     c.fetchSize,
		TotalEstimate: c.totalEstimate,
		FirstPageDone: c.firstPageDone,
		Exhausted:     c.exhausted,
		CustomSort:    c.customSort,
	}
	if c.haveLast {
		last := c.last
		s.Last = &last
		s.BoundaryGuids = make([]string, 0, len(c.boundaryGuids))
		for guid := range c.boundaryGuids {
			s.BoundaryGuids = append(s.BoundaryGuids, guid)
		}
	}
	return s
}

// FromSnapshot rebuilds a cursor from a decoded token.
func FromSnapshot(s CursorSnapshot, tunables Tunables) *Cursor {
	c := &Cursor{
		mode:          s.Mode,
		offset:        s.Offset,
		pageSize:      s.PageSize,
		fetchSize:     s.FetchSize,
		totalEstimate: s.TotalEstimate,
		firstPageDone: s.FirstPageDone,
		exhausted:     s.Exhausted,
		customSort:    s.CustomSort,
		boundaryGuids: make(map[string]struct{}, len(s.BoundaryGuids)),
		tunables:      tunables,
	}
	if s.Last != nil {
		c.last = *s.Last
		c.haveLast = true
		for _, guid := range s.BoundaryGuids {
			c.boundaryGuids[guid] = struct{}{}
		}
	}
	return c
}
