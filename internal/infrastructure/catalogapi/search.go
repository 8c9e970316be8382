// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"text/template"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
)

var querySearchTemplate = template.Must(
	template.New("querySearch").
		Funcs(template.FuncMap{
			"quote": strconv.Quote,
		}).
		Parse(querySearchSource))

// templateData is the render input for the search query template.
type templateData struct {
	From     int
	Size     int
	TypeName string
	Name     string
	Tags     []string
	RawQuery string
	After    *model.SortKey
	Sort     []model.SortClause
}

// ExecutePage implements the PageExecutor port: one HTTP round trip per call
// against the asset index or the audit log.
func (c *Client) ExecutePage(ctx context.Context, req model.PageRequest) (*model.SearchPage, error) {
	query, err := c.renderQuery(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to render query: %w", err)
	}

	path := constants.IndexSearchPath
	if req.Criteria.Domain == model.DomainAudit {
		path = constants.AuditSearchPath
	}

	var response searchResponse
	if err := c.makeRequest(ctx, http.MethodPost, path, bytes.NewReader(query), &response); err != nil {
		return nil, fmt.Errorf("search page fetch failed: %w", err)
	}

	page := &model.SearchPage{
		Items:         response.Entities,
		TotalEstimate: response.ApproximateCount,
		HasMore:       response.HasMore,
	}

	slog.DebugContext(ctx, "search page fetched",
		"items", len(page.Items),
		"total_estimate", page.TotalEstimate,
		"has_more", page.HasMore,
	)
	return page, nil
}

// renderQuery generates the search DSL for one page request.
func (c *Client) renderQuery(ctx context.Context, req model.PageRequest) ([]byte, error) {
	data := templateData{
		From:  req.From,
		Size:  req.Size,
		Tags:  req.Criteria.Tags,
		After: req.After,
		Sort:  req.Sort,
	}
	if req.Criteria.TypeName != nil {
		data.TypeName = *req.Criteria.TypeName
	}
	if req.Criteria.Name != nil {
		data.Name = *req.Criteria.Name
	}
	if len(req.Criteria.Query) > 0 {
		raw, err := json.Marshal(req.Criteria.Query)
		if err != nil {
			return nil, errors.NewInvalidRequest("failed to encode raw query clause", err)
		}
		data.RawQuery = string(raw)
	}

	var buf bytes.Buffer
	if err := querySearchTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "failed to render query template", "error", err)
		return nil, err
	}

	// Re-marshal to normalize whitespace and catch malformed output early.
	query := json.RawMessage(buf.Bytes())
	parsed, err := json.Marshal(query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal rendered query", "error", err)
		return nil, err
	}
	return parsed, nil
}
