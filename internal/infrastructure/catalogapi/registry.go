// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
	"github.com/cartograph-io/cartograph-go/pkg/constants"
	"github.com/cartograph-io/cartograph-go/pkg/errors"
)

// categoryByKind maps registry kinds to the typedefs endpoint's category
// parameter.
var categoryByKind = map[model.Kind]string{
	model.KindTag:            "CLASSIFICATION",
	model.KindCustomMetadata: "BUSINESS_METADATA",
	model.KindEnum:           "ENUM",
}

// FetchAll implements the RegistryFetcher port: a full, idempotent snapshot
// read of every definition of one kind visible to the current credentials.
func (c *Client) FetchAll(ctx context.Context, kind model.Kind) ([]model.TypeDef, error) {
	category, ok := categoryByKind[kind]
	if !ok {
		return nil, errors.NewUnexpected(fmt.Sprintf("unknown registry kind %q", kind))
	}

	slog.DebugContext(ctx, "fetching registry snapshot",
		"kind", kind,
		"category", category,
	)

	q := url.Values{}
	q.Set("type", category)
	path := fmt.Sprintf("%s?%s", constants.TypedefsPath, q.Encode())

	var response typedefsResponse
	if err := c.makeRequest(ctx, http.MethodGet, path, nil, &response); err != nil {
		return nil, fmt.Errorf("typedefs fetch failed: %w", err)
	}

	var defs []model.TypeDef
	switch kind {
	case model.KindTag:
		for _, d := range response.TagDefs {
			defs = append(defs, d.toDomain(model.KindTag))
		}
	case model.KindCustomMetadata:
		for _, d := range response.CustomMetadataDefs {
			defs = append(defs, d.toDomain(model.KindCustomMetadata))
		}
	case model.KindEnum:
		for _, d := range response.EnumDefs {
			defs = append(defs, d.toDomain())
		}
	}

	slog.DebugContext(ctx, "registry snapshot fetched",
		"kind", kind,
		"definitions", len(defs),
	)
	return defs, nil
}
