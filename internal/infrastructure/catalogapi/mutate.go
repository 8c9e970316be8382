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

// CreateTypeDef registers a new definition and returns it with the
// server-assigned opaque ID filled in.
func (c *Client) CreateTypeDef(ctx context.Context, def model.TypeDef) (model.TypeDef, error) {
	category, ok := categoryByKind[def.Kind]
	if !ok {
		return model.TypeDef{}, errors.NewUnexpected(fmt.Sprintf("unknown registry kind %q", def.Kind))
	}

	slog.DebugContext(ctx, "creating typedef",
		"kind", def.Kind,
		"name", def.Name,
	)

	payload := typedefsResponse{}
	wire := wireTypeDef{
		DisplayName: def.Name,
		Description: def.Description,
	}
	for _, attr := range def.Attributes {
		wire.AttributeDefs = append(wire.AttributeDefs, wireAttrDef{
			DisplayName: attr.Name,
			TypeName:    attr.TypeName,
		})
	}

	switch def.Kind {
	case model.KindTag:
		payload.TagDefs = []wireTypeDef{wire}
	case model.KindCustomMetadata:
		payload.CustomMetadataDefs = []wireTypeDef{wire}
	case model.KindEnum:
		enum := wireEnumDef{DisplayName: def.Name, Description: def.Description}
		for _, el := range def.Elements {
			enum.ElementDefs = append(enum.ElementDefs, wireEnumElement{Value: el})
		}
		payload.EnumDefs = []wireEnumDef{enum}
	}

	q := url.Values{}
	q.Set("type", category)
	path := fmt.Sprintf("%s?%s", constants.TypedefsPath, q.Encode())

	var response typedefsResponse
	if err := c.postJSON(ctx, path, payload, &response); err != nil {
		return model.TypeDef{}, fmt.Errorf("typedef create failed: %w", err)
	}

	created := response.TagDefs
	created = append(created, response.CustomMetadataDefs...)
	if len(created) > 0 {
		return created[0].toDomain(def.Kind), nil
	}
	if len(response.EnumDefs) > 0 {
		return response.EnumDefs[0].toDomain(), nil
	}
	return model.TypeDef{}, errors.NewUnexpected("typedef create returned no definition")
}

// DeleteTypeDef removes a definition by its opaque ID.
func (c *Client) DeleteTypeDef(ctx context.Context, kind model.Kind, id string) error {
	if _, ok := categoryByKind[kind]; !ok {
		return errors.NewUnexpected(fmt.Sprintf("unknown registry kind %q", kind))
	}

	slog.DebugContext(ctx, "deleting typedef",
		"kind", kind,
		"id", id,
	)

	path := fmt.Sprintf("%s/name/%s", constants.TypedefsPath, url.PathEscape(id))
	if err := c.makeRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("typedef delete failed: %w", err)
	}
	return nil
}
