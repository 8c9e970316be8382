// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package client

import (
	"context"
	"log/slog"

	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// TagIDForName resolves a human-readable tag name to its opaque ID,
// refreshing the tag cache once on a miss.
func (c *Client) TagIDForName(ctx context.Context, name string) (string, error) {
	return c.cache.IDForName(ctx, model.KindTag, name)
}

// TagNameForID resolves an opaque tag ID to its human-readable name. IDs that
// no longer resolve return the deletion sentinel rather than an error.
func (c *Client) TagNameForID(ctx context.Context, id string) (string, error) {
	return c.cache.NameForID(ctx, model.KindTag, id)
}

// CustomMetadataIDForName resolves a custom-metadata set name to its ID.
func (c *Client) CustomMetadataIDForName(ctx context.Context, name string) (string, error) {
	return c.cache.IDForName(ctx, model.KindCustomMetadata, name)
}

// CustomMetadataNameForID resolves a custom-metadata set ID to its name.
func (c *Client) CustomMetadataNameForID(ctx context.Context, id string) (string, error) {
	return c.cache.NameForID(ctx, model.KindCustomMetadata, id)
}

// AttributeIDForName resolves one custom-metadata attribute to its ID.
func (c *Client) AttributeIDForName(ctx context.Context, setName, attrName string) (string, error) {
	return c.cache.AttributeIDForName(ctx, setName, attrName)
}

// EnumIDForName resolves an enum name to its ID.
func (c *Client) EnumIDForName(ctx context.Context, name string) (string, error) {
	return c.cache.IDForName(ctx, model.KindEnum, name)
}

// EnumNameForID resolves an enum ID to its name.
func (c *Client) EnumNameForID(ctx context.Context, id string) (string, error) {
	return c.cache.NameForID(ctx, model.KindEnum, id)
}

// RefreshCache unconditionally re-fetches one kind's registry snapshot.
func (c *Client) RefreshCache(ctx context.Context, kind model.Kind) error {
	return c.cache.Refresh(ctx, kind)
}

// InvalidateCache marks one kind's snapshot stale; the next lookup refetches.
func (c *Client) InvalidateCache(kind model.Kind) {
	c.cache.Invalidate(kind)
}

// DefinitionNames lists the human-readable names of one kind, loading the
// snapshot if needed.
func (c *Client) DefinitionNames(ctx context.Context, kind model.Kind) ([]string, error) {
	return c.cache.Names(ctx, kind)
}

// CreateTag registers a new tag definition and invalidates the tag cache so
// the next lookup sees it.
func (c *Client) CreateTag(ctx context.Context, name, description string) (model.TypeDef, error) {
	def, err := c.mutator.CreateTypeDef(ctx, model.TypeDef{
		Kind:        model.KindTag,
		Name:        name,
		Description: description,
	})
	if err != nil {
		return model.TypeDef{}, err
	}
	c.cache.Invalidate(model.KindTag)
	slog.DebugContext(ctx, "tag created", "name", name, "id", def.ID)
	return def, nil
}

// DeleteTag removes a tag definition by name and invalidates the tag cache.
func (c *Client) DeleteTag(ctx context.Context, name string) error {
	id, err := c.cache.IDForName(ctx, model.KindTag, name)
	if err != nil {
		return err
	}
	if err := c.mutator.DeleteTypeDef(ctx, model.KindTag, id); err != nil {
		return err
	}
	c.cache.Invalidate(model.KindTag)
	slog.DebugContext(ctx, "tag deleted", "name", name, "id", id)
	return nil
}

// CreateCustomMetadataDef registers a new custom-metadata set and invalidates
// the custom-metadata cache.
func (c *Client) CreateCustomMetadataDef(ctx context.Context, name, description string, attributes []model.AttributeDef) (model.TypeDef, error) {
	def, err := c.mutator.CreateTypeDef(ctx, model.TypeDef{
		Kind:        model.KindCustomMetadata,
		Name:        name,
		Description: description,
		Attributes:  attributes,
	})
	if err != nil {
		return model.TypeDef{}, err
	}
	c.cache.Invalidate(model.KindCustomMetadata)
	return def, nil
}

// DeleteCustomMetadataDef removes a custom-metadata set by name and
// invalidates the custom-metadata cache.
func (c *Client) DeleteCustomMetadataDef(ctx context.Context, name string) error {
	id, err := c.cache.IDForName(ctx, model.KindCustomMetadata, name)
	if err != nil {
		return err
	}
	if err := c.mutator.DeleteTypeDef(ctx, model.KindCustomMetadata, id); err != nil {
		return err
	}
	c.cache.Invalidate(model.KindCustomMetadata)
	return nil
}

// CreateEnumDef registers a new enum definition and invalidates the enum
// cache.
func (c *Client) CreateEnumDef(ctx context.Context, name string, elements []string) (model.TypeDef, error) {
	def, err := c.mutator.CreateTypeDef(ctx, model.TypeDef{
		Kind:     model.KindEnum,
		Name:     name,
		Elements: elements,
	})
	if err != nil {
		return model.TypeDef{}, err
	}
	c.cache.Invalidate(model.KindEnum)
	return def, nil
}

// DeleteEnumDef removes an enum definition by name and invalidates the enum
// cache.
func (c *Client) DeleteEnumDef(ctx context.Context, name string) error {
	id, err := c.cache.IDForName(ctx, model.KindEnum, name)
	if err != nil {
		return err
	}
	if err := c.mutator.DeleteTypeDef(ctx, model.KindEnum, id); err != nil {
		return err
	}
	c.cache.Invalidate(model.KindEnum)
	return nil
}
