// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package model

// Kind identifies one of the catalog's registry-like definition families.
type Kind string

const (
	// KindTag covers classification tag definitions.
	KindTag Kind = "tag"
	// KindCustomMetadata covers user-defined structured attribute sets.
	KindCustomMetadata Kind = "custom_metadata"
	// KindEnum covers enumeration definitions.
	KindEnum Kind = "enum"
)

// Kinds lists every registry kind the translation cache tracks.
var Kinds = []Kind{KindTag, KindCustomMetadata, KindEnum}

// DeletedSentinel is returned in place of a human-readable name when an ID
// stamped on a historical asset no longer resolves in the registry. Callers
// rendering old assets must not crash on tags deleted since.
const DeletedSentinel = "(DELETED)"

// TypeDef is one registry definition: a tag, a custom-metadata set, or an
// enum, keyed server-side by an opaque hashed ID.
type TypeDef struct {
	// ID is the server-assigned opaque identifier
	ID string
	// Name is the human-readable name, unique within its kind
	Name string
	// Kind of the definition
	Kind Kind
	// Description of the definition
	Description string
	// Attributes holds the attribute definitions (custom metadata only)
	Attributes []AttributeDef
	// Elements holds the allowed values (enums only)
	Elements []string
}

// AttributeDef is one attribute inside a custom-metadata set, itself keyed by
// an opaque hashed ID.
type AttributeDef struct {
	ID       string
	Name     string
	TypeName string
}
