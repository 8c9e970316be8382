// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package model

// TypedAsset is a concrete in-memory representation of a raw asset record.
// The generated model layer registers one variant per asset type; unknown
// type names resolve to the Indistinct fallback rather than failing.
type TypedAsset interface {
	// Asset returns the underlying raw record
	Asset() *Asset
	// Variant returns the resolved variant name
	Variant() string
}

type baseAsset struct {
	raw     Asset
	variant string
}

func (b *baseAsset) Asset() *Asset   { return &b.raw }
func (b *baseAsset) Variant() string { return b.variant }

// Table is a relational table asset.
type Table struct{ baseAsset }

// Column is a column of a table or view asset.
type Column struct{ baseAsset }

// Database is a database asset.
type Database struct{ baseAsset }

// Schema is a database schema asset.
type Schema struct{ baseAsset }

// View is a relational view asset.
type View struct{ baseAsset }

// Process is a lineage process asset.
type Process struct{ baseAsset }

// Indistinct is the fallback variant for type names without a registered
// constructor, typically types added server-side after this SDK was built.
type Indistinct struct{ baseAsset }

// assetConstructors is the closed dispatch table from declared type name to
// variant constructor. Resolution is an explicit lookup, not reflection over
// loaded types.
var assetConstructors = map[string]func(Asset) TypedAsset{
	"Table":    func(a Asset) TypedAsset { return &Table{baseAsset{raw: a, variant: "Table"}} },
	"Column":   func(a Asset) TypedAsset { return &Column{baseAsset{raw: a, variant: "Column"}} },
	"Database": func(a Asset) TypedAsset { return &Database{baseAsset{raw: a, variant: "Database"}} },
	"Schema":   func(a Asset) TypedAsset { return &Schema{baseAsset{raw: a, variant: "Schema"}} },
	"View":     func(a Asset) TypedAsset { return &View{baseAsset{raw: a, variant: "View"}} },
	"Process":  func(a Asset) TypedAsset { return &Process{baseAsset{raw: a, variant: "Process"}} },
}

// ResolveAsset maps a raw record to its concrete variant by declared type
// name, falling back to Indistinct for unknown types.
func ResolveAsset(a Asset) TypedAsset {
	if ctor, ok := assetConstructors[a.TypeName]; ok {
		return ctor(a)
	}
	return &Indistinct{baseAsset{raw: a, variant: "Indistinct"}}
}
