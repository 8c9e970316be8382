// Copyright The Cartograph Authors.
// SPDX-License-Identifier: MIT

package catalogapi

import (
	"github.com/cartograph-io/cartograph-go/internal/domain/model"
)

// typedefsResponse is the wire envelope of the typedefs endpoint. Each
// category arrives in its own list regardless of the category filter.
type typedefsResponse struct {
	TagDefs            []wireTypeDef `json:"tagDefs"`
	CustomMetadataDefs []wireTypeDef `json:"businessMetadataDefs"`
	EnumDefs           []wireEnumDef `json:"enumDefs"`
}

// wireTypeDef is one tag or custom-metadata definition on the wire.
type wireTypeDef struct {
	Name          string        `json:"name"`
	DisplayName   string        `json:"displayName"`
	Description   string        `json:"description"`
	AttributeDefs []wireAttrDef `json:"attributeDefs,omitempty"`
}

type wireAttrDef struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	TypeName    string `json:"typeName"`
}

// wireEnumDef is one enumeration definition on the wire.
type wireEnumDef struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"displayName"`
	Description string            `json:"description"`
	ElementDefs []wireEnumElement `json:"elementDefs"`
}

type wireEnumElement struct {
	Value string `json:"value"`
}

// searchResponse is the wire envelope of both search endpoints.
type searchResponse struct {
	ApproximateCount int64         `json:"approximateCount"`
	HasMore          bool          `json:"hasMore"`
	Entities         []model.Asset `json:"entities"`
}

// The server stores the hashed identifier in "name" and the human-readable
// name in "displayName"; the translation cache maps between the two.

func (d wireTypeDef) toDomain(kind model.Kind) model.TypeDef {
	def := model.TypeDef{
		ID:          d.Name,
		Name:        d.DisplayName,
		Kind:        kind,
		Description: d.Description,
	}
	for _, attr := range d.AttributeDefs {
		def.Attributes = append(def.Attributes, model.AttributeDef{
			ID:       attr.Name,
			Name:     attr.DisplayName,
			TypeName: attr.TypeName,
		})
	}
	return def
}

func (d wireEnumDef) toDomain() model.TypeDef {
	def := model.TypeDef{
		ID:          d.Name,
		Name:        d.DisplayName,
		Kind:        model.KindEnum,
		Description: d.Description,
	}
	for _, el := range d.ElementDefs {
		def.Elements = append(def.Elements, el.Value)
	}
	return def
}
