/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package ast

import (
	"github.com/botobag/schemawatch/graphql/token"
)

// The following implement TypeDefinition.
var (
	_ TypeDefinition = (*ScalarTypeDefinition)(nil)
	_ TypeDefinition = (*ObjectTypeDefinition)(nil)
	_ TypeDefinition = (*InterfaceTypeDefinition)(nil)
	_ TypeDefinition = (*UnionTypeDefinition)(nil)
	_ TypeDefinition = (*EnumTypeDefinition)(nil)
	_ TypeDefinition = (*InputObjectTypeDefinition)(nil)

	_ TypeDefinition = (*ScalarTypeExtension)(nil)
	_ TypeDefinition = (*ObjectTypeExtension)(nil)
	_ TypeDefinition = (*InterfaceTypeExtension)(nil)
	_ TypeDefinition = (*UnionTypeExtension)(nil)
	_ TypeDefinition = (*EnumTypeExtension)(nil)
	_ TypeDefinition = (*InputObjectTypeExtension)(nil)
)

// The following implement Definition.
var (
	_ Definition = (*SchemaDefinition)(nil)
	_ Definition = (*SchemaExtension)(nil)
	_ Definition = (*DirectiveDefinition)(nil)
)

//===----------------------------------------------------------------------------------------====//
// Schema
//===----------------------------------------------------------------------------------------====//

// SchemaDefinition declares the root operation types.
//
// Reference: https://spec.graphql.org/June2018/#SchemaDefinition
type SchemaDefinition struct {
	DefinitionBase

	// Description is nil if absent.
	Description *StringValue

	OperationTypes []*OperationTypeDefinition
}

// SchemaExtension extends the schema definition.
type SchemaExtension struct {
	DefinitionBase
	OperationTypes []*OperationTypeDefinition
}

// OperationTypeDefinition binds an operation ("query", "mutation" or "subscription") to an object
// type.
type OperationTypeDefinition struct {
	// Operation is a Name token that contains operation type.
	Operation *token.Token

	// Type is the root type for the operation.
	Type NamedType
}

// TokenRange implements Node.
func (node *OperationTypeDefinition) TokenRange() token.Range {
	return token.Range{
		First: node.Operation,
		Last:  node.Type.Name.Token,
	}
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

// ScalarTypeDefinition defines a custom scalar.
//
// Reference: https://spec.graphql.org/June2018/#ScalarTypeDefinition
type ScalarTypeDefinition struct {
	TypeDefinitionBase
}

// ObjectTypeDefinition defines an object type.
//
// Reference: https://spec.graphql.org/June2018/#ObjectTypeDefinition
type ObjectTypeDefinition struct {
	TypeDefinitionBase

	// Interfaces implemented by the object in the order as written.
	Interfaces []NamedType

	Fields []*FieldDefinition
}

// InterfaceTypeDefinition defines an interface.
//
// Reference: https://spec.graphql.org/June2018/#InterfaceTypeDefinition
type InterfaceTypeDefinition struct {
	TypeDefinitionBase

	// Interfaces implemented by the interface (allowed by newer revisions of the language).
	Interfaces []NamedType

	Fields []*FieldDefinition
}

// UnionTypeDefinition defines a union.
//
// Reference: https://spec.graphql.org/June2018/#UnionTypeDefinition
type UnionTypeDefinition struct {
	TypeDefinitionBase

	// Types are the union members in the order as written.
	Types []NamedType
}

// EnumTypeDefinition defines an enum.
//
// Reference: https://spec.graphql.org/June2018/#EnumTypeDefinition
type EnumTypeDefinition struct {
	TypeDefinitionBase
	Values []*EnumValueDefinition
}

// InputObjectTypeDefinition defines an input object.
//
// Reference: https://spec.graphql.org/June2018/#InputObjectTypeDefinition
type InputObjectTypeDefinition struct {
	TypeDefinitionBase
	Fields []*InputValueDefinition
}

// Type extensions carry the same parts as the definitions they extend. They are separate types so
// that a type switch can tell "type Foo" from "extend type Foo".
type (
	// ScalarTypeExtension represents "extend scalar".
	ScalarTypeExtension struct{ ScalarTypeDefinition }
	// ObjectTypeExtension represents "extend type".
	ObjectTypeExtension struct{ ObjectTypeDefinition }
	// InterfaceTypeExtension represents "extend interface".
	InterfaceTypeExtension struct{ InterfaceTypeDefinition }
	// UnionTypeExtension represents "extend union".
	UnionTypeExtension struct{ UnionTypeDefinition }
	// EnumTypeExtension represents "extend enum".
	EnumTypeExtension struct{ EnumTypeDefinition }
	// InputObjectTypeExtension represents "extend input".
	InputObjectTypeExtension struct{ InputObjectTypeDefinition }
)

//===----------------------------------------------------------------------------------------====//
// Members
//===----------------------------------------------------------------------------------------====//

// FieldDefinition defines a field of an object or an interface.
//
// Reference: https://spec.graphql.org/June2018/#FieldDefinition
type FieldDefinition struct {
	Loc         token.Range
	Description *StringValue
	Name        Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  Directives
}

// TokenRange implements Node.
func (node *FieldDefinition) TokenRange() token.Range {
	return node.Loc
}

// InputValueDefinition defines an argument or a field of an input object.
//
// Reference: https://spec.graphql.org/June2018/#InputValueDefinition
type InputValueDefinition struct {
	Loc         token.Range
	Description *StringValue
	Name        Name
	Type        Type

	// DefaultValue is nil when no default is given. A "= null" default is a NullValue.
	DefaultValue Value

	Directives Directives
}

// TokenRange implements Node.
func (node *InputValueDefinition) TokenRange() token.Range {
	return node.Loc
}

// EnumValueDefinition defines one value of an enum.
//
// Reference: https://spec.graphql.org/June2018/#EnumValueDefinition
type EnumValueDefinition struct {
	Loc         token.Range
	Description *StringValue
	Name        Name
	Directives  Directives
}

// TokenRange implements Node.
func (node *EnumValueDefinition) TokenRange() token.Range {
	return node.Loc
}

//===----------------------------------------------------------------------------------------====//
// Directive definition
//===----------------------------------------------------------------------------------------====//

// DirectiveDefinition defines a directive.
//
// Reference: https://spec.graphql.org/June2018/#DirectiveDefinition
type DirectiveDefinition struct {
	DefinitionBase

	// Description is nil if absent.
	Description *StringValue

	Name       Name
	Arguments  []*InputValueDefinition
	Repeatable bool

	// Locations where the directive may appear, such as FIELD_DEFINITION.
	Locations []Name
}
