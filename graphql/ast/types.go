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

//===----------------------------------------------------------------------------------------====//
// Type Reference
//===----------------------------------------------------------------------------------------====//
// Fields, arguments and input fields refer to the type of their value with a Type. Input types may
// be lists of another input type, or a non‐null variant of any other input type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-References

// Type describes a type of data.
//
//	Type
//		NamedType
//		ListType
//		NonNullType
//
// Reference: https://spec.graphql.org/June2018/#Type
type Type interface {
	Node

	// typeNode is a special mark to indicate a Type node. It makes sure that only type node can be
	// assigned to Type.
	typeNode()
}

var (
	_ Type = NamedType{}
	_ Type = ListType{}
	_ Type = NonNullType{}
)

// NullableType is a Type that can be wrapped in NonNullType. More specifically, NamedType and
// ListType.
type NullableType interface {
	Type
	nullableTypeNode()
}

var (
	_ NullableType = NamedType{}
	_ NullableType = ListType{}
)

// NamedType refers to a named type.
type NamedType struct {
	// Name of the type referred by this node
	Name Name
}

// TokenRange implements Node.
func (t NamedType) TokenRange() token.Range {
	return t.Name.TokenRange()
}

func (NamedType) typeNode()         {}
func (NamedType) nullableTypeNode() {}

// ListType refers to a list type of an item type.
type ListType struct {
	// Loc spans from "[" to "]".
	Loc token.Range

	// ItemType specifies the type of item in the list.
	ItemType Type
}

// TokenRange implements Node.
func (t ListType) TokenRange() token.Range {
	return t.Loc
}

func (ListType) typeNode()         {}
func (ListType) nullableTypeNode() {}

// NonNullType refers to a type that doesn't accept null value.
type NonNullType struct {
	// Type wrapped in this non-null type; Can only be an NamedType or an ListType.
	Type NullableType

	// Bang is the "!" token.
	Bang *token.Token
}

// TokenRange implements Node.
func (t NonNullType) TokenRange() token.Range {
	return token.Range{
		First: t.Type.TokenRange().First,
		Last:  t.Bang,
	}
}

func (NonNullType) typeNode() {}

//===----------------------------------------------------------------------------------------====//
// Directives
//===----------------------------------------------------------------------------------------====//

// Directives specifies a list of directives
type Directives []*Directive

// Lookup returns all directives with the given name in the order as written.
func (nodes Directives) Lookup(name string) []*Directive {
	var result []*Directive
	for _, node := range nodes {
		if node.Name.Value() == name {
			result = append(result, node)
		}
	}
	return result
}

// Directive applies a GraphQL directive.
//
// Reference: https://spec.graphql.org/June2018/#Directive
type Directive struct {
	// Loc spans from "@" to the last token of the arguments.
	Loc token.Range

	// Name of the directive
	Name Name

	// Arguments taken by the directive
	Arguments Arguments
}

// TokenRange implements Node.
func (node *Directive) TokenRange() token.Range {
	return node.Loc
}

// Arguments is a list of Argument.
type Arguments []*Argument

// Get returns the argument with the given name or nil.
func (nodes Arguments) Get(name string) *Argument {
	for _, node := range nodes {
		if node.Name.Value() == name {
			return node
		}
	}
	return nil
}

// Argument assigns a value to a directive argument.
//
// Reference: https://spec.graphql.org/June2018/#Argument
type Argument struct {
	Name  Name
	Value Value
}

// TokenRange implements Node.
func (node *Argument) TokenRange() token.Range {
	return token.Range{
		First: node.Name.Token,
		Last:  node.Value.TokenRange().Last,
	}
}
