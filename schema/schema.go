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

// Package schema defines the canonical form of a GraphQL schema and converts parsed schema
// documents into it.
//
// A canonical schema is a plain tree of records. Two canonical schemas built from equivalent
// documents compare equal and serialize to the same bytes, which makes them suitable as snapshots
// and as the input of the diff package.
package schema

import (
	"maps"
	"slices"
)

// Kind tags a Declaration. The values are the ones written to snapshots.
type Kind string

// Enumeration of Kind
const (
	KindObject    Kind = "object"
	KindInterface Kind = "interface"
	KindInput     Kind = "input"
	KindEnum      Kind = "enum"
	KindScalar    Kind = "scalar"
	KindUnion     Kind = "union"
)

// Valid returns true if k is one of the six known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindObject, KindInterface, KindInput, KindEnum, KindScalar, KindUnion:
		return true
	}
	return false
}

// HasFields returns true for the kinds whose declarations carry fields.
func (k Kind) HasFields() bool {
	return k == KindObject || k == KindInterface || k == KindInput
}

// HasArguments returns true for the kinds whose fields take arguments.
func (k Kind) HasArguments() bool {
	return k == KindObject || k == KindInterface
}

// Schema maps declaration names to declarations.
type Schema map[string]*Declaration

// Names returns the declaration names in ascending order.
func (s Schema) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// Declaration is one top-level named type. Which of the child collections are meaningful depends on
// Kind:
//
//	object, interface: Interfaces, Fields (with Arguments)
//	input:             Fields (with Default)
//	enum:              Values
//	union:             Types
//	scalar:            none
type Declaration struct {
	Kind Kind

	// Description is nil if the declaration is not documented.
	Description *string

	// Deprecated is the version in which the declaration is removed, or nil.
	Deprecated *string

	// Interfaces in the order as written.
	Interfaces []string

	Fields map[string]*Field
	Values map[string]*EnumValue

	// Types are the union members in the order as written.
	Types []string
}

// FieldNames returns the keys of d.Fields in ascending order.
func (d *Declaration) FieldNames() []string {
	return slices.Sorted(maps.Keys(d.Fields))
}

// ValueNames returns the keys of d.Values in ascending order.
func (d *Declaration) ValueNames() []string {
	return slices.Sorted(maps.Keys(d.Values))
}

// Field is a field of an object, an interface or an input object.
type Field struct {
	// Type is the printed type reference, such as "[String!]!".
	Type        string
	Description *string
	Deprecated  *string

	// Arguments is only used by fields of objects and interfaces.
	Arguments map[string]*Argument

	// Default is only used by fields of input objects. See Argument.Default.
	Default interface{}
}

// ArgumentNames returns the keys of f.Arguments in ascending order.
func (f *Field) ArgumentNames() []string {
	return slices.Sorted(maps.Keys(f.Arguments))
}

// Argument is an argument of a field.
type Argument struct {
	Type        string
	Description *string
	Deprecated  *string

	// Default is the default value converted by Value, or nil if there is none.
	Default interface{}
}

// EnumValue is one value of an enum.
type EnumValue struct {
	Description *string `json:"description"`
	Deprecated  *string `json:"deprecated"`
}
