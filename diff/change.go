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

package diff

import (
	"fmt"
	"slices"
	"strings"
)

// Kind tags a Change.
type Kind string

// Enumeration of Kind
const (
	KindTypeNew             Kind = "type_new"
	KindTypeDeleted         Kind = "type_deleted"
	KindTypeDeprecated      Kind = "type_deprecated"
	KindFieldNew            Kind = "field_new"
	KindFieldDeleted        Kind = "field_deleted"
	KindFieldDeprecated     Kind = "field_deprecated"
	KindArgumentNew         Kind = "argument_new"
	KindArgumentDeleted     Kind = "argument_deleted"
	KindArgumentDeprecated  Kind = "argument_deprecated"
	KindEnumValueNew        Kind = "enum_value_new"
	KindEnumValueDeleted    Kind = "enum_value_deleted"
	KindEnumValueDeprecated Kind = "enum_value_deprecated"
	KindUnionTypeNew        Kind = "union_type_new"
	KindUnionTypeDeleted    Kind = "union_type_deleted"
)

var kinds = []Kind{
	KindTypeNew,
	KindTypeDeleted,
	KindTypeDeprecated,
	KindFieldNew,
	KindFieldDeleted,
	KindFieldDeprecated,
	KindArgumentNew,
	KindArgumentDeleted,
	KindArgumentDeprecated,
	KindEnumValueNew,
	KindEnumValueDeleted,
	KindEnumValueDeprecated,
	KindUnionTypeNew,
	KindUnionTypeDeleted,
}

// Valid returns true if k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(kinds, k)
}

// IsEnumValue returns true for the kinds of changes to enum values.
func (k Kind) IsEnumValue() bool {
	return strings.HasPrefix(string(k), "enum_value_")
}

// IsUnionType returns true for the kinds of changes to union members.
func (k Kind) IsUnionType() bool {
	return strings.HasPrefix(string(k), "union_type_")
}

// Change is one difference between two schemas. Only the fields that make sense for Kind are set.
type Change struct {
	Kind Kind

	// Type names the declaration the change is about. For changes of enum values and union members
	// it is the name of the enum or the union.
	Type string

	Field    string
	Argument string

	// Value is the enum value added, deleted or deprecated.
	Value string

	// Member is the union member added or deleted.
	Member string

	// Version is set for the deprecation kinds.
	Version string
}

// String returns a line such as "field_deprecated Foo.bar (3.5)".
func (c Change) String() string {
	var b strings.Builder
	b.WriteString(string(c.Kind))
	b.WriteByte(' ')
	b.WriteString(c.Type)

	switch {
	case c.Kind.IsEnumValue():
		b.WriteByte('.')
		b.WriteString(c.Value)
	case c.Kind.IsUnionType():
		fmt.Fprintf(&b, " (%s)", c.Member)
	default:
		if len(c.Field) > 0 {
			b.WriteByte('.')
			b.WriteString(c.Field)
		}
		if len(c.Argument) > 0 {
			fmt.Fprintf(&b, "(%s)", c.Argument)
		}
	}

	if len(c.Version) > 0 {
		fmt.Fprintf(&b, " (%s)", c.Version)
	}
	return b.String()
}
