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

package deprecation

import (
	"strings"
)

// Target identifies the declaration or sub-declaration a Fact is about.
type Target interface {
	// Path returns the names that address the target in a canonical schema. The field slot holds the
	// enum value for EnumValueTarget. Unused parts are empty.
	Path() (typeName string, field string, argument string)

	// ID returns the anchor used for the target in reports, such as "Foo-bar-first".
	ID() string

	// Kind describes the target for humans, such as "object field".
	Kind() string

	// target prevents types outside of this package from implementing Target.
	target()
}

// The following implement Target.
var (
	_ Target = ObjectTarget{}
	_ Target = ObjectFieldTarget{}
	_ Target = ObjectFieldArgumentTarget{}
	_ Target = InputTarget{}
	_ Target = InputFieldTarget{}
	_ Target = EnumTarget{}
	_ Target = EnumValueTarget{}
	_ Target = ScalarTarget{}
	_ Target = UnionTarget{}
)

// idOf joins the non-empty parts of a path with "-".
func idOf(t Target) string {
	typeName, field, argument := t.Path()
	parts := []string{typeName}
	if len(field) > 0 {
		parts = append(parts, field)
	}
	if len(argument) > 0 {
		parts = append(parts, argument)
	}
	return strings.Join(parts, "-")
}

// ObjectTarget is an object or an interface type.
type ObjectTarget struct {
	Object string
}

// Path implements Target.
func (t ObjectTarget) Path() (string, string, string) { return t.Object, "", "" }

// ID implements Target.
func (t ObjectTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (ObjectTarget) Kind() string { return "object" }

func (ObjectTarget) target() {}

// ObjectFieldTarget is a field of an object or an interface.
type ObjectFieldTarget struct {
	Object string
	Field  string
}

// Path implements Target.
func (t ObjectFieldTarget) Path() (string, string, string) { return t.Object, t.Field, "" }

// ID implements Target.
func (t ObjectFieldTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (ObjectFieldTarget) Kind() string { return "object field" }

func (ObjectFieldTarget) target() {}

// ObjectFieldArgumentTarget is an argument of a field of an object or an interface.
type ObjectFieldArgumentTarget struct {
	Object   string
	Field    string
	Argument string
}

// Path implements Target.
func (t ObjectFieldArgumentTarget) Path() (string, string, string) {
	return t.Object, t.Field, t.Argument
}

// ID implements Target.
func (t ObjectFieldArgumentTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (ObjectFieldArgumentTarget) Kind() string { return "object field argument" }

func (ObjectFieldArgumentTarget) target() {}

// InputTarget is an input object type.
type InputTarget struct {
	Input string
}

// Path implements Target.
func (t InputTarget) Path() (string, string, string) { return t.Input, "", "" }

// ID implements Target.
func (t InputTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (InputTarget) Kind() string { return "input" }

func (InputTarget) target() {}

// InputFieldTarget is a field of an input object.
type InputFieldTarget struct {
	Input string
	Field string
}

// Path implements Target.
func (t InputFieldTarget) Path() (string, string, string) { return t.Input, t.Field, "" }

// ID implements Target.
func (t InputFieldTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (InputFieldTarget) Kind() string { return "input field" }

func (InputFieldTarget) target() {}

// EnumTarget is an enum type.
type EnumTarget struct {
	Enum string
}

// Path implements Target.
func (t EnumTarget) Path() (string, string, string) { return t.Enum, "", "" }

// ID implements Target.
func (t EnumTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (EnumTarget) Kind() string { return "enum" }

func (EnumTarget) target() {}

// EnumValueTarget is a value of an enum.
type EnumValueTarget struct {
	Enum  string
	Value string
}

// Path implements Target.
func (t EnumValueTarget) Path() (string, string, string) { return t.Enum, t.Value, "" }

// ID implements Target.
func (t EnumValueTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (EnumValueTarget) Kind() string { return "enum value" }

func (EnumValueTarget) target() {}

// ScalarTarget is a scalar type.
type ScalarTarget struct {
	Scalar string
}

// Path implements Target.
func (t ScalarTarget) Path() (string, string, string) { return t.Scalar, "", "" }

// ID implements Target.
func (t ScalarTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (ScalarTarget) Kind() string { return "scalar" }

func (ScalarTarget) target() {}

// UnionTarget is a union type.
type UnionTarget struct {
	Union string
}

// Path implements Target.
func (t UnionTarget) Path() (string, string, string) { return t.Union, "", "" }

// ID implements Target.
func (t UnionTarget) ID() string { return idOf(t) }

// Kind implements Target.
func (UnionTarget) Kind() string { return "union" }

func (UnionTarget) target() {}
