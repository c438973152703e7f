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
	"strconv"

	"github.com/botobag/schemawatch/graphql/token"
)

//===----------------------------------------------------------------------------------------====//
// Input Values
//===----------------------------------------------------------------------------------------====//
// Default values and directive arguments accept input values of various literal primitives; input
// values can be scalars, enumeration values, lists, or input objects.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Values

// Value represents a node containing a value.
//
// Reference: https://spec.graphql.org/June2018/#Value
type Value interface {
	Node

	// valueNode is a special mark to indicate a Value node. It makes sure that only value node can be
	// assigned to Value.
	valueNode()
}

// The following implement Value interface.
var (
	_ Value = Variable{}
	_ Value = IntValue{}
	_ Value = FloatValue{}
	_ Value = StringValue{}
	_ Value = BooleanValue{}
	_ Value = NullValue{}
	_ Value = EnumValue{}
	_ Value = ListValue{}
	_ Value = ObjectValue{}
)

// scalarRange is the token range of a value represented by a single token.
func scalarRange(tok *token.Token) token.Range {
	return token.Range{
		First: tok,
		Last:  tok,
	}
}

// IntValue represents a value node containing an integer.
//
// Reference: https://spec.graphql.org/June2018/#IntValue
type IntValue struct {
	// Token is the lexical token that contains the value; Its kind must be an token.KindInt.
	Token *token.Token
}

// TokenRange implements Node.
func (value IntValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (IntValue) valueNode() {}

// String return the literal in string that specifies the integer value.
func (value IntValue) String() string {
	return value.Token.Value
}

// Int64Value parses literal into an int64.
func (value IntValue) Int64Value() (int64, error) {
	return strconv.ParseInt(value.String(), 10, 64)
}

// FloatValue represents a value node containing a float.
//
// Reference: https://spec.graphql.org/June2018/#FloatValue
type FloatValue struct {
	// Token is the lexical token that contains the value; Its kind must be an token.KindFloat.
	Token *token.Token
}

// TokenRange implements Node.
func (value FloatValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (FloatValue) valueNode() {}

// String return the literal in string that specifies the float value.
func (value FloatValue) String() string {
	return value.Token.Value
}

// FloatValue parses literal into a float64.
func (value FloatValue) FloatValue() (float64, error) {
	return strconv.ParseFloat(value.String(), 64)
}

// StringValue represents a value node containing a string. It is also used for descriptions.
//
// Reference: https://spec.graphql.org/June2018/#StringValue
type StringValue struct {
	// Token is the lexical token that contains the value; Its kind must be an token.KindString or
	// token.KindBlockString.
	Token *token.Token
}

// TokenRange implements Node.
func (value StringValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (StringValue) valueNode() {}

// Value returns the string value.
func (value StringValue) Value() string {
	return value.Token.Value
}

// IsBlockString returns true if the value was written as a block string.
func (value StringValue) IsBlockString() bool {
	return value.Token.Kind == token.KindBlockString
}

// BooleanValue represents a value node containing a boolean.
//
// Reference: https://spec.graphql.org/June2018/#BooleanValue
type BooleanValue struct {
	// Token is a token.KindName containing either "true" or "false".
	Token *token.Token
}

// TokenRange implements Node.
func (value BooleanValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (BooleanValue) valueNode() {}

// Value returns true if the token contains "true".
func (value BooleanValue) Value() bool {
	return value.Token.Value == "true"
}

// NullValue represents the keyword "null".
//
// Reference: https://spec.graphql.org/June2018/#NullValue
type NullValue struct {
	Token *token.Token
}

// TokenRange implements Node.
func (value NullValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (NullValue) valueNode() {}

// EnumValue represents a value node containing an enum value.
//
// Reference: https://spec.graphql.org/June2018/#EnumValue
type EnumValue struct {
	Token *token.Token
}

// TokenRange implements Node.
func (value EnumValue) TokenRange() token.Range {
	return scalarRange(value.Token)
}

func (EnumValue) valueNode() {}

// Value returns the enum value.
func (value EnumValue) Value() string {
	return value.Token.Value
}

// ListValue represents a value node containing list of values.
//
// Reference: https://spec.graphql.org/June2018/#ListValue
type ListValue struct {
	// Loc spans from "[" to "]".
	Loc    token.Range
	Values []Value
}

// TokenRange implements Node.
func (value ListValue) TokenRange() token.Range {
	return value.Loc
}

func (ListValue) valueNode() {}

// ObjectValue represents an input object literal.
//
// Reference: https://spec.graphql.org/June2018/#ObjectValue
type ObjectValue struct {
	// Loc spans from "{" to "}".
	Loc    token.Range
	Fields []*ObjectField
}

// TokenRange implements Node.
func (value ObjectValue) TokenRange() token.Range {
	return value.Loc
}

func (ObjectValue) valueNode() {}

// ObjectField represent a node that assigns a value to an object field.
//
// Reference: https://spec.graphql.org/June2018/#ObjectField
type ObjectField struct {
	// Name of the field being assigned
	Name Name

	// Value that is assigned to the field
	Value Value
}

// TokenRange implements Node.
func (field *ObjectField) TokenRange() token.Range {
	return token.Range{
		First: field.Name.Token,
		Last:  field.Value.TokenRange().Last,
	}
}

// Variable refers to a variable with a name. Schema documents only contain const values, but the
// parser accepts variables when asked to parse a non-const value.
//
// Reference: https://spec.graphql.org/June2018/#Variable
type Variable struct {
	// Dollar is the "$" token.
	Dollar *token.Token

	// Name of the reference
	Name Name
}

// TokenRange implements Node.
func (value Variable) TokenRange() token.Range {
	return token.Range{
		First: value.Dollar,
		Last:  value.Name.Token,
	}
}

func (Variable) valueNode() {}
