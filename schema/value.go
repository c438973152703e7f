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

package schema

import (
	"encoding/json"
	"fmt"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/token"
)

// Value converts a literal value node into a plain value that can be serialized to JSON:
//
//	Int        int64 (json.Number if out of the range of int64)
//	Float      float64
//	String     string
//	Boolean    bool
//	null       nil
//	Enum       "ENUM.<value>"
//	List       []interface{}
//	Object     map[string]interface{}
//	Variable   "$<name>"
func Value(v ast.Value) (interface{}, error) {
	return convertValue(nil, v)
}

func convertValue(source *token.Source, v ast.Value) (interface{}, error) {
	switch v := v.(type) {
	case ast.IntValue:
		i, err := v.Int64Value()
		if err != nil {
			return json.Number(v.String()), nil
		}
		return i, nil

	case ast.FloatValue:
		f, err := v.FloatValue()
		if err != nil {
			return nil, graphql.NewError(
				fmt.Sprintf("invalid float literal %s", v.String()),
				graphql.Op("schema.Value"),
				graphql.ErrKindInvalidValue,
				graphql.ErrorWithASTNodes{Source: source, Nodes: []ast.Node{v}},
				err,
			)
		}
		return f, nil

	case ast.StringValue:
		return v.Value(), nil

	case ast.BooleanValue:
		return v.Value(), nil

	case ast.NullValue:
		return nil, nil

	case ast.EnumValue:
		return "ENUM." + v.Value(), nil

	case ast.ListValue:
		list := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			value, err := convertValue(source, item)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil

	case ast.ObjectValue:
		object := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			value, err := convertValue(source, field.Value)
			if err != nil {
				return nil, err
			}
			object[field.Name.Value()] = value
		}
		return object, nil

	case ast.Variable:
		return "$" + v.Name.Value(), nil
	}

	var nodes []ast.Node
	if v != nil {
		nodes = []ast.Node{v}
	}
	return nil, graphql.NewError(
		fmt.Sprintf("unknown value node %T", v),
		graphql.Op("schema.Value"),
		graphql.ErrKindUnknownValue,
		graphql.ErrorWithASTNodes{Source: source, Nodes: nodes},
	)
}
