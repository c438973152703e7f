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
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/botobag/schemawatch/graphql"
	jsoniter "github.com/json-iterator/go"
)

// api reads and writes snapshots. Numbers are decoded as json.Number so that defaults keep the
// distinction between integers and floats.
var api = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
	UseNumber:     true,
}.Froze()

var compactAPI = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

// FormatValue returns the JSON text of a value produced by Value on a single line.
func FormatValue(v interface{}) string {
	stream := compactAPI.BorrowStream(nil)
	defer compactAPI.ReturnStream(stream)
	writeValue(stream, v)
	return string(stream.Buffer())
}

// Marshal encodes s in the snapshot format: 2-space indented JSON with declarations, fields,
// arguments and enum values in ascending key order and the keys of each record in a fixed order.
func Marshal(s Schema) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	WriteTo(stream, s)

	if stream.Error != nil {
		return nil, graphql.NewError("cannot encode schema", graphql.Op("schema.Marshal"), stream.Error)
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// WriteTo writes s to stream in the snapshot format.
func WriteTo(stream *jsoniter.Stream, s Schema) {
	writeMap(stream, s, writeDeclaration)
}

func writeMap[V any](stream *jsoniter.Stream, m map[string]V, write func(*jsoniter.Stream, V)) {
	if len(m) == 0 {
		stream.WriteEmptyObject()
		return
	}
	stream.WriteObjectStart()
	for i, key := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		write(stream, m[key])
	}
	stream.WriteObjectEnd()
}

func writeStrings(stream *jsoniter.Stream, values []string) {
	if len(values) == 0 {
		stream.WriteEmptyArray()
		return
	}
	stream.WriteArrayStart()
	for i, value := range values {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteString(value)
	}
	stream.WriteArrayEnd()
}

func writeOptionalString(stream *jsoniter.Stream, s *string) {
	if s == nil {
		stream.WriteNil()
	} else {
		stream.WriteString(*s)
	}
}

// writeDocumented writes the "description" and "deprecated" keys shared by every record. It
// writes the separator in front of description if more is true.
func writeDocumented(stream *jsoniter.Stream, more bool, description *string, deprecated *string) {
	if more {
		stream.WriteMore()
	}
	stream.WriteObjectField("description")
	writeOptionalString(stream, description)
	stream.WriteMore()
	stream.WriteObjectField("deprecated")
	writeOptionalString(stream, deprecated)
}

func writeDeclaration(stream *jsoniter.Stream, d *Declaration) {
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString(string(d.Kind))

	if d.Kind.HasArguments() {
		stream.WriteMore()
		stream.WriteObjectField("interfaces")
		writeStrings(stream, d.Interfaces)
	}

	writeDocumented(stream, true, d.Description, d.Deprecated)

	switch d.Kind {
	case KindObject, KindInterface:
		stream.WriteMore()
		stream.WriteObjectField("fields")
		writeMap(stream, d.Fields, writeObjectField)

	case KindInput:
		stream.WriteMore()
		stream.WriteObjectField("fields")
		writeMap(stream, d.Fields, writeInputField)

	case KindEnum:
		stream.WriteMore()
		stream.WriteObjectField("values")
		writeMap(stream, d.Values, func(stream *jsoniter.Stream, value *EnumValue) {
			stream.WriteObjectStart()
			writeDocumented(stream, false, value.Description, value.Deprecated)
			stream.WriteObjectEnd()
		})

	case KindUnion:
		stream.WriteMore()
		stream.WriteObjectField("types")
		writeStrings(stream, d.Types)
	}

	stream.WriteObjectEnd()
}

func writeObjectField(stream *jsoniter.Stream, field *Field) {
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString(field.Type)
	writeDocumented(stream, true, field.Description, field.Deprecated)
	stream.WriteMore()
	stream.WriteObjectField("arguments")
	writeMap(stream, field.Arguments, func(stream *jsoniter.Stream, arg *Argument) {
		stream.WriteObjectStart()
		stream.WriteObjectField("type")
		stream.WriteString(arg.Type)
		writeDocumented(stream, true, arg.Description, arg.Deprecated)
		stream.WriteMore()
		stream.WriteObjectField("default")
		writeValue(stream, arg.Default)
		stream.WriteObjectEnd()
	})
	stream.WriteObjectEnd()
}

func writeInputField(stream *jsoniter.Stream, field *Field) {
	stream.WriteObjectStart()
	stream.WriteObjectField("type")
	stream.WriteString(field.Type)
	writeDocumented(stream, true, field.Description, field.Deprecated)
	stream.WriteMore()
	stream.WriteObjectField("default")
	writeValue(stream, field.Default)
	stream.WriteObjectEnd()
}

// writeValue writes a value produced by Value.
func writeValue(stream *jsoniter.Stream, v interface{}) {
	switch v := v.(type) {
	case nil:
		stream.WriteNil()
	case bool:
		stream.WriteBool(v)
	case string:
		stream.WriteString(v)
	case int64:
		stream.WriteInt64(v)
	case float64:
		stream.WriteRaw(FormatFloat(v))
	case json.Number:
		stream.WriteRaw(v.String())
	case []interface{}:
		if len(v) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range v {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	case map[string]interface{}:
		writeMap(stream, v, writeValue)
	default:
		stream.WriteVal(v)
	}
}

// FormatFloat formats f so that it always reads back as a float: integral values keep a ".0"
// suffix, and the exponent form is used below 1e-4 and from 1e16 on.
func FormatFloat(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

type argumentJSON struct {
	Type        string      `json:"type"`
	Description *string     `json:"description"`
	Deprecated  *string     `json:"deprecated"`
	Default     interface{} `json:"default"`
}

type fieldJSON struct {
	Type        string                   `json:"type"`
	Description *string                  `json:"description"`
	Deprecated  *string                  `json:"deprecated"`
	Arguments   map[string]*argumentJSON `json:"arguments"`
	Default     interface{}              `json:"default"`
}

type declarationJSON struct {
	Type        string                `json:"type"`
	Interfaces  []string              `json:"interfaces"`
	Description *string               `json:"description"`
	Deprecated  *string               `json:"deprecated"`
	Fields      map[string]*fieldJSON `json:"fields"`
	Values      map[string]*EnumValue `json:"values"`
	Types       []string              `json:"types"`
}

// Unmarshal decodes a snapshot written by Marshal.
func Unmarshal(data []byte) (Schema, error) {
	var raw map[string]*declarationJSON
	if err := api.Unmarshal(data, &raw); err != nil {
		return nil, graphql.NewError(
			"cannot decode schema snapshot",
			graphql.Op("schema.Unmarshal"),
			graphql.ErrKindStore,
			err,
		)
	}

	s := make(Schema, len(raw))
	for name, r := range raw {
		if r == nil {
			return nil, unmarshalError("declaration %q is null", name)
		}
		kind := Kind(r.Type)
		if !kind.Valid() {
			return nil, graphql.NewError(
				fmt.Sprintf("declaration %q has unknown type %q", name, r.Type),
				graphql.Op("schema.Unmarshal"),
				graphql.ErrKindUnknownDefinition,
			)
		}

		d := &Declaration{
			Kind:        kind,
			Description: r.Description,
			Deprecated:  r.Deprecated,
		}

		switch kind {
		case KindObject, KindInterface, KindInput:
			if kind.HasArguments() {
				d.Interfaces = nonNilStrings(r.Interfaces)
			}
			d.Fields = make(map[string]*Field, len(r.Fields))
			for fieldName, rf := range r.Fields {
				if rf == nil {
					return nil, unmarshalError("field %s.%s is null", name, fieldName)
				}
				field, err := decodeField(kind, rf)
				if err != nil {
					return nil, err
				}
				d.Fields[fieldName] = field
			}

		case KindEnum:
			d.Values = make(map[string]*EnumValue, len(r.Values))
			for valueName, value := range r.Values {
				if value == nil {
					value = &EnumValue{}
				}
				d.Values[valueName] = value
			}

		case KindUnion:
			d.Types = nonNilStrings(r.Types)
		}

		s[name] = d
	}

	return s, nil
}

func unmarshalError(format string, args ...interface{}) error {
	return graphql.NewError(fmt.Sprintf(format, args...), graphql.Op("schema.Unmarshal"), graphql.ErrKindStore)
}

func decodeField(kind Kind, rf *fieldJSON) (*Field, error) {
	field := &Field{
		Type:        rf.Type,
		Description: rf.Description,
		Deprecated:  rf.Deprecated,
	}

	if !kind.HasArguments() {
		field.Default = decodeValue(rf.Default)
		return field, nil
	}

	field.Arguments = make(map[string]*Argument, len(rf.Arguments))
	for argName, ra := range rf.Arguments {
		if ra == nil {
			return nil, unmarshalError("argument %q is null", argName)
		}
		field.Arguments[argName] = &Argument{
			Type:        ra.Type,
			Description: ra.Description,
			Deprecated:  ra.Deprecated,
			Default:     decodeValue(ra.Default),
		}
	}
	return field, nil
}

// decodeValue converts numbers decoded as json.Number to the types Value produces.
func decodeValue(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return i
		}
		if strings.ContainsAny(v.String(), ".eE") {
			if f, err := strconv.ParseFloat(v.String(), 64); err == nil {
				return f
			}
		}
		return v
	case []interface{}:
		for i := range v {
			v[i] = decodeValue(v[i])
		}
		return v
	case map[string]interface{}:
		for key, value := range v {
			v[key] = decodeValue(value)
		}
		return v
	}
	return v
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
