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

	"github.com/botobag/schemawatch/graphql"
	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// Marshal encodes changes as a 2-space indented JSON array of records such as
//
//	{"diff": "field_deprecated", "type": "Foo", "field": "bar", "version": "3.5"}
//
// Changes of enum values use the keys "enum" and "value". Changes of union members use "union" and
// "type" (the member).
func Marshal(changes []Change) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	WriteTo(stream, changes)

	if stream.Error != nil {
		return nil, graphql.NewError("cannot encode changes", graphql.Op("diff.Marshal"), stream.Error)
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// WriteTo writes changes to stream in the format of Marshal.
func WriteTo(stream *jsoniter.Stream, changes []Change) {
	if len(changes) == 0 {
		stream.WriteEmptyArray()
		return
	}
	stream.WriteArrayStart()
	for i, change := range changes {
		if i > 0 {
			stream.WriteMore()
		}
		writeChange(stream, change)
	}
	stream.WriteArrayEnd()
}

func writeChange(stream *jsoniter.Stream, change Change) {
	stream.WriteObjectStart()
	stream.WriteObjectField("diff")
	stream.WriteString(string(change.Kind))

	writeKey := func(key string, value string) {
		stream.WriteMore()
		stream.WriteObjectField(key)
		stream.WriteString(value)
	}

	switch {
	case change.Kind.IsEnumValue():
		writeKey("enum", change.Type)
		writeKey("value", change.Value)
	case change.Kind.IsUnionType():
		writeKey("union", change.Type)
		writeKey("type", change.Member)
	default:
		writeKey("type", change.Type)
		if len(change.Field) > 0 {
			writeKey("field", change.Field)
		}
		if len(change.Argument) > 0 {
			writeKey("argument", change.Argument)
		}
	}

	if len(change.Version) > 0 {
		writeKey("version", change.Version)
	}

	stream.WriteObjectEnd()
}

type changeJSON struct {
	Diff     Kind   `json:"diff"`
	Type     string `json:"type"`
	Field    string `json:"field"`
	Argument string `json:"argument"`
	Enum     string `json:"enum"`
	Value    string `json:"value"`
	Union    string `json:"union"`
	Version  string `json:"version"`
}

// Unmarshal decodes a change list written by Marshal.
func Unmarshal(data []byte) ([]Change, error) {
	var raw []changeJSON
	if err := api.Unmarshal(data, &raw); err != nil {
		return nil, graphql.NewError(
			"cannot decode change list",
			graphql.Op("diff.Unmarshal"),
			graphql.ErrKindStore,
			err,
		)
	}

	changes := make([]Change, len(raw))
	for i, r := range raw {
		if !r.Diff.Valid() {
			return nil, graphql.NewError(
				fmt.Sprintf("change %d has unknown kind %q", i, r.Diff),
				graphql.Op("diff.Unmarshal"),
				graphql.ErrKindStore,
			)
		}

		change := Change{
			Kind:    r.Diff,
			Version: r.Version,
		}
		switch {
		case r.Diff.IsEnumValue():
			change.Type, change.Value = r.Enum, r.Value
		case r.Diff.IsUnionType():
			change.Type, change.Member = r.Union, r.Type
		default:
			change.Type, change.Field, change.Argument = r.Type, r.Field, r.Argument
		}
		changes[i] = change
	}
	return changes, nil
}
