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

package graphql

import (
	"errors"

	"github.com/botobag/schemawatch/graphql/token"
)

// syntaxError is the cause of every ErrKindSyntax error. It keeps the source name so a message
// can point at the document that failed to parse.
type syntaxError struct {
	name        string
	location    ErrorLocation
	description string
}

var (
	_ error              = (*syntaxError)(nil)
	_ ErrorWithLocations = (*syntaxError)(nil)
)

func (e *syntaxError) Error() string {
	return "Syntax Error: " + e.description
}

// Locations implements ErrorWithLocations.
func (e *syntaxError) Locations() []ErrorLocation {
	return []ErrorLocation{e.location}
}

// NewSyntaxError returns an ErrKindSyntax error at location in source.
func NewSyntaxError(source *token.Source, location token.SourceLocation, description string) error {
	info := source.LocationInfoOf(location)
	e := &syntaxError{
		name: info.Name,
		location: ErrorLocation{
			Line:   info.Line,
			Column: info.Column,
		},
		description: description,
	}
	return NewError(e.Error(), e, ErrKindSyntax)
}

// SourceNameOf returns the name of the document in which a syntax error occurred, or an empty
// string if err is not a syntax error.
func SourceNameOf(err error) string {
	var e *syntaxError
	if errors.As(err, &e) {
		return e.name
	}
	return ""
}
