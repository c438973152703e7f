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

package parser

import (
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/token"
)

// Parse parses the given schema document (SDL) into a Document. Executable definitions (operations
// and fragments) are rejected with a syntax error.
func Parse(source *token.Source) (ast.Document, error) {
	parser, err := newParser(source)
	if err != nil {
		return ast.Document{}, err
	}
	return parser.parseDocument()
}

// ParseValue parses the AST for string containing a GraphQL value (e.g., `[42]`). Variables are
// accepted.
func ParseValue(source *token.Source) (ast.Value, error) {
	parser, err := newParser(source)
	if err != nil {
		return nil, err
	}

	var value ast.Value
	err = parser.parseStandalone(func() (err error) {
		value, err = parser.parseValue(false /* isConst */)
		return
	})
	return value, err
}

// ParseType parses the AST for string containing a GraphQL Type (e.g., `[Int!]`).
func ParseType(source *token.Source) (ast.Type, error) {
	parser, err := newParser(source)
	if err != nil {
		return nil, err
	}

	var t ast.Type
	err = parser.parseStandalone(func() (err error) {
		t, err = parser.parseType()
		return
	})
	return t, err
}

// MustParse is like Parse but panics on error. It simplifies initialization of documents embedded
// in programs and tests.
func MustParse(body string) ast.Document {
	doc, err := Parse(token.NewSource(&token.SourceConfig{
		Body: token.SourceBody(body),
	}))
	if err != nil {
		panic(graphql.WrapError(err, "parser.MustParse"))
	}
	return doc
}
