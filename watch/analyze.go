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

package watch

import (
	"os"

	"github.com/botobag/schemawatch/deprecation"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/parser"
	"github.com/botobag/schemawatch/graphql/token"
	"github.com/botobag/schemawatch/schema"
)

// Analysis is the result of reading one schema document.
type Analysis struct {
	Document ast.Document
	Facts    []deprecation.Fact
	Schema   schema.Schema
}

// Analyze parses body, extracts its deprecations and normalizes it. name appears in error locations.
func Analyze(name string, body string) (*Analysis, error) {
	document, err := parser.Parse(token.NewSource(&token.SourceConfig{
		Name: name,
		Body: token.SourceBody(body),
	}))
	if err != nil {
		return nil, err
	}

	facts, err := deprecation.Extract(document)
	if err != nil {
		return nil, err
	}

	s, err := schema.Normalize(document, facts)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Document: document,
		Facts:    facts,
		Schema:   s,
	}, nil
}

// AnalyzeFile reads and analyzes the schema document at path.
func AnalyzeFile(path string) (*Analysis, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, graphql.NewError("cannot read "+path, graphql.Op("watch.AnalyzeFile"), err)
	}
	return Analyze(path, string(body))
}
