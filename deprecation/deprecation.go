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

// Package deprecation finds the declarations of a schema document that are marked for removal in a
// given release.
package deprecation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
)

// Phrase marks a description or a deprecation reason as announcing a removal. It is matched
// case-insensitively.
const Phrase = "removed in saleor"

var versionPattern = regexp.MustCompile(`[0-9]+\.[0-9]+`)

// Fact records that the declaration addressed by Target is deprecated.
type Fact struct {
	Target Target

	// Version is the release in which the declaration is removed, such as "3.20".
	Version string

	// Message is the full text that announced the removal, trimmed.
	Message string
}

// ParseMessage looks for Phrase in text. marked is false when the phrase is absent. When the phrase
// is present, version holds the first MAJOR.MINOR number found after it or is empty if there is
// none.
func ParseMessage(text string) (version string, marked bool) {
	lower := strings.ToLower(text)
	i := strings.Index(lower, Phrase)
	if i < 0 {
		return "", false
	}
	rest := strings.TrimSpace(lower[i+len(Phrase):])
	return versionPattern.FindString(rest), true
}

type extractor struct {
	doc   ast.Document
	facts []Fact
}

// Extract walks doc and returns one Fact per deprecated declaration, field, argument and enum
// value, in document order. Schema and directive definitions are skipped. Any other kind of
// definition that is not one of the six type definitions fails the extraction.
func Extract(doc ast.Document) ([]Fact, error) {
	e := &extractor{doc: doc}
	for _, def := range doc.Definitions {
		if err := e.definition(def); err != nil {
			return nil, err
		}
	}
	return e.facts, nil
}

func (e *extractor) definition(def ast.Definition) error {
	switch def := def.(type) {
	case *ast.SchemaDefinition, *ast.DirectiveDefinition:
		return nil

	case *ast.ObjectTypeDefinition:
		return e.object(&def.TypeDefinitionBase, def.Fields)

	case *ast.InterfaceTypeDefinition:
		return e.object(&def.TypeDefinitionBase, def.Fields)

	case *ast.InputObjectTypeDefinition:
		name := def.Name.Value()
		if err := e.check(InputTarget{name}, def.Description, def.Directives, def); err != nil {
			return err
		}
		for _, field := range def.Fields {
			target := InputFieldTarget{name, field.Name.Value()}
			if err := e.check(target, field.Description, field.Directives, field); err != nil {
				return err
			}
		}
		return nil

	case *ast.EnumTypeDefinition:
		name := def.Name.Value()
		if err := e.check(EnumTarget{name}, def.Description, def.Directives, def); err != nil {
			return err
		}
		for _, value := range def.Values {
			target := EnumValueTarget{name, value.Name.Value()}
			if err := e.check(target, value.Description, value.Directives, value); err != nil {
				return err
			}
		}
		return nil

	case *ast.ScalarTypeDefinition:
		return e.check(ScalarTarget{def.Name.Value()}, def.Description, def.Directives, def)

	case *ast.UnionTypeDefinition:
		return e.check(UnionTarget{def.Name.Value()}, def.Description, def.Directives, def)
	}

	return graphql.NewError(
		"unknown definition kind "+ast.KindOf(def),
		graphql.Op("deprecation.Extract"),
		graphql.ErrKindUnknownDefinition,
		graphql.ErrorWithASTNodes{Source: e.doc.Source, Nodes: []ast.Node{def}},
	)
}

func (e *extractor) object(def *ast.TypeDefinitionBase, fields []*ast.FieldDefinition) error {
	name := def.Name.Value()
	if err := e.check(ObjectTarget{name}, def.Description, def.Directives, def); err != nil {
		return err
	}
	for _, field := range fields {
		fieldName := field.Name.Value()
		target := ObjectFieldTarget{name, fieldName}
		if err := e.check(target, field.Description, field.Directives, field); err != nil {
			return err
		}
		for _, arg := range field.Arguments {
			target := ObjectFieldArgumentTarget{name, fieldName, arg.Name.Value()}
			if err := e.check(target, arg.Description, arg.Directives, arg); err != nil {
				return err
			}
		}
	}
	return nil
}

// check records a Fact for target if its description, or failing that the reason of one of its
// @deprecated directives, announces a removal.
func (e *extractor) check(
	target Target,
	description *ast.StringValue,
	directives ast.Directives,
	node ast.Node) error {

	var candidates []string
	if description != nil {
		candidates = append(candidates, description.Value())
	}
	for _, directive := range directives.Lookup("deprecated") {
		arg := directive.Arguments.Get("reason")
		if arg == nil {
			continue
		}
		if reason, ok := arg.Value.(ast.StringValue); ok {
			candidates = append(candidates, reason.Value())
		}
	}

	for _, text := range candidates {
		version, marked := ParseMessage(text)
		if !marked {
			continue
		}
		text = strings.TrimSpace(text)
		if len(version) == 0 {
			return graphql.NewError(
				fmt.Sprintf("%s %s has no version after %q: %q", target.Kind(), target.ID(), Phrase, text),
				graphql.Op("deprecation.Extract"),
				graphql.ErrKindMalformedDeprecation,
				graphql.ErrorWithASTNodes{Source: e.doc.Source, Nodes: []ast.Node{node}},
			)
		}
		e.facts = append(e.facts, Fact{
			Target:  target,
			Version: version,
			Message: text,
		})
		return nil
	}

	return nil
}
