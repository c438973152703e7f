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
	"fmt"
	"slices"

	"github.com/botobag/schemawatch/deprecation"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
)

type normalizer struct {
	doc    ast.Document
	schema Schema

	// nodes remembers the definition of each declaration for error locations.
	nodes map[string]ast.Node
}

// Normalize builds the canonical schema of doc and marks the declarations named by facts as
// deprecated. facts must have been extracted from the same document.
func Normalize(doc ast.Document, facts []deprecation.Fact) (Schema, error) {
	n := &normalizer{
		doc:    doc,
		schema: Schema{},
		nodes:  map[string]ast.Node{},
	}

	for _, def := range doc.Definitions {
		if err := n.definition(def); err != nil {
			return nil, err
		}
	}

	for _, fact := range facts {
		if err := n.apply(fact); err != nil {
			return nil, err
		}
	}

	return n.schema, nil
}

func (n *normalizer) errorAt(message string, kind graphql.ErrKind, nodes ...ast.Node) error {
	return graphql.NewError(
		message,
		graphql.Op("schema.Normalize"),
		kind,
		graphql.ErrorWithASTNodes{Source: n.doc.Source, Nodes: nodes},
	)
}

func (n *normalizer) definition(def ast.Definition) error {
	var (
		base        *ast.TypeDefinitionBase
		declaration *Declaration
		err         error
	)

	switch def := def.(type) {
	case *ast.SchemaDefinition, *ast.DirectiveDefinition:
		return nil

	case *ast.ObjectTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration, err = n.object(KindObject, def.Interfaces, def.Fields)

	case *ast.InterfaceTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration, err = n.object(KindInterface, def.Interfaces, def.Fields)

	case *ast.InputObjectTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration, err = n.input(def.Fields)

	case *ast.EnumTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration = &Declaration{
			Kind:   KindEnum,
			Values: make(map[string]*EnumValue, len(def.Values)),
		}
		for _, value := range def.Values {
			declaration.Values[value.Name.Value()] = &EnumValue{
				Description: description(value.Description),
			}
		}

	case *ast.ScalarTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration = &Declaration{Kind: KindScalar}

	case *ast.UnionTypeDefinition:
		base = &def.TypeDefinitionBase
		declaration = &Declaration{
			Kind:  KindUnion,
			Types: namedTypes(def.Types),
		}

	default:
		return n.errorAt("unknown definition kind "+ast.KindOf(def), graphql.ErrKindUnknownDefinition, def)
	}

	if err != nil {
		return err
	}

	name := base.Name.Value()
	if prev, exists := n.nodes[name]; exists {
		return n.errorAt(
			fmt.Sprintf("there can be only one type named %q", name),
			graphql.ErrKindDuplicateDefinition,
			prev, base)
	}

	declaration.Description = description(base.Description)
	n.schema[name] = declaration
	n.nodes[name] = base
	return nil
}

func (n *normalizer) object(
	kind Kind,
	interfaces []ast.NamedType,
	fields []*ast.FieldDefinition) (*Declaration, error) {

	declaration := &Declaration{
		Kind:       kind,
		Interfaces: namedTypes(interfaces),
		Fields:     make(map[string]*Field, len(fields)),
	}

	for _, fieldDef := range fields {
		field := &Field{
			Type:        ast.Print(fieldDef.Type),
			Description: description(fieldDef.Description),
			Arguments:   make(map[string]*Argument, len(fieldDef.Arguments)),
		}
		for _, argDef := range fieldDef.Arguments {
			defaultValue, err := n.defaultValue(argDef)
			if err != nil {
				return nil, err
			}
			field.Arguments[argDef.Name.Value()] = &Argument{
				Type:        ast.Print(argDef.Type),
				Description: description(argDef.Description),
				Default:     defaultValue,
			}
		}
		declaration.Fields[fieldDef.Name.Value()] = field
	}

	return declaration, nil
}

func (n *normalizer) input(fields []*ast.InputValueDefinition) (*Declaration, error) {
	declaration := &Declaration{
		Kind:   KindInput,
		Fields: make(map[string]*Field, len(fields)),
	}

	for _, fieldDef := range fields {
		defaultValue, err := n.defaultValue(fieldDef)
		if err != nil {
			return nil, err
		}
		declaration.Fields[fieldDef.Name.Value()] = &Field{
			Type:        ast.Print(fieldDef.Type),
			Description: description(fieldDef.Description),
			Default:     defaultValue,
		}
	}

	return declaration, nil
}

func (n *normalizer) defaultValue(def *ast.InputValueDefinition) (interface{}, error) {
	if def.DefaultValue == nil {
		return nil, nil
	}
	return convertValue(n.doc.Source, def.DefaultValue)
}

func description(value *ast.StringValue) *string {
	if value == nil {
		return nil
	}
	s := value.Value()
	return &s
}

func namedTypes(types []ast.NamedType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name.Value()
	}
	return names
}

// apply sets the Deprecated field of the record addressed by fact.
func (n *normalizer) apply(fact deprecation.Fact) error {
	typeName, fieldName, argName := fact.Target.Path()

	var kinds []Kind
	switch fact.Target.(type) {
	case deprecation.ObjectTarget, deprecation.ObjectFieldTarget, deprecation.ObjectFieldArgumentTarget:
		kinds = []Kind{KindObject, KindInterface}
	case deprecation.InputTarget, deprecation.InputFieldTarget:
		kinds = []Kind{KindInput}
	case deprecation.EnumTarget, deprecation.EnumValueTarget:
		kinds = []Kind{KindEnum}
	case deprecation.ScalarTarget:
		kinds = []Kind{KindScalar}
	case deprecation.UnionTarget:
		kinds = []Kind{KindUnion}
	}

	version := fact.Version
	deprecated := &version

	declaration := n.schema[typeName]
	if declaration != nil && slices.Contains(kinds, declaration.Kind) {
		switch fact.Target.(type) {
		case deprecation.ObjectTarget, deprecation.InputTarget, deprecation.EnumTarget,
			deprecation.ScalarTarget, deprecation.UnionTarget:
			declaration.Deprecated = deprecated
			return nil

		case deprecation.ObjectFieldTarget, deprecation.InputFieldTarget:
			if field := declaration.Fields[fieldName]; field != nil {
				field.Deprecated = deprecated
				return nil
			}

		case deprecation.ObjectFieldArgumentTarget:
			if field := declaration.Fields[fieldName]; field != nil {
				if arg := field.Arguments[argName]; arg != nil {
					arg.Deprecated = deprecated
					return nil
				}
			}

		case deprecation.EnumValueTarget:
			if value := declaration.Values[fieldName]; value != nil {
				value.Deprecated = deprecated
				return nil
			}
		}
	}

	return graphql.NewError(
		fmt.Sprintf("deprecated %s %s is not declared in the schema", fact.Target.Kind(), fact.Target.ID()),
		graphql.Op("schema.Normalize"),
		graphql.ErrKindInconsistentFact,
	)
}
