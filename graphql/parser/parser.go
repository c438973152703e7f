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
	"fmt"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/lexer"
	"github.com/botobag/schemawatch/graphql/token"
)

// parser holds internal state during parsing.
type parser struct {
	// The lexer for tokenization
	lexer *lexer.Lexer

	// The token consumed by the last call to advance; used to close token ranges.
	last *token.Token
}

func newParser(source *token.Source) (*parser, error) {
	if source == nil {
		return nil, graphql.NewError("Must provide Source. Received: nil", graphql.ErrKindInternal)
	}
	return &parser{
		lexer: lexer.New(source),
	}, nil
}

// advance consumes the current token.
func (p *parser) advance() error {
	p.last = p.lexer.Token()
	_, err := p.lexer.Advance()
	return err
}

// Peek return current token without consume it.
func (p *parser) peek() *token.Token {
	return p.lexer.Token()
}

// rangeFrom returns the range from first up to the last consumed token.
func (p *parser) rangeFrom(first *token.Token) token.Range {
	return token.Range{
		First: first,
		Last:  p.last,
	}
}

// If the next token is of the given kind, return true after advancing the lexer. Otherwise, do not
// change the parser state and return false.
func (p *parser) skip(tokenKind token.Kind) (bool, error) {
	if p.peek().Kind != tokenKind {
		return false, nil
	}
	return true, p.advance()
}

// If the next token is of the given kind, return that token after advancing the lexer. Otherwise,
// do not change the parser state and throw an error.
func (p *parser) expect(tokenKind token.Kind) (*token.Token, error) {
	tok := p.peek()
	if tok.Kind != tokenKind {
		return nil, p.syntaxError(tok, "Expected %v, found %s", tokenKind, tok.Description())
	}
	return tok, p.advance()
}

// If the next token is a keyword with the given value, return true after advancing the lexer.
// Otherwise, do not change the parser state and return false.
func (p *parser) skipKeyword(keyword string) (bool, error) {
	if tok := p.peek(); tok.Kind == token.KindName && tok.Value == keyword {
		return true, p.advance()
	}
	return false, nil
}

// If the next token is a keyword with the given value, return that token after advancing the
// lexer. Otherwise, do not change the parser state and throw an error.
func (p *parser) expectKeyword(keyword string) (*token.Token, error) {
	tok := p.peek()
	if tok.Kind != token.KindName || tok.Value != keyword {
		return nil, p.syntaxError(tok, `Expected "%s", found %s`, keyword, tok.Description())
	}
	return tok, p.advance()
}

func (p *parser) syntaxError(tok *token.Token, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(p.lexer.Source(), tok.Location, fmt.Sprintf(format, args...))
}

// Helper function for creating an error when an unexpected lexed token is encountered.
func (p *parser) unexpected() error {
	tok := p.peek()
	return p.syntaxError(tok, "Unexpected %s", tok.Description())
}

// parseStandalone parses a single construct that must make up the whole source.
func (p *parser) parseStandalone(parse func() error) error {
	if _, err := p.expect(token.KindSOF); err != nil {
		return err
	}
	if err := parse(); err != nil {
		return err
	}
	_, err := p.expect(token.KindEOF)
	return err
}

// many parses a list of nodes which begins with a token of openKind and ends with a token of
// closeKind. At least one node is required.
func many[T any](p *parser, openKind token.Kind, parseFunc func() (T, error), closeKind token.Kind) ([]T, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}

	var nodes []T
	for {
		node, err := parseFunc()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		if stop, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if stop {
			return nodes, nil
		}
	}
}

// optionalMany is like many but the list may be omitted entirely or be empty.
func optionalMany[T any](p *parser, openKind token.Kind, parseFunc func() (T, error), closeKind token.Kind) ([]T, error) {
	if p.peek().Kind != openKind {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var nodes []T
	for {
		if stop, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if stop {
			return nodes, nil
		}

		node, err := parseFunc()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// Converts a name lex token into a name parse node.
func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{
		Token: tok,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

//	Document ::
//		Definition+
func (p *parser) parseDocument() (ast.Document, error) {
	if _, err := p.expect(token.KindSOF); err != nil {
		return ast.Document{}, err
	}

	var definitions ast.Definitions
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}
		definitions = append(definitions, definition)

		if stop, err := p.skip(token.KindEOF); err != nil {
			return ast.Document{}, err
		} else if stop {
			break
		}
	}

	return ast.Document{
		Source:      p.lexer.Source(),
		Definitions: definitions,
	}, nil
}

//	Definition ::
//		TypeSystemDefinition
//		TypeSystemExtension
//
//	TypeSystemDefinition ::
//		SchemaDefinition
//		TypeDefinition
//		DirectiveDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	keyword := p.peek()
	if keyword.Kind != token.KindName {
		return nil, p.unexpected()
	}

	switch keyword.Value {
	case "schema":
		return p.parseSchemaDefinition(first, description)
	case "scalar", "type", "interface", "union", "enum", "input":
		base, err := p.parseTypeDefinitionBase(first, description)
		if err != nil {
			return nil, err
		}
		return p.parseTypeDefinitionBody(keyword.Value, base)
	case "directive":
		return p.parseDirectiveDefinition(first, description)
	case "extend":
		if description == nil {
			return p.parseTypeSystemExtension()
		}
	}

	return nil, p.unexpected()
}

//	Description ::
//		StringValue
func (p *parser) parseDescription() (*ast.StringValue, error) {
	tok := p.peek()
	if tok.Kind != token.KindString && tok.Kind != token.KindBlockString {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.StringValue{
		Token: tok,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Schema
//===----------------------------------------------------------------------------------------====//

//	SchemaDefinition ::
//		schema Directives[Const]? { OperationTypeDefinition+ }
func (p *parser) parseSchemaDefinition(first *token.Token, description *ast.StringValue) (*ast.SchemaDefinition, error) {
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	operationTypes, err := many(p, token.KindLeftBrace, p.parseOperationTypeDefinition, token.KindRightBrace)
	if err != nil {
		return nil, err
	}

	return &ast.SchemaDefinition{
		DefinitionBase: ast.DefinitionBase{
			Loc:        p.rangeFrom(first),
			Directives: directives,
		},
		Description:    description,
		OperationTypes: operationTypes,
	}, nil
}

//	OperationTypeDefinition ::
//		OperationType : NamedType
func (p *parser) parseOperationTypeDefinition() (*ast.OperationTypeDefinition, error) {
	operation := p.peek()
	if operation.Kind != token.KindName {
		return nil, p.unexpected()
	}
	switch operation.Value {
	case "query", "mutation", "subscription":
	default:
		return nil, p.unexpected()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	namedType, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}

	return &ast.OperationTypeDefinition{
		Operation: operation,
		Type:      namedType,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Type definitions
//===----------------------------------------------------------------------------------------====//

// parseTypeDefinitionBase consumes the keyword and the name of a type definition.
func (p *parser) parseTypeDefinitionBase(first *token.Token, description *ast.StringValue) (ast.TypeDefinitionBase, error) {
	// Keyword
	if err := p.advance(); err != nil {
		return ast.TypeDefinitionBase{}, err
	}

	name, err := p.parseName()
	if err != nil {
		return ast.TypeDefinitionBase{}, err
	}

	return ast.TypeDefinitionBase{
		DefinitionBase: ast.DefinitionBase{
			Loc: token.Range{First: first},
		},
		Description: description,
		Name:        name,
	}, nil
}

// parseTypeDefinitionBody parses what follows the name of a type definition of the given keyword.
//
//	ScalarTypeDefinition ::
//		Description? scalar Name Directives[Const]?
//
//	ObjectTypeDefinition ::
//		Description? type Name ImplementsInterfaces? Directives[Const]? FieldsDefinition?
//
//	InterfaceTypeDefinition ::
//		Description? interface Name ImplementsInterfaces? Directives[Const]? FieldsDefinition?
//
//	UnionTypeDefinition ::
//		Description? union Name Directives[Const]? UnionMemberTypes?
//
//	EnumTypeDefinition ::
//		Description? enum Name Directives[Const]? EnumValuesDefinition?
//
//	InputObjectTypeDefinition ::
//		Description? input Name Directives[Const]? InputFieldsDefinition?
func (p *parser) parseTypeDefinitionBody(keyword string, base ast.TypeDefinitionBase) (ast.TypeDefinition, error) {
	var (
		interfaces []ast.NamedType
		err        error
	)

	if keyword == "type" || keyword == "interface" {
		if interfaces, err = p.parseImplementsInterfaces(); err != nil {
			return nil, err
		}
	}

	if base.Directives, err = p.parseDirectives(); err != nil {
		return nil, err
	}

	// finish closes the token range once the whole definition is consumed.
	finish := func() ast.TypeDefinitionBase {
		base.Loc.Last = p.last
		return base
	}

	switch keyword {
	case "scalar":
		return &ast.ScalarTypeDefinition{
			TypeDefinitionBase: finish(),
		}, nil

	case "type":
		fields, err := optionalMany(p, token.KindLeftBrace, p.parseFieldDefinition, token.KindRightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.ObjectTypeDefinition{
			TypeDefinitionBase: finish(),
			Interfaces:         interfaces,
			Fields:             fields,
		}, nil

	case "interface":
		fields, err := optionalMany(p, token.KindLeftBrace, p.parseFieldDefinition, token.KindRightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.InterfaceTypeDefinition{
			TypeDefinitionBase: finish(),
			Interfaces:         interfaces,
			Fields:             fields,
		}, nil

	case "union":
		types, err := p.parseUnionMemberTypes()
		if err != nil {
			return nil, err
		}
		return &ast.UnionTypeDefinition{
			TypeDefinitionBase: finish(),
			Types:              types,
		}, nil

	case "enum":
		values, err := optionalMany(p, token.KindLeftBrace, p.parseEnumValueDefinition, token.KindRightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.EnumTypeDefinition{
			TypeDefinitionBase: finish(),
			Values:             values,
		}, nil

	case "input":
		fields, err := optionalMany(p, token.KindLeftBrace, p.parseInputValueDefinition, token.KindRightBrace)
		if err != nil {
			return nil, err
		}
		return &ast.InputObjectTypeDefinition{
			TypeDefinitionBase: finish(),
			Fields:             fields,
		}, nil
	}

	panic(fmt.Sprintf("unexpected type definition keyword %q", keyword))
}

//	ImplementsInterfaces ::
//		implements &? NamedType
//		ImplementsInterfaces & NamedType
func (p *parser) parseImplementsInterfaces() ([]ast.NamedType, error) {
	if ok, err := p.skipKeyword("implements"); err != nil || !ok {
		return nil, err
	}

	// Optional leading ampersand
	if _, err := p.skip(token.KindAmp); err != nil {
		return nil, err
	}

	var types []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, namedType)

		if more, err := p.skip(token.KindAmp); err != nil {
			return nil, err
		} else if !more {
			return types, nil
		}
	}
}

//	UnionMemberTypes ::
//		= |? NamedType
//		UnionMemberTypes | NamedType
func (p *parser) parseUnionMemberTypes() ([]ast.NamedType, error) {
	if ok, err := p.skip(token.KindEquals); err != nil || !ok {
		return nil, err
	}

	// Optional leading pipe
	if _, err := p.skip(token.KindPipe); err != nil {
		return nil, err
	}

	var types []ast.NamedType
	for {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, namedType)

		if more, err := p.skip(token.KindPipe); err != nil {
			return nil, err
		} else if !more {
			return types, nil
		}
	}
}

//	FieldDefinition ::
//		Description? Name ArgumentsDefinition? : Type Directives[Const]?
func (p *parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	arguments, err := p.parseArgumentDefinitions()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	fieldType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.FieldDefinition{
		Loc:         p.rangeFrom(first),
		Description: description,
		Name:        name,
		Arguments:   arguments,
		Type:        fieldType,
		Directives:  directives,
	}, nil
}

//	ArgumentsDefinition ::
//		( InputValueDefinition+ )
func (p *parser) parseArgumentDefinitions() ([]*ast.InputValueDefinition, error) {
	if p.peek().Kind != token.KindLeftParen {
		return nil, nil
	}
	return many(p, token.KindLeftParen, p.parseInputValueDefinition, token.KindRightParen)
}

//	InputValueDefinition ::
//		Description? Name : Type DefaultValue? Directives[Const]?
func (p *parser) parseInputValueDefinition() (*ast.InputValueDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	valueType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var defaultValue ast.Value
	if hasDefault, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if hasDefault {
		if defaultValue, err = p.parseValue(true /* isConst */); err != nil {
			return nil, err
		}
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.InputValueDefinition{
		Loc:          p.rangeFrom(first),
		Description:  description,
		Name:         name,
		Type:         valueType,
		DefaultValue: defaultValue,
		Directives:   directives,
	}, nil
}

//	EnumValueDefinition ::
//		Description? EnumValue Directives[Const]?
//
//	EnumValue ::
//		Name but not true or false or null
func (p *parser) parseEnumValueDefinition() (*ast.EnumValueDefinition, error) {
	first := p.peek()

	description, err := p.parseDescription()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind == token.KindName {
		switch tok.Value {
		case "true", "false", "null":
			return nil, p.syntaxError(tok, "Name \"%s\" is reserved and cannot be used for an enum value.", tok.Value)
		}
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	return &ast.EnumValueDefinition{
		Loc:         p.rangeFrom(first),
		Description: description,
		Name:        name,
		Directives:  directives,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Directive definition
//===----------------------------------------------------------------------------------------====//

var directiveLocations = map[string]bool{
	// Executable directive locations
	"QUERY":               true,
	"MUTATION":            true,
	"SUBSCRIPTION":        true,
	"FIELD":               true,
	"FRAGMENT_DEFINITION": true,
	"FRAGMENT_SPREAD":     true,
	"INLINE_FRAGMENT":     true,
	"VARIABLE_DEFINITION": true,

	// Type system directive locations
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

//	DirectiveDefinition ::
//		Description? directive @ Name ArgumentsDefinition? repeatable? on DirectiveLocations
func (p *parser) parseDirectiveDefinition(first *token.Token, description *ast.StringValue) (*ast.DirectiveDefinition, error) {
	if _, err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindAt); err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	arguments, err := p.parseArgumentDefinitions()
	if err != nil {
		return nil, err
	}

	repeatable, err := p.skipKeyword("repeatable")
	if err != nil {
		return nil, err
	}

	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}

	locations, err := p.parseDirectiveLocations()
	if err != nil {
		return nil, err
	}

	return &ast.DirectiveDefinition{
		DefinitionBase: ast.DefinitionBase{
			Loc: p.rangeFrom(first),
		},
		Description: description,
		Name:        name,
		Arguments:   arguments,
		Repeatable:  repeatable,
		Locations:   locations,
	}, nil
}

//	DirectiveLocations ::
//		|? DirectiveLocation
//		DirectiveLocations | DirectiveLocation
func (p *parser) parseDirectiveLocations() ([]ast.Name, error) {
	// Optional leading pipe
	if _, err := p.skip(token.KindPipe); err != nil {
		return nil, err
	}

	var locations []ast.Name
	for {
		if tok := p.peek(); tok.Kind == token.KindName && !directiveLocations[tok.Value] {
			return nil, p.unexpected()
		}

		location, err := p.parseName()
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)

		if more, err := p.skip(token.KindPipe); err != nil {
			return nil, err
		} else if !more {
			return locations, nil
		}
	}
}

//===----------------------------------------------------------------------------------------====//
// Extensions
//===----------------------------------------------------------------------------------------====//

//	TypeSystemExtension ::
//		SchemaExtension
//		TypeExtension
func (p *parser) parseTypeSystemExtension() (ast.Definition, error) {
	first, err := p.expectKeyword("extend")
	if err != nil {
		return nil, err
	}

	keyword := p.peek()
	if keyword.Kind != token.KindName {
		return nil, p.unexpected()
	}

	switch keyword.Value {
	case "schema":
		return p.parseSchemaExtension(first)
	case "scalar", "type", "interface", "union", "enum", "input":
	default:
		return nil, p.unexpected()
	}

	base, err := p.parseTypeDefinitionBase(first, nil)
	if err != nil {
		return nil, err
	}

	definition, err := p.parseTypeDefinitionBody(keyword.Value, base)
	if err != nil {
		return nil, err
	}

	// An extension must extend something.
	var (
		extension ast.Definition
		empty     bool
	)
	switch def := definition.(type) {
	case *ast.ScalarTypeDefinition:
		extension, empty = &ast.ScalarTypeExtension{ScalarTypeDefinition: *def}, len(def.Directives) == 0
	case *ast.ObjectTypeDefinition:
		extension = &ast.ObjectTypeExtension{ObjectTypeDefinition: *def}
		empty = len(def.Interfaces) == 0 && len(def.Directives) == 0 && len(def.Fields) == 0
	case *ast.InterfaceTypeDefinition:
		extension = &ast.InterfaceTypeExtension{InterfaceTypeDefinition: *def}
		empty = len(def.Interfaces) == 0 && len(def.Directives) == 0 && len(def.Fields) == 0
	case *ast.UnionTypeDefinition:
		extension, empty = &ast.UnionTypeExtension{UnionTypeDefinition: *def}, len(def.Directives) == 0 && len(def.Types) == 0
	case *ast.EnumTypeDefinition:
		extension, empty = &ast.EnumTypeExtension{EnumTypeDefinition: *def}, len(def.Directives) == 0 && len(def.Values) == 0
	case *ast.InputObjectTypeDefinition:
		extension, empty = &ast.InputObjectTypeExtension{InputObjectTypeDefinition: *def}, len(def.Directives) == 0 && len(def.Fields) == 0
	}

	if empty {
		return nil, p.unexpected()
	}
	return extension, nil
}

//	SchemaExtension ::
//		extend schema Directives[Const]? { OperationTypeDefinition+ }
//		extend schema Directives[Const]
func (p *parser) parseSchemaExtension(first *token.Token) (*ast.SchemaExtension, error) {
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}

	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}

	var operationTypes []*ast.OperationTypeDefinition
	if p.peek().Kind == token.KindLeftBrace {
		operationTypes, err = many(p, token.KindLeftBrace, p.parseOperationTypeDefinition, token.KindRightBrace)
		if err != nil {
			return nil, err
		}
	}

	if len(directives) == 0 && len(operationTypes) == 0 {
		return nil, p.unexpected()
	}

	return &ast.SchemaExtension{
		DefinitionBase: ast.DefinitionBase{
			Loc:        p.rangeFrom(first),
			Directives: directives,
		},
		OperationTypes: operationTypes,
	}, nil
}
