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
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/token"
)

//===----------------------------------------------------------------------------------------====//
// Values
//===----------------------------------------------------------------------------------------====//

//	Value[Const] ::
//		[~Const] Variable
//		IntValue
//		FloatValue
//		StringValue
//		BooleanValue
//		NullValue
//		EnumValue
//		ListValue[?Const]
//		ObjectValue[?Const]
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}

	case token.KindLeftBracket:
		return p.parseListValue(isConst)

	case token.KindLeftBrace:
		return p.parseObjectValue(isConst)

	case token.KindInt:
		return ast.IntValue{Token: tok}, p.advance()

	case token.KindFloat:
		return ast.FloatValue{Token: tok}, p.advance()

	case token.KindString, token.KindBlockString:
		return ast.StringValue{Token: tok}, p.advance()

	case token.KindName:
		switch tok.Value {
		case "true", "false":
			return ast.BooleanValue{Token: tok}, p.advance()
		case "null":
			return ast.NullValue{Token: tok}, p.advance()
		default:
			return ast.EnumValue{Token: tok}, p.advance()
		}
	}

	return nil, p.unexpected()
}

//	ListValue[Const] ::
//		[ ]
//		[ Value[?Const]+ ]
func (p *parser) parseListValue(isConst bool) (ast.ListValue, error) {
	first := p.peek()
	values, err := optionalMany(p, token.KindLeftBracket, func() (ast.Value, error) {
		return p.parseValue(isConst)
	}, token.KindRightBracket)
	if err != nil {
		return ast.ListValue{}, err
	}

	return ast.ListValue{
		Loc:    p.rangeFrom(first),
		Values: values,
	}, nil
}

//	ObjectValue[Const] ::
//		{ }
//		{ ObjectField[?Const]+ }
func (p *parser) parseObjectValue(isConst bool) (ast.ObjectValue, error) {
	first := p.peek()
	fields, err := optionalMany(p, token.KindLeftBrace, func() (*ast.ObjectField, error) {
		return p.parseObjectField(isConst)
	}, token.KindRightBrace)
	if err != nil {
		return ast.ObjectValue{}, err
	}

	return ast.ObjectValue{
		Loc:    p.rangeFrom(first),
		Fields: fields,
	}, nil
}

//	ObjectField[Const] ::
//		Name : Value[?Const]
func (p *parser) parseObjectField(isConst bool) (*ast.ObjectField, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue(isConst)
	if err != nil {
		return nil, err
	}

	return &ast.ObjectField{
		Name:  name,
		Value: value,
	}, nil
}

//	Variable ::
//		$ Name
func (p *parser) parseVariable() (ast.Variable, error) {
	dollar, err := p.expect(token.KindDollar)
	if err != nil {
		return ast.Variable{}, err
	}

	name, err := p.parseName()
	if err != nil {
		return ast.Variable{}, err
	}

	return ast.Variable{
		Dollar: dollar,
		Name:   name,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Types
//===----------------------------------------------------------------------------------------====//

//	Type ::
//		NamedType
//		ListType
//			[ Type ]
//		NonNullType
//			NamedType !
//			ListType !
func (p *parser) parseType() (ast.Type, error) {
	var t ast.NullableType

	if open := p.peek(); open.Kind == token.KindLeftBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}

		itemType, err := p.parseType()
		if err != nil {
			return nil, err
		}

		closing, err := p.expect(token.KindRightBracket)
		if err != nil {
			return nil, err
		}

		t = ast.ListType{
			Loc: token.Range{
				First: open,
				Last:  closing,
			},
			ItemType: itemType,
		}
	} else {
		namedType, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		t = namedType
	}

	if bang := p.peek(); bang.Kind == token.KindBang {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NonNullType{
			Type: t,
			Bang: bang,
		}, nil
	}

	return t, nil
}

//	NamedType ::
//		Name
func (p *parser) parseNamedType() (ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return ast.NamedType{}, err
	}

	return ast.NamedType{
		Name: name,
	}, nil
}

//===----------------------------------------------------------------------------------------====//
// Directives
//===----------------------------------------------------------------------------------------====//

//	Directives[Const] ::
//		Directive[?Const]+
//
// Directives in schema documents are always const.
func (p *parser) parseDirectives() (ast.Directives, error) {
	var directives ast.Directives
	for p.peek().Kind == token.KindAt {
		directive, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
	return directives, nil
}

//	Directive[Const] ::
//		@ Name Arguments[?Const]?
func (p *parser) parseDirective() (*ast.Directive, error) {
	at, err := p.expect(token.KindAt)
	if err != nil {
		return nil, err
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var arguments ast.Arguments
	if p.peek().Kind == token.KindLeftParen {
		if arguments, err = many(p, token.KindLeftParen, p.parseArgument, token.KindRightParen); err != nil {
			return nil, err
		}
	}

	return &ast.Directive{
		Loc:       p.rangeFrom(at),
		Name:      name,
		Arguments: arguments,
	}, nil
}

//	Argument[Const] ::
//		Name : Value[?Const]
func (p *parser) parseArgument() (*ast.Argument, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	value, err := p.parseValue(true /* isConst */)
	if err != nil {
		return nil, err
	}

	return &ast.Argument{
		Name:  name,
		Value: value,
	}, nil
}
