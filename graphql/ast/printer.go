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

package ast

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Print uses a set of formatting rules (compatible with graphql-js) to convert a type reference, a
// value or a directive into a string.
func Print(node Node) string {
	var buf strings.Builder
	FPrint(&buf, node)
	return buf.String()
}

// FPrint "pretty-prints" an AST node to out.
func FPrint(out io.StringWriter, node Node) {
	(&printer{out}).printNode(node)
}

// stringQuoter encodes string values like JSON.stringify does.
var stringQuoter = jsoniter.Config{EscapeHTML: false}.Froze()

type printer struct {
	io.StringWriter
}

func (p *printer) printNode(node Node) {
	switch node := node.(type) {
	case Name:
		p.WriteString(node.Value())
	case *Argument:
		p.printArgument(node)
	case *Directive:
		p.printDirective(node)
	case *ObjectField:
		p.printObjectField(node)
	case Type:
		p.printType(node)
	case Value:
		p.printValue(node)
	default:
		panic(fmt.Sprintf("unsupported node type %T to print", node))
	}
}

//===----------------------------------------------------------------------------------------====//
// Value
//===----------------------------------------------------------------------------------------====//

func (p *printer) printValue(node Value) {
	switch node := node.(type) {
	case BooleanValue:
		if node.Value() {
			p.WriteString("true")
		} else {
			p.WriteString("false")
		}
	case EnumValue:
		p.WriteString(node.Value())
	case FloatValue:
		p.WriteString(node.String())
	case IntValue:
		p.WriteString(node.String())
	case NullValue:
		p.WriteString("null")
	case StringValue:
		p.printString(node.Value())
	case Variable:
		p.WriteString("$")
		p.WriteString(node.Name.Value())

	case ListValue:
		p.WriteString("[")
		for i, value := range node.Values {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printValue(value)
		}
		p.WriteString("]")

	case ObjectValue:
		p.WriteString("{")
		for i, field := range node.Fields {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printObjectField(field)
		}
		p.WriteString("}")

	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Value", node))
	}
}

func (p *printer) printObjectField(field *ObjectField) {
	p.WriteString(field.Name.Value())
	p.WriteString(": ")
	p.printValue(field.Value)
}

// printString prints block strings as plain quoted strings too; only the value matters once the
// source is parsed.
func (p *printer) printString(value string) {
	stream := stringQuoter.BorrowStream(nil)
	defer stringQuoter.ReturnStream(stream)
	stream.WriteString(value)
	p.WriteString(string(stream.Buffer()))
}

//===----------------------------------------------------------------------------------------====//
// Type
//===----------------------------------------------------------------------------------------====//

// printType prints named types as their names, list types wrapped in "[...]" and non-null types
// with a trailing "!".
func (p *printer) printType(node Type) {
	switch node := node.(type) {
	case ListType:
		p.WriteString("[")
		p.printType(node.ItemType)
		p.WriteString("]")
	case NamedType:
		p.WriteString(node.Name.Value())
	case NonNullType:
		p.printType(node.Type)
		p.WriteString("!")
	default:
		panic(fmt.Sprintf("unexpected node type %T when printing Type", node))
	}
}

//===----------------------------------------------------------------------------------------====//
// Directive
//===----------------------------------------------------------------------------------------====//

func (p *printer) printDirective(directive *Directive) {
	p.WriteString("@")
	p.WriteString(directive.Name.Value())
	if len(directive.Arguments) > 0 {
		p.WriteString("(")
		for i, arg := range directive.Arguments {
			if i > 0 {
				p.WriteString(", ")
			}
			p.printArgument(arg)
		}
		p.WriteString(")")
	}
}

func (p *printer) printArgument(arg *Argument) {
	p.WriteString(arg.Name.Value())
	p.WriteString(": ")
	p.printValue(arg.Value)
}
