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
	"strings"

	"github.com/botobag/schemawatch/graphql/token"
)

// Node represents a node in an AST tree from parsing GraphQL language.
type Node interface {
	// TokenRange indicates the region of the Node in the source.
	TokenRange() token.Range
}

// Name represents a name.
//
// Reference: https://spec.graphql.org/June2018/#sec-Names
type Name struct {
	// Token is the lexical token that contains the name (usually scanned by lexer) and also
	// indicates the location in the source; Its kind must be an token.KindName.
	Token *token.Token
}

var _ Node = Name{}

// Value returns the name in string.
func (node Name) Value() string {
	return node.Token.Value
}

// TokenRange implements Node.
func (node Name) TokenRange() token.Range {
	return token.Range{
		First: node.Token,
		Last:  node.Token,
	}
}

//===----------------------------------------------------------------------------------------====//
// Document
//===----------------------------------------------------------------------------------------====//

// Document represents a schema document: a list of type system definitions and extensions.
//
// Reference: https://spec.graphql.org/June2018/#Document
type Document struct {
	// Source is the source the document was parsed from. It is used to compute line and column
	// numbers of nodes for error messages and may be nil.
	Source *token.Source

	// Definitions defined in the document.
	Definitions Definitions
}

var _ Node = Document{}

// TokenRange implements Node.
func (node Document) TokenRange() token.Range {
	if len(node.Definitions) == 0 {
		return token.Range{}
	}
	return token.Range{
		First: node.Definitions[0].TokenRange().First,
		Last:  node.Definitions[len(node.Definitions)-1].TokenRange().Last,
	}
}

// KindOf returns the name of the node type of a definition, such as "ObjectTypeExtension".
func KindOf(definition Definition) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", definition), "*ast.")
}

// Definitions is a list of Definition.
type Definitions []Definition

// Definition represents a top-level definition in a schema document.
//
// Reference: https://spec.graphql.org/June2018/#TypeSystemDefinition
type Definition interface {
	Node

	// Directives applied to the definition. (Prepend "Get" to avoid name collision with the fields
	// in derived class.)
	GetDirectives() Directives

	// definitionNode is a special mark to indicate a Definition node. It makes sure that only
	// definition node can be assigned to Definition.
	definitionNode()
}

// DefinitionBase is a common base that is embedded in Definition implementation.
type DefinitionBase struct {
	// Loc is the range of tokens spanned by the definition.
	Loc token.Range

	// Directives that are applied to the definition
	Directives Directives
}

// TokenRange implements Node.
func (base *DefinitionBase) TokenRange() token.Range {
	return base.Loc
}

// GetDirectives implements Definition.
func (base *DefinitionBase) GetDirectives() Directives {
	return base.Directives
}

// definitionNode marks the embedding node as a Definition.
func (*DefinitionBase) definitionNode() {}

// TypeDefinition is implemented by the six named type definitions (and their extensions).
type TypeDefinition interface {
	Definition

	// GetName returns the name of the defined type.
	GetName() Name

	// GetDescription returns the description preceding the definition or nil.
	GetDescription() *StringValue
}

// TypeDefinitionBase is embedded in the definitions of named types.
type TypeDefinitionBase struct {
	DefinitionBase

	// Description is the documentation string written before the definition; nil if absent.
	Description *StringValue

	// Name of the type
	Name Name
}

// GetName implements TypeDefinition.
func (base *TypeDefinitionBase) GetName() Name {
	return base.Name
}

// GetDescription implements TypeDefinition.
func (base *TypeDefinitionBase) GetDescription() *StringValue {
	return base.Description
}
