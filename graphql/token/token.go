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

package token

import (
	"fmt"
)

// Kind classifies the tokens emitted by the lexer.
type Kind int

// Token kinds. See https://spec.graphql.org/June2018/#sec-Appendix-Grammar-Summary.Lexical-Tokens.
const (
	KindSOF Kind = iota + 1
	KindEOF
	KindBang
	KindDollar
	KindAmp
	KindLeftParen
	KindRightParen
	KindSpread
	KindColon
	KindEquals
	KindAt
	KindLeftBracket
	KindRightBracket
	KindLeftBrace
	KindPipe
	KindRightBrace
	KindName
	KindInt
	KindFloat
	KindString
	KindBlockString
	KindComment
)

var kindNames = [...]string{
	KindSOF:          "<SOF>",
	KindEOF:          "<EOF>",
	KindBang:         "!",
	KindDollar:       "$",
	KindAmp:          "&",
	KindLeftParen:    "(",
	KindRightParen:   ")",
	KindSpread:       "...",
	KindColon:        ":",
	KindEquals:       "=",
	KindAt:           "@",
	KindLeftBracket:  "[",
	KindRightBracket: "]",
	KindLeftBrace:    "{",
	KindPipe:         "|",
	KindRightBrace:   "}",
	KindName:         "Name",
	KindInt:          "Int",
	KindFloat:        "Float",
	KindString:       "String",
	KindBlockString:  "BlockString",
	KindComment:      "Comment",
}

var _ fmt.Stringer = Kind(0)

// String returns the punctuator itself or the name of the token class. It panics on an unknown
// kind.
func (kind Kind) String() string {
	if kind < KindSOF || int(kind) >= len(kindNames) {
		panic("unsupported token kind")
	}
	return kindNames[kind]
}

// Token is a lexical token of a Source.
type Token struct {
	Kind     Kind
	Location SourceLocation

	// Length is the size of the token text in bytes.
	Length uint

	// Value is the interpreted value of names, numbers, strings and comments. It is empty for
	// punctuators.
	Value string

	// Prev and Next link all tokens of a document from <SOF> to <EOF>.
	Prev *Token
	Next *Token
}

// Description describes the token in syntax errors, such as `Name "Shop"`.
func (token *Token) Description() string {
	if len(token.Value) == 0 {
		return token.Kind.String()
	}
	return fmt.Sprintf(`%s "%s"`, token.Kind, token.Value)
}

// IsPunctuator returns true if the token is a punctuator (the kinds between KindBang and
// KindRightBrace).
func (token *Token) IsPunctuator() bool {
	return token.Kind >= KindBang && token.Kind <= KindRightBrace
}

// Range specifies a range of tokens in the token list. Both ends are inclusive.
type Range struct {
	First *Token
	Last  *Token
}

// SourceRange converts the token range into a SourceRange. The end location points to the byte
// just past the last token.
func (r Range) SourceRange() SourceRange {
	var sr SourceRange
	if r.First != nil {
		sr.Begin = r.First.Location
	}
	if r.Last != nil {
		sr.End = r.Last.Location.WithOffset(int(r.Last.Length))
	}
	return sr
}
