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

package lexer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/token"
)

// Lexer turns a schema document into a linked list of tokens. It is lazy: tokens are scanned on
// demand by Advance and Lookahead. Once the end of the body is reached, the lexer keeps returning
// the same EOF token.
type Lexer struct {
	source *token.Source
	body   token.SourceBody

	// The currently focused non-ignored token
	token *token.Token

	// Offset of the next unscanned byte in body.
	pos uint
}

// New creates a Lexer positioned at the <SOF> token of the given source.
func New(source *token.Source) *Lexer {
	return &Lexer{
		source: source,
		body:   source.Body(),
		token:  &token.Token{Kind: token.KindSOF},
	}
}

// Source returns the source being lexed.
func (lexer *Lexer) Source() *token.Source {
	return lexer.source
}

// Token returns the current token.
func (lexer *Lexer) Token() *token.Token {
	return lexer.token
}

// Advance moves to the next non-ignored token and returns it.
func (lexer *Lexer) Advance() (*token.Token, error) {
	next, err := lexer.Lookahead()
	if err != nil {
		return nil, err
	}
	lexer.token = next
	return next, nil
}

// Lookahead returns the next non-ignored token without moving the current token. Comment tokens
// are kept in the linked list but skipped.
func (lexer *Lexer) Lookahead() (*token.Token, error) {
	tok := lexer.token
	for tok.Kind != token.KindEOF {
		if tok.Next == nil {
			next, err := lexer.scan(tok)
			if err != nil {
				return nil, err
			}
			tok.Next = next
		}
		tok = tok.Next
		if tok.Kind != token.KindComment {
			break
		}
	}
	return tok, nil
}

var punctuators = map[byte]token.Kind{
	'!': token.KindBang,
	'$': token.KindDollar,
	'&': token.KindAmp,
	'(': token.KindLeftParen,
	')': token.KindRightParen,
	':': token.KindColon,
	'=': token.KindEquals,
	'@': token.KindAt,
	'[': token.KindLeftBracket,
	']': token.KindRightBracket,
	'{': token.KindLeftBrace,
	'|': token.KindPipe,
	'}': token.KindRightBrace,
}

func (lexer *Lexer) at(pos uint) byte {
	return lexer.body.At(pos)
}

func (lexer *Lexer) errorAt(pos uint, format string, args ...interface{}) error {
	return graphql.NewSyntaxError(lexer.source, lexer.source.LocationFromPos(pos), fmt.Sprintf(format, args...))
}

// newToken builds a token spanning body[start:lexer.pos].
func (lexer *Lexer) newToken(prev *token.Token, kind token.Kind, start uint, value string) *token.Token {
	return &token.Token{
		Kind:     kind,
		Location: lexer.source.LocationFromPos(start),
		Length:   lexer.pos - start,
		Value:    value,
		Prev:     prev,
	}
}

// describeChar renders the character at pos for error messages.
func (lexer *Lexer) describeChar(pos uint) string {
	if pos >= lexer.body.Size() {
		return "<EOF>"
	}
	r, _ := lexer.body.RuneAt(pos)
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

// skipIgnored skips whitespace, line terminators, commas and the byte order mark.
//
//	Ignored ::
//		UnicodeBOM
//		WhiteSpace
//		LineTerminator
//		Comma
func (lexer *Lexer) skipIgnored() {
	size := lexer.body.Size()
	if lexer.pos == 0 && size >= 3 && lexer.body[0] == 0xEF && lexer.body[1] == 0xBB && lexer.body[2] == 0xBF {
		lexer.pos = 3
	}
	for lexer.pos < size {
		switch lexer.body[lexer.pos] {
		case '\t', ' ', ',', '\n', '\r':
			lexer.pos++
		default:
			return
		}
	}
}

// scan reads the token following prev.
func (lexer *Lexer) scan(prev *token.Token) (*token.Token, error) {
	lexer.skipIgnored()

	start := lexer.pos
	if start >= lexer.body.Size() {
		return lexer.newToken(prev, token.KindEOF, start, ""), nil
	}

	char := lexer.at(start)
	if kind, ok := punctuators[char]; ok {
		lexer.pos++
		return lexer.newToken(prev, kind, start, ""), nil
	}

	switch {
	case char == '#':
		lexer.scanComment()
		return lexer.newToken(prev, token.KindComment, start, ""), nil

	case char == '.':
		if lexer.at(start+1) != '.' || lexer.at(start+2) != '.' {
			return nil, lexer.unexpectedCharacter(start)
		}
		lexer.pos += 3
		return lexer.newToken(prev, token.KindSpread, start, ""), nil

	case isNameStart(char):
		lexer.pos++
		for isNameContinue(lexer.at(lexer.pos)) {
			lexer.pos++
		}
		return lexer.newToken(prev, token.KindName, start, string(lexer.body[start:lexer.pos])), nil

	case char == '-' || isDigit(char):
		kind, err := lexer.scanNumber()
		if err != nil {
			return nil, err
		}
		return lexer.newToken(prev, kind, start, string(lexer.body[start:lexer.pos])), nil

	case char == '"':
		if lexer.at(start+1) == '"' && lexer.at(start+2) == '"' {
			lexer.pos += 3
			value, err := lexer.scanBlockString()
			if err != nil {
				return nil, err
			}
			return lexer.newToken(prev, token.KindBlockString, start, value), nil
		}
		lexer.pos++
		value, err := lexer.scanString()
		if err != nil {
			return nil, err
		}
		return lexer.newToken(prev, token.KindString, start, value), nil
	}

	return nil, lexer.unexpectedCharacter(start)
}

func (lexer *Lexer) unexpectedCharacter(pos uint) error {
	char := lexer.at(pos)
	switch {
	case char < 0x20 && char != '\t' && char != '\n' && char != '\r':
		return lexer.errorAt(pos, "Cannot contain the invalid character %s.", lexer.describeChar(pos))
	case char == '\'':
		return lexer.errorAt(pos, "Unexpected single quote character ('), did you mean to use a double quote (\")?")
	}
	return lexer.errorAt(pos, "Cannot parse the unexpected character %s.", lexer.describeChar(pos))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// scanComment consumes a comment up to (but excluding) the line terminator.
//
//	Comment ::
//		# CommentChar*
func (lexer *Lexer) scanComment() {
	size := lexer.body.Size()
	lexer.pos++
	for lexer.pos < size {
		c := lexer.body[lexer.pos]
		if c < 0x20 && c != '\t' {
			return
		}
		lexer.pos++
	}
}

// scanNumber consumes an IntValue or a FloatValue and reports which one it was.
//
//	IntValue ::
//		IntegerPart
//
//	FloatValue ::
//		IntegerPart FractionalPart
//		IntegerPart ExponentPart
//		IntegerPart FractionalPart ExponentPart
func (lexer *Lexer) scanNumber() (token.Kind, error) {
	kind := token.KindInt

	if lexer.at(lexer.pos) == '-' {
		lexer.pos++
	}

	switch c := lexer.at(lexer.pos); {
	case c == '0':
		lexer.pos++
		if isDigit(lexer.at(lexer.pos)) {
			return kind, lexer.errorAt(lexer.pos, "Invalid number, unexpected digit after 0: %s.", lexer.describeChar(lexer.pos))
		}
	case isDigit(c):
		lexer.skipDigits()
	default:
		return kind, lexer.errorAt(lexer.pos, "Invalid number, expected digit after '-' but got: %s.", lexer.describeChar(lexer.pos))
	}

	if lexer.at(lexer.pos) == '.' {
		kind = token.KindFloat
		lexer.pos++
		if !isDigit(lexer.at(lexer.pos)) {
			return kind, lexer.errorAt(lexer.pos, "Invalid number, expected digit after decimal point ('.') but got: %s.", lexer.describeChar(lexer.pos))
		}
		lexer.skipDigits()
	}

	if c := lexer.at(lexer.pos); c == 'e' || c == 'E' {
		kind = token.KindFloat
		lexer.pos++
		if c := lexer.at(lexer.pos); c == '+' || c == '-' {
			lexer.pos++
		}
		if !isDigit(lexer.at(lexer.pos)) {
			return kind, lexer.errorAt(lexer.pos, "Invalid number, expected digit but got: %s.", lexer.describeChar(lexer.pos))
		}
		lexer.skipDigits()
	}

	return kind, nil
}

func (lexer *Lexer) skipDigits() {
	for isDigit(lexer.at(lexer.pos)) {
		lexer.pos++
	}
}

var simpleEscapes = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// scanString consumes a quoted string whose opening quote has been consumed and returns its
// interpreted value.
//
//	StringCharacter ::
//		SourceCharacter but not " or \ or LineTerminator
//		\u EscapedUnicode
//		\ EscapedCharacter
func (lexer *Lexer) scanString() (string, error) {
	var value strings.Builder
	size := lexer.body.Size()

	for lexer.pos < size {
		c := lexer.body[lexer.pos]
		switch {
		case c == '\n' || c == '\r':
			return "", lexer.errorAt(lexer.pos, "Unterminated string.")

		case c == '"':
			lexer.pos++
			return value.String(), nil

		case c < 0x20 && c != '\t':
			return "", lexer.errorAt(lexer.pos, "Invalid character within String: %s.", lexer.describeChar(lexer.pos))

		case c != '\\':
			value.WriteByte(c)
			lexer.pos++

		default:
			escape := lexer.at(lexer.pos + 1)
			if unescaped, ok := simpleEscapes[escape]; ok {
				value.WriteByte(unescaped)
				lexer.pos += 2
				continue
			}
			if escape != 'u' {
				return "", lexer.errorAt(lexer.pos, "Invalid character escape sequence: \\%c.", escape)
			}

			hexStart := lexer.pos + 2
			hexEnd := hexStart + 4
			if hexEnd > size {
				hexEnd = size
			}
			r, ok := decodeHex(lexer.body[hexStart:hexEnd])
			if !ok {
				return "", lexer.errorAt(lexer.pos, "Invalid character escape sequence: \\u%s.", string(lexer.body[hexStart:hexEnd]))
			}
			value.WriteRune(r)
			lexer.pos = hexEnd
		}
	}

	return "", lexer.errorAt(lexer.pos, "Unterminated string.")
}

// decodeHex decodes exactly four hexadecimal digits.
func decodeHex(digits []byte) (rune, bool) {
	if len(digits) != 4 {
		return 0, false
	}
	var r rune
	for _, d := range digits {
		var v rune
		switch {
		case d >= '0' && d <= '9':
			v = rune(d - '0')
		case d >= 'a' && d <= 'f':
			v = rune(d-'a') + 10
		case d >= 'A' && d <= 'F':
			v = rune(d-'A') + 10
		default:
			return 0, false
		}
		r = r<<4 | v
	}
	return r, true
}

var (
	tripleQuote        = []byte(`"""`)
	escapedTripleQuote = []byte(`\"""`)
)

// scanBlockString consumes a block string whose opening triple-quote has been consumed and
// returns its value after common indentation is removed.
//
//	BlockStringCharacter ::
//		SourceCharacter but not """ or \"""
//		\"""
func (lexer *Lexer) scanBlockString() (string, error) {
	var raw strings.Builder
	size := lexer.body.Size()

	for lexer.pos < size {
		rest := lexer.body[lexer.pos:]
		switch {
		case bytes.HasPrefix(rest, tripleQuote):
			lexer.pos += 3
			return BlockStringValue(raw.String()), nil

		case bytes.HasPrefix(rest, escapedTripleQuote):
			raw.WriteString(`"""`)
			lexer.pos += 4

		default:
			c := rest[0]
			if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
				return "", lexer.errorAt(lexer.pos, "Invalid character within String: %s.", lexer.describeChar(lexer.pos))
			}
			raw.WriteByte(c)
			lexer.pos++
		}
	}

	return "", lexer.errorAt(lexer.pos, "Unterminated string.")
}
