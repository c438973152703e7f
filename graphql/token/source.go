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
	"sort"
	"sync"
	"unicode/utf8"
)

// SourceBody is the text of a schema document.
type SourceBody []byte

// RuneAt decodes the rune at pos and returns it with its width in bytes. It returns -1 at the end
// of the body.
func (body SourceBody) RuneAt(pos uint) (rune, uint) {
	if body.Size() <= pos {
		return -1, 0
	}

	if c := body[pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}

	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte at pos, or 0 when pos is past the end.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the length of the body in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// SourceLocationInfo is the human-readable form of a SourceLocation.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// DefaultSourceName names a Source created without a name.
const DefaultSourceName = "GraphQL schema"

// SourceConfig specifies a Source.
type SourceConfig struct {
	Body SourceBody

	// Name is shown in error messages, usually a file name or a URL.
	Name string
}

// lineBreak is a "\n", "\r" or "\r\n" in a body. Positions from after onwards are on the following
// line, whose columns count from next.
type lineBreak struct {
	after uint
	next  uint
}

// Source is a schema document together with a lazily built table of its line breaks.
type Source struct {
	body SourceBody
	name string

	once   sync.Once
	breaks []lineBreak
}

// NewSource creates a Source from config.
func NewSource(config *SourceConfig) *Source {
	name := config.Name
	if len(name) == 0 {
		name = DefaultSourceName
	}
	return &Source{
		body: config.Body,
		name: name,
	}
}

// Body returns the document text.
func (source *Source) Body() SourceBody {
	return source.body
}

// Name returns the name given in SourceConfig.
func (source *Source) Name() string {
	return source.name
}

// LocationFromPos converts a 0-based byte offset into a SourceLocation. The offset may point just
// past the end of the body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.body.Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// PosFromLocation is the inverse of LocationFromPos.
func (source *Source) PosFromLocation(location SourceLocation) uint {
	if !location.IsValid() || uint(location) > source.body.Size()+1 {
		panic("illegal location value")
	}
	return uint(location) - 1
}

func (source *Source) lineBreaks() []lineBreak {
	source.once.Do(func() {
		body := source.body
		for i := uint(0); i < body.Size(); i++ {
			switch body[i] {
			case '\n':
				source.breaks = append(source.breaks, lineBreak{after: i + 1, next: i + 1})
			case '\r':
				next := i + 1
				if body.At(next) == '\n' {
					next++
				}
				source.breaks = append(source.breaks, lineBreak{after: i + 1, next: next})
				i = next - 1
			}
		}
	})
	return source.breaks
}

// LocationInfoOf returns the line and column of loc, both 1-based. The "\n" of a "\r\n" pair is
// reported at column 0 of the following line. An invalid loc yields only the source name.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.name,
		}
	}

	position := uint(loc) - 1
	if size := source.body.Size(); position > size {
		position = size
	}

	breaks := source.lineBreaks()
	n := sort.Search(len(breaks), func(i int) bool {
		return breaks[i].after > position
	})

	var lineStart uint
	if n > 0 {
		lineStart = breaks[n-1].next
	}

	return SourceLocationInfo{
		Name:   source.name,
		Line:   uint(n) + 1,
		Column: position + 1 - lineStart,
	}
}
