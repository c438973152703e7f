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

// SourceLocation is a 1-based byte offset into the body of a Source. Use Source.LocationInfoOf to
// turn it into a line and a column.
type SourceLocation uint

// NoSourceLocation is the zero SourceLocation. It does not point into any source.
const NoSourceLocation SourceLocation = 0

// IsValid returns false for NoSourceLocation.
func (location SourceLocation) IsValid() bool {
	return location != NoSourceLocation
}

// WithOffset moves location by offset bytes.
func (location SourceLocation) WithOffset(offset int) SourceLocation {
	return SourceLocation(int(location) + offset)
}

// SourceRange spans the bytes from Begin up to but not including End.
type SourceRange struct {
	Begin SourceLocation
	End   SourceLocation
}

// IsValid reports whether both ends of r are valid.
func (r SourceRange) IsValid() bool {
	return r.Begin.IsValid() && r.End.IsValid()
}
