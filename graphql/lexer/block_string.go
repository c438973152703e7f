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
	"strings"
)

// BlockStringValue computes the value of a block string from its raw content: the common
// indentation of all lines but the first is removed, then leading and trailing blank lines are
// dropped. Lines are joined with "\n" regardless of the original line terminators.
//
// Reference: https://spec.graphql.org/June2018/#BlockStringValue()
func BlockStringValue(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(strings.ReplaceAll(raw, "\r", "\n"), "\n")

	indent := -1
	for _, line := range lines[1:] {
		n := indentOf(line)
		if n == len(line) {
			continue
		}
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < indent {
				lines[i] = ""
			} else {
				lines[i] = lines[i][indent:]
			}
		}
	}

	first, last := 0, len(lines)
	for first < last && isBlankLine(lines[first]) {
		first++
	}
	for last > first && isBlankLine(lines[last-1]) {
		last--
	}
	return strings.Join(lines[first:last], "\n")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlankLine(line string) bool {
	return indentOf(line) == len(line)
}
