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

package util

import (
	"slices"
	"strings"
)

// SuggestionList returns the options that are close enough to input to be what the user meant,
// most similar first.
func SuggestionList(input string, options []string) []string {
	type candidate struct {
		option   string
		distance int
	}

	var candidates []candidate
	inputThreshold := len(input) / 2
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := max(inputThreshold, len(option)/2, 1)
		if distance <= threshold {
			candidates = append(candidates, candidate{option, distance})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.option
	}
	return suggestions
}

// lexicalDistance counts the edits needed to turn a into b. An edit inserts, deletes or substitutes
// one character, or swaps two adjacent characters. A change of case alone is one edit.
func lexicalDistance(aStr string, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
		d[i][0] = i
	}
	for j := 1; j <= len(b); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}

	return d[len(a)][len(b)]
}
