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

package token_test

import (
	"regexp"

	"github.com/botobag/schemawatch/graphql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var lineBreakRegexp = regexp.MustCompile("\r\n|[\n\r]")

// referenceLocation computes line and column by scanning for every line break before position.
func referenceLocation(body []byte, position uint) (uint, uint) {
	var (
		line   uint = 1
		column      = position + 1
	)

	for _, match := range lineBreakRegexp.FindAllIndex(body, -1) {
		if uint(match[0]) >= position {
			break
		}
		line++
		column = position + 1 - uint(match[1])
	}

	return line, column
}

var _ = Describe("Source", func() {
	It("names unnamed sources", func() {
		source := token.NewSource(&token.SourceConfig{})
		Expect(source.Name()).Should(Equal(token.DefaultSourceName))
		Expect(source.Body().Size()).Should(BeZero())
	})

	It("converts between positions and locations", func() {
		source := token.NewSource(&token.SourceConfig{
			Body: token.SourceBody("scalar Date"),
		})
		size := source.Body().Size()

		seen := map[token.SourceLocation]bool{}
		for pos := uint(0); pos <= size; pos++ {
			location := source.LocationFromPos(pos)
			Expect(location.IsValid()).Should(BeTrue())
			Expect(seen).ShouldNot(HaveKey(location))
			seen[location] = true
			Expect(source.PosFromLocation(location)).Should(Equal(pos))
		}

		Expect(func() { source.LocationFromPos(size + 1) }).Should(Panic())
		Expect(func() { source.PosFromLocation(token.NoSourceLocation) }).Should(Panic())
	})

	It("locates tokens in a schema document", func() {
		body := "type Shop {\n  name: String\n}\n"
		source := token.NewSource(&token.SourceConfig{
			Name: "shop.graphql",
			Body: token.SourceBody(body),
		})

		Expect(source.LocationInfoOf(source.LocationFromPos(14))).Should(Equal(token.SourceLocationInfo{
			Name:   "shop.graphql",
			Line:   2,
			Column: 3,
		}))
		Expect(source.LocationInfoOf(source.LocationFromPos(uint(len(body))))).Should(Equal(token.SourceLocationInfo{
			Name:   "shop.graphql",
			Line:   4,
			Column: 1,
		}))
	})

	It("returns only the name for an invalid location", func() {
		source := token.NewSource(&token.SourceConfig{
			Name: "shop.graphql",
			Body: token.SourceBody("scalar Date"),
		})
		Expect(source.LocationInfoOf(token.NoSourceLocation)).Should(Equal(token.SourceLocationInfo{
			Name: "shop.graphql",
		}))
	})

	DescribeTable("agrees with a scan for line breaks at every position",
		func(body string) {
			source := token.NewSource(&token.SourceConfig{
				Name: "test",
				Body: token.SourceBody(body),
			})

			for pos := uint(0); pos < uint(len(body)); pos++ {
				line, column := referenceLocation([]byte(body), pos)
				Expect(source.LocationInfoOf(source.LocationFromPos(pos))).Should(Equal(token.SourceLocationInfo{
					Name:   "test",
					Line:   line,
					Column: column,
				}), "pos = %d", pos)
			}
		},
		Entry("empty", ""),
		Entry("one line", "scalar Date"),
		Entry("empty lines", "\n\n\n\n\n"),
		Entry("carriage returns", "a\rb\rc\r"),
		Entry("line feed then carriage return", "a\n\rb\n\rc\n\r"),
		Entry("carriage return then line feed", "a\r\nb\r\nc\r\n"),
		Entry("mixed", "type A {\r\n  b: Int\n}\r\rscalar C"),
	)
})
