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

package deprecation_test

import (
	"github.com/botobag/schemawatch/deprecation"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/parser"
	"github.com/botobag/schemawatch/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func extract(body string) []deprecation.Fact {
	facts, err := deprecation.Extract(parser.MustParse(body))
	Expect(err).ShouldNot(HaveOccurred())
	return facts
}

var _ = Describe("ParseMessage", func() {
	DescribeTable("finds version after the phrase",
		func(text string, expectedVersion string, expectedMarked bool) {
			version, marked := deprecation.ParseMessage(text)
			Expect(marked).Should(Equal(expectedMarked))
			Expect(version).Should(Equal(expectedVersion))
		},
		Entry("plain", "Deprecated. Removed in Saleor 3.20.", "3.20", true),
		Entry("upper case", "REMOVED IN SALEOR 4.0", "4.0", true),
		Entry("extra words before version", "This field will be removed in Saleor version 3.22. Use `b`.", "3.22", true),
		Entry("version before phrase is ignored", "Added in 3.1; removed in Saleor", "", true),
		Entry("no phrase", "Deprecated since 3.1.", "", false),
		Entry("empty", "", "", false),
	)
})

var _ = Describe("Extract", func() {
	It("produces a fact from a description", func() {
		facts := extract(`
type Query {
  "Deprecated. Removed in Saleor 3.20."
  shop: String
}`)
		Expect(facts).Should(Equal([]deprecation.Fact{
			{
				Target:  deprecation.ObjectFieldTarget{Object: "Query", Field: "shop"},
				Version: "3.20",
				Message: "Deprecated. Removed in Saleor 3.20.",
			},
		}))
	})

	It("produces no fact without the phrase", func() {
		Expect(extract(`
"Deprecated."
type Query {
  shop: String @deprecated(reason: "Use shops.")
}`)).Should(BeEmpty())
	})

	It("falls back to the reason of @deprecated", func() {
		facts := extract(`
type Query {
  "The shop."
  shop(
    id: ID @deprecated(reason: "  Removed in Saleor 3.21. Use slug.  ")
  ): String
}`)
		Expect(facts).Should(Equal([]deprecation.Fact{
			{
				Target:  deprecation.ObjectFieldArgumentTarget{Object: "Query", Field: "shop", Argument: "id"},
				Version: "3.21",
				Message: "Removed in Saleor 3.21. Use slug.",
			},
		}))
	})

	It("prefers the description over the directive", func() {
		facts := extract(`
enum Color {
  "Removed in Saleor 3.5."
  RED @deprecated(reason: "Removed in Saleor 3.9.")
}`)
		Expect(facts).Should(HaveLen(1))
		Expect(facts[0].Version).Should(Equal("3.5"))
		Expect(facts[0].Target).Should(Equal(deprecation.EnumValueTarget{Enum: "Color", Value: "RED"}))
	})

	It("ignores a reason that is not a string", func() {
		Expect(extract(`scalar Date @deprecated(reason: REMOVED)`)).Should(BeEmpty())
	})

	It("visits every kind of declaration in document order", func() {
		facts := extract(`
"Removed in Saleor 3.1"
interface Node {
  "Removed in Saleor 3.2" id: ID!
}

"Removed in Saleor 3.3"
input Filter {
  "Removed in Saleor 3.4" search: String
}

"Removed in Saleor 3.5"
enum Color { GREEN }

"Removed in Saleor 3.6"
scalar Date

"Removed in Saleor 3.7"
union Result = Node
`)
		targets := []deprecation.Target{}
		versions := []string{}
		for _, fact := range facts {
			targets = append(targets, fact.Target)
			versions = append(versions, fact.Version)
		}
		Expect(targets).Should(Equal([]deprecation.Target{
			deprecation.ObjectTarget{Object: "Node"},
			deprecation.ObjectFieldTarget{Object: "Node", Field: "id"},
			deprecation.InputTarget{Input: "Filter"},
			deprecation.InputFieldTarget{Input: "Filter", Field: "search"},
			deprecation.EnumTarget{Enum: "Color"},
			deprecation.ScalarTarget{Scalar: "Date"},
			deprecation.UnionTarget{Union: "Result"},
		}))
		Expect(versions).Should(Equal([]string{"3.1", "3.2", "3.3", "3.4", "3.5", "3.6", "3.7"}))
	})

	It("skips schema and directive definitions", func() {
		Expect(extract(`
"Removed in Saleor"
schema { query: Query }

"Removed in Saleor"
directive @auth(
  "Removed in Saleor" role: String
) on FIELD_DEFINITION

type Query { a: Int }
`)).Should(BeEmpty())
	})

	It("rejects an announcement without a version", func() {
		_, err := deprecation.Extract(parser.MustParse(`
type Query {
  shop: String @deprecated(reason: "Removed in Saleor soon")
}`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindMalformedDeprecation),
			testutil.OpIs("deprecation.Extract"),
			testutil.MessageEqual(`object field Query-shop has no version after "removed in saleor": "Removed in Saleor soon"`),
			testutil.LocationEqual(graphql.ErrorLocation{Line: 3, Column: 3}),
		))
	})

	It("rejects type extensions", func() {
		_, err := deprecation.Extract(parser.MustParse(`
type Query { a: Int }
extend type Query { b: Int }
`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindUnknownDefinition),
			testutil.MessageEqual("unknown definition kind ObjectTypeExtension"),
			testutil.LocationEqual(graphql.ErrorLocation{Line: 3, Column: 1}),
		))
	})
})

var _ = Describe("Target", func() {
	DescribeTable("ID and Kind",
		func(target deprecation.Target, id string, kind string) {
			Expect(target.ID()).Should(Equal(id))
			Expect(target.Kind()).Should(Equal(kind))
		},
		Entry("object", deprecation.ObjectTarget{Object: "Foo"}, "Foo", "object"),
		Entry("object field", deprecation.ObjectFieldTarget{Object: "Foo", Field: "bar"}, "Foo-bar", "object field"),
		Entry("argument",
			deprecation.ObjectFieldArgumentTarget{Object: "Foo", Field: "bar", Argument: "first"},
			"Foo-bar-first", "object field argument"),
		Entry("input field", deprecation.InputFieldTarget{Input: "In", Field: "x"}, "In-x", "input field"),
		Entry("enum value", deprecation.EnumValueTarget{Enum: "Color", Value: "RED"}, "Color-RED", "enum value"),
		Entry("union", deprecation.UnionTarget{Union: "U"}, "U", "union"),
	)

	It("puts the enum value in the field slot", func() {
		typeName, field, argument := deprecation.EnumValueTarget{Enum: "Color", Value: "RED"}.Path()
		Expect([]string{typeName, field, argument}).Should(Equal([]string{"Color", "RED", ""}))
	})
})
