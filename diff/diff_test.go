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

package diff_test

import (
	"github.com/botobag/schemawatch/deprecation"
	"github.com/botobag/schemawatch/diff"
	"github.com/botobag/schemawatch/graphql/parser"
	"github.com/botobag/schemawatch/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func normalize(body string) schema.Schema {
	doc := parser.MustParse(body)
	facts, err := deprecation.Extract(doc)
	Expect(err).ShouldNot(HaveOccurred())
	s, err := schema.Normalize(doc, facts)
	Expect(err).ShouldNot(HaveOccurred())
	return s
}

func stringPtr(s string) *string {
	return &s
}

const baseSchema = `
interface Node { id: ID! }

type Shop implements Node {
  id: ID!
  name: String!
  products(first: Int, after: String): [Product!]!
}

type Product implements Node {
  id: ID!
  price(currency: String): Float
}

input ProductFilter {
  search: String
  "Removed in Saleor 3.1"
  legacy: Boolean
}

enum Sort { NAME PRICE }

union SearchResult = Shop | Product

scalar Date
`

var _ = Describe("Diff", func() {
	It("finds nothing between a schema and itself", func() {
		s := normalize(baseSchema)
		Expect(diff.Diff(s, s)).Should(BeEmpty())
		Expect(diff.Diff(s, normalize(baseSchema))).Should(BeEmpty())
	})

	It("reports a field that becomes deprecated", func() {
		old := schema.Schema{
			"Foo": {
				Kind: schema.KindObject,
				Fields: map[string]*schema.Field{
					"bar": {Type: "String"},
				},
			},
		}
		current := schema.Schema{
			"Foo": {
				Kind: schema.KindObject,
				Fields: map[string]*schema.Field{
					"bar": {Type: "String", Deprecated: stringPtr("3.5")},
				},
			},
		}
		changes := diff.Diff(old, current)
		Expect(changes).Should(Equal([]diff.Change{
			{Kind: diff.KindFieldDeprecated, Type: "Foo", Field: "bar", Version: "3.5"},
		}))

		data, err := diff.Marshal(changes)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(data).Should(MatchJSON(`[{"diff":"field_deprecated","type":"Foo","field":"bar","version":"3.5"}]`))
	})

	It("reports only the deletion of a deprecated field", func() {
		old := normalize(`input In { a: Int, "Removed in Saleor 3.1" b: Int }`)
		current := normalize(`input In { a: Int }`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindFieldDeleted, Type: "In", Field: "b"},
		}))
	})

	It("reports only the addition of a field that is deprecated from the start", func() {
		old := normalize(`type Foo { a: Int }`)
		current := normalize(`type Foo { a: Int, "Removed in Saleor 3.9" b(x: Int @deprecated(reason: "Removed in Saleor 3.9")): Int }`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindFieldNew, Type: "Foo", Field: "b"},
		}))
	})

	It("reports a change of the deprecation version but not its removal", func() {
		old := normalize(`
"Removed in Saleor 3.1" scalar A
"Removed in Saleor 3.1" scalar B
scalar C`)
		current := normalize(`
"Removed in Saleor 3.2" scalar A
scalar B
"Removed in Saleor 3.1" scalar C`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindTypeDeprecated, Type: "A", Version: "3.2"},
			{Kind: diff.KindTypeDeprecated, Type: "C", Version: "3.1"},
		}))
	})

	It("orders changes by category", func() {
		current := normalize(baseSchema + "\ntype Zebra { stripes: Int }\n")
		current["Shop"].Fields["address"] = &schema.Field{Type: "String", Arguments: map[string]*schema.Argument{}}
		current["Product"].Fields["price"].Arguments["channel"] = &schema.Argument{Type: "String"}
		current["Product"].Fields["price"].Deprecated = stringPtr("3.4")
		current["Sort"].Values["RANK"] = &schema.EnumValue{}
		current["SearchResult"].Types = []string{"Shop", "Product", "Zebra"}
		delete(current, "Date")

		Expect(diff.Diff(normalize(baseSchema), current)).Should(Equal([]diff.Change{
			{Kind: diff.KindTypeNew, Type: "Zebra"},
			{Kind: diff.KindTypeDeleted, Type: "Date"},
			{Kind: diff.KindFieldNew, Type: "Shop", Field: "address"},
			{Kind: diff.KindFieldDeprecated, Type: "Product", Field: "price", Version: "3.4"},
			{Kind: diff.KindArgumentNew, Type: "Product", Field: "price", Argument: "channel"},
			{Kind: diff.KindEnumValueNew, Type: "Sort", Value: "RANK"},
			{Kind: diff.KindUnionTypeNew, Type: "SearchResult", Member: "Zebra"},
		}))
	})

	It("groups additions, deletions and deprecations within a category", func() {
		old := normalize(`
type A { x: Int, y: Int }
type B { x: Int }`)
		current := normalize(`
type A { "Removed in Saleor 3.3" x: Int, z: Int }
type B { w: Int }`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindFieldNew, Type: "A", Field: "z"},
			{Kind: diff.KindFieldNew, Type: "B", Field: "w"},
			{Kind: diff.KindFieldDeleted, Type: "A", Field: "y"},
			{Kind: diff.KindFieldDeleted, Type: "B", Field: "x"},
			{Kind: diff.KindFieldDeprecated, Type: "A", Field: "x", Version: "3.3"},
		}))
	})

	It("diffs arguments of matched fields only", func() {
		old := normalize(`
interface I { f(a: Int, b: Int): Int, gone(x: Int): Int }
input In { f: Int }`)
		current := normalize(`
interface I { f(a: Int @deprecated(reason: "Removed in Saleor 3.7"), c: Int): Int, added(y: Int): Int }
input In { f: Int }`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindFieldNew, Type: "I", Field: "added"},
			{Kind: diff.KindFieldDeleted, Type: "I", Field: "gone"},
			{Kind: diff.KindArgumentNew, Type: "I", Field: "f", Argument: "c"},
			{Kind: diff.KindArgumentDeleted, Type: "I", Field: "f", Argument: "b"},
			{Kind: diff.KindArgumentDeprecated, Type: "I", Field: "f", Argument: "a", Version: "3.7"},
		}))
	})

	It("diffs enum values and union members", func() {
		old := normalize(`
enum E { A B C }
union U = X | Y`)
		current := normalize(`
enum E { A @deprecated(reason: "Removed in Saleor 3.8") C D }
union U = Y | Z`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindEnumValueNew, Type: "E", Value: "D"},
			{Kind: diff.KindEnumValueDeleted, Type: "E", Value: "B"},
			{Kind: diff.KindEnumValueDeprecated, Type: "E", Value: "A", Version: "3.8"},
			{Kind: diff.KindUnionTypeNew, Type: "U", Member: "Z"},
			{Kind: diff.KindUnionTypeDeleted, Type: "U", Member: "X"},
		}))
	})

	// A declaration whose kind changes is treated as a different declaration: the name shows up as
	// both deleted and new and nothing inside it is compared. There is no dedicated record for a
	// change of kind.
	It("treats a change of kind as a deletion plus an addition", func() {
		old := normalize(`type Money { amount: Float }`)
		current := normalize(`"Removed in Saleor 3.1" input Money { amount: Float, currency: String }`)
		Expect(diff.Diff(old, current)).Should(Equal([]diff.Change{
			{Kind: diff.KindTypeNew, Type: "Money"},
			{Kind: diff.KindTypeDeleted, Type: "Money"},
		}))
	})
})
