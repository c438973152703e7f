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

package schema_test

import (
	"encoding/json"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/parser"
	"github.com/botobag/schemawatch/graphql/token"
	"github.com/botobag/schemawatch/internal/testutil"
	"github.com/botobag/schemawatch/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

const smallSchema = `
type Foo {
  "Bars."
  bars(first: Int = 10): [String!]!
}
enum Order { ASC }
input In { x: Float = 1.0 }
union U = Foo
`

const smallSnapshot = `{
  "Foo": {
    "type": "object",
    "interfaces": [],
    "description": null,
    "deprecated": null,
    "fields": {
      "bars": {
        "type": "[String!]!",
        "description": "Bars.",
        "deprecated": null,
        "arguments": {
          "first": {
            "type": "Int",
            "description": null,
            "deprecated": null,
            "default": 10
          }
        }
      }
    }
  },
  "In": {
    "type": "input",
    "description": null,
    "deprecated": null,
    "fields": {
      "x": {
        "type": "Float",
        "description": null,
        "deprecated": null,
        "default": 1.0
      }
    }
  },
  "Order": {
    "type": "enum",
    "description": null,
    "deprecated": null,
    "values": {
      "ASC": {
        "description": null,
        "deprecated": null
      }
    }
  },
  "U": {
    "type": "union",
    "description": null,
    "deprecated": null,
    "types": [
      "Foo"
    ]
  }
}`

var _ = Describe("Marshal", func() {
	It("writes the snapshot format", func() {
		data, err := schema.Marshal(normalize(smallSchema))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(data)).Should(Equal(smallSnapshot))
	})

	It("writes an empty schema", func() {
		data, err := schema.Marshal(schema.Schema{})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(data)).Should(Equal("{}"))
	})

	It("is valid JSON", func() {
		data, err := schema.Marshal(normalize(shopSchema))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(json.Valid(data)).Should(BeTrue())
	})
})

var _ = Describe("Unmarshal", func() {
	It("reads back what Marshal writes", func() {
		for _, body := range []string{smallSchema, shopSchema} {
			s := normalize(body)
			data, err := schema.Marshal(s)
			Expect(err).ShouldNot(HaveOccurred())

			decoded, err := schema.Unmarshal(data)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(decoded).Should(Equal(s))
		}
	})

	It("keeps integers apart from floats", func() {
		s, err := schema.Unmarshal([]byte(smallSnapshot))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s["Foo"].Fields["bars"].Arguments["first"].Default).Should(Equal(int64(10)))
		Expect(s["In"].Fields["x"].Default).Should(Equal(float64(1)))
	})

	It("rejects malformed JSON", func() {
		_, err := schema.Unmarshal([]byte(`{"Foo": `))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindStore),
			testutil.OpIs("schema.Unmarshal"),
		))
	})

	It("rejects unknown declaration types", func() {
		_, err := schema.Unmarshal([]byte(`{"Foo": {"type": "directive"}}`))
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindUnknownDefinition),
			testutil.MessageEqual(`declaration "Foo" has unknown type "directive"`),
		))
	})
})

var _ = Describe("Value", func() {
	DescribeTable("converts literals",
		func(literal string, expected interface{}) {
			node, err := parser.ParseValue(token.NewSource(&token.SourceConfig{
				Body: token.SourceBody(literal),
			}))
			Expect(err).ShouldNot(HaveOccurred())

			value, err := schema.Value(node)
			Expect(err).ShouldNot(HaveOccurred())
			if expected == nil {
				Expect(value).Should(BeNil())
			} else {
				Expect(value).Should(Equal(expected))
			}
		},
		Entry("int", "-42", int64(-42)),
		Entry("big int", "123456789012345678901234567890", json.Number("123456789012345678901234567890")),
		Entry("float", "0.25", 0.25),
		Entry("string", `"a\nb"`, "a\nb"),
		Entry("block string", `"""  text"""`, "  text"),
		Entry("boolean", "true", true),
		Entry("null", "null", nil),
		Entry("enum", "MONDAY", "ENUM.MONDAY"),
		Entry("variable", "$first", "$first"),
		Entry("list", "[1, [TWO], null]", []interface{}{int64(1), []interface{}{"ENUM.TWO"}, nil}),
		Entry("object", `{b: 1, a: {c: "x"}}`, map[string]interface{}{
			"a": map[string]interface{}{"c": "x"},
			"b": int64(1),
		}),
	)

	It("rejects floats out of range", func() {
		node, err := parser.ParseValue(token.NewSource(&token.SourceConfig{
			Body: token.SourceBody("1e400"),
		}))
		Expect(err).ShouldNot(HaveOccurred())

		_, err = schema.Value(node)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindInvalidValue),
			testutil.MessageEqual("invalid float literal 1e400"),
		))
	})

	It("rejects unknown value nodes", func() {
		type customValue struct {
			ast.IntValue
		}
		_, err := schema.Value(customValue{})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindUnknownValue),
			testutil.MessageContainSubstring("unknown value node"),
		))
	})
})

var _ = Describe("FormatValue", func() {
	It("writes one line", func() {
		Expect(schema.FormatValue(map[string]interface{}{
			"b": []interface{}{int64(1), 2.0, nil},
			"a": "ENUM.X",
		})).Should(Equal(`{"a":"ENUM.X","b":[1,2.0,null]}`))
	})
})

var _ = DescribeTable("FormatFloat",
	func(f float64, expected string) {
		Expect(schema.FormatFloat(f)).Should(Equal(expected))
	},
	Entry("integral", 1.0, "1.0"),
	Entry("negative integral", -3.0, "-3.0"),
	Entry("fraction", 0.5, "0.5"),
	Entry("zero", 0.0, "0.0"),
	Entry("small", 0.00001, "1e-05"),
	Entry("large", 1e20, "1e+20"),
)
