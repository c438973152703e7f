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

package graphql_test

import (
	"errors"
	"io"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/parser"
	"github.com/botobag/schemawatch/graphql/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newError(message string, args ...interface{}) *graphql.Error {
	e, ok := graphql.NewError(message, args...).(*graphql.Error)
	Expect(ok).Should(BeTrue())
	return e
}

func expectOutputResult(e error, expected string) {
	Expect(e.Error()).Should(Equal(expected), e.Error())
}

type errWithLocations struct {
	locations []graphql.ErrorLocation
}

// Locations implements graphql.ErrorWithLocations.
func (e *errWithLocations) Locations() []graphql.ErrorLocation {
	return e.locations
}

// Error implements Go's error interface
func (e *errWithLocations) Error() string {
	return "error provided locations"
}

var (
	_ graphql.ErrorWithLocations = (*errWithLocations)(nil)
	_ error                      = (*errWithLocations)(nil)
)

var _ = Describe("Error", func() {
	var (
		mockLocation  graphql.ErrorLocation
		mockLocation2 graphql.ErrorLocation
	)

	BeforeEach(func() {
		mockLocation = graphql.ErrorLocation{
			Line:   1,
			Column: 3,
		}

		mockLocation2 = graphql.ErrorLocation{
			Line:   2,
			Column: 5,
		}
	})

	It("has a message", func() {
		e := newError("msg")
		Expect(e.Message).Should(Equal("msg"))
		expectOutputResult(e, "msg")
	})

	It("can include an underlying error", func() {
		underlyingErr := errors.New("hello")
		e := newError("msg", underlyingErr)
		Expect(e.Err).Should(Equal(underlyingErr))
		expectOutputResult(e, "msg: hello")
	})

	It("unwraps to the underlying error", func() {
		e := graphql.WrapErrorf(io.ErrUnexpectedEOF, "reading %s", "index")
		Expect(errors.Is(e, io.ErrUnexpectedEOF)).Should(BeTrue())

		var target *graphql.Error
		Expect(errors.As(e, &target)).Should(BeTrue())
		Expect(target.Message).Should(Equal("reading index"))
	})

	It("can include an op and kind", func() {
		const op graphql.Op = "schema.Normalize"
		e := newError("msg", op, graphql.ErrKindDuplicateDefinition)
		Expect(e.Op).Should(Equal(op))
		Expect(e.Kind).Should(Equal(graphql.ErrKindDuplicateDefinition))
		expectOutputResult(e, "schema.Normalize: msg: duplicate definition")
	})

	It("can include multiple locations", func() {
		e := newError("msg", []graphql.ErrorLocation{mockLocation, mockLocation2})
		expectOutputResult(e, "msg at [{Line:1 Column:3} {Line:2 Column:5}]")
	})

	It("pulls locations from underlying error", func() {
		locations := []graphql.ErrorLocation{
			mockLocation,
			mockLocation2,
		}
		e := newError("error with locations", &errWithLocations{
			locations: locations,
		})
		Expect(e.Locations).Should(Equal(locations))
	})

	It("pulls kind and locations from underlying graphql.Error", func() {
		inner := newError("inner", mockLocation, graphql.ErrKindMalformedDeprecation)
		outer := newError("outer", inner, graphql.Op("deprecation.Extract"))
		Expect(outer.Kind).Should(Equal(graphql.ErrKindMalformedDeprecation))
		Expect(outer.Locations).Should(Equal([]graphql.ErrorLocation{mockLocation}))
		Expect(graphql.IsKind(outer, graphql.ErrKindMalformedDeprecation)).Should(BeTrue())
		Expect(graphql.IsKind(outer, graphql.ErrKindSyntax)).Should(BeFalse())

		// Kind and location are printed once.
		expectOutputResult(outer, "deprecation.Extract: outer at [{Line:1 Column:3}]: malformed deprecation annotation:\n  inner")
	})

	It("computes locations from AST nodes", func() {
		source := token.NewSource(&token.SourceConfig{
			Body: token.SourceBody("\n  type Foo {\n    bar: Int\n  }"),
		})
		doc, err := parser.Parse(source)
		Expect(err).ShouldNot(HaveOccurred())

		e := newError("bad definition", graphql.ErrorWithASTNodes{
			Source: source,
			Nodes:  []ast.Node{doc.Definitions[0]},
		})
		Expect(e.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 2, Column: 3}}))
		expectOutputResult(e, "bad definition at [{Line:2 Column:3}]")
	})

	It("describes every kind", func() {
		kinds := []graphql.ErrKind{
			graphql.ErrKindOther,
			graphql.ErrKindSyntax,
			graphql.ErrKindUnknownDefinition,
			graphql.ErrKindUnknownValue,
			graphql.ErrKindInvalidValue,
			graphql.ErrKindMalformedDeprecation,
			graphql.ErrKindInconsistentFact,
			graphql.ErrKindDuplicateDefinition,
			graphql.ErrKindDownload,
			graphql.ErrKindStore,
			graphql.ErrKindInternal,
		}
		seen := map[string]bool{}
		for _, kind := range kinds {
			Expect(kind.String()).ShouldNot(Equal("unknown error kind"))
			seen[kind.String()] = true
		}
		Expect(seen).Should(HaveLen(len(kinds)))
	})

	It("rejects unknown argument types", func() {
		err := graphql.NewError("msg", 42)
		_, ok := err.(*graphql.Error)
		Expect(ok).Should(BeFalse())
	})
})

var _ = Describe("NewSyntaxError", func() {
	It("reports line and column of the location", func() {
		source := token.NewSource(&token.SourceConfig{
			Body: token.SourceBody("type\n  Foo"),
		})
		err := graphql.NewSyntaxError(source, source.LocationFromPos(7), "Unexpected Name \"Foo\"")
		e, ok := err.(*graphql.Error)
		Expect(ok).Should(BeTrue())
		Expect(e.Kind).Should(Equal(graphql.ErrKindSyntax))
		Expect(e.Message).Should(Equal("Syntax Error: Unexpected Name \"Foo\""))
		Expect(e.Locations).Should(Equal([]graphql.ErrorLocation{{Line: 2, Column: 3}}))
	})

	It("remembers the source name", func() {
		source := token.NewSource(&token.SourceConfig{
			Name: "schema-new.graphql",
			Body: token.SourceBody("type"),
		})
		err := graphql.NewSyntaxError(source, source.LocationFromPos(4), "Expected Name, found <EOF>")
		Expect(graphql.SourceNameOf(err)).Should(Equal("schema-new.graphql"))
		Expect(graphql.SourceNameOf(graphql.NewError("not a syntax error"))).Should(BeEmpty())
	})
})
