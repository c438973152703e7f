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

package testutil

import (
	"github.com/botobag/schemawatch/graphql"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// ErrorFieldsMatcher adds the expectation on one field of graphql.Error.
type ErrorFieldsMatcher func(gstruct.Fields)

// MessageEqual expects the message to be s.
func MessageEqual(s string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Message"] = gomega.Equal(s)
	}
}

// MessageContainSubstring expects the message to contain every one of substrings.
func MessageContainSubstring(substrings ...string) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		matchers := make([]types.GomegaMatcher, len(substrings))
		for i, s := range substrings {
			matchers[i] = gomega.ContainSubstring(s)
		}
		fields["Message"] = gomega.And(matchers...)
	}
}

// LocationEqual expects location to be the only location.
func LocationEqual(location graphql.ErrorLocation) ErrorFieldsMatcher {
	return LocationsEqual(location)
}

// LocationsEqual expects exactly locations, in order.
func LocationsEqual(locations ...graphql.ErrorLocation) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Locations"] = gomega.Equal(locations)
	}
}

// KindIs expects the error kind.
func KindIs(errKind graphql.ErrKind) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Kind"] = gomega.Equal(errKind)
	}
}

// OpIs expects the failing operation.
func OpIs(op graphql.Op) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Op"] = gomega.Equal(op)
	}
}

// CauseMatches expects the wrapped error to satisfy matcher.
func CauseMatches(matcher types.GomegaMatcher) ErrorFieldsMatcher {
	return func(fields gstruct.Fields) {
		fields["Err"] = matcher
	}
}

// MatchGraphQLError matches a *graphql.Error on the given fields and ignores the others.
//
//	Expect(err).Should(MatchGraphQLError(
//		OpIs("schema.Normalize"),
//		KindIs(graphql.ErrKindDuplicateDefinition),
//		MessageContainSubstring(`"Shop"`),
//	))
func MatchGraphQLError(matchers ...ErrorFieldsMatcher) types.GomegaMatcher {
	fields := gstruct.Fields{}
	for _, matcher := range matchers {
		matcher(fields)
	}
	return gstruct.PointTo(gstruct.MatchFields(gstruct.IgnoreExtras, fields))
}
