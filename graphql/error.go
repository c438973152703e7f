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

package graphql

import (
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"

	"github.com/botobag/schemawatch/graphql/ast"
	"github.com/botobag/schemawatch/graphql/token"
)

// Op describes an operation, usually as the package and method, such as "schema.Normalize".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther                ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindSyntax                              // Represent a syntax error in the GraphQL source.
	ErrKindUnknownDefinition                   // A top-level definition kind that is not modeled.
	ErrKindUnknownValue                        // A value node kind that cannot be printed.
	ErrKindInvalidValue                        // A value literal that cannot be represented.
	ErrKindMalformedDeprecation                // Deprecation phrase present without a version.
	ErrKindInconsistentFact                    // A deprecation fact refers to a missing declaration.
	ErrKindDuplicateDefinition                 // Two top-level definitions share the same name.
	ErrKindDownload                            // Schema source returned an unacceptable response.
	ErrKindStore                               // Snapshot store failed to read or write an entry.
	ErrKindInternal                            // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindUnknownDefinition:
		return "unknown definition"
	case ErrKindUnknownValue:
		return "unknown value"
	case ErrKindInvalidValue:
		return "invalid value"
	case ErrKindMalformedDeprecation:
		return "malformed deprecation annotation"
	case ErrKindInconsistentFact:
		return "inconsistent deprecation fact"
	case ErrKindDuplicateDefinition:
		return "duplicate definition"
	case ErrKindDownload:
		return "download error"
	case ErrKindStore:
		return "store error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorLocation contains a line number and a column number to point out the beginning of an
// associated syntax element.
type ErrorLocation struct {
	// Both line and column are positive numbers starting from 1
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. If "locations" is not given in the
// arguments to NewError, NewError will retrieve one from the underlying error (if provided) that
// implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorWithASTNodes is a utility base which implements ErrorWithLocations by querying location
// information from ast.Node's within the given Source.
type ErrorWithASTNodes struct {
	Source *token.Source
	Nodes  []ast.Node
}

var _ ErrorWithLocations = ErrorWithASTNodes{}

// Locations implements ErrorWithLocations.
func (err ErrorWithASTNodes) Locations() []ErrorLocation {
	if err.Source == nil || len(err.Nodes) == 0 {
		return nil
	}

	locations := make([]ErrorLocation, 0, len(err.Nodes))
	for _, node := range err.Nodes {
		first := node.TokenRange().First
		if first == nil {
			continue
		}
		info := err.Source.LocationInfoOf(first.Location)
		locations = append(locations, ErrorLocation{
			Line:   info.Line,
			Column: info.Column,
		})
	}
	return locations
}

// Error implements ErrorWithLocations so ErrorWithASTNodes can be passed to NewError.
func (err ErrorWithASTNodes) Error() string {
	return fmt.Sprintf("%d AST node(s)", len(err.Nodes))
}

// An Error describes an error found while parsing a schema document, deriving the canonical schema
// from it, or fetching and storing the schema and its snapshots.
//
// You can build an Error by wrapping an error value. Information (if unspecified in the arguments
// to NewError) in the error value will be propagated to the newly created Error. Each intermediate
// function will either pass through the error to its caller or could wrap the error with further
// information.
//
// It also includes Op and ErrKind which will show when printing the error value. This makes it
// helpful for programmers.
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Locations is an array of { line, column } locations within the source GraphQL document which
	// correspond to this error.
	Locations []ErrorLocation

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg

		case ErrorWithASTNodes:
			e.Locations = arg.Locations()

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate locations and kind from underlying error when one is not provided in argument.
	prev := e.Err
	if prev != nil {
		if len(e.Locations) == 0 {
			switch errWithLocations := prev.(type) {
			case *Error:
				if len(errWithLocations.Locations) > 0 {
					e.Locations = make([]ErrorLocation, len(errWithLocations.Locations))
					copy(e.Locations, errWithLocations.Locations)
				}
			case ErrorWithLocations:
				e.Locations = errWithLocations.Locations()
			}
		}

		// Pull kind from underlying error.
		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// IsKind returns true if err is an *Error (possibly wrapped by other *Error's) of the given kind.
func IsKind(err error, kind ErrKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

// Unwrap returns the underlying error so errors.Is and errors.As can look through an Error.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	// If the previous error was also one of ours. Suppress duplications so the message won't contain
	// the same kind or location twice.
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if e.Locations != nil {
		// Don't print location if the next error already did.
		if nextErr == nil || !reflect.DeepEqual(nextErr.Locations, e.Locations) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			b.WriteString(fmt.Sprintf("%+v", e.Locations))
		}
	}

	if e.Kind != ErrKindOther {
		// Don't print kind if the next error has the same kind as ours.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent on new line if we are cascading non-empty Error.
			pad(":\n  ")
			prev.printError(b, e)
		} else if _, ok := e.Err.(ErrorWithASTNodes); !ok {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}
