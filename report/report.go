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

// Package report renders the deprecations of a schema as an HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/botobag/schemawatch/deprecation"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/schema"
)

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// DefaultTitle is the title of a page without one.
const DefaultTitle = "GraphQL schema deprecations"

// Entry describes one deprecated element.
type Entry struct {
	// ID is the anchor of the entry.
	ID string

	// Kind is the kind of the element, such as "object field".
	Kind string

	// Name is the path of the element, such as "Shop.products(first)".
	Name string

	Version string

	// Message is the text announcing the removal.
	Message string

	// Signature is the type of fields and arguments.
	Signature string

	// Default is the default value of arguments and input fields in JSON.
	Default string

	Description string
}

// Page is the data of the report.
type Page struct {
	Title     string
	Generated time.Time
	Entries   []Entry
}

// Entries looks up the record of every fact in s. The entries are in the order of facts.
func Entries(s schema.Schema, facts []deprecation.Fact) ([]Entry, error) {
	entries := make([]Entry, 0, len(facts))
	for _, fact := range facts {
		entry, err := newEntry(s, fact)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func newEntry(s schema.Schema, fact deprecation.Fact) (Entry, error) {
	target := fact.Target
	typeName, fieldName, argName := target.Path()

	entry := Entry{
		ID:      target.ID(),
		Kind:    target.Kind(),
		Name:    typeName,
		Version: fact.Version,
		Message: fact.Message,
	}

	missing := func() (Entry, error) {
		return Entry{}, graphql.NewError(
			fmt.Sprintf("%s %s is not declared in the schema", target.Kind(), target.ID()),
			graphql.Op("report.Entries"),
			graphql.ErrKindInconsistentFact,
		)
	}

	declaration := s[typeName]
	if declaration == nil {
		return missing()
	}

	switch target.(type) {
	case deprecation.ObjectFieldTarget, deprecation.InputFieldTarget:
		field := declaration.Fields[fieldName]
		if field == nil {
			return missing()
		}
		entry.Name = typeName + "." + fieldName
		entry.Signature = field.Type
		entry.Description = deref(field.Description)
		if !declaration.Kind.HasArguments() {
			entry.Default = formatDefault(field.Default)
		}

	case deprecation.ObjectFieldArgumentTarget:
		field := declaration.Fields[fieldName]
		if field == nil || field.Arguments[argName] == nil {
			return missing()
		}
		arg := field.Arguments[argName]
		entry.Name = fmt.Sprintf("%s.%s(%s)", typeName, fieldName, argName)
		entry.Signature = arg.Type
		entry.Description = deref(arg.Description)
		entry.Default = formatDefault(arg.Default)

	case deprecation.EnumValueTarget:
		value := declaration.Values[fieldName]
		if value == nil {
			return missing()
		}
		entry.Name = typeName + "." + fieldName
		entry.Description = deref(value.Description)

	default:
		entry.Description = deref(declaration.Description)
	}

	return entry, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDefault(v interface{}) string {
	if v == nil {
		return ""
	}
	return schema.FormatValue(v)
}

// Render writes the page to w.
func Render(w io.Writer, page Page) error {
	if len(page.Title) == 0 {
		page.Title = DefaultTitle
	}
	if err := pageTemplate.Execute(w, page); err != nil {
		return graphql.NewError("cannot render report", graphql.Op("report.Render"), err)
	}
	return nil
}

// WriteFile renders the report of s and facts into the file at path, creating its directory if
// needed.
func WriteFile(path string, s schema.Schema, facts []deprecation.Fact, generated time.Time) error {
	const op = graphql.Op("report.WriteFile")

	entries, err := Entries(s, facts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return graphql.NewError("cannot create report directory", op, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return graphql.NewError("cannot create report", op, err)
	}

	if err := Render(f, Page{Generated: generated, Entries: entries}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return graphql.NewError("cannot write report", op, err)
	}
	return nil
}
