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

// Package diff compares two canonical schemas.
package diff

import (
	"slices"

	"github.com/botobag/schemawatch/schema"
)

type differ struct {
	old     schema.Schema
	current schema.Schema
	changes []Change
}

// Diff returns the changes from old to current. The changes are grouped by category in the
// following order: types, fields, field arguments, enum values and union members. Within a
// category, additions come first, then deletions, then deprecations, each in ascending name order
// (union members in the order as written).
//
// A declaration is only compared with the declaration of the same name and kind. If a name changes
// its kind, it is reported as a deleted type plus a new type and its members are not compared.
//
// A deprecation is reported when an element that exists on both sides gets a version it didn't
// have before. An element that is new and already deprecated is only reported as new. Dropping a
// deprecation is not reported.
func Diff(old schema.Schema, current schema.Schema) []Change {
	d := &differ{
		old:     old,
		current: current,
	}

	d.types()
	d.fields()
	d.arguments()
	d.enumValues()
	d.unionTypes()

	return d.changes
}

func (d *differ) add(change Change) {
	d.changes = append(d.changes, change)
}

// matched returns the declaration in old with the same name and kind as the given declaration in
// current, or nil.
func (d *differ) matched(name string, declaration *schema.Declaration) *schema.Declaration {
	old := d.old[name]
	if old == nil || old.Kind != declaration.Kind {
		return nil
	}
	return old
}

// newVersion returns the version in current if it is set and differs from the one in old.
func newVersion(old *string, current *string) (string, bool) {
	if current == nil || len(*current) == 0 {
		return "", false
	}
	if old != nil && *old == *current {
		return "", false
	}
	return *current, true
}

func (d *differ) types() {
	for _, name := range d.current.Names() {
		if d.matched(name, d.current[name]) == nil {
			d.add(Change{Kind: KindTypeNew, Type: name})
		}
	}

	for _, name := range d.old.Names() {
		current := d.current[name]
		if current == nil || current.Kind != d.old[name].Kind {
			d.add(Change{Kind: KindTypeDeleted, Type: name})
		}
	}

	for _, name := range d.current.Names() {
		current := d.current[name]
		old := d.matched(name, current)
		if old == nil {
			continue
		}
		if version, ok := newVersion(old.Deprecated, current.Deprecated); ok {
			d.add(Change{Kind: KindTypeDeprecated, Type: name, Version: version})
		}
	}
}

// pair is a declaration present in both schemas with the same kind.
type pair struct {
	name    string
	old     *schema.Declaration
	current *schema.Declaration
}

// pairs returns the matched declarations for which accept returns true in ascending name order.
func (d *differ) pairs(accept func(schema.Kind) bool) []pair {
	var result []pair
	for _, name := range d.current.Names() {
		current := d.current[name]
		if !accept(current.Kind) {
			continue
		}
		if old := d.matched(name, current); old != nil {
			result = append(result, pair{name, old, current})
		}
	}
	return result
}

func (d *differ) fields() {
	pairs := d.pairs(schema.Kind.HasFields)

	for _, p := range pairs {
		for _, field := range p.current.FieldNames() {
			if _, exists := p.old.Fields[field]; !exists {
				d.add(Change{Kind: KindFieldNew, Type: p.name, Field: field})
			}
		}
	}

	for _, p := range pairs {
		for _, field := range p.old.FieldNames() {
			if _, exists := p.current.Fields[field]; !exists {
				d.add(Change{Kind: KindFieldDeleted, Type: p.name, Field: field})
			}
		}
	}

	for _, p := range pairs {
		for _, field := range p.current.FieldNames() {
			old := p.old.Fields[field]
			if old == nil {
				continue
			}
			if version, ok := newVersion(old.Deprecated, p.current.Fields[field].Deprecated); ok {
				d.add(Change{Kind: KindFieldDeprecated, Type: p.name, Field: field, Version: version})
			}
		}
	}
}

// fieldPair is a field present in both schemas.
type fieldPair struct {
	typeName string
	name     string
	old      *schema.Field
	current  *schema.Field
}

func (d *differ) arguments() {
	var fields []fieldPair
	for _, p := range d.pairs(schema.Kind.HasArguments) {
		for _, name := range p.current.FieldNames() {
			if old := p.old.Fields[name]; old != nil {
				fields = append(fields, fieldPair{p.name, name, old, p.current.Fields[name]})
			}
		}
	}

	for _, f := range fields {
		for _, arg := range f.current.ArgumentNames() {
			if _, exists := f.old.Arguments[arg]; !exists {
				d.add(Change{Kind: KindArgumentNew, Type: f.typeName, Field: f.name, Argument: arg})
			}
		}
	}

	for _, f := range fields {
		for _, arg := range f.old.ArgumentNames() {
			if _, exists := f.current.Arguments[arg]; !exists {
				d.add(Change{Kind: KindArgumentDeleted, Type: f.typeName, Field: f.name, Argument: arg})
			}
		}
	}

	for _, f := range fields {
		for _, arg := range f.current.ArgumentNames() {
			old := f.old.Arguments[arg]
			if old == nil {
				continue
			}
			if version, ok := newVersion(old.Deprecated, f.current.Arguments[arg].Deprecated); ok {
				d.add(Change{
					Kind:     KindArgumentDeprecated,
					Type:     f.typeName,
					Field:    f.name,
					Argument: arg,
					Version:  version,
				})
			}
		}
	}
}

func isEnum(kind schema.Kind) bool {
	return kind == schema.KindEnum
}

func isUnion(kind schema.Kind) bool {
	return kind == schema.KindUnion
}

func (d *differ) enumValues() {
	pairs := d.pairs(isEnum)

	for _, p := range pairs {
		for _, value := range p.current.ValueNames() {
			if _, exists := p.old.Values[value]; !exists {
				d.add(Change{Kind: KindEnumValueNew, Type: p.name, Value: value})
			}
		}
	}

	for _, p := range pairs {
		for _, value := range p.old.ValueNames() {
			if _, exists := p.current.Values[value]; !exists {
				d.add(Change{Kind: KindEnumValueDeleted, Type: p.name, Value: value})
			}
		}
	}

	for _, p := range pairs {
		for _, value := range p.current.ValueNames() {
			old := p.old.Values[value]
			if old == nil {
				continue
			}
			if version, ok := newVersion(old.Deprecated, p.current.Values[value].Deprecated); ok {
				d.add(Change{Kind: KindEnumValueDeprecated, Type: p.name, Value: value, Version: version})
			}
		}
	}
}

func (d *differ) unionTypes() {
	pairs := d.pairs(isUnion)

	for _, p := range pairs {
		for _, member := range p.current.Types {
			if !slices.Contains(p.old.Types, member) {
				d.add(Change{Kind: KindUnionTypeNew, Type: p.name, Member: member})
			}
		}
	}

	for _, p := range pairs {
		for _, member := range p.old.Types {
			if !slices.Contains(p.current.Types, member) {
				d.add(Change{Kind: KindUnionTypeDeleted, Type: p.name, Member: member})
			}
		}
	}
}
