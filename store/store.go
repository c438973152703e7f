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

// Package store keeps snapshots of schemas and change lists. Entries are append-only and ordered by
// an index.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/botobag/schemawatch/graphql"
)

// EntryID identifies an entry, such as "sch-20240131-235959".
type EntryID string

// IDLayout is the time layout used in entry ids.
const IDLayout = "20060102-150405"

// NewEntryID returns the id for an entry created at t.
func NewEntryID(prefix string, t time.Time) EntryID {
	return EntryID(fmt.Sprintf("%s-%s", prefix, t.Format(IDLayout)))
}

// Store is an append-only sequence of JSON payloads.
type Store interface {
	// Entries returns the ids of all entries, oldest first.
	Entries(ctx context.Context) ([]EntryID, error)

	// Load returns the payload of the given entry.
	Load(ctx context.Context, id EntryID) ([]byte, error)

	// LoadLast returns the payload of the newest entry. The boolean is false if the store is empty.
	LoadLast(ctx context.Context) ([]byte, bool, error)

	// Save appends payload as a new entry.
	Save(ctx context.Context, payload []byte) (EntryID, error)
}

// Logical stores
const (
	SchemasPrefix = "sch"
	SchemasIndex  = "schemas"
	ChangesPrefix = "ch"
	ChangesIndex  = "changes"
)

func storeError(op graphql.Op, err error, format string, args ...interface{}) error {
	arguments := []interface{}{op, graphql.ErrKindStore}
	if err != nil {
		arguments = append(arguments, err)
	}
	return graphql.NewError(fmt.Sprintf(format, args...), arguments...)
}

// loadLast implements Store.LoadLast on top of Entries and Load.
func loadLast(ctx context.Context, s Store) ([]byte, bool, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(entries) == 0 {
		return nil, false, nil
	}
	payload, err := s.Load(ctx, entries[len(entries)-1])
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}
