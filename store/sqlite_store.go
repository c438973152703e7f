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

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"time"

	"github.com/botobag/schemawatch/graphql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteDB is a SQLite database holding any number of logical stores.
type SQLiteDB struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	const op = graphql.Op("store.OpenSQLite")

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError(op, err, "cannot open %s", path)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, storeError(op, err, "cannot apply %q", pragma)
		}
	}

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		conn.Close()
		return nil, storeError(op, err, "cannot create tables")
	}

	return &SQLiteDB{conn: conn, path: path}, nil
}

// Close closes the database.
func (db *SQLiteDB) Close() error {
	return db.conn.Close()
}

// Path returns the path of the database file.
func (db *SQLiteDB) Path() string {
	return db.path
}

// Store returns the logical store whose entries are named after prefix.
func (db *SQLiteDB) Store(prefix string) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		prefix: prefix,
	}
}

// SQLiteStore is a logical store in a SQLiteDB. The order of insertion is the index.
type SQLiteStore struct {
	db     *SQLiteDB
	prefix string

	// Now returns the creation time of new entries. nil means time.Now.
	Now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// Entries implements Store.
func (s *SQLiteStore) Entries(ctx context.Context) ([]EntryID, error) {
	const op = graphql.Op("store.SQLiteStore.Entries")

	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id FROM entries WHERE prefix = ? ORDER BY seq`, s.prefix)
	if err != nil {
		return nil, storeError(op, err, "cannot list entries")
	}
	defer rows.Close()

	var ids []EntryID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeError(op, err, "cannot list entries")
		}
		ids = append(ids, EntryID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err, "cannot list entries")
	}
	return ids, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, id EntryID) ([]byte, error) {
	const op = graphql.Op("store.SQLiteStore.Load")

	var payload []byte
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT payload FROM entries WHERE prefix = ? AND id = ?`, s.prefix, string(id)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storeError(op, nil, "entry %s not found", id)
	} else if err != nil {
		return nil, storeError(op, err, "cannot load entry %s", id)
	}
	return payload, nil
}

// LoadLast implements Store.
func (s *SQLiteStore) LoadLast(ctx context.Context) ([]byte, bool, error) {
	const op = graphql.Op("store.SQLiteStore.LoadLast")

	var payload []byte
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT payload FROM entries WHERE prefix = ? ORDER BY seq DESC LIMIT 1`, s.prefix).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, storeError(op, err, "cannot load last entry")
	}
	return payload, true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, payload []byte) (EntryID, error) {
	const op = graphql.Op("store.SQLiteStore.Save")

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	createdAt := now()
	id := NewEntryID(s.prefix, createdAt)

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", storeError(op, err, "cannot begin transaction")
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM entries WHERE id = ?)`, string(id)).Scan(&exists); err != nil {
		return "", storeError(op, err, "cannot save entry %s", id)
	}
	if exists {
		return "", storeError(op, nil, "entry %s already exists", id)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO entries (prefix, seq, id, created_at, payload)
VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM entries WHERE prefix = ?), ?, ?, ?)`,
		s.prefix, s.prefix, string(id), createdAt.Unix(), payload); err != nil {
		return "", storeError(op, err, "cannot save entry %s", id)
	}

	if err := tx.Commit(); err != nil {
		return "", storeError(op, err, "cannot save entry %s", id)
	}
	return id, nil
}
