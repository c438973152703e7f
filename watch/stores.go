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

package watch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/botobag/schemawatch/config"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/store"
)

// Stores holds the two logical snapshot stores.
type Stores struct {
	Schemas store.Store
	Changes store.Store

	close func() error
}

// Close releases the backend.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores opens the snapshot stores of the backend selected in cfg.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	const op graphql.Op = "watch.OpenStores"

	switch cfg.Store.Backend {
	case config.BackendJSON:
		dataDir := cfg.DataDir()
		return &Stores{
			Schemas: store.NewJSONStore(store.SchemasPrefix, store.SchemasIndex, cfg.Store.RemoteURL, dataDir),
			Changes: store.NewJSONStore(store.ChangesPrefix, store.ChangesIndex, cfg.Store.RemoteURL, dataDir),
		}, nil

	case config.BackendSQLite:
		path := cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, graphql.NewError("cannot create directory for "+path, op, graphql.ErrKindStore, err)
		}
		db, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Schemas: db.Store(store.SchemasPrefix),
			Changes: db.Store(store.ChangesPrefix),
			close:   db.Close,
		}, nil
	}

	return nil, graphql.NewError("unknown store backend "+cfg.Store.Backend, op)
}
