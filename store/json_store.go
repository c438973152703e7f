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
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/botobag/schemawatch/graphql"
	jsoniter "github.com/json-iterator/go"
)

var indexAPI = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// JSONStore keeps every entry in its own JSON file next to an index file listing the entry ids.
//
// When RemoteURL is set, the index and the entries are read from there (a published copy of the
// data directory) and a missing index means an empty store. Writes always go to DataDir, which
// receives the new entry and the updated index.
type JSONStore struct {
	Prefix    string
	IndexName string
	RemoteURL string
	DataDir   string

	// Client fetches remote files. nil means http.DefaultClient.
	Client *http.Client

	// Now returns the creation time of new entries. nil means time.Now.
	Now func() time.Time

	mu     sync.Mutex
	index  []EntryID
	loaded bool
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSONStore.
func NewJSONStore(prefix string, indexName string, remoteURL string, dataDir string) *JSONStore {
	return &JSONStore{
		Prefix:    prefix,
		IndexName: indexName,
		RemoteURL: strings.TrimRight(remoteURL, "/"),
		DataDir:   dataDir,
	}
}

// read returns the contents of the named file from the remote URL or the data dir. The boolean is
// false if the file does not exist.
func (s *JSONStore) read(ctx context.Context, op graphql.Op, name string) ([]byte, bool, error) {
	if len(s.RemoteURL) > 0 {
		return s.fetch(ctx, op, strings.TrimRight(s.RemoteURL, "/")+"/"+name)
	}

	data, err := os.ReadFile(filepath.Join(s.DataDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, storeError(op, err, "cannot read %s", name)
	}
	return data, true, nil
}

func (s *JSONStore) fetch(ctx context.Context, op graphql.Op, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, storeError(op, err, "invalid URL %s", url)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, false, storeError(op, err, "cannot fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, storeError(op, nil, "cannot fetch %s: server returned %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, storeError(op, err, "cannot fetch %s", url)
	}
	return data, true, nil
}

// loadIndex reads the index on first use. It must be called with s.mu held.
func (s *JSONStore) loadIndex(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	const op = graphql.Op("store.JSONStore.Entries")
	data, found, err := s.read(ctx, op, s.IndexName+".json")
	if err != nil {
		return err
	}

	var index []EntryID
	if found {
		if err := indexAPI.Unmarshal(data, &index); err != nil {
			return storeError(op, err, "malformed index %s.json", s.IndexName)
		}
	}

	s.index = index
	s.loaded = true
	return nil
}

// Entries implements Store.
func (s *JSONStore) Entries(ctx context.Context) ([]EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadIndex(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.index), nil
}

// Load implements Store. Entries written by Save in this process are read from the data dir even
// if the store reads from a remote URL.
func (s *JSONStore) Load(ctx context.Context, id EntryID) ([]byte, error) {
	const op = graphql.Op("store.JSONStore.Load")
	name := string(id) + ".json"

	data, err := os.ReadFile(filepath.Join(s.DataDir, name))
	if err == nil {
		return data, nil
	}

	data, found, err := s.read(ctx, op, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, storeError(op, nil, "entry %s not found", id)
	}
	return data, nil
}

// LoadLast implements Store.
func (s *JSONStore) LoadLast(ctx context.Context) ([]byte, bool, error) {
	return loadLast(ctx, s)
}

// Save implements Store.
func (s *JSONStore) Save(ctx context.Context, payload []byte) (EntryID, error) {
	const op = graphql.Op("store.JSONStore.Save")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadIndex(ctx); err != nil {
		return "", err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	id := NewEntryID(s.Prefix, now())
	if slices.Contains(s.index, id) {
		return "", storeError(op, nil, "entry %s already exists", id)
	}

	if err := os.MkdirAll(s.DataDir, 0755); err != nil {
		return "", storeError(op, err, "cannot create data directory")
	}
	if err := os.WriteFile(filepath.Join(s.DataDir, string(id)+".json"), payload, 0644); err != nil {
		return "", storeError(op, err, "cannot write entry %s", id)
	}

	index := append(slices.Clone(s.index), id)
	data, err := indexAPI.Marshal(index)
	if err != nil {
		return "", storeError(op, err, "cannot encode index")
	}
	if err := os.WriteFile(filepath.Join(s.DataDir, s.IndexName+".json"), data, 0644); err != nil {
		return "", storeError(op, err, "cannot write index %s.json", s.IndexName)
	}

	s.index = index
	return id, nil
}
