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

package watch_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/botobag/schemawatch/config"
	"github.com/botobag/schemawatch/diff"
	"github.com/botobag/schemawatch/download"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/internal/testutil"
	"github.com/botobag/schemawatch/store"
	"github.com/botobag/schemawatch/watch"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
)

const shopSchema = `
type Query {
  shop: Shop
}

type Shop {
  name: String
  domain: String
}
`

const deprecatedShopSchema = `
type Query {
  shop: Shop
}

type Shop {
  name: String
  domain: String @deprecated(reason: "Use domains instead. This field will be removed in Saleor 3.20.")
}
`

// schemaServer serves a schema document that tests can replace between runs.
type schemaServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
}

func newSchemaServer(body string) *schemaServer {
	s := &schemaServer{
		body:   body,
		status: http.StatusOK,
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(s.status)
		io.WriteString(w, s.body)
	}))
	return s
}

func (s *schemaServer) Set(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

func clock() func() time.Time {
	t := time.Date(2024, time.January, 31, 23, 59, 58, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

var _ = Describe("Runner", func() {
	var (
		ctx     = context.Background()
		dir     string
		server  *schemaServer
		schemas *store.JSONStore
		changes *store.JSONStore
		out     *bytes.Buffer
		runner  *watch.Runner
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "schemawatch-watch")
		Expect(err).ShouldNot(HaveOccurred())

		server = newSchemaServer(shopSchema)

		dataDir := filepath.Join(dir, "build", "data")
		now := clock()
		schemas = store.NewJSONStore(store.SchemasPrefix, store.SchemasIndex, "", dataDir)
		schemas.Now = now
		changes = store.NewJSONStore(store.ChangesPrefix, store.ChangesIndex, "", dataDir)
		changes.Now = now

		out = &bytes.Buffer{}
		runner = &watch.Runner{
			SchemaURL:  server.URL + "/schema.graphql",
			BuildDir:   filepath.Join(dir, "build"),
			DataDir:    dataDir,
			ReportPath: filepath.Join(dir, "build", "index.html"),
			Downloader: download.New(time.Second),
			Schemas:    schemas,
			Changes:    changes,
			Logger:     log.New(io.Discard, "", 0),
			Out:        out,
			Now:        now,
		}
	})

	AfterEach(func() {
		server.Close()
		os.RemoveAll(dir)
	})

	It("saves the first snapshot without comparing", func() {
		result, err := runner.Run(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.Initial).Should(BeTrue())
		Expect(result.SchemaID).Should(Equal(store.EntryID("sch-20240131-235959")))
		Expect(result.Changes).Should(BeEmpty())
		Expect(out.Len()).Should(BeZero())

		Expect(schemas.Entries(ctx)).Should(HaveLen(1))
		Expect(filepath.Join(dir, "build", "index.html")).Should(BeARegularFile())
	})

	It("prints an empty change list when nothing changed", func() {
		_, err := runner.Run(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		result, err := runner.Run(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.Initial).Should(BeFalse())
		Expect(result.Changes).Should(BeEmpty())
		Expect(result.SchemaID).Should(BeEmpty())
		Expect(out.String()).Should(Equal("[]\n"))

		Expect(schemas.Entries(ctx)).Should(HaveLen(1))
		Expect(changes.Entries(ctx)).Should(BeEmpty())
	})

	It("records new deprecations", func() {
		_, err := runner.Run(ctx)
		Expect(err).ShouldNot(HaveOccurred())

		server.Set(http.StatusOK, deprecatedShopSchema)
		result, err := runner.Run(ctx)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.Changes).Should(ConsistOf(MatchFields(IgnoreExtras, Fields{
			"Kind":    Equal(diff.KindFieldDeprecated),
			"Type":    Equal("Shop"),
			"Field":   Equal("domain"),
			"Version": Equal("3.20"),
		})))
		Expect(result.Analysis.Facts).Should(HaveLen(1))

		Expect(out.String()).Should(ContainSubstring(`"diff": "field_deprecated"`))
		Expect(schemas.Entries(ctx)).Should(HaveLen(2))
		Expect(changes.Entries(ctx)).Should(ConsistOf(result.ChangesID))

		payload, err := changes.Load(ctx, result.ChangesID)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(diff.Unmarshal(payload)).Should(Equal(result.Changes))

		html, err := os.ReadFile(runner.ReportPath)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(html)).Should(ContainSubstring(`id="Shop-domain"`))
	})

	It("fails when the schema cannot be downloaded", func() {
		server.Set(http.StatusInternalServerError, "")
		_, err := runner.Run(ctx)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindDownload),
			testutil.CauseMatches(PointTo(MatchFields(IgnoreExtras, Fields{
				"Reason":     Equal(download.ReasonStatusCode),
				"StatusCode": Equal(http.StatusInternalServerError),
			}))),
		))
		Expect(schemas.Entries(ctx)).Should(BeEmpty())
	})

	It("fails on an invalid schema document", func() {
		server.Set(http.StatusOK, "type Query {")
		_, err := runner.Run(ctx)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.KindIs(graphql.ErrKindSyntax),
		))
	})
})

var _ = Describe("LocalDiff", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "schemawatch-local")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	write := func(name string, body string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(body), 0o644)).Should(Succeed())
		return path
	}

	It("compares two files", func() {
		changes, analysis, err := watch.LocalDiff(
			write("schema-old.graphql", shopSchema),
			write("schema-new.graphql", deprecatedShopSchema))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(changes).Should(Equal([]diff.Change{{
			Kind:    diff.KindFieldDeprecated,
			Type:    "Shop",
			Field:   "domain",
			Version: "3.20",
		}}))
		Expect(analysis.Schema).Should(HaveKey("Shop"))
	})

	It("reports a missing file", func() {
		_, _, err := watch.LocalDiff(filepath.Join(dir, "missing.graphql"), write("new.graphql", shopSchema))
		Expect(err).Should(MatchError(ContainSubstring("cannot read")))
	})
})

var _ = Describe("OpenStores", func() {
	It("opens SQLite stores", func() {
		dir, err := os.MkdirTemp("", "schemawatch-stores")
		Expect(err).ShouldNot(HaveOccurred())
		defer os.RemoveAll(dir)

		cfg := config.Default()
		cfg.BuildDir = dir
		cfg.Store.Backend = config.BackendSQLite

		stores, err := watch.OpenStores(context.Background(), cfg)
		Expect(err).ShouldNot(HaveOccurred())
		defer stores.Close()

		id, err := stores.Changes.Save(context.Background(), []byte("[]"))
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(id)).Should(HavePrefix("ch-"))
		Expect(stores.Schemas.Entries(context.Background())).Should(BeEmpty())
		Expect(filepath.Join(dir, "schemawatch.db")).Should(BeARegularFile())
	})

	It("opens JSON stores", func() {
		stores, err := watch.OpenStores(context.Background(), config.Default())
		Expect(err).ShouldNot(HaveOccurred())
		Expect(stores.Schemas).Should(BeAssignableToTypeOf(&store.JSONStore{}))
		Expect(stores.Close()).Should(Succeed())
	})
})
