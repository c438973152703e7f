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

package config_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/botobag/schemawatch/config"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/internal/testutil"
	"github.com/botobag/schemawatch/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var envNames = []string{
	"SCHEMAWATCH_SCHEMA_URL",
	"SCHEMAWATCH_BUILD_DIR",
	"SCHEMAWATCH_REPORT_FILE",
	"SCHEMAWATCH_STORE_BACKEND",
	"SCHEMAWATCH_REMOTE_URL",
	"SCHEMAWATCH_SQLITE_PATH",
	"SCHEMAWATCH_HTTP_TIMEOUT",
}

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "schemawatch-config")
		Expect(err).ShouldNot(HaveOccurred())

		for _, name := range envNames {
			Expect(os.Unsetenv(name)).Should(Succeed())
		}
	})

	AfterEach(func() {
		for _, name := range envNames {
			os.Unsetenv(name)
		}
		os.RemoveAll(dir)
	})

	writeConfig := func(text string) string {
		path := filepath.Join(dir, config.DefaultFile)
		Expect(os.WriteFile(path, []byte(util.Dedent(text)), 0o644)).Should(Succeed())
		return path
	}

	It("uses defaults when the optional file is missing", func() {
		cfg, err := config.Load(filepath.Join(dir, "missing.yaml"), true)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg).Should(Equal(config.Default()))
		Expect(cfg.Validate()).Should(Succeed())

		Expect(cfg.DataDir()).Should(Equal(filepath.Join("build", "data")))
		Expect(cfg.ReportPath()).Should(Equal(filepath.Join("build", "index.html")))
		Expect(cfg.SQLitePath()).Should(Equal(filepath.Join("build", "schemawatch.db")))
	})

	It("rejects a missing file that is required", func() {
		_, err := config.Load(filepath.Join(dir, "missing.yaml"), false)
		Expect(err).Should(HaveOccurred())
		Expect(err).Should(MatchError(ContainSubstring("cannot read config file")))
	})

	It("reads settings over the defaults", func() {
		path := writeConfig(`
			schema_url: https://example.com/schema.graphql
			build_dir: out
			http:
			  timeout: 5s
			store:
			  backend: sqlite
			  sqlite_path: /var/lib/schemawatch.db
		`)

		cfg, err := config.Load(path, false)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.SchemaURL).Should(Equal("https://example.com/schema.graphql"))
		Expect(cfg.BuildDir).Should(Equal("out"))
		Expect(cfg.HTTP.Timeout).Should(Equal(5 * time.Second))
		Expect(cfg.Store.Backend).Should(Equal(config.BackendSQLite))
		Expect(cfg.Store.RemoteURL).Should(Equal(config.DefaultRemoteURL))
		Expect(cfg.SQLitePath()).Should(Equal("/var/lib/schemawatch.db"))
		Expect(cfg.DataDir()).Should(Equal(filepath.Join("out", "data")))
	})

	It("rejects malformed YAML", func() {
		path := writeConfig(`
			store: [
		`)
		_, err := config.Load(path, false)
		Expect(err).Should(MatchError(ContainSubstring("cannot parse config file")))
	})

	It("applies environment overrides last", func() {
		path := writeConfig(`
			build_dir: out
		`)
		os.Setenv("SCHEMAWATCH_BUILD_DIR", "env-out")
		os.Setenv("SCHEMAWATCH_REMOTE_URL", "")
		os.Setenv("SCHEMAWATCH_HTTP_TIMEOUT", "1m")

		cfg, err := config.Load(path, false)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(cfg.BuildDir).Should(Equal("env-out"))
		Expect(cfg.Store.RemoteURL).Should(BeEmpty())
		Expect(cfg.HTTP.Timeout).Should(Equal(time.Minute))
	})

	It("rejects an invalid timeout in the environment", func() {
		os.Setenv("SCHEMAWATCH_HTTP_TIMEOUT", "soon")
		_, err := config.Load(filepath.Join(dir, "missing.yaml"), true)
		Expect(err).Should(HaveOccurred())
	})

	Describe("Validate", func() {
		It("suggests a backend for a typo", func() {
			cfg := config.Default()
			cfg.Store.Backend = "sqlit"
			Expect(cfg.Validate()).Should(testutil.MatchGraphQLError(
				testutil.OpIs(graphql.Op("config.Validate")),
				testutil.MessageEqual(`unknown store backend "sqlit", expected "json" or "sqlite". Did you mean "sqlite"?`),
			))
		})

		It("lists backends without a close match", func() {
			cfg := config.Default()
			cfg.Store.Backend = "postgres"
			Expect(cfg.Validate()).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`unknown store backend "postgres", expected "json" or "sqlite".`),
			))
		})

		It("rejects a zero timeout", func() {
			cfg := config.Default()
			cfg.HTTP.Timeout = 0
			Expect(cfg.Validate()).Should(MatchError(ContainSubstring("http.timeout must be positive")))
		})

		It("rejects an empty schema URL", func() {
			cfg := config.Default()
			cfg.SchemaURL = " "
			Expect(cfg.Validate()).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("schema_url must not be empty"),
			))
		})
	})
})
