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

// Package config loads the settings of schemawatch from a YAML file and the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/internal/util"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "schemawatch.yaml"

// Defaults
const (
	DefaultSchemaURL   = "https://raw.githubusercontent.com/saleor/saleor/main/saleor/graphql/schema.graphql"
	DefaultBuildDir    = "build"
	DefaultRemoteURL   = "https://raw.githubusercontent.com/mirumee/saleor-graphql-deprecations/gh-pages/data/"
	DefaultHTTPTimeout = 30 * time.Second
)

// Snapshot store backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var backends = []string{BackendJSON, BackendSQLite}

// Config holds the settings of a run.
type Config struct {
	SchemaURL  string      `yaml:"schema_url"`
	BuildDir   string      `yaml:"build_dir"`
	ReportFile string      `yaml:"report_file,omitempty"`
	HTTP       HTTPConfig  `yaml:"http"`
	Store      StoreConfig `yaml:"store"`
}

// HTTPConfig configures the schema download.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig selects where snapshots are kept.
type StoreConfig struct {
	Backend string `yaml:"backend"`

	// RemoteURL is the base URL of published JSON snapshots. Empty disables remote reads.
	RemoteURL string `yaml:"remote_url"`

	// SQLitePath defaults to "<build dir>/schemawatch.db".
	SQLitePath string `yaml:"sqlite_path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		SchemaURL: DefaultSchemaURL,
		BuildDir:  DefaultBuildDir,
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Store: StoreConfig{
			Backend:   BackendJSON,
			RemoteURL: DefaultRemoteURL,
		},
	}
}

// Load reads the config file at path over the defaults and applies environment overrides. A
// missing file is not an error when optional is true.
func Load(path string, optional bool) (*Config, error) {
	const op graphql.Op = "config.Load"

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, graphql.NewError("cannot parse config file "+path, op, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, graphql.NewError("cannot read config file", op, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, graphql.NewError(err.Error(), op, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies SCHEMAWATCH_* environment variables.
func (c *Config) applyEnvOverrides() error {
	for name, dst := range map[string]*string{
		"SCHEMAWATCH_SCHEMA_URL":    &c.SchemaURL,
		"SCHEMAWATCH_BUILD_DIR":     &c.BuildDir,
		"SCHEMAWATCH_REPORT_FILE":   &c.ReportFile,
		"SCHEMAWATCH_STORE_BACKEND": &c.Store.Backend,
		"SCHEMAWATCH_REMOTE_URL":    &c.Store.RemoteURL,
		"SCHEMAWATCH_SQLITE_PATH":   &c.Store.SQLitePath,
	} {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v := os.Getenv("SCHEMAWATCH_HTTP_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.HTTP.Timeout = timeout
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	const op graphql.Op = "config.Validate"

	if strings.TrimSpace(c.SchemaURL) == "" {
		return graphql.NewError("schema_url must not be empty", op)
	}

	if c.HTTP.Timeout <= 0 {
		return graphql.NewError("http.timeout must be positive, got "+c.HTTP.Timeout.String(), op)
	}

	switch c.Store.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return graphql.NewError(
			`unknown store backend "`+c.Store.Backend+`", expected `+util.OrList(backends, 0, true)+"."+
				util.DidYouMean(util.SuggestionList(c.Store.Backend, backends)), op)
	}

	return nil
}

// DataDir is the directory of JSON snapshots.
func (c *Config) DataDir() string {
	return filepath.Join(c.BuildDir, "data")
}

// ReportPath is the path of the HTML report.
func (c *Config) ReportPath() string {
	if c.ReportFile != "" {
		return c.ReportFile
	}
	return filepath.Join(c.BuildDir, "index.html")
}

// SQLitePath is the path of the SQLite snapshot database.
func (c *Config) SQLitePath() string {
	if c.Store.SQLitePath != "" {
		return c.Store.SQLitePath
	}
	return filepath.Join(c.BuildDir, "schemawatch.db")
}
