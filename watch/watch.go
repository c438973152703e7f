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

// Package watch runs the whole pipeline: download the current schema, compare it with the last
// snapshot, record the changes and render the deprecation report.
package watch

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/botobag/schemawatch/config"
	"github.com/botobag/schemawatch/diff"
	"github.com/botobag/schemawatch/download"
	"github.com/botobag/schemawatch/graphql"
	"github.com/botobag/schemawatch/report"
	"github.com/botobag/schemawatch/schema"
	"github.com/botobag/schemawatch/store"
)

// Runner performs one watch run.
type Runner struct {
	SchemaURL  string
	BuildDir   string
	DataDir    string
	ReportPath string

	Downloader *download.Downloader
	Schemas    store.Store
	Changes    store.Store

	// Logger receives progress messages. nil means DefaultLogger.
	Logger *log.Logger

	// Out receives the change list as JSON. nil means os.Stdout.
	Out io.Writer

	// Now returns the report generation time. nil means time.Now.
	Now func() time.Time
}

// DefaultLogger is used by a Runner without a Logger.
var DefaultLogger = log.New(os.Stderr, "schemawatch: ", log.LstdFlags)

// NewRunner returns a Runner configured from cfg that keeps snapshots in stores.
func NewRunner(cfg *config.Config, stores *Stores, logger *log.Logger) *Runner {
	return &Runner{
		SchemaURL:  cfg.SchemaURL,
		BuildDir:   cfg.BuildDir,
		DataDir:    cfg.DataDir(),
		ReportPath: cfg.ReportPath(),
		Downloader: download.New(cfg.HTTP.Timeout),
		Schemas:    stores.Schemas,
		Changes:    stores.Changes,
		Logger:     logger,
	}
}

// Result describes what a run did.
type Result struct {
	Analysis *Analysis

	// Initial is true if there was no snapshot to compare with.
	Initial bool

	Changes []diff.Change

	// SchemaID and ChangesID name the entries saved by the run, if any.
	SchemaID  store.EntryID
	ChangesID store.EntryID
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return DefaultLogger
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run performs the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	const op graphql.Op = "watch.Run"

	logger := r.logger()

	for _, dir := range []string{r.BuildDir, r.DataDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, graphql.NewError("cannot create "+dir, op, err)
		}
	}

	var (
		body    string
		last    []byte
		hasLast bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		body, err = r.Downloader.Download(gctx, r.SchemaURL)
		return err
	})
	g.Go(func() error {
		var err error
		last, hasLast, err = r.Schemas.LoadLast(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Printf("downloaded %s from %s", humanize.Bytes(uint64(len(body))), r.SchemaURL)

	analysis, err := Analyze(r.SchemaURL, body)
	if err != nil {
		return nil, err
	}
	logger.Printf("found %d types and %d deprecations", len(analysis.Schema), len(analysis.Facts))

	result := &Result{
		Analysis: analysis,
	}

	current, err := schema.Marshal(analysis.Schema)
	if err != nil {
		return nil, err
	}

	if !hasLast {
		result.Initial = true
		if result.SchemaID, err = r.Schemas.Save(ctx, current); err != nil {
			return nil, err
		}
		logger.Printf("saved initial snapshot %s (%s)", result.SchemaID, humanize.Bytes(uint64(len(current))))
	} else {
		old, err := schema.Unmarshal(last)
		if err != nil {
			return nil, err
		}

		result.Changes = diff.Diff(old, analysis.Schema)
		logger.Printf("%d change(s) since the last snapshot", len(result.Changes))

		changes, err := diff.Marshal(result.Changes)
		if err != nil {
			return nil, err
		}
		if _, err := r.out().Write(append(changes, '\n')); err != nil {
			return nil, graphql.NewError("cannot print changes", op, err)
		}

		if len(result.Changes) > 0 {
			if result.SchemaID, err = r.Schemas.Save(ctx, current); err != nil {
				return nil, err
			}
			if result.ChangesID, err = r.Changes.Save(ctx, changes); err != nil {
				return nil, err
			}
			logger.Printf("saved snapshot %s and changes %s", result.SchemaID, result.ChangesID)
		}
	}

	if r.ReportPath != "" {
		if err := report.WriteFile(r.ReportPath, analysis.Schema, analysis.Facts, r.now()); err != nil {
			return nil, err
		}
		logger.Printf("wrote report to %s", r.ReportPath)
	}

	return result, nil
}

// LocalDiff compares two schema files and returns the changes from oldPath to newPath together with
// the analysis of newPath.
func LocalDiff(oldPath string, newPath string) ([]diff.Change, *Analysis, error) {
	old, err := AnalyzeFile(oldPath)
	if err != nil {
		return nil, nil, err
	}

	current, err := AnalyzeFile(newPath)
	if err != nil {
		return nil, nil, err
	}

	return diff.Diff(old.Schema, current.Schema), current, nil
}
