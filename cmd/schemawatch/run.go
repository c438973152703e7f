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

package main

import (
	"github.com/spf13/cobra"

	"github.com/botobag/schemawatch/watch"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		schemaURL string
		buildDir  string
		backend   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download the schema and record changes since the last snapshot",
		Long: "Downloads the schema, compares it with the last snapshot, prints the changes as JSON, " +
			"saves a new snapshot when something changed and renders the deprecation report.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("schema-url") {
				cfg.SchemaURL = schemaURL
			}
			if flags.Changed("build-dir") {
				cfg.BuildDir = buildDir
			}
			if flags.Changed("backend") {
				cfg.Store.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			stores, err := watch.OpenStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer stores.Close()

			runner := watch.NewRunner(cfg, stores, opts.logger(cmd))
			runner.Out = cmd.OutOrStdout()
			_, err = runner.Run(ctx)
			return err
		},
	}

	cmd.Flags().StringVar(&schemaURL, "schema-url", "", "URL of the schema document")
	cmd.Flags().StringVar(&buildDir, "build-dir", "", "Directory for the report and JSON snapshots")
	cmd.Flags().StringVar(&backend, "backend", "", `Snapshot store backend ("json" or "sqlite")`)

	return cmd
}
