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

// Command schemawatch tracks deprecations in a GraphQL schema.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/botobag/schemawatch/config"
	"github.com/botobag/schemawatch/graphql"
)

var version = "0.1.0-dev"

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	quiet      bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if name := graphql.SourceNameOf(err); name != "" {
			fmt.Fprintf(os.Stderr, "error in %s: %v\n", name, err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "schemawatch",
		Short:         "Track deprecations in a GraphQL schema",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not log progress")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newDiffCmd(opts),
		newNormalizeCmd(),
		newDeprecationsCmd(),
	)

	return rootCmd
}

// loadConfig reads the config file. The default file may be missing.
func (opts *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(opts.configFile, !cmd.Flags().Changed("config"))
}

func (opts *options) logger(cmd *cobra.Command) *log.Logger {
	if opts.quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "schemawatch: ", log.LstdFlags)
}
