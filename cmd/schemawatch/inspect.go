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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/botobag/schemawatch/schema"
	"github.com/botobag/schemawatch/watch"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Print the canonical JSON of a schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := watch.AnalyzeFile(args[0])
			if err != nil {
				return err
			}

			data, err := schema.Marshal(analysis.Schema)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
}

func newDeprecationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deprecations FILE",
		Short: "List the deprecated declarations of a schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := watch.AnalyzeFile(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, fact := range analysis.Facts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", fact.Target.ID(), fact.Target.Kind(), fact.Version, oneLine(fact.Message))
			}
			return w.Flush()
		},
	}
}

// oneLine collapses the whitespace of a multi-line description so it fits in one row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
