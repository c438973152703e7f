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
	"time"

	"github.com/spf13/cobra"

	"github.com/botobag/schemawatch/diff"
	"github.com/botobag/schemawatch/report"
	"github.com/botobag/schemawatch/watch"
)

func newDiffCmd(opts *options) *cobra.Command {
	var reportFile string

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two local schema files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, current, err := watch.LocalDiff(args[0], args[1])
			if err != nil {
				return err
			}

			data, err := diff.Marshal(changes)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(append(data, '\n')); err != nil {
				return err
			}

			if reportFile != "" {
				if err := report.WriteFile(reportFile, current.Schema, current.Facts, time.Now()); err != nil {
					return err
				}
				opts.logger(cmd).Printf("wrote report to %s", reportFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&reportFile, "report", "", "Render the report of NEW to this file")

	return cmd
}
