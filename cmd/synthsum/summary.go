// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"

	"github.com/synthdc/ppa/report"
	"github.com/synthdc/ppa/synthproc"
)

type summaryOptions struct {
	query string
	by    string
	html  string
}

func newSummaryCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary [dataset]",
		Short: "Print run counts and delay and area statistics per group",
		Long: `Summary reads a dataset, keeps the runs matching the -q query and
prints one row per group of runs that agree on the --by fields, with
the number of runs and the mean, minimum and maximum delay and area.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, rootOpts, opts, datasetArg(args))
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "*", "summarize runs matching `query`")
	cmd.Flags().StringVar(&opts.by, "by", "tech,width,config,mod", "group by the comma-separated `fields` (tech, width, config, mod, freq)")
	cmd.Flags().StringVar(&opts.html, "html", "", "also write the summary as HTML to `file`")

	return cmd
}

func runSummary(cmd *cobra.Command, rootOpts *rootOptions, opts *summaryOptions, path string) (err error) {
	filter, err := rootOpts.cfg.Timing().NewFilter(opts.query)
	if err != nil {
		return err
	}
	by, err := synthproc.ParseFields(opts.by)
	if err != nil {
		return err
	}
	recs, err := rootOpts.readDataset(path)
	if err != nil {
		return err
	}

	g := synthproc.Summarize(filter.Select(recs), by...)
	if err := table.Fprint(cmd.OutOrStdout(), g); err != nil {
		return err
	}
	if opts.html == "" {
		return nil
	}
	f, err := os.Create(opts.html)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WriteHTML(f, g)
}
