// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthdc/ppa/synthfmt"
)

func newFilterCommand(rootOpts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "filter -q query [dataset]",
		Short: "Write the runs matching a query as a dataset to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := rootOpts.cfg.Timing().NewFilter(query)
			if err != nil {
				return err
			}
			recs, err := rootOpts.readDataset(datasetArg(args))
			if err != nil {
				return err
			}
			sel := filter.Select(recs)
			rootOpts.log.WithFields(logrus.Fields{"query": filter.String(), "matched": len(sel)}).Debug("filtered dataset")
			return synthfmt.WriteAll(cmd.OutOrStdout(), sel)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "keep runs matching `query`")
	cmd.MarkFlagRequired("query")

	return cmd
}
