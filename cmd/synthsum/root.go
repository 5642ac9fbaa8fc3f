// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthdc/ppa/internal/config"
	"github.com/synthdc/ppa/synthfmt"
)

const defaultDataset = "Summary.csv"

// rootOptions holds global flags and the state they produce.
type rootOptions struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *logrus.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "synthsum",
		Short:         "Summarize synthesis results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.log = newLogger(cmd, opts.verbose)
			cfg, err := config.LoadFile(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "read run configuration from YAML `file`")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every extracted run")

	cmd.AddCommand(newExtractCommand(opts))
	cmd.AddCommand(newSummaryCommand(opts))
	cmd.AddCommand(newFilterCommand(opts))
	cmd.AddCommand(newPlotCommand(opts))

	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// datasetArg returns the dataset path named by args, or the default.
func datasetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultDataset
}

// readDataset reads the dataset at path and logs its size.
func (opts *rootOptions) readDataset(path string) ([]*synthfmt.Record, error) {
	ds, err := synthfmt.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts.log.WithFields(logrus.Fields{"file": path, "runs": ds.Len()}).Debug("read dataset")
	return ds.Records, nil
}
