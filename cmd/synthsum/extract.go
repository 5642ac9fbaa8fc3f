// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthdc/ppa/storage/db"
	"github.com/synthdc/ppa/synthfmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/synthdc/ppa/storage/db/sqlite3"
)

type extractOptions struct {
	output  string
	dbSpec  string
	post    string
	workers int
}

func newExtractCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [dir]",
		Short: "Extract delay and area from run directories into a dataset",
		Long: `Extract discovers run directories under dir/runs, reads the worst path
slack and the design area from each run's reports and writes one row
per run to the dataset file. The file is replaced, not appended to.

With --db, the dataset is also stored as a new snapshot in a SQL
database, given as driver:dsn (for example sqlite3:synth.db). With
--post, the command is run once after the dataset is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runExtract(cmd, rootOpts, opts, root)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultDataset, "write the dataset to `file`")
	cmd.Flags().StringVar(&opts.dbSpec, "db", "", "also store a snapshot in the database `driver:dsn`")
	cmd.Flags().StringVar(&opts.post, "post", "", "run `command` after writing the dataset")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "extract `n` runs concurrently (default from config, else GOMAXPROCS)")

	return cmd
}

func runExtract(cmd *cobra.Command, rootOpts *rootOptions, opts *extractOptions, root string) error {
	ctx := cmd.Context()
	log := rootOpts.log

	x := rootOpts.cfg.Extractor(log)
	if opts.workers > 0 {
		x.Workers = opts.workers
	}
	recs, results, err := x.Walk(ctx, root)
	if err != nil {
		return err
	}
	skipped := 0
	for _, res := range results {
		if res.Err != nil {
			skipped++
		}
	}
	if err := synthfmt.WriteFile(opts.output, recs); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": opts.output, "runs": len(recs), "skipped": skipped}).Info("wrote dataset")

	if opts.dbSpec != "" {
		if err := storeSnapshot(ctx, log, opts.dbSpec, root, recs); err != nil {
			return err
		}
	}
	if opts.post != "" {
		if err := runPost(ctx, cmd, opts.post); err != nil {
			return err
		}
	}
	return nil
}

// storeSnapshot stores recs as a new snapshot labeled root in the
// database named by spec.
func storeSnapshot(ctx context.Context, log *logrus.Logger, spec, root string, recs []*synthfmt.Record) (err error) {
	driver, dsn, ok := strings.Cut(spec, ":")
	if !ok || driver == "" {
		return fmt.Errorf("--db %q: want driver:dsn", spec)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s database: %w", driver, err)
	}
	defer func() {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}()
	snap, err := d.NewSnapshot(ctx, root)
	if err != nil {
		return err
	}
	if err := snap.InsertRecords(ctx, recs); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"snapshot": snap.ID, "runs": len(recs)}).Info("stored snapshot")
	return nil
}

// runPost runs the post-extraction command and waits for it. Its
// output is passed through.
func runPost(ctx context.Context, cmd *cobra.Command, command string) error {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil
	}
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("post command %s: %w", argv[0], err)
	}
	return nil
}
