// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/synthdc/ppa/chart"
	"github.com/synthdc/ppa/synthfmt"
	"github.com/synthdc/ppa/synthproc"
	"github.com/synthdc/ppa/techspec"
)

func newPlotCommand(rootOpts *rootOptions) *cobra.Command {
	var (
		dir     string
		targets map[string]int
	)

	cmd := &cobra.Command{
		Use:   "plot [-d dir] [--target tech=MHz] [dataset]",
		Short: "Draw frequency sweeps and area/delay charts",
		Long: `Plot draws, for every technology in the dataset and the technology
table, a frequency sweep of each baseline configuration, the design
variants of each configuration at the technology's target frequency,
all baseline configurations at the target frequency, and finally all
technologies normalized to FO4 delays and adder areas.

The --target flag overrides a technology's target frequency and may
be repeated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tech, err := rootOpts.cfg.Tech.WithTargets(targets)
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}
			recs, err := rootOpts.readDataset(datasetArg(args))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o777); err != nil {
				return err
			}
			return plotAll(rootOpts, tech, recs, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "plots", "write charts to `dir`")
	cmd.Flags().StringToIntVar(&targets, "target", nil, "override target frequency as `tech=MHz`")

	return cmd
}

func plotAll(opts *rootOptions, tab techspec.Table, recs []*synthfmt.Record, dir string) error {
	cfg := opts.cfg
	wrote := 0
	write := func(name string, draw func(path string) error) error {
		path := filepath.Join(dir, name)
		if err := draw(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		opts.log.WithField("file", path).Debug("wrote chart")
		wrote++
		return nil
	}

	var norm []chart.Series
	for _, tech := range tab.Names() {
		spec := tab[tech]
		base := synthproc.Select(recs, synthproc.And(synthproc.Tech(tech), synthproc.Mod(synthproc.BaselineMod)))
		if len(base) == 0 {
			continue
		}
		for _, g := range synthproc.GroupBy(base, synthproc.FieldWidth, synthproc.FieldConfig) {
			width, config := g.Values[0], g.Values[1]
			label := width + config

			sw := synthproc.FreqSweep(recs, tech, width, config, cfg.Timing(), cfg.Policy())
			if len(sw.Met)+len(sw.Violated) > 0 {
				err := write(chart.FreqSweepName(tech, label), func(path string) error {
					return chart.FreqSweep(path, fmt.Sprintf("%s %s", tech, label), sw)
				})
				if err != nil {
					return err
				}
			}

			if pts := synthproc.Features(recs, tech, width, config, spec.TargetFreqMHz); len(pts) > 0 {
				err := write(chart.FeaturesName(tech, label, spec.TargetFreqMHz), func(path string) error {
					return chart.AreaDelay(path, fmt.Sprintf("%s_%s", tech, label), pts, spec)
				})
				if err != nil {
					return err
				}
			}
		}

		pts := synthproc.Configs(recs, tech, synthproc.BaselineMod, spec.TargetFreqMHz)
		if len(pts) == 0 {
			opts.log.WithFields(logrus.Fields{"tech": tech, "freq": spec.TargetFreqMHz}).Warn("no baseline runs at target frequency")
			continue
		}
		err := write(chart.ConfigsName(tech, synthproc.BaselineMod), func(path string) error {
			return chart.AreaDelay(path, fmt.Sprintf("%s_%s", tech, synthproc.BaselineMod), pts, spec)
		})
		if err != nil {
			return err
		}
		norm = append(norm, chart.Series{Spec: spec, Points: synthproc.Normalize(pts, spec)})
	}

	if len(norm) > 0 {
		if err := write(chart.NormAreaDelayName, func(path string) error {
			return chart.NormAreaDelay(path, norm)
		}); err != nil {
			return err
		}
	}
	opts.log.WithFields(logrus.Fields{"dir": dir, "charts": wrote}).Info("wrote charts")
	return nil
}
