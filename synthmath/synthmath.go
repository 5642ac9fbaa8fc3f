// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synthmath provides the statistics used to compare
// synthesis results: group medians and the outlier-exclusion policy
// applied before plotting or aggregating a group.
//
// Outlier exclusion is always relative to a caller-supplied median,
// typically the median over a superset of the group being filtered.
// Because the median is fixed by the caller, excluding outliers from
// an already-filtered group removes nothing further.
package synthmath

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Median returns the median of xs, or NaN if xs is empty. For an even
// number of values it is the mean of the two middle values. xs is not
// modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Sample{Xs: xs}.Quantile(0.5)
}

// An OutlierPolicy decides whether a value deviates too far from a
// group median to be kept.
type OutlierPolicy interface {
	IsOutlier(value, median float64) bool
}

// A RatioBand keeps values whose ratio to the median lies strictly
// between Lo and Hi.
type RatioBand struct {
	Lo, Hi float64
}

// DefaultOutlierPolicy keeps values within (0.4, 1.4) times the median.
var DefaultOutlierPolicy OutlierPolicy = RatioBand{Lo: 0.4, Hi: 1.4}

func (b RatioBand) IsOutlier(value, median float64) bool {
	if median == 0 || math.IsNaN(median) {
		return false
	}
	r := value / median
	return !(b.Lo < r && r < b.Hi)
}

func (b RatioBand) String() string {
	return fmt.Sprintf("ratio(%g,%g)", b.Lo, b.Hi)
}

// A Tolerance keeps values within a relative distance of the median:
// |value-median| <= Tolerance*|median|.
type Tolerance float64

func (t Tolerance) IsOutlier(value, median float64) bool {
	if median == 0 || math.IsNaN(median) {
		return false
	}
	return math.Abs(value-median) > float64(t)*math.Abs(median)
}

func (t Tolerance) String() string {
	return fmt.Sprintf("±%g%%", 100*float64(t))
}

// KeepAll is a policy that never excludes anything.
var KeepAll OutlierPolicy = keepAll{}

type keepAll struct{}

func (keepAll) IsOutlier(value, median float64) bool { return false }

// ExcludeOutliers returns the indexes of the values in xs that p does
// not consider outliers relative to median, in ascending order. If p
// is nil, DefaultOutlierPolicy is used.
func ExcludeOutliers(xs []float64, median float64, p OutlierPolicy) []int {
	if p == nil {
		p = DefaultOutlierPolicy
	}
	keep := make([]int, 0, len(xs))
	for i, x := range xs {
		if !p.IsOutlier(x, median) {
			keep = append(keep, i)
		}
	}
	return keep
}

// Bounds returns the minimum and maximum of xs. If xs is empty, both
// are NaN.
func Bounds(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}
