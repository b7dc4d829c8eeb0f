// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import "math/rand/v2"

// A VarianceEstimator incrementally computes the mean and variance of a
// stream of values using Welford's algorithm, which is numerically
// stable for long streams. The zero value is an empty estimator.
// Estimators accumulated independently (e.g. one per worker) can be
// combined with Merge.
type VarianceEstimator struct {
	mean, s float64
	count   int64
}

// Add accumulates v into the estimate.
func (e *VarianceEstimator) Add(v float64) {
	e.count++
	delta := v - e.mean
	e.mean += delta / float64(e.count)
	e.s += delta * (v - e.mean)
}

// Merge combines the estimate from o into e, as if every value added to
// o had been added to e, via Chan et al.'s parallel update.
func (e *VarianceEstimator) Merge(o VarianceEstimator) {
	if o.count == 0 {
		return
	}
	n := float64(e.count + o.count)
	d := o.mean - e.mean
	e.s += o.s + d*d*float64(e.count)*float64(o.count)/n
	e.mean = (float64(e.count)*e.mean + float64(o.count)*o.mean) / n
	e.count += o.count
}

// Mean returns the mean of the accumulated values.
func (e *VarianceEstimator) Mean() float64 { return e.mean }

// Variance returns the sample variance of the accumulated values.
func (e *VarianceEstimator) Variance() float64 {
	if e.count <= 1 {
		return 0
	}
	return e.s / float64(e.count-1)
}

// Count returns the number of accumulated values.
func (e *VarianceEstimator) Count() int64 { return e.count }

// RelativeVariance returns the variance relative to the mean, or 0 if
// the mean is 0.
func (e *VarianceEstimator) RelativeVariance() float64 {
	if e.count < 1 || e.mean == 0 {
		return 0
	}
	return e.Variance() / e.Mean()
}

// A WeightedReservoirSampler selects a single value from a weighted
// stream such that each value's selection probability is proportional
// to its weight, without knowing the weights in advance.
type WeightedReservoirSampler[T any] struct {
	rng             *rand.Rand
	reservoir       T
	reservoirWeight float64
	weightSum       float64
}

// NewWeightedReservoirSampler returns a sampler seeded with seed. The
// sampler owns its random state and must not be shared across
// goroutines.
func NewWeightedReservoirSampler[T any](seed uint64) *WeightedReservoirSampler[T] {
	return &WeightedReservoirSampler[T]{rng: rand.New(rand.NewPCG(seed, 0))}
}

// Add considers sample with the given non-negative weight.
func (s *WeightedReservoirSampler[T]) Add(sample T, weight float64) {
	s.weightSum += weight
	if weight == s.weightSum || s.rng.Float64() < weight/s.weightSum {
		s.reservoir = sample
		s.reservoirWeight = weight
	}
}

// Merge folds the state of o into s; o's reservoir is considered with
// o's total weight.
func (s *WeightedReservoirSampler[T]) Merge(o *WeightedReservoirSampler[T]) {
	if o.HasSample() {
		s.Add(o.reservoir, o.weightSum)
	}
}

// HasSample reports whether any sample with positive weight has been
// considered.
func (s *WeightedReservoirSampler[T]) HasSample() bool { return s.weightSum > 0 }

// Sample returns the currently selected value.
func (s *WeightedReservoirSampler[T]) Sample() T { return s.reservoir }

// Weight returns the weight of the currently selected value.
func (s *WeightedReservoirSampler[T]) Weight() float64 { return s.reservoirWeight }

// WeightSum returns the total weight considered so far.
func (s *WeightedReservoirSampler[T]) WeightSum() float64 { return s.weightSum }

// Reset returns the sampler to its initial empty state, keeping its
// random state.
func (s *WeightedReservoirSampler[T]) Reset() {
	var zero T
	s.reservoir = zero
	s.reservoirWeight = 0
	s.weightSum = 0
}
