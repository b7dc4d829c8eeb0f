// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestVarianceEstimator(t *testing.T) {
	vals := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	var e VarianceEstimator
	for _, v := range vals {
		e.Add(v)
	}
	if got := e.Mean(); !aeq(5, got) {
		t.Errorf("Mean = %v, want 5", got)
	}
	want := stat.Variance(vals, nil)
	if got := e.Variance(); !aeq(want, got) {
		t.Errorf("Variance = %v, want %v", got, want)
	}
	if e.Count() != int64(len(vals)) {
		t.Errorf("Count = %v, want %v", e.Count(), len(vals))
	}
}

func TestVarianceEstimatorMerge(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	var whole, left, right VarianceEstimator
	for i := 0; i < 1000; i++ {
		v := rng.NormFloat64()*3 + 1
		whole.Add(v)
		if i%2 == 0 {
			left.Add(v)
		} else {
			right.Add(v)
		}
	}
	left.Merge(right)
	if !aeq(whole.Mean(), left.Mean()) {
		t.Errorf("merged Mean = %v, want %v", left.Mean(), whole.Mean())
	}
	if !aeq(whole.Variance(), left.Variance()) {
		t.Errorf("merged Variance = %v, want %v", left.Variance(), whole.Variance())
	}
	if left.Count() != whole.Count() {
		t.Errorf("merged Count = %v, want %v", left.Count(), whole.Count())
	}
}

func TestWeightedReservoirSampler(t *testing.T) {
	// Each outcome must be retained in proportion to its weight.
	weights := []float64{1, 2, 3, 4}
	counts := make([]int, len(weights))
	const trials = 20000
	for i := 0; i < trials; i++ {
		s := NewWeightedReservoirSampler[int](uint64(i) + 1)
		for j, w := range weights {
			s.Add(j, w)
		}
		if !s.HasSample() {
			t.Fatal("sampler empty after adds")
		}
		counts[s.Sample()]++
	}
	for j, w := range weights {
		got := float64(counts[j]) / trials
		want := w / 10
		if math.Abs(got-want) > 0.015 {
			t.Errorf("outcome %d frequency %v, want %v", j, got, want)
		}
	}
}

func TestWeightedReservoirSamplerMerge(t *testing.T) {
	a := NewWeightedReservoirSampler[string](1)
	a.Add("x", 2)
	b := NewWeightedReservoirSampler[string](2)
	b.Add("y", 3)
	a.Merge(b)
	if got := a.WeightSum(); !aeq(5, got) {
		t.Errorf("merged WeightSum = %v, want 5", got)
	}
	if s := a.Sample(); s != "x" && s != "y" {
		t.Errorf("merged Sample = %q", s)
	}
}

func TestWeightedReservoirSamplerZeroWeight(t *testing.T) {
	s := NewWeightedReservoirSampler[int](3)
	s.Add(1, 0)
	if s.HasSample() {
		t.Error("sampler reports a sample after zero-weight add")
	}
	s.Add(2, 5)
	if !s.HasSample() || s.Sample() != 2 {
		t.Errorf("Sample = %v, want 2", s.Sample())
	}
	s.Reset()
	if s.HasSample() {
		t.Error("sampler reports a sample after Reset")
	}
}
