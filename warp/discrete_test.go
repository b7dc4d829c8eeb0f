// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import "testing"

func TestSampleDiscrete(t *testing.T) {
	weights := []float64{1, 2, 1}
	tests := []struct {
		u         float64
		offset    int
		pmf       float64
		uRemapped float64
	}{
		{0, 0, 0.25, 0},
		{0.125, 0, 0.25, 0.5},
		{0.25, 1, 0.5, 0},
		{0.5, 1, 0.5, 0.5},
		{0.75, 2, 0.25, 0},
		{0.875, 2, 0.25, 0.5},
	}
	for _, test := range tests {
		offset, pmf, ur := SampleDiscrete(weights, test.u)
		if offset != test.offset || !aeq(test.pmf, pmf) || !aeq(test.uRemapped, ur) {
			t.Errorf("SampleDiscrete(%v) = (%d, %v, %v), want (%d, %v, %v)",
				test.u, offset, pmf, ur, test.offset, test.pmf, test.uRemapped)
		}
	}
}

func TestSampleDiscreteZeroWeights(t *testing.T) {
	offset, pmf, _ := SampleDiscrete([]float64{0, 0, 0}, 0.5)
	if offset != -1 || pmf != 0 {
		t.Errorf("SampleDiscrete(zero weights) = (%d, %v), want (-1, 0)", offset, pmf)
	}
}

func TestBalanceHeuristic(t *testing.T) {
	tests := []struct {
		nf   int
		fPDF float64
		ng   int
		gPDF float64
		want float64
	}{
		{1, 1, 1, 1, 0.5},
		{1, 1, 1, 3, 0.25},
		{2, 1, 1, 2, 0.5},
		{1, 1, 1, 0, 1},
	}
	for _, test := range tests {
		got := BalanceHeuristic(test.nf, test.fPDF, test.ng, test.gPDF)
		if !aeq(test.want, got) {
			t.Errorf("BalanceHeuristic(%d, %v, %d, %v) = %v, want %v",
				test.nf, test.fPDF, test.ng, test.gPDF, got, test.want)
		}
	}
}

func TestPowerHeuristic(t *testing.T) {
	tests := []struct {
		nf   int
		fPDF float64
		ng   int
		gPDF float64
		want float64
	}{
		{1, 1, 1, 1, 0.5},
		{1, 1, 1, 3, 0.1},
		{1, 1, 1, 0, 1},
		{1, 0, 1, 0, 0},
	}
	for _, test := range tests {
		got := PowerHeuristic(test.nf, test.fPDF, test.ng, test.gPDF)
		if !aeq(test.want, got) {
			t.Errorf("PowerHeuristic(%d, %v, %d, %v) = %v, want %v",
				test.nf, test.fPDF, test.ng, test.gPDF, got, test.want)
		}
	}
}
