// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"math"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// sweep returns uniform variates strictly inside (0, 1).
func sweep(n int) []float64 {
	us := make([]float64, n)
	for i := range us {
		us[i] = (float64(i) + 0.5) / float64(n)
	}
	return us
}

func TestPiecewiseConstant1DSpike(t *testing.T) {
	// All mass in the second of four buckets: every variate must land
	// in [0.25, 0.5) with density 4.
	d := NewPiecewiseConstant1D([]float64{0, 1, 0, 0}, 0, 1)
	for _, u := range sweep(64) {
		x, pdf, offset := d.Sample(u)
		if x < 0.25 || x > 0.5 {
			t.Fatalf("Sample(%v) = %v outside the spike", u, x)
		}
		if offset != 1 {
			t.Fatalf("Sample(%v) offset = %d, want 1", u, offset)
		}
		if !aeq(4, pdf) {
			t.Fatalf("Sample(%v) pdf = %v, want 4", u, pdf)
		}
	}
}

func TestPiecewiseConstant1DRoundTrip(t *testing.T) {
	d := NewPiecewiseConstant1D([]float64{1, 3, 2, 0.5, 4}, -1, 3)
	for _, u := range sweep(128) {
		x, pdf, _ := d.Sample(u)
		if pdf <= 0 {
			t.Fatalf("Sample(%v) pdf = %v", u, pdf)
		}
		got, ok := d.Invert(x)
		if !ok {
			t.Fatalf("Invert(%v) not ok", x)
		}
		if !aeq(u, got) {
			t.Errorf("Invert(Sample(%v)) = %v", u, got)
		}
	}
}

func TestPiecewiseConstant1DIntegral(t *testing.T) {
	// FuncInt is the step-function integral: bucket average times
	// domain width.
	d := NewPiecewiseConstant1D([]float64{1, 3}, 0, 2)
	if !aeq(4, d.FuncInt) {
		t.Errorf("FuncInt = %v, want 4", d.FuncInt)
	}
}

func TestPiecewiseConstant1DZeroFunction(t *testing.T) {
	d := NewPiecewiseConstant1D([]float64{0, 0, 0}, 0, 1)
	for _, u := range sweep(16) {
		x, pdf, _ := d.Sample(u)
		if !aeq(u, x) {
			t.Errorf("zero function Sample(%v) = %v, want uniform", u, x)
		}
		if pdf != 0 {
			t.Errorf("zero function Sample(%v) pdf = %v, want 0", u, pdf)
		}
	}
}

func TestPiecewiseConstant1DInvertOutOfDomain(t *testing.T) {
	d := NewPiecewiseConstant1D([]float64{1, 2}, 0, 1)
	if _, ok := d.Invert(-0.1); ok {
		t.Error("Invert(-0.1) reported ok")
	}
	if _, ok := d.Invert(1.1); ok {
		t.Error("Invert(1.1) reported ok")
	}
}

func TestPiecewiseConstant1DPanics(t *testing.T) {
	for _, test := range []struct {
		name string
		f    func()
	}{
		{"empty", func() { NewPiecewiseConstant1D(nil, 0, 1) }},
		{"domain", func() { NewPiecewiseConstant1D([]float64{1}, 1, 1) }},
		{"negative", func() { NewPiecewiseConstant1D([]float64{1, -1}, 0, 1) }},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: no panic", test.name)
				}
			}()
			test.f()
		}()
	}
}

func TestSample1DFunction(t *testing.T) {
	// Discretizing x² and sampling it must reproduce the normalized
	// density 3x² to within the bucket resolution.
	d := Sample1DFunction(func(x float64) float64 { return x * x }, 1024, 4, 0, 1)
	for _, u := range sweep(64) {
		x, pdf, _ := d.Sample(u)
		if math.Abs(pdf-3*x*x) > 0.01 {
			t.Errorf("Sample(%v): pdf = %v at %v, want %v", u, pdf, x, 3*x*x)
		}
	}
}
