// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
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

func TestLinearRoundTrip(t *testing.T) {
	for _, ab := range [][2]float64{{1, 1}, {0, 1}, {1, 0}, {0.5, 2.5}} {
		a, b := ab[0], ab[1]
		for _, u := range sweep(128) {
			x := SampleLinear(u, a, b)
			if x < 0 || x > 1 {
				t.Fatalf("SampleLinear(%v, %v, %v) = %v out of range", u, a, b, x)
			}
			if got := InvertLinearSample(x, a, b); !aeq(u, got) {
				t.Errorf("InvertLinearSample(SampleLinear(%v)) = %v, a=%v b=%v", u, got, a, b)
			}
		}
	}
}

func TestLinearPDFNormalized(t *testing.T) {
	const n = 1024
	xs, ps := make([]float64, n+1), make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = float64(i) / n
		ps[i] = LinearPDF(xs[i], 0.5, 2.5)
	}
	if got := integrate.Trapezoidal(xs, ps); !aeq(1, got) {
		t.Errorf("LinearPDF integrates to %v, want 1", got)
	}
}

func TestTentRoundTrip(t *testing.T) {
	const r = 2.5
	for _, u := range sweep(128) {
		x := SampleTent(u, r)
		if x < -r || x > r {
			t.Fatalf("SampleTent(%v, %v) = %v out of range", u, r, x)
		}
		if got := InvertTentSample(x, r); !aeq(u, got) {
			t.Errorf("InvertTentSample(SampleTent(%v)) = %v", u, got)
		}
	}
}

func TestTentZeroVariate(t *testing.T) {
	// u = 0 selects the left half, whose linear lobe rises from 0; the
	// warp must map it to the tent's left edge, not NaN.
	const r = 2.5
	x := SampleTent(0, r)
	if math.IsNaN(x) {
		t.Fatalf("SampleTent(0, %v) = NaN", r)
	}
	if !aeq(-r, x) {
		t.Errorf("SampleTent(0, %v) = %v, want %v", r, x, -r)
	}
	if got := SampleLinear(0, 0, 1); got != 0 {
		t.Errorf("SampleLinear(0, 0, 1) = %v, want 0", got)
	}
}

func TestQuadraticRoundTrip(t *testing.T) {
	// A convex and a concave quadratic, both positive on [0, 1].
	for _, c := range [][3]float64{{2, -2, 1}, {-1.5, 1, 0.75}} {
		a, b, cc := c[0], c[1], c[2]
		for _, u := range sweep(64) {
			x, pdf := SampleQuadratic(u, a, b, cc)
			if !aeq(pdf, QuadraticPDF(x, a, b, cc)) {
				t.Errorf("SampleQuadratic pdf = %v, QuadraticPDF = %v", pdf, QuadraticPDF(x, a, b, cc))
			}
			if got := InvertQuadraticSample(x, a, b, cc); !aeq(u, got) {
				t.Errorf("InvertQuadraticSample(SampleQuadratic(%v)) = %v", u, got)
			}
		}
	}
}

func TestBezierCurveRoundTrip(t *testing.T) {
	for _, u := range sweep(64) {
		x, pdf := SampleBezierCurve(u, 0.5, 2, 1)
		if !aeq(pdf, BezierCurvePDF(x, 0.5, 2, 1)) {
			t.Errorf("SampleBezierCurve pdf = %v, BezierCurvePDF = %v", pdf, BezierCurvePDF(x, 0.5, 2, 1))
		}
		if got := InvertBezierCurveSample(x, 0.5, 2, 1); !aeq(u, got) {
			t.Errorf("InvertBezierCurveSample(SampleBezierCurve(%v)) = %v", u, got)
		}
	}
}

func TestSmoothStepRoundTrip(t *testing.T) {
	const start, end = 1, 3
	for _, u := range sweep(128) {
		x := SampleSmoothStep(u, start, end)
		if x < start || x > end {
			t.Fatalf("SampleSmoothStep(%v) = %v out of range", u, x)
		}
		if got := InvertSmoothStepSample(x, start, end); !aeq(u, got) {
			t.Errorf("InvertSmoothStepSample(SampleSmoothStep(%v)) = %v", u, got)
		}
	}
}

func TestSmoothStepPDFNormalized(t *testing.T) {
	const n = 1024
	xs, ps := make([]float64, n+1), make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = 1 + 2*float64(i)/n
		ps[i] = SmoothStepPDF(xs[i], 1, 3)
	}
	if got := integrate.Trapezoidal(xs, ps); !aeq(1, got) {
		t.Errorf("SmoothStepPDF integrates to %v, want 1", got)
	}
}

func TestExponentialRoundTrip(t *testing.T) {
	const c = 2
	for _, u := range sweep(128) {
		x := SampleExponential(u, c)
		if x < 0 {
			t.Fatalf("SampleExponential(%v, %v) = %v negative", u, c, x)
		}
		if got := InvertExponentialSample(x, c); !aeq(u, got) {
			t.Errorf("InvertExponentialSample(SampleExponential(%v)) = %v", u, got)
		}
	}
}

func TestExponentialMatchesDistuv(t *testing.T) {
	e := distuv.Exponential{Rate: 2}
	for _, x := range []float64{0.1, 0.5, 1, 2.5} {
		if got := ExponentialPDF(x, 2); !aeq(e.Prob(x), got) {
			t.Errorf("ExponentialPDF(%v, 2) = %v, want %v", x, got, e.Prob(x))
		}
	}
}

func TestTrimmedExponentialRoundTrip(t *testing.T) {
	const c, xMax = 1.5, 2
	for _, u := range sweep(128) {
		x := SampleTrimmedExponential(u, c, xMax)
		if x < 0 || x > xMax {
			t.Fatalf("SampleTrimmedExponential(%v) = %v out of range", u, x)
		}
		if got := InvertTrimmedExponentialSample(x, c, xMax); !aeq(u, got) {
			t.Errorf("InvertTrimmedExponentialSample(SampleTrimmedExponential(%v)) = %v", u, got)
		}
	}
}

func TestTrimmedLogisticRoundTrip(t *testing.T) {
	const s, a, b = 0.5, -1, 1
	for _, u := range sweep(128) {
		x := SampleTrimmedLogistic(u, s, a, b)
		if x < a || x > b {
			t.Fatalf("SampleTrimmedLogistic(%v) = %v out of range", u, x)
		}
		if got := InvertTrimmedLogisticSample(x, s, a, b); !aeq(u, got) {
			t.Errorf("InvertTrimmedLogisticSample(SampleTrimmedLogistic(%v)) = %v", u, got)
		}
	}
}

func TestTrimmedLogisticPDFNormalized(t *testing.T) {
	const n = 2048
	xs, ps := make([]float64, n+1), make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = -1 + 2*float64(i)/n
		ps[i] = TrimmedLogisticPDF(xs[i], 0.5, -1, 1)
	}
	if got := integrate.Trapezoidal(xs, ps); !aeq(1, got) {
		t.Errorf("TrimmedLogisticPDF integrates to %v, want 1", got)
	}
}

func TestNormalRoundTrip(t *testing.T) {
	const mu, sigma = 1, 2
	for _, u := range sweep(128) {
		x := SampleNormal(u, mu, sigma)
		if got := InvertNormalSample(x, mu, sigma); !aeq(u, got) {
			t.Errorf("InvertNormalSample(SampleNormal(%v)) = %v", u, got)
		}
	}
}

func TestNormalTailRoundTrip(t *testing.T) {
	// Quantiles deep in the tails; the inverse CDF must reach past
	// ±4σ rather than flattening out.
	for _, u := range []float64{1e-9, 1e-6, 1 - 1e-6} {
		x := SampleNormal(u, 0, 1)
		if got := InvertNormalSample(x, 0, 1); math.Abs(got-u)/u > 1e-6 {
			t.Errorf("InvertNormalSample(SampleNormal(%v)) = %v", u, got)
		}
	}
	if x := SampleNormal(1e-9, 0, 1); x > -5.9 {
		t.Errorf("SampleNormal(1e-9, 0, 1) = %v, want the 1e-9 quantile near -6", x)
	}
}

func TestNormalPDFMatchesDistuv(t *testing.T) {
	n := distuv.Normal{Mu: 1, Sigma: 2}
	for _, x := range []float64{-3, -1, 0, 1, 2, 5} {
		if got := NormalPDF(x, 1, 2); !aeq(n.Prob(x), got) {
			t.Errorf("NormalPDF(%v, 1, 2) = %v, want %v", x, got, n.Prob(x))
		}
	}
}

func TestXYZMatchingPDFNormalized(t *testing.T) {
	const n = 4096
	xs, ps := make([]float64, n+1), make([]float64, n+1)
	for i := 0; i <= n; i++ {
		xs[i] = 360 + 470*float64(i)/n
		ps[i] = XYZMatchingPDF(xs[i])
	}
	got := integrate.Trapezoidal(xs, ps)
	if math.Abs(got-1) > 1e-3 {
		t.Errorf("XYZMatchingPDF integrates to %v, want 1", got)
	}
}

func TestSampleXYZMatchingRange(t *testing.T) {
	for _, u := range sweep(256) {
		lambda := SampleXYZMatching(u)
		if lambda < 360 || lambda > 830 {
			t.Errorf("SampleXYZMatching(%v) = %v outside visible range", u, lambda)
		}
	}
}
