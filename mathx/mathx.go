// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mathx implements special functions and numeric helpers shared by the
// sampling packages.
package mathx // import "github.com/shdwdln/go-sampling/mathx"

import "math"

// OneMinusEpsilon is the largest float64 strictly less than 1. Samplers
// clamp to it so that values derived from uniform variates in [0,1) stay
// in [0,1).
var OneMinusEpsilon = math.Nextafter(1, 0)

// Lerp returns the linear interpolation between a and b at t.
func Lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// Clamp returns x clamped to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt returns x clamped to [lo, hi].
func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sqr returns x².
func Sqr(x float64) float64 { return x * x }

// SafeSqrt returns √x, treating slightly negative arguments that arise
// from rounding as 0.
func SafeSqrt(x float64) float64 {
	return math.Sqrt(math.Max(0, x))
}

// EvaluatePolynomial evaluates the polynomial with coefficients c
// (constant term first) at t using Horner's method.
func EvaluatePolynomial(t float64, c ...float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*t + c[i]
	}
	return v
}

// DifferenceOfProducts returns a*b - c*d, compensated with a fused
// multiply-add so that catastrophic cancellation is avoided when the
// two products are nearly equal.
func DifferenceOfProducts(a, b, c, d float64) float64 {
	cd := c * d
	diff := math.FMA(a, b, -cd)
	err := math.FMA(-c, d, cd)
	return diff + err
}

// Gaussian returns the normal density with mean mu and standard
// deviation sigma at x.
func Gaussian(x, mu, sigma float64) float64 {
	return 1 / math.Sqrt(2*math.Pi*sigma*sigma) *
		math.Exp(-Sqr(x-mu) / (2 * sigma * sigma))
}

// Logistic returns the density of the logistic distribution with scale s
// at x.
func Logistic(x, s float64) float64 {
	x = math.Abs(x)
	return math.Exp(-x/s) / (s * Sqr(1+math.Exp(-x/s)))
}

// SmoothStep returns the value of the cubic Hermite interpolant that is
// 0 for x <= a, 1 for x >= b, and smooth in between.
func SmoothStep(x, a, b float64) float64 {
	if a == b {
		if x < a {
			return 0
		}
		return 1
	}
	t := Clamp((x-a)/(b-a), 0, 1)
	return t * t * (3 - 2*t)
}

// FindInterval returns the index i in [0, n-2] such that pred(i) is true
// and pred(i+1) is false, assuming pred is monotonically decreasing over
// [0, n). It is used to locate the CDF bucket bracketing a uniform
// variate: pred(i) typically reports cdf[i] <= u.
//
// The result is clamped to [0, n-2] so that callers may always access
// both i and i+1, even for out-of-range queries caused by rounding.
func FindInterval(n int, pred func(int) bool) int {
	size, first := n-2, 1
	for size > 0 {
		half := size >> 1
		middle := first + half
		if pred(middle) {
			first = middle + 1
			size -= half + 1
		} else {
			size = half
		}
	}
	return ClampInt(first-1, 0, n-2)
}

// NewtonBisection finds the zero of f on the bracketing interval
// [x0, x1]. f must return the function value and its derivative; f(x0)
// and f(x1) must have opposite signs (or be zero). Newton steps are
// taken when they stay inside the current bracket and bisection
// otherwise, so convergence is guaranteed.
func NewtonBisection(x0, x1 float64, f func(float64) (fx, dfx float64)) float64 {
	const xEps, fEps = 1e-10, 1e-10

	fx0, _ := f(x0)
	fx1, _ := f(x1)
	if fx0 == 0 {
		return x0
	}
	if fx1 == 0 {
		return x1
	}
	startIsNeg := fx0 < 0
	if startIsNeg == (fx1 < 0) {
		panic("mathx: NewtonBisection called with non-bracketing interval")
	}

	xMid := (x0 + x1) / 2
	for {
		fMid, dfMid := f(xMid)
		if startIsNeg == (fMid < 0) {
			x0 = xMid
		} else {
			x1 = xMid
		}
		if x1-x0 < xEps || math.Abs(fMid) < fEps {
			return xMid
		}

		// Newton step, falling back to bisection when it leaves
		// the bracket.
		xMid -= fMid / dfMid
		if !(xMid > x0 && xMid < x1) {
			xMid = (x0 + x1) / 2
		}
	}
}
