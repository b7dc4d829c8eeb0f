// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math"

	"github.com/shdwdln/go-sampling/mathx"
	"gonum.org/v1/gonum/spatial/r2"
)

// SampleLinear draws a sample in [0,1) distributed proportionally to
// the linear interpolant between a at 0 and b at 1. a and b must be
// non-negative and not both zero.
//
// The formulation is Muller's, via Heitz, "A Low-Distortion Map Between
// Triangle and Square" framing in EGSR 2020; it avoids catastrophic
// cancellation for a ≈ b.
func SampleLinear(u, a, b float64) float64 {
	if u == 0 && a == 0 {
		return 0
	}
	x := u * (a + b) / (a + math.Sqrt(mathx.Lerp(u, a*a, b*b)))
	return math.Min(x, mathx.OneMinusEpsilon)
}

// LinearPDF returns the density of SampleLinear at x.
func LinearPDF(x, a, b float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	return mathx.Lerp(x, a, b) / ((a + b) / 2)
}

// InvertLinearSample returns the uniform variate that SampleLinear maps
// to x.
func InvertLinearSample(x, a, b float64) float64 {
	return x * (a*(2-x) + b*x) / (a + b)
}

// SampleTent draws a sample from the tent function of the given radius
// centered at the origin.
func SampleTent(u, radius float64) float64 {
	offset, _, u := SampleDiscrete([]float64{0.5, 0.5}, u)
	if offset == 0 {
		return -radius + radius*SampleLinear(u, 0, 1)
	}
	return radius * SampleLinear(u, 1, 0)
}

// TentPDF returns the density of SampleTent at x.
func TentPDF(x, radius float64) float64 {
	if math.Abs(x) >= radius {
		return 0
	}
	return 1/radius - math.Abs(x)/(radius*radius)
}

// InvertTentSample returns the uniform variate that SampleTent maps to
// x.
func InvertTentSample(x, radius float64) float64 {
	if x <= 0 {
		return (1 - InvertLinearSample(-x/radius, 1, 0)) / 2
	}
	return 0.5 + InvertLinearSample(x/radius, 1, 0)/2
}

// SampleQuadratic draws a sample in [0,1) distributed proportionally to
// the quadratic a x² + b x + c, which must be non-negative over [0,1]
// with a positive integral. The returned pdf is the normalized density
// at the sample.
func SampleQuadratic(u, a, b, c float64) (x, pdf float64) {
	norm := a/3 + b/2 + c
	if norm <= 0 {
		panic("warp: SampleQuadratic requires a positive integral over [0,1]")
	}
	// The CDF is cubic; solve CDF(x) = u with a safeguarded Newton
	// iteration whose derivative is the density itself.
	x = mathx.NewtonBisection(0, 1, func(x float64) (float64, float64) {
		cdf := mathx.EvaluatePolynomial(x, 0, c/norm, b/(2*norm), a/(3*norm))
		return cdf - u, QuadraticPDF(x, a, b, c)
	})
	return math.Min(x, mathx.OneMinusEpsilon), QuadraticPDF(x, a, b, c)
}

// QuadraticPDF returns the density of SampleQuadratic at x.
func QuadraticPDF(x, a, b, c float64) float64 {
	if x < 0 || x > 1 {
		return 0
	}
	norm := a/3 + b/2 + c
	return mathx.EvaluatePolynomial(x, c, b, a) / norm
}

// InvertQuadraticSample returns the uniform variate that
// SampleQuadratic maps to x; it is the CDF of the normalized quadratic.
func InvertQuadraticSample(x, a, b, c float64) float64 {
	norm := a/3 + b/2 + c
	return mathx.EvaluatePolynomial(x, 0, c/norm, b/(2*norm), a/(3*norm))
}

// SampleBezierCurve draws a sample in [0,1) distributed proportionally
// to the quadratic Bezier curve with control points cp0, cp1, cp2.
func SampleBezierCurve(u, cp0, cp1, cp2 float64) (x, pdf float64) {
	return SampleQuadratic(u, cp0-2*cp1+cp2, -2*cp0+2*cp1, cp0)
}

// BezierCurvePDF returns the density of SampleBezierCurve at x.
func BezierCurvePDF(x, cp0, cp1, cp2 float64) float64 {
	return QuadraticPDF(x, cp0-2*cp1+cp2, -2*cp0+2*cp1, cp0)
}

// InvertBezierCurveSample returns the uniform variate that
// SampleBezierCurve maps to x.
func InvertBezierCurveSample(x, cp0, cp1, cp2 float64) float64 {
	return InvertQuadraticSample(x, cp0-2*cp1+cp2, -2*cp0+2*cp1, cp0)
}

// SampleSmoothStep draws a sample in [start, end) distributed
// proportionally to the smoothstep function over that interval.
func SampleSmoothStep(u, start, end float64) float64 {
	return mathx.NewtonBisection(start, end, func(x float64) (float64, float64) {
		xp := (x - start) / (end - start)
		return xp * xp * xp * (2 - xp) - u, SmoothStepPDF(x, start, end)
	})
}

// SmoothStepPDF returns the density of SampleSmoothStep at x.
func SmoothStepPDF(x, start, end float64) float64 {
	if x < start || x > end {
		return 0
	}
	return 2 / (end - start) * mathx.SmoothStep(x, start, end)
}

// InvertSmoothStepSample returns the uniform variate that
// SampleSmoothStep maps to x.
func InvertSmoothStepSample(x, start, end float64) float64 {
	xp := (x - start) / (end - start)
	return xp * xp * xp * (2 - xp)
}

// SampleExponential draws a sample from the density c e^(-c x) over
// [0, ∞). c must be positive.
func SampleExponential(u, c float64) float64 {
	if c <= 0 {
		panic("warp: SampleExponential requires c > 0")
	}
	return math.Log(1-u) / -c
}

// ExponentialPDF returns the density of SampleExponential at x.
func ExponentialPDF(x, c float64) float64 {
	if x < 0 {
		return 0
	}
	return c * math.Exp(-c*x)
}

// InvertExponentialSample returns the uniform variate that
// SampleExponential maps to x.
func InvertExponentialSample(x, c float64) float64 {
	return 1 - math.Exp(-c*x)
}

// SampleTrimmedExponential draws a sample from the exponential density
// with rate c restricted to [0, xMax].
func SampleTrimmedExponential(u, c, xMax float64) float64 {
	return math.Log(1-u*(1-math.Exp(-c*xMax))) / -c
}

// TrimmedExponentialPDF returns the density of SampleTrimmedExponential
// at x.
func TrimmedExponentialPDF(x, c, xMax float64) float64 {
	if x < 0 || x > xMax {
		return 0
	}
	return c / (1 - math.Exp(-c*xMax)) * math.Exp(-c*x)
}

// InvertTrimmedExponentialSample returns the uniform variate that
// SampleTrimmedExponential maps to x.
func InvertTrimmedExponentialSample(x, c, xMax float64) float64 {
	return (1 - math.Exp(-c*x)) / (1 - math.Exp(-c*xMax))
}

// InvertLogisticSample is the CDF of the logistic distribution with
// scale s.
func InvertLogisticSample(x, s float64) float64 {
	return 1 / (1 + math.Exp(-x/s))
}

// SampleTrimmedLogistic draws a sample from the logistic density with
// scale s restricted to [a, b], a < b.
func SampleTrimmedLogistic(u, s, a, b float64) float64 {
	u = mathx.Lerp(u, InvertLogisticSample(a, s), InvertLogisticSample(b, s))
	x := -s * math.Log(1/u-1)
	return mathx.Clamp(x, a, b)
}

// TrimmedLogisticPDF returns the density of SampleTrimmedLogistic at x.
func TrimmedLogisticPDF(x, s, a, b float64) float64 {
	if x < a || x > b {
		return 0
	}
	return mathx.Logistic(x, s) / (InvertLogisticSample(b, s) - InvertLogisticSample(a, s))
}

// InvertTrimmedLogisticSample returns the uniform variate that
// SampleTrimmedLogistic maps to x.
func InvertTrimmedLogisticSample(x, s, a, b float64) float64 {
	return (InvertLogisticSample(x, s) - InvertLogisticSample(a, s)) /
		(InvertLogisticSample(b, s) - InvertLogisticSample(a, s))
}

// SampleNormal draws a sample from the normal distribution with mean mu
// and standard deviation sigma by inverting its CDF.
func SampleNormal(u, mu, sigma float64) float64 {
	return mu + math.Sqrt2*sigma*math.Erfinv(2*u-1)
}

// NormalPDF returns the normal density at x.
func NormalPDF(x, mu, sigma float64) float64 {
	return mathx.Gaussian(x, mu, sigma)
}

// InvertNormalSample returns the uniform variate that SampleNormal maps
// to x; it is the normal CDF.
func InvertNormalSample(x, mu, sigma float64) float64 {
	return 0.5 * (1 + math.Erf((x-mu)/(sigma*math.Sqrt2)))
}

// SampleTwoNormal draws a pair of independent normal samples from a
// pair of uniform variates via the Box-Muller transform.
func SampleTwoNormal(u r2.Vec, mu, sigma float64) r2.Vec {
	r := math.Sqrt(-2 * math.Log(1-u.X))
	return r2.Vec{
		X: mu + sigma*r*math.Cos(2*math.Pi*u.Y),
		Y: mu + sigma*r*math.Sin(2*math.Pi*u.Y),
	}
}

// SampleXYZMatching draws a wavelength in [360, 830] nm distributed
// proportionally to the sum of the CIE XYZ matching curves, following
// Radziszewski et al., "An Improved Technique for Full Spectral
// Rendering".
func SampleXYZMatching(u float64) float64 {
	return 538 - math.Atanh(0.8569106254698279-1.8275019724092267*u)*138.88888888888889
}

// XYZMatchingPDF returns the density of SampleXYZMatching at lambda.
func XYZMatchingPDF(lambda float64) float64 {
	if lambda < 360 || lambda > 830 {
		return 0
	}
	return 0.003939804229326285 / mathx.Sqr(math.Cosh(0.0072*(lambda-538)))
}
