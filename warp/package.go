// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// warp implements closed-form warps between uniform random variates and
// samples drawn proportionally to simple analytic shapes.
//
// Every warp in this package follows the same triple contract: a
// SampleX function maps one or two uniform variates in [0,1) to a point
// distributed proportionally to the shape and reports the probability
// density of that point; an XPDF function evaluates the density at an
// arbitrary point (zero outside the shape's support); and an
// InvertXSample function maps a point back to the uniform variates that
// would have produced it, so that InvertXSample(SampleX(u)) == u up to
// floating-point tolerance. The inverses make warps composable with
// techniques that need to reuse or re-stratify the underlying variates.
//
// All functions are pure and safe for concurrent use.
package warp // import "github.com/shdwdln/go-sampling/warp"

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// sphericalDirection converts spherical coordinates to a unit vector.
func sphericalDirection(sinTheta, cosTheta, phi float64) r3.Vec {
	return r3.Vec{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}

// sphericalPhi returns the azimuth of v in [0, 2π).
func sphericalPhi(v r3.Vec) float64 {
	p := math.Atan2(v.Y, v.X)
	if p < 0 {
		p += 2 * math.Pi
	}
	return p
}

// angleBetween returns the angle between unit vectors a and b. It is
// accurate for nearly parallel and nearly opposite vectors, where
// acos(a·b) loses half the mantissa.
func angleBetween(a, b r3.Vec) float64 {
	if r3.Dot(a, b) < 0 {
		return math.Pi - 2*math.Asin(r3.Norm(r3.Add(a, b))/2)
	}
	return 2 * math.Asin(r3.Norm(r3.Sub(b, a))/2)
}

// gramSchmidt returns v with its component along unit vector w removed.
func gramSchmidt(v, w r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, w), w))
}

// coordinateSystem returns two unit vectors that form an orthonormal
// basis with unit vector v, via the branchless construction of Duff et
// al. (2017).
func coordinateSystem(v r3.Vec) (t, b r3.Vec) {
	sign := math.Copysign(1, v.Z)
	a := -1 / (sign + v.Z)
	c := v.X * v.Y * a
	t = r3.Vec{X: 1 + sign*v.X*v.X*a, Y: sign * c, Z: -sign * v.X}
	b = r3.Vec{X: c, Y: sign + v.Y*v.Y*a, Z: -v.Y}
	return t, b
}
