// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"github.com/shdwdln/go-sampling/mathx"
	"gonum.org/v1/gonum/spatial/r2"
)

// Bilinear patch warps. The four weights w give the function value at
// the corners (0,0), (1,0), (0,1), (1,1) of the unit square, in that
// order.

// SampleBilinear draws a point in [0,1)² distributed proportionally to
// the bilinear interpolant of w.
func SampleBilinear(u r2.Vec, w [4]float64) r2.Vec {
	var p r2.Vec
	// Sample the y dimension from the marginal over the two edges,
	// then x from the linear interpolant at the sampled y.
	p.Y = SampleLinear(u.Y, w[0]+w[1], w[2]+w[3])
	p.X = SampleLinear(u.X, mathx.Lerp(p.Y, w[0], w[2]), mathx.Lerp(p.Y, w[1], w[3]))
	return p
}

// BilinearPDF returns the density of SampleBilinear at p. A patch with
// all-zero weights is treated as constant.
func BilinearPDF(p r2.Vec, w [4]float64) float64 {
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return 0
	}
	if w[0]+w[1]+w[2]+w[3] == 0 {
		return 1
	}
	return 4 * bilerp(p, w) / (w[0] + w[1] + w[2] + w[3])
}

// InvertBilinearSample returns the uniform variates that SampleBilinear
// maps to p.
func InvertBilinearSample(p r2.Vec, w [4]float64) r2.Vec {
	invertLinear := func(x, a, b float64) float64 {
		x = mathx.Clamp(x, 0, 1)
		return x * (-a*(x-2) + b*x) / (a + b)
	}
	return r2.Vec{
		X: invertLinear(p.X, mathx.Lerp(p.Y, w[0], w[2]), mathx.Lerp(p.Y, w[1], w[3])),
		Y: invertLinear(p.Y, w[0]+w[1], w[2]+w[3]),
	}
}

func bilerp(p r2.Vec, w [4]float64) float64 {
	return (1-p.X)*(1-p.Y)*w[0] + p.X*(1-p.Y)*w[1] +
		(1-p.X)*p.Y*w[2] + p.X*p.Y*w[3]
}
