// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/shdwdln/go-sampling/mathx"
)

// Sample1DFunction discretizes the continuous function f into nBuckets
// buckets over [min, max] and returns a distribution over the result.
// Each bucket value is the average of f at nSamples equally spaced
// points within the bucket; negative values of f are clamped to 0. It
// panics if nBuckets or nSamples is not positive.
func Sample1DFunction(f func(float64) float64, nBuckets, nSamples int, min, max float64) *PiecewiseConstant1D {
	if nBuckets <= 0 || nSamples <= 0 {
		panic("distrib: bucket and sample counts must be positive")
	}
	values := make([]float64, nBuckets)
	for i := range values {
		accum := 0.0
		for j := 0; j < nSamples; j++ {
			frac := (float64(i) + (float64(j)+0.5)/float64(nSamples)) / float64(nBuckets)
			accum += math.Max(f(mathx.Lerp(frac, min, max)), 0)
		}
		values[i] = accum / float64(nSamples)
	}
	return NewPiecewiseConstant1D(values, min, max)
}

// Sample2DFunction discretizes the continuous function f into an nx×ny
// grid over domain and returns a distribution over the result. Each
// cell value is the average of f over an nSamples×nSamples sub-grid of
// equally spaced points within the cell; negative values of f are
// clamped to 0. It panics if nx, ny, or nSamples is not positive.
func Sample2DFunction(f func(x, y float64) float64, nx, ny, nSamples int, domain Bounds2) *PiecewiseConstant2D {
	if nx <= 0 || ny <= 0 || nSamples <= 0 {
		panic("distrib: resolution and sample counts must be positive")
	}
	values := make([]float64, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			accum := 0.0
			for jy := 0; jy < nSamples; jy++ {
				for jx := 0; jx < nSamples; jx++ {
					fx := (float64(x) + (float64(jx)+0.5)/float64(nSamples)) / float64(nx)
					fy := (float64(y) + (float64(jy)+0.5)/float64(nSamples)) / float64(ny)
					p := domain.Lerp(r2.Vec{X: fx, Y: fy})
					accum += math.Max(f(p.X, p.Y), 0)
				}
			}
			values[y*nx+x] = accum / float64(nSamples*nSamples)
		}
	}
	return NewPiecewiseConstant2D(values, nx, ny, domain)
}
