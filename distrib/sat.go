// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/shdwdln/go-sampling/mathx"
)

// A SummedAreaTable stores 2D prefix sums of a function discretized
// over [0,1]², allowing the sum over any axis-aligned rectangle to be
// computed in constant time. Sums are accumulated in double precision
// so the relative error stays small even for large tables. It is
// immutable after construction.
type SummedAreaTable struct {
	// sum[y][x] is the integral of the function over
	// [0,(x+1)/nx] × [0,(y+1)/ny]; index 0 stands for a virtual
	// zero boundary handled in lookup.
	sum    *mat.Dense
	nx, ny int
}

// NewSummedAreaTable builds a table from the nx×ny values in data, laid
// out row-major with x contiguous. Values are normalized by the bucket
// area so that Sum over the full domain is the function's average. It
// panics if len(data) != nx*ny.
func NewSummedAreaTable(data []float64, nx, ny int) *SummedAreaTable {
	if len(data) != nx*ny {
		panic("distrib: data length does not match nx*ny")
	}
	t := &SummedAreaTable{sum: mat.NewDense(ny, nx, nil), nx: nx, ny: ny}
	n := float64(nx * ny)
	f := func(x, y int) float64 { return data[y*nx+x] / n }

	t.sum.Set(0, 0, f(0, 0))
	for x := 1; x < nx; x++ {
		t.sum.Set(0, x, f(x, 0)+t.sum.At(0, x-1))
	}
	for y := 1; y < ny; y++ {
		t.sum.Set(y, 0, f(0, y)+t.sum.At(y-1, 0))
	}
	for y := 1; y < ny; y++ {
		for x := 1; x < nx; x++ {
			t.sum.Set(y, x, f(x, y)+t.sum.At(y, x-1)+t.sum.At(y-1, x)-t.sum.At(y-1, x-1))
		}
	}
	return t
}

// Sum returns the integral of the normalized function over the
// rectangle extent, whose corners are continuous coordinates in [0,1]².
// Small negative values caused by cancellation are clamped to 0.
func (t *SummedAreaTable) Sum(extent Bounds2) float64 {
	s := (t.lookup(extent.Max.X, extent.Max.Y) - t.lookup(extent.Min.X, extent.Max.Y)) +
		(t.lookup(extent.Min.X, extent.Min.Y) - t.lookup(extent.Max.X, extent.Min.Y))
	return math.Max(s, 0)
}

// Average returns the average of the normalized function over extent.
func (t *SummedAreaTable) Average(extent Bounds2) float64 {
	return t.Sum(extent) / extent.Area()
}

// lookup evaluates the prefix sum at a continuous position using
// bilinear interpolation between the four surrounding table entries.
func (t *SummedAreaTable) lookup(x, y float64) float64 {
	x *= float64(t.nx)
	y *= float64(t.ny)
	x0, y0 := int(x), int(y)
	v00 := t.lookupInt(x0, y0)
	v10 := t.lookupInt(x0+1, y0)
	v01 := t.lookupInt(x0, y0+1)
	v11 := t.lookupInt(x0+1, y0+1)
	dx, dy := x-float64(x0), y-float64(y0)
	return (1-dx)*(1-dy)*v00 + (1-dx)*dy*v01 + dx*(1-dy)*v10 + dx*dy*v11
}

func (t *SummedAreaTable) lookupInt(x, y int) float64 {
	// Index 0 is the virtual zero boundary.
	if x == 0 || y == 0 {
		return 0
	}
	x = min(x-1, t.nx-1)
	y = min(y-1, t.ny-1)
	return t.sum.At(y, x)
}

// satBisectionLimit caps the bisection loop in sampleBisect. The
// bracket halves each iteration, so for any query wider than a few ulps
// the loop terminates long before the cap; the cap guarantees
// termination for adversarial rectangles aligned almost exactly with a
// cell boundary.
const satBisectionLimit = 64

// A SATPiecewiseConstant2D importance-samples a piecewise-constant 2D
// function restricted to arbitrary axis-aligned sub-rectangles of
// [0,1]², using repeated bisection against a summed-area table. Unlike
// PiecewiseConstant2D it needs no per-row tables and supports querying
// any sub-region, at the cost of O(log n) Sum evaluations per sample.
// It is immutable after construction.
type SATPiecewiseConstant2D struct {
	sat    *SummedAreaTable
	fn     []float64
	nx, ny int
}

// NewSATPiecewiseConstant2D builds a sampler from the nx×ny values in
// data, laid out row-major with x contiguous.
func NewSATPiecewiseConstant2D(data []float64, nx, ny int) *SATPiecewiseConstant2D {
	return &SATPiecewiseConstant2D{
		sat: NewSummedAreaTable(data, nx, ny),
		fn:  append([]float64(nil), data...),
		nx:  nx,
		ny:  ny,
	}
}

// Sample maps a pair of uniform variates to a point inside b
// distributed proportionally to the function restricted to b. It
// reports ok == false, with pdf 0, when the function sums to zero over
// b (e.g. a degenerate or fully dark query region); the caller must
// treat that as the absence of importance-sampling information.
func (d *SATPiecewiseConstant2D) Sample(u r2.Vec, b Bounds2) (p r2.Vec, pdf float64, ok bool) {
	sumb := d.sat.Sum(b)
	if sumb == 0 {
		return r2.Vec{}, 0, false
	}

	// Marginal in x: invert the normalized sum over [bMin.x, x].
	px := func(x float64) float64 {
		bx := b
		bx.Max.X = x
		return d.sat.Sum(bx) / sumb
	}
	p.X = sampleBisect(px, u.X, b.Min.X, b.Max.X, d.nx)

	// Conditional in y, restricted to the column slab containing
	// p.X.
	by := Bounds2{
		Min: r2.Vec{X: math.Floor(p.X*float64(d.nx)) / float64(d.nx), Y: b.Min.Y},
		Max: r2.Vec{X: math.Ceil(p.X*float64(d.nx)) / float64(d.nx), Y: b.Max.Y},
	}
	if by.Min.X == by.Max.X {
		by.Max.X += 1 / float64(d.nx)
	}
	sumby := d.sat.Sum(by)
	if sumby <= 0 {
		// Happens for very narrow initial bounds, e.g. a query
		// region collapsed to the plane of a portal.
		return r2.Vec{}, 0, false
	}
	py := func(y float64) float64 {
		byy := by
		byy.Max.Y = y
		return d.sat.Sum(byy) / sumby
	}
	p.Y = sampleBisect(py, u.Y, b.Min.Y, b.Max.Y, d.ny)

	return p, d.PDF(p, b), true
}

// PDF returns the density at p of sampling restricted to b, or 0 if the
// function sums to zero over b.
func (d *SATPiecewiseConstant2D) PDF(p r2.Vec, b Bounds2) float64 {
	sum := d.sat.Sum(b)
	if sum == 0 {
		return 0
	}
	return d.eval(p) / sum
}

func (d *SATPiecewiseConstant2D) eval(p r2.Vec) float64 {
	ix := min(int(p.X*float64(d.nx)), d.nx-1)
	iy := min(int(p.Y*float64(d.ny)), d.ny-1)
	return d.fn[iy*d.nx+ix]
}

// sampleBisect inverts the monotonic CDF cdf over [lo, hi] at u by
// bisection, narrowing the bracket until it spans at most one of n grid
// cells, then solving the remaining piecewise-constant segment with a
// single linear interpolation.
func sampleBisect(cdf func(float64) float64, u, lo, hi float64, n int) float64 {
	for i := 0; math.Ceil(float64(n)*hi)-math.Floor(float64(n)*lo) > 1; i++ {
		if i == satBisectionLimit {
			break
		}
		mid := (lo + hi) / 2
		if cdf(mid) > u {
			hi = mid
		} else {
			lo = mid
		}
	}

	clo, chi := cdf(lo), cdf(hi)
	if chi <= clo {
		return (lo + hi) / 2
	}
	t := (u - clo) / (chi - clo)
	return mathx.Clamp(mathx.Lerp(t, lo, hi), lo, hi)
}
