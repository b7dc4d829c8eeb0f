// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/shdwdln/go-sampling/mathx"
)

// A PiecewiseConstant2D samples from a piecewise-constant non-negative
// function over a rectangular domain. It composes one conditional 1D
// distribution per row with a marginal 1D distribution over the row
// integrals, so a 2D sample costs two 1D inversions. It is immutable
// after construction.
type PiecewiseConstant2D struct {
	domain      Bounds2
	conditional []*PiecewiseConstant1D // distribution of x within each row
	marginal    *PiecewiseConstant1D   // distribution over rows
}

// NewPiecewiseConstant2D builds a distribution from the nx×ny values in
// data, laid out row-major with x contiguous, over the given domain. It
// panics if len(data) != nx*ny or the domain is degenerate.
func NewPiecewiseConstant2D(data []float64, nx, ny int, domain Bounds2) *PiecewiseConstant2D {
	if len(data) != nx*ny {
		panic("distrib: data length does not match nx*ny")
	}
	d := &PiecewiseConstant2D{
		domain:      domain,
		conditional: make([]*PiecewiseConstant1D, ny),
	}
	for y := 0; y < ny; y++ {
		d.conditional[y] = NewPiecewiseConstant1D(data[y*nx:(y+1)*nx], domain.Min.X, domain.Max.X)
	}
	marginalFunc := make([]float64, ny)
	for y := 0; y < ny; y++ {
		marginalFunc[y] = d.conditional[y].FuncInt
	}
	d.marginal = NewPiecewiseConstant1D(marginalFunc, domain.Min.Y, domain.Max.Y)
	return d
}

// Sample maps a pair of uniform variates to a point in the domain
// distributed proportionally to the function, returning the point and
// its joint density. The marginal is sampled on u.Y to pick a row, then
// that row's conditional is sampled on u.X; the joint density is the
// product of the two 1D densities.
func (d *PiecewiseConstant2D) Sample(u r2.Vec) (p r2.Vec, pdf float64) {
	d1, pdf1, y := d.marginal.Sample(u.Y)
	d0, pdf0, _ := d.conditional[y].Sample(u.X)
	return r2.Vec{X: d0, Y: d1}, pdf0 * pdf1
}

// PDF returns the normalized joint density at p, which must lie within
// the domain.
func (d *PiecewiseConstant2D) PDF(p r2.Vec) float64 {
	o := d.domain.Offset(p)
	nx := d.conditional[0].Size()
	ny := d.marginal.Size()
	ix := mathx.ClampInt(int(o.X*float64(nx)), 0, nx-1)
	iy := mathx.ClampInt(int(o.Y*float64(ny)), 0, ny-1)
	if d.marginal.FuncInt == 0 {
		return 0
	}
	return d.conditional[iy].Func[ix] / d.marginal.FuncInt
}

// Invert maps a point in the domain back to the pair of uniform
// variates that Sample maps to it. It reports ok == false for points
// outside the domain.
func (d *PiecewiseConstant2D) Invert(p r2.Vec) (u r2.Vec, ok bool) {
	mInv, ok := d.marginal.Invert(p.Y)
	if !ok {
		return r2.Vec{}, false
	}
	o := (p.Y - d.domain.Min.Y) / (d.domain.Max.Y - d.domain.Min.Y)
	if o < 0 || o > 1 {
		return r2.Vec{}, false
	}
	iy := mathx.ClampInt(int(o*float64(len(d.conditional))), 0, len(d.conditional)-1)
	cInv, ok := d.conditional[iy].Invert(p.X)
	if !ok {
		return r2.Vec{}, false
	}
	return r2.Vec{X: cInv, Y: mInv}, true
}

// Domain returns the continuous domain rectangle.
func (d *PiecewiseConstant2D) Domain() Bounds2 { return d.domain }

// Resolution returns the grid resolution (nx, ny).
func (d *PiecewiseConstant2D) Resolution() (nx, ny int) {
	return d.conditional[0].Size(), d.marginal.Size()
}

// Integral returns the integral of the function over the domain.
func (d *PiecewiseConstant2D) Integral() float64 { return d.marginal.FuncInt }
