// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/shdwdln/go-sampling/mathx"
)

// A PiecewiseLinear2D warps uniform variates on [0,1]² to a function on
// [0,1]² that bilinearly interpolates an nx×ny grid of values, via
// inversion of a marginal distribution over rows followed by a
// conditional distribution over columns.
//
// The distribution may additionally depend on any number of auxiliary
// parameters (e.g. a roughness axis selecting among a family of BSDF
// lobes). In that case the value array holds one nx×ny slice per
// combination of parameter grid points, and queries interpolate
// multilinearly between the bracketing slices for the continuous
// parameter values supplied at call time.
//
// Within a bilinear cell the conditional CDF is quadratic; Sample
// inverts it in closed form, with a separate branch for near-constant
// cells where the quadratic formulation would cancel catastrophically.
//
// A PiecewiseLinear2D is immutable after construction.
type PiecewiseLinear2D struct {
	nx, ny int
	axes   []linearAxis

	// data holds the density values, scaled per slice during
	// construction; its layout is [slice][y][x] with x contiguous.
	data []float64

	// marginalCDF ([slice][y]) and conditionalCDF ([slice][y][x])
	// are the trapezoidally accumulated, normalized CDF tables. They
	// are nil when Linear2DOptions.NoCDF was set.
	marginalCDF    []float64
	conditionalCDF []float64
}

type linearAxis struct {
	values []float64
	stride int
}

// Linear2DOptions configures construction of a PiecewiseLinear2D. The
// zero value builds the CDF tables and normalizes the density, which is
// what sampling requires.
type Linear2DOptions struct {
	// NoNormalize keeps the density at the caller's scale instead of
	// normalizing it to integrate to 1. Samples are still drawn
	// proportionally; reported densities are unnormalized.
	NoNormalize bool

	// NoCDF skips construction of the marginal and conditional CDF
	// tables, saving memory when only Evaluate is needed. Sample and
	// Invert panic on a table built with NoCDF.
	NoCDF bool
}

// NewPiecewiseLinear2D builds a warp for the data on an nx×ny grid
// (row-major, x contiguous, both dimensions at least 2). axisValues
// holds the grid of discretized values for each auxiliary parameter
// axis, outermost axis first; data must then hold one slice per
// combination of axis grid points, with the first axis varying slowest.
// A nil opts is equivalent to the zero Linear2DOptions.
//
// It panics on malformed input: too-small resolution, an empty or
// non-increasing parameter axis, a data length that does not match the
// grid, or options requesting CDFs without normalization.
func NewPiecewiseLinear2D(data []float64, nx, ny int, axisValues [][]float64, opts *Linear2DOptions) *PiecewiseLinear2D {
	if opts == nil {
		opts = &Linear2DOptions{}
	}
	if nx < 2 || ny < 2 {
		panic("distrib: PiecewiseLinear2D resolution must be at least 2x2")
	}
	if !opts.NoCDF && opts.NoNormalize {
		panic("distrib: building CDF tables implies normalization")
	}

	w := &PiecewiseLinear2D{nx: nx, ny: ny, axes: make([]linearAxis, len(axisValues))}
	slices := 1
	for i := len(axisValues) - 1; i >= 0; i-- {
		vals := axisValues[i]
		if len(vals) < 1 {
			panic("distrib: parameter axis must have at least one value")
		}
		for j := 1; j < len(vals); j++ {
			if vals[j] <= vals[j-1] {
				panic("distrib: parameter axis values must be strictly increasing")
			}
		}
		stride := 0
		if len(vals) > 1 {
			stride = slices
		}
		w.axes[i] = linearAxis{values: append([]float64(nil), vals...), stride: stride}
		slices *= len(vals)
	}

	nValues := nx * ny
	if len(data) != slices*nValues {
		panic("distrib: data length does not match grid and parameter axes")
	}
	w.data = make([]float64, len(data))

	if !opts.NoCDF {
		w.marginalCDF = make([]float64, slices*ny)
		w.conditionalCDF = make([]float64, slices*nValues)

		for slice := 0; slice < slices; slice++ {
			base := slice * nValues
			mbase := slice * ny

			// Conditional CDF per row, by trapezoidal
			// accumulation of the piecewise-linear density.
			for y := 0; y < ny; y++ {
				sum := 0.0
				i := base + y*nx
				w.conditionalCDF[i] = 0
				for x := 0; x < nx-1; x++ {
					sum += 0.5 * (data[i] + data[i+1])
					w.conditionalCDF[i+1] = sum
					i++
				}
			}

			// Marginal CDF from each row's total.
			w.marginalCDF[mbase] = 0
			sum := 0.0
			for y := 0; y < ny-1; y++ {
				sum += 0.5 * (w.conditionalCDF[base+(y+1)*nx-1] +
					w.conditionalCDF[base+(y+2)*nx-1])
				w.marginalCDF[mbase+y+1] = sum
			}

			total := w.marginalCDF[mbase+ny-1]
			if total == 0 {
				// Zero slice: substitute the CDF tables a
				// constant density would produce, so sampling
				// degrades to the identity warp; the density
				// stays 0. Each conditional row carries the
				// row integral 1/(ny-1), matching the
				// marginal steps.
				for y := 0; y < ny; y++ {
					for x := 0; x < nx; x++ {
						w.conditionalCDF[base+y*nx+x] =
							float64(x) / float64((nx-1)*(ny-1))
					}
					w.marginalCDF[mbase+y] = float64(y) / float64(ny-1)
				}
				continue
			}

			// Normalize the CDFs and the density by the same
			// total so sampling and evaluation agree.
			norm := 1 / total
			for i := 0; i < nValues; i++ {
				w.conditionalCDF[base+i] *= norm
				w.data[base+i] = data[base+i] * norm
			}
			for y := 0; y < ny; y++ {
				w.marginalCDF[mbase+y] *= norm
			}
		}
		return w
	}

	for slice := 0; slice < slices; slice++ {
		base := slice * nValues
		norm := 1 / float64((nx-1)*(ny-1))
		if !opts.NoNormalize {
			sum := 0.0
			for y := 0; y < ny-1; y++ {
				i := base + y*nx
				for x := 0; x < nx-1; x++ {
					sum += 0.25 * (data[i] + data[i+1] +
						data[i+nx] + data[i+nx+1])
					i++
				}
			}
			if sum == 0 {
				norm = 0
			} else {
				norm = 1 / sum
			}
		}
		for i := 0; i < nValues; i++ {
			w.data[base+i] = data[base+i] * norm
		}
	}
	return w
}

// Resolution returns the grid resolution (nx, ny).
func (w *PiecewiseLinear2D) Resolution() (nx, ny int) { return w.nx, w.ny }

// paramWeights computes, for each parameter axis, the interpolation
// weights of the two bracketing grid points, and the combined offset of
// the lower-corner slice. It panics if params does not supply one value
// per axis.
func (w *PiecewiseLinear2D) paramWeights(params []float64) (pw []float64, sliceOffset int) {
	if len(params) != len(w.axes) {
		panic("distrib: wrong number of parameter values")
	}
	pw = make([]float64, 2*len(w.axes))
	for dim, ax := range w.axes {
		if len(ax.values) == 1 {
			pw[2*dim] = 1
			continue
		}
		idx := mathx.FindInterval(len(ax.values), func(i int) bool {
			return ax.values[i] <= params[dim]
		})
		p0, p1 := ax.values[idx], ax.values[idx+1]
		pw[2*dim+1] = mathx.Clamp((params[dim]-p0)/(p1-p0), 0, 1)
		pw[2*dim] = 1 - pw[2*dim+1]
		sliceOffset += ax.stride * idx
	}
	return pw, sliceOffset
}

// lookup reads data[i], multilinearly blended across the parameter
// axes: for each axis the value is interpolated between the slice at
// the current offset and the next slice along that axis, whose distance
// is stride·size.
func (w *PiecewiseLinear2D) lookup(data []float64, dim, i, size int, pw []float64) float64 {
	if dim == 0 {
		return data[i]
	}
	i1 := i + w.axes[dim-1].stride*size
	v0 := w.lookup(data, dim-1, i, size, pw)
	v1 := w.lookup(data, dim-1, i1, size, pw)
	return v0*pw[2*dim-2] + v1*pw[2*dim-1]
}

// Sample maps a pair of uniform variates to a point in [0,1]²
// distributed proportionally to the bilinearly interpolated density for
// the given parameter values, returning the point and its density.
func (w *PiecewiseLinear2D) Sample(u r2.Vec, params []float64) (p r2.Vec, pdf float64) {
	if w.marginalCDF == nil {
		panic("distrib: PiecewiseLinear2D built with NoCDF cannot sample")
	}
	// Avoid degeneracies at the extrema.
	eps := 1 - mathx.OneMinusEpsilon
	ux := mathx.Clamp(u.X, eps, mathx.OneMinusEpsilon)
	uy := mathx.Clamp(u.Y, eps, mathx.OneMinusEpsilon)

	pw, so := w.paramWeights(params)
	dims := len(w.axes)
	sliceSize := w.nx * w.ny

	// Sample the row from the marginal CDF.
	moffset := so * w.ny
	fetchMarginal := func(idx int) float64 {
		return w.lookup(w.marginalCDF, dims, moffset+idx, w.ny, pw)
	}
	row := mathx.FindInterval(w.ny, func(i int) bool { return fetchMarginal(i) < uy })
	uy -= fetchMarginal(row)

	// Invert the quadratic CDF within the row. r0 and r1 are the row
	// integrals at the cell's bottom and top edges.
	offset := row*w.nx + so*sliceSize
	r0 := w.lookup(w.conditionalCDF, dims, offset+w.nx-1, sliceSize, pw)
	r1 := w.lookup(w.conditionalCDF, dims, offset+2*w.nx-1, sliceSize, pw)
	switch {
	case r0+r1 == 0:
		// Zero row; any position within it has density 0.
		uy = 0.5
	case math.Abs(r0-r1) < 1e-4*(r0+r1):
		uy = 2 * uy / (r0 + r1)
	default:
		uy = (r0 - mathx.SafeSqrt(r0*r0-2*uy*(r0-r1))) / (r0 - r1)
	}

	// Sample the column, interpolating the conditional CDF along the
	// fractional row position.
	ux *= (1-uy)*r0 + uy*r1
	fetchConditional := func(idx int) float64 {
		v0 := w.lookup(w.conditionalCDF, dims, offset+idx, sliceSize, pw)
		v1 := w.lookup(w.conditionalCDF, dims, offset+idx+w.nx, sliceSize, pw)
		return (1-uy)*v0 + uy*v1
	}
	col := mathx.FindInterval(w.nx, func(i int) bool { return fetchConditional(i) < ux })
	cellWidth := fetchConditional(col+1) - fetchConditional(col)
	ux -= fetchConditional(col)
	offset += col

	// Invert the quadratic within the cell.
	v00 := w.lookup(w.data, dims, offset, sliceSize, pw)
	v10 := w.lookup(w.data, dims, offset+1, sliceSize, pw)
	v01 := w.lookup(w.data, dims, offset+w.nx, sliceSize, pw)
	v11 := w.lookup(w.data, dims, offset+w.nx+1, sliceSize, pw)
	c0 := (1-uy)*v00 + uy*v01
	c1 := (1-uy)*v10 + uy*v11
	switch {
	case c0+c1 == 0:
		// Zero cell; the residual maps linearly across the cell's
		// share of the conditional CDF.
		if cellWidth > 0 {
			ux /= cellWidth
		} else {
			ux = 0.5
		}
	case math.Abs(c0-c1) < 1e-4*(c0+c1):
		ux = 2 * ux / (c0 + c1)
	default:
		ux = (c0 - mathx.SafeSqrt(c0*c0-2*ux*(c0-c1))) / (c0 - c1)
	}

	invPatch := float64(w.nx-1) * float64(w.ny-1)
	p = r2.Vec{
		X: (float64(col) + ux) / float64(w.nx-1),
		Y: (float64(row) + uy) / float64(w.ny-1),
	}
	return p, ((1-ux)*c0 + ux*c1) * invPatch
}

// Invert maps a point in [0,1]² back to the pair of uniform variates
// that Sample maps to it for the same parameter values, and also
// returns the density at the point. No search is needed: the cell is
// known from the point, and the CDFs are evaluated directly.
func (w *PiecewiseLinear2D) Invert(p r2.Vec, params []float64) (u r2.Vec, pdf float64) {
	if w.marginalCDF == nil {
		panic("distrib: PiecewiseLinear2D built with NoCDF cannot invert")
	}
	pw, so := w.paramWeights(params)
	dims := len(w.axes)
	sliceSize := w.nx * w.ny

	// Locate the bilinear cell containing p.
	sx := p.X * float64(w.nx-1)
	sy := p.Y * float64(w.ny-1)
	posX := min(int(sx), w.nx-2)
	posY := min(int(sy), w.ny-2)
	sx -= float64(posX)
	sy -= float64(posY)

	offset := posX + posY*w.nx + so*sliceSize
	v00 := w.lookup(w.data, dims, offset, sliceSize, pw)
	v10 := w.lookup(w.data, dims, offset+1, sliceSize, pw)
	v01 := w.lookup(w.data, dims, offset+w.nx, sliceSize, pw)
	v11 := w.lookup(w.data, dims, offset+w.nx+1, sliceSize, pw)

	c0 := (1-sy)*v00 + sy*v01
	c1 := (1-sy)*v10 + sy*v11
	pdf = (1-sx)*c0 + sx*c1

	// Evaluate the in-cell quadratic CDF in x, then shift and scale
	// by the conditional CDF at the cell corner and the row total.
	ux := sx * (c0 + 0.5*sx*(c1-c0))
	cv0 := w.lookup(w.conditionalCDF, dims, offset, sliceSize, pw)
	cv1 := w.lookup(w.conditionalCDF, dims, offset+w.nx, sliceSize, pw)
	ux += (1-sy)*cv0 + sy*cv1

	rowOffset := posY*w.nx + so*sliceSize
	r0 := w.lookup(w.conditionalCDF, dims, rowOffset+w.nx-1, sliceSize, pw)
	r1 := w.lookup(w.conditionalCDF, dims, rowOffset+2*w.nx-1, sliceSize, pw)
	if rTotal := (1-sy)*r0 + sy*r1; rTotal > 0 {
		ux /= rTotal
	}

	// Same for y against the marginal CDF.
	uy := sy * (r0 + 0.5*sy*(r1-r0))
	uy += w.lookup(w.marginalCDF, dims, posY+so*w.ny, w.ny, pw)

	invPatch := float64(w.nx-1) * float64(w.ny-1)
	return r2.Vec{X: ux, Y: uy}, pdf * invPatch
}

// Evaluate returns the bilinearly interpolated density at p for the
// given parameter values, without sampling.
func (w *PiecewiseLinear2D) Evaluate(p r2.Vec, params []float64) float64 {
	pw, so := w.paramWeights(params)
	dims := len(w.axes)
	sliceSize := w.nx * w.ny

	sx := p.X * float64(w.nx-1)
	sy := p.Y * float64(w.ny-1)
	posX := min(int(sx), w.nx-2)
	posY := min(int(sy), w.ny-2)
	w1x := sx - float64(posX)
	w1y := sy - float64(posY)

	index := posX + posY*w.nx + so*sliceSize
	v00 := w.lookup(w.data, dims, index, sliceSize, pw)
	v10 := w.lookup(w.data, dims, index+1, sliceSize, pw)
	v01 := w.lookup(w.data, dims, index+w.nx, sliceSize, pw)
	v11 := w.lookup(w.data, dims, index+w.nx+1, sliceSize, pw)

	invPatch := float64(w.nx-1) * float64(w.ny-1)
	return ((1-w1y)*((1-w1x)*v00+w1x*v10) + w1y*((1-w1x)*v01+w1x*v11)) * invPatch
}
