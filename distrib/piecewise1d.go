// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"gonum.org/v1/gonum/floats"

	"github.com/shdwdln/go-sampling/mathx"
)

// A PiecewiseConstant1D samples from a piecewise-constant non-negative
// function over an interval [Min, Max], using inversion of its
// cumulative distribution. It is immutable after construction.
type PiecewiseConstant1D struct {
	// Func holds the function values, one per bucket.
	Func []float64

	// CDF holds the normalized cumulative distribution; it has one
	// more entry than Func, starts at 0 and ends at 1.
	CDF []float64

	// Min and Max bound the continuous domain.
	Min, Max float64

	// FuncInt is the integral of the function over [Min, Max]. It
	// is 0 for an identically zero function, in which case sampling
	// is uniform.
	FuncInt float64
}

// NewPiecewiseConstant1D builds a distribution from the n bucket values
// f over [min, max]. It panics if f is empty, max <= min, or any value
// is negative: those are malformed discretized functions, not runtime
// conditions. An identically zero f is valid and samples uniformly with
// pdf 0.
func NewPiecewiseConstant1D(f []float64, min, max float64) *PiecewiseConstant1D {
	if len(f) == 0 {
		panic("distrib: empty function")
	}
	if max <= min {
		panic("distrib: max must be greater than min")
	}
	d := &PiecewiseConstant1D{
		Func: append([]float64(nil), f...),
		CDF:  make([]float64, len(f)+1),
		Min:  min,
		Max:  max,
	}

	// Integrate the step function: each bucket contributes its value
	// times the bucket width.
	n := len(f)
	for _, v := range f {
		if v < 0 {
			panic("distrib: negative function value")
		}
	}
	copy(d.CDF[1:], f)
	floats.Scale((max-min)/float64(n), d.CDF[1:])
	floats.CumSum(d.CDF[1:], d.CDF[1:])

	d.FuncInt = d.CDF[n]
	if d.FuncInt == 0 {
		// Zero function: substitute the uniform ramp so sampling
		// stays well-defined.
		for i := 1; i <= n; i++ {
			d.CDF[i] = float64(i) / float64(n)
		}
	} else {
		floats.Scale(1/d.FuncInt, d.CDF)
	}
	return d
}

// Size returns the number of buckets.
func (d *PiecewiseConstant1D) Size() int { return len(d.Func) }

// Sample maps the uniform variate u to a point in [Min, Max]
// distributed proportionally to the function. It returns the point, the
// value of the normalized density there (0 if the function is
// identically zero), and the index of the bucket the point fell in.
func (d *PiecewiseConstant1D) Sample(u float64) (x, pdf float64, offset int) {
	// Find the CDF segment bracketing u.
	offset = mathx.FindInterval(len(d.CDF), func(i int) bool { return d.CDF[i] <= u })

	// Interpolate within the segment.
	du := u - d.CDF[offset]
	if delta := d.CDF[offset+1] - d.CDF[offset]; delta > 0 {
		du /= delta
	}

	if d.FuncInt > 0 {
		pdf = d.Func[offset] / d.FuncInt
	}
	x = mathx.Lerp((float64(offset)+du)/float64(d.Size()), d.Min, d.Max)
	return x, pdf, offset
}

// Invert maps a point x in [Min, Max] back to the uniform variate that
// Sample maps to it. It reports ok == false for x outside the domain.
func (d *PiecewiseConstant1D) Invert(x float64) (u float64, ok bool) {
	if x < d.Min || x > d.Max {
		return 0, false
	}
	c := (x - d.Min) / (d.Max - d.Min) * float64(len(d.Func))
	offset := mathx.ClampInt(int(c), 0, len(d.Func)-1)
	delta := c - float64(offset)
	return mathx.Lerp(delta, d.CDF[offset], d.CDF[offset+1]), true
}
