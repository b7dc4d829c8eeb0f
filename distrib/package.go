// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// distrib implements samplable distributions built from discretized
// non-negative functions.
//
// Every structure in this package is constructed once from
// caller-supplied data and is immutable thereafter, so it is safe to
// share across any number of concurrently sampling goroutines without
// synchronization. Construction panics on malformed input (negative
// values, mismatched lengths, empty data); degenerate but well-formed
// input, such as an identically zero function, yields a defined uniform
// fallback rather than an error.
package distrib // import "github.com/shdwdln/go-sampling/distrib"

import "gonum.org/v1/gonum/spatial/r2"

// A Bounds2 is an axis-aligned rectangle, the continuous domain of a 2D
// distribution.
type Bounds2 struct {
	Min, Max r2.Vec
}

// UnitSquare is the default domain [0,1]².
var UnitSquare = Bounds2{Max: r2.Vec{X: 1, Y: 1}}

// Area returns the area of b.
func (b Bounds2) Area() float64 {
	return (b.Max.X - b.Min.X) * (b.Max.Y - b.Min.Y)
}

// Offset returns the position of p relative to b, with (0,0) at b.Min
// and (1,1) at b.Max.
func (b Bounds2) Offset(p r2.Vec) r2.Vec {
	o := r2.Sub(p, b.Min)
	if b.Max.X > b.Min.X {
		o.X /= b.Max.X - b.Min.X
	}
	if b.Max.Y > b.Min.Y {
		o.Y /= b.Max.Y - b.Min.Y
	}
	return o
}

// Lerp linearly interpolates between b's corners: Lerp({0,0}) is b.Min
// and Lerp({1,1}) is b.Max.
func (b Bounds2) Lerp(t r2.Vec) r2.Vec {
	return r2.Vec{
		X: (1-t.X)*b.Min.X + t.X*b.Max.X,
		Y: (1-t.Y)*b.Min.Y + t.Y*b.Max.Y,
	}
}
