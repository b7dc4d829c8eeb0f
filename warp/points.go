// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

var radicalInversePrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}

// RadicalInverse returns the radical inverse of a in the base given by
// the baseIndex-th prime (0 is base 2, 1 is base 3, ...).
func RadicalInverse(baseIndex int, a uint64) float64 {
	base := radicalInversePrimes[baseIndex]
	invBase := 1 / float64(base)
	reversed := uint64(0)
	invBaseM := 1.0
	for a != 0 {
		next := a / base
		digit := a - next*base
		reversed = reversed*base + digit
		invBaseM *= invBase
		a = next
	}
	return float64(reversed) * invBaseM
}

// Hammersley2D returns the n-point 2D Hammersley set, a deterministic
// low-discrepancy point set that covers [0,1)² far more evenly than
// independent uniform points. It is useful for exercising warps over
// their whole domain, e.g. in round-trip tests.
func Hammersley2D(n int) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		pts[i] = r2.Vec{X: float64(i) / float64(n), Y: RadicalInverse(0, uint64(i))}
	}
	return pts
}

// Stratified1D returns n jittered samples, one per equal-width stratum
// of [0,1).
func Stratified1D(n int, rng *rand.Rand) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = (float64(i) + rng.Float64()) / float64(n)
	}
	return xs
}

// Stratified2D returns nx×ny jittered samples, one per cell of an
// nx×ny grid over [0,1)².
func Stratified2D(nx, ny int, rng *rand.Rand) []r2.Vec {
	pts := make([]r2.Vec, 0, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			pts = append(pts, r2.Vec{
				X: (float64(x) + rng.Float64()) / float64(nx),
				Y: (float64(y) + rng.Float64()) / float64(ny),
			})
		}
	}
	return pts
}
