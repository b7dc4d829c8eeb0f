// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math"

	"github.com/shdwdln/go-sampling/mathx"
)

// SampleDiscrete draws an index distributed proportionally to weights,
// which need not be normalized. It returns the sampled index, its
// discrete probability, and the variate u remapped to [0,1) so that it
// can be reused for a subsequent sampling step without correlation
// artifacts. If weights is empty, the index is -1 with probability 0.
func SampleDiscrete(weights []float64, u float64) (offset int, pmf, uRemapped float64) {
	if len(weights) == 0 {
		return -1, 0, 0
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return -1, 0, 0
	}
	uScaled := u * sum
	// The offset < len-1 guard absorbs roundoff in the running
	// subtraction.
	for offset = 0; offset < len(weights)-1; offset++ {
		if weights[offset] != 0 && uScaled < weights[offset] {
			break
		}
		uScaled -= weights[offset]
	}
	pmf = weights[offset] / sum
	uRemapped = math.Min(uScaled/weights[offset], mathx.OneMinusEpsilon)
	return offset, pmf, uRemapped
}

// BalanceHeuristic computes the balance heuristic weight for multiple
// importance sampling, given the sample counts and densities of two
// sampling techniques.
func BalanceHeuristic(nf int, fPDF float64, ng int, gPDF float64) float64 {
	return (float64(nf) * fPDF) / (float64(nf)*fPDF + float64(ng)*gPDF)
}

// PowerHeuristic computes the power heuristic (exponent 2) weight for
// multiple importance sampling.
func PowerHeuristic(nf int, fPDF float64, ng int, gPDF float64) float64 {
	f, g := float64(nf)*fPDF, float64(ng)*gPDF
	if f*f+g*g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}
