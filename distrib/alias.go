// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package distrib

import (
	"math"

	"github.com/shdwdln/go-sampling/mathx"
)

// An AliasTable samples from a fixed discrete weighted set in O(1) per
// sample, after an O(n) construction pass. It has no inverse; it is a
// pure forward sampler. It is immutable after construction.
type AliasTable struct {
	bins []aliasBin
}

type aliasBin struct {
	// q is the probability of keeping this bin on a direct hit
	// rather than redirecting to alias.
	q     float64
	pmf   float64
	alias int
}

// NewAliasTable builds a table from the given weights, which need not
// be normalized. It panics on empty or negative weights. All-zero
// weights yield a uniform table.
func NewAliasTable(weights []float64) *AliasTable {
	n := len(weights)
	if n == 0 {
		panic("distrib: empty weight vector")
	}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("distrib: negative weight")
		}
		sum += w
	}

	t := &AliasTable{bins: make([]aliasBin, n)}
	if sum == 0 {
		for i := range t.bins {
			t.bins[i] = aliasBin{q: 1, pmf: 1 / float64(n), alias: i}
		}
		return t
	}
	for i, w := range weights {
		t.bins[i].pmf = w / sum
	}

	// Vose's method: scale probabilities so the mean is 1, then
	// repeatedly pair an under-full bin with an over-full one,
	// topping the small bin up to exactly 1 from the large bin's
	// excess.
	type outcome struct {
		pHat  float64
		index int
	}
	var small, large []outcome
	for i := range t.bins {
		pHat := t.bins[i].pmf * float64(n)
		if pHat < 1 {
			small = append(small, outcome{pHat, i})
		} else {
			large = append(large, outcome{pHat, i})
		}
	}
	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		t.bins[s.index].q = s.pHat
		t.bins[s.index].alias = l.index

		if excess := s.pHat + l.pHat - 1; excess < 1 {
			small = append(small, outcome{excess, l.index})
		} else {
			large = append(large, outcome{excess, l.index})
		}
	}
	// Remaining bins have residual probability 1 up to rounding.
	for _, o := range large {
		t.bins[o.index].q = 1
		t.bins[o.index].alias = -1
	}
	for _, o := range small {
		t.bins[o.index].q = 1
		t.bins[o.index].alias = -1
	}
	return t
}

// Size returns the number of outcomes.
func (t *AliasTable) Size() int { return len(t.bins) }

// PDF returns the normalized probability of outcome index.
func (t *AliasTable) PDF(index int) float64 { return t.bins[index].pmf }

// Sample maps the uniform variate u to an outcome index. It returns the
// index, its normalized probability, and u remapped to a fresh uniform
// variate in [0,1) that downstream sampling steps may consume.
func (t *AliasTable) Sample(u float64) (index int, pmf, uRemapped float64) {
	// Split u into a uniform bin choice and a residual variate for
	// the direct-hit/alias decision.
	offset := min(int(u*float64(len(t.bins))), len(t.bins)-1)
	up := math.Min(u*float64(len(t.bins))-float64(offset), mathx.OneMinusEpsilon)

	b := t.bins[offset]
	if up < b.q {
		uRemapped = math.Min(up/b.q, mathx.OneMinusEpsilon)
		return offset, b.pmf, uRemapped
	}
	uRemapped = math.Min((up-b.q)/(1-b.q), mathx.OneMinusEpsilon)
	return b.alias, t.bins[b.alias].pmf, uRemapped
}
