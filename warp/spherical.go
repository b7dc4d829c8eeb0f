// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"math"

	"github.com/shdwdln/go-sampling/mathx"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SampleSphericalTriangle draws a point on the triangle with vertices v,
// distributed uniformly with respect to the solid angle the triangle
// subtends at the reference point p, using Arvo's stratified spherical
// triangle sampling. It returns the barycentric coordinates of the
// sampled point and the density with respect to solid angle. A
// degenerate triangle (zero subtended solid angle) returns pdf 0.
func SampleSphericalTriangle(v [3]r3.Vec, p r3.Vec, u r2.Vec) (b [3]float64, pdf float64) {
	a := r3.Unit(r3.Sub(v[0], p))
	bv := r3.Unit(r3.Sub(v[1], p))
	c := r3.Unit(r3.Sub(v[2], p))

	// Normals to the planes through pairs of edge vectors.
	nAB, nBC, nCA := r3.Cross(a, bv), r3.Cross(bv, c), r3.Cross(c, a)
	if r3.Norm2(nAB) == 0 || r3.Norm2(nBC) == 0 || r3.Norm2(nCA) == 0 {
		return b, 0
	}
	nAB, nBC, nCA = r3.Unit(nAB), r3.Unit(nBC), r3.Unit(nCA)

	// Interior dihedral angles and spherical area via Girard's
	// theorem.
	alpha := angleBetween(nAB, r3.Scale(-1, nCA))
	beta := angleBetween(nBC, r3.Scale(-1, nAB))
	gamma := angleBetween(nCA, r3.Scale(-1, nBC))
	aPi := alpha + beta + gamma
	area := aPi - math.Pi
	if area <= 0 {
		return b, 0
	}
	pdf = 1 / area

	// Select the sub-triangle area proportionally to u.X and solve
	// for the vertex c' that cuts off exactly that area.
	apPi := mathx.Lerp(u.X, math.Pi, aPi)
	cosAlpha, sinAlpha := math.Cos(alpha), math.Sin(alpha)
	sinPhi := math.Sin(apPi)*cosAlpha - math.Cos(apPi)*sinAlpha
	cosPhi := math.Cos(apPi)*cosAlpha + math.Sin(apPi)*sinAlpha
	k1 := cosPhi + cosAlpha
	k2 := sinPhi - sinAlpha*r3.Dot(a, bv)
	cosBp := (k2 + mathx.DifferenceOfProducts(k2, cosPhi, k1, sinPhi)*cosAlpha) /
		((mathx.Sqr(k1) + mathx.Sqr(k2)) * sinAlpha)
	cosBp = mathx.Clamp(cosBp, -1, 1)
	sinBp := mathx.SafeSqrt(1 - mathx.Sqr(cosBp))
	cp := r3.Add(r3.Scale(cosBp, a), r3.Scale(sinBp, r3.Unit(gramSchmidt(c, a))))

	// Sample along the arc between b and c'.
	cosTheta := 1 - u.Y*(1-r3.Dot(cp, bv))
	sinTheta := mathx.SafeSqrt(1 - mathx.Sqr(cosTheta))
	w := r3.Add(r3.Scale(cosTheta, bv), r3.Scale(sinTheta, r3.Unit(gramSchmidt(cp, bv))))

	// Recover barycentric coordinates of the direction w on the
	// planar triangle.
	e1, e2 := r3.Sub(v[1], v[0]), r3.Sub(v[2], v[0])
	s1 := r3.Cross(w, e2)
	div := r3.Dot(s1, e1)
	if div == 0 {
		// Sampled direction is parallel to the triangle plane;
		// return the centroid rather than propagating infinities.
		return [3]float64{1. / 3, 1. / 3, 1. / 3}, pdf
	}
	s := r3.Sub(p, v[0])
	b1 := r3.Dot(s, s1) / div
	b2 := r3.Dot(w, r3.Cross(s, e1)) / div
	b1, b2 = mathx.Clamp(b1, 0, 1), mathx.Clamp(b2, 0, 1)
	if b1+b2 > 1 {
		sum := b1 + b2
		b1 /= sum
		b2 /= sum
	}
	return [3]float64{1 - b1 - b2, b1, b2}, pdf
}

// InvertSphericalTriangleSample returns the uniform variates that
// SampleSphericalTriangle maps, for the triangle v seen from p, to the
// unit direction w toward the sampled point.
func InvertSphericalTriangleSample(v [3]r3.Vec, p r3.Vec, w r3.Vec) r2.Vec {
	a := r3.Unit(r3.Sub(v[0], p))
	bv := r3.Unit(r3.Sub(v[1], p))
	c := r3.Unit(r3.Sub(v[2], p))

	nAB, nBC, nCA := r3.Cross(a, bv), r3.Cross(bv, c), r3.Cross(c, a)
	if r3.Norm2(nAB) == 0 || r3.Norm2(nBC) == 0 || r3.Norm2(nCA) == 0 {
		return r2.Vec{}
	}
	nAB, nBC, nCA = r3.Unit(nAB), r3.Unit(nBC), r3.Unit(nCA)

	alpha := angleBetween(nAB, r3.Scale(-1, nCA))
	beta := angleBetween(nBC, r3.Scale(-1, nAB))
	gamma := angleBetween(nCA, r3.Scale(-1, nBC))

	// Find the vertex c' along the ac arc that corresponds to w's
	// sub-triangle.
	cp := r3.Cross(r3.Cross(bv, w), r3.Cross(c, a))
	if r3.Norm2(cp) == 0 {
		return r2.Vec{X: 0.5, Y: 0.5}
	}
	cp = r3.Unit(cp)
	if r3.Dot(cp, r3.Add(a, c)) < 0 {
		cp = r3.Scale(-1, cp)
	}

	var u0 float64
	if r3.Dot(a, cp) > 0.99999847691 /* within 0.1 degrees */ {
		u0 = 0
	} else {
		nCpB, nACp := r3.Cross(cp, bv), r3.Cross(a, cp)
		if r3.Norm2(nCpB) == 0 || r3.Norm2(nACp) == 0 {
			return r2.Vec{X: 0.5, Y: 0.5}
		}
		nCpB, nACp = r3.Unit(nCpB), r3.Unit(nACp)
		ap := alpha + angleBetween(nAB, nCpB) + angleBetween(nACp, r3.Scale(-1, nCpB)) - math.Pi
		area := alpha + beta + gamma - math.Pi
		u0 = ap / area
	}

	u1 := (1 - r3.Dot(w, bv)) / (1 - r3.Dot(cp, bv))
	return r2.Vec{X: mathx.Clamp(u0, 0, 1), Y: mathx.Clamp(u1, 0, 1)}
}

// minSphericalSampleArea is the subtended solid angle below which
// SampleSphericalRectangle falls back to area sampling; the rectangle
// is effectively a point source and the projection becomes unstable.
const minSphericalSampleArea = 3e-4

// sphericalQuad holds a rectangle expressed in the local reference
// frame of Ureña et al., "An Area-Preserving Parametrization for
// Spherical Rectangles".
type sphericalQuad struct {
	x, y, z    r3.Vec  // local frame; z points away from the reference point
	x0, x1     float64 // rectangle extents in the local frame
	y0, y1     float64
	z0         float64
	b0, b1     float64 // z components of the bottom and top edge normals
	k          float64 // 2π - γ2 - γ3
	solidAngle float64
}

func makeSphericalQuad(p, s r3.Vec, ex, ey r3.Vec) sphericalQuad {
	var q sphericalQuad
	exl, eyl := r3.Norm(ex), r3.Norm(ey)
	q.x = r3.Scale(1/exl, ex)
	q.y = r3.Scale(1/eyl, ey)
	q.z = r3.Cross(q.x, q.y)

	d := r3.Sub(s, p)
	q.z0 = r3.Dot(d, q.z)
	// Flip the frame so the rectangle faces the reference point.
	if q.z0 > 0 {
		q.z = r3.Scale(-1, q.z)
		q.z0 = -q.z0
	}
	q.x0 = r3.Dot(d, q.x)
	q.y0 = r3.Dot(d, q.y)
	q.x1 = q.x0 + exl
	q.y1 = q.y0 + eyl

	v00 := r3.Vec{X: q.x0, Y: q.y0, Z: q.z0}
	v01 := r3.Vec{X: q.x0, Y: q.y1, Z: q.z0}
	v10 := r3.Vec{X: q.x1, Y: q.y0, Z: q.z0}
	v11 := r3.Vec{X: q.x1, Y: q.y1, Z: q.z0}
	n0 := r3.Unit(r3.Cross(v00, v10))
	n1 := r3.Unit(r3.Cross(v10, v11))
	n2 := r3.Unit(r3.Cross(v11, v01))
	n3 := r3.Unit(r3.Cross(v01, v00))

	g0 := angleBetween(r3.Scale(-1, n0), n1)
	g1 := angleBetween(r3.Scale(-1, n1), n2)
	g2 := angleBetween(r3.Scale(-1, n2), n3)
	g3 := angleBetween(r3.Scale(-1, n3), n0)

	q.b0, q.b1 = n0.Z, n2.Z
	q.k = 2*math.Pi - g2 - g3
	q.solidAngle = g0 + g1 - q.k
	return q
}

// SampleSphericalRectangle draws a point on the planar rectangle with
// corner s and edge vectors ex, ey, distributed uniformly with respect
// to the solid angle the rectangle subtends at the reference point p,
// following Ureña et al. It returns the sampled point and the density
// with respect to solid angle. Rectangles that subtend a very small
// solid angle are sampled uniformly by area with the density converted
// to solid angle measure.
func SampleSphericalRectangle(p, s r3.Vec, ex, ey r3.Vec, u r2.Vec) (r3.Vec, float64) {
	q := makeSphericalQuad(p, s, ex, ey)
	if q.solidAngle <= 0 {
		return r3.Add(s, r3.Add(r3.Scale(u.X, ex), r3.Scale(u.Y, ey))), 0
	}
	if q.solidAngle < minSphericalSampleArea {
		// Area sampling; convert the density to solid angle.
		pt := r3.Add(s, r3.Add(r3.Scale(u.X, ex), r3.Scale(u.Y, ey)))
		wi := r3.Sub(pt, p)
		distSq := r3.Norm2(wi)
		wi = r3.Unit(wi)
		cosTheta := math.Abs(r3.Dot(wi, q.z))
		if cosTheta == 0 {
			return pt, 0
		}
		pdf := distSq / (r3.Norm(ex) * r3.Norm(ey) * cosTheta)
		return pt, pdf
	}

	// 1. Sample the azimuthal plane; cu is the x cosine of the
	// sampled plane.
	au := u.X*q.solidAngle + q.k
	fu := (math.Cos(au)*q.b0 - q.b1) / math.Sin(au)
	cu := math.Copysign(1/math.Sqrt(fu*fu+q.b0*q.b0), fu)
	cu = mathx.Clamp(cu, -1, 1)

	// 2. The plane fixes the local x coordinate.
	xu := -(cu * q.z0) / mathx.SafeSqrt(1-cu*cu)
	xu = mathx.Clamp(xu, q.x0, q.x1)

	// 3. Sample the y coordinate along the fixed-x great arc.
	d := math.Sqrt(xu*xu + q.z0*q.z0)
	h0 := q.y0 / math.Sqrt(d*d+q.y0*q.y0)
	h1 := q.y1 / math.Sqrt(d*d+q.y1*q.y1)
	hv := h0 + u.Y*(h1-h0)
	yv := q.y1
	if hv*hv < 1-1e-9 {
		yv = hv * d / math.Sqrt(1-hv*hv)
	}

	// 4. Back to world space.
	pt := r3.Add(p, r3.Add(r3.Add(r3.Scale(xu, q.x), r3.Scale(yv, q.y)), r3.Scale(q.z0, q.z)))
	return pt, 1 / q.solidAngle
}

// InvertSphericalRectangleSample returns the uniform variates that
// SampleSphericalRectangle maps, for the rectangle (s, ex, ey) seen
// from p, to the point pQuad on the rectangle.
func InvertSphericalRectangleSample(p, s r3.Vec, ex, ey r3.Vec, pQuad r3.Vec) r2.Vec {
	q := makeSphericalQuad(p, s, ex, ey)
	v := r3.Sub(pQuad, p)
	xu := mathx.Clamp(r3.Dot(v, q.x), q.x0, q.x1)
	yv := mathx.Clamp(r3.Dot(v, q.y), q.y0, q.y1)

	if q.solidAngle < minSphericalSampleArea {
		// Invert the area-sampling fallback.
		return r2.Vec{
			X: (xu - q.x0) / r3.Norm(ex),
			Y: (yv - q.y0) / r3.Norm(ey),
		}
	}

	// The marginal CDF in x is the fraction of the total solid angle
	// subtended by the sub-rectangle left of xu.
	sub := q
	sub.x1 = xu
	u0 := mathx.Clamp(subQuadSolidAngle(sub)/q.solidAngle, 0, 1)

	// Invert the conditional along the fixed-x arc.
	d := math.Sqrt(xu*xu + q.z0*q.z0)
	h0 := q.y0 / math.Sqrt(d*d+q.y0*q.y0)
	h1 := q.y1 / math.Sqrt(d*d+q.y1*q.y1)
	hv := yv / math.Sqrt(d*d+yv*yv)
	var u1 float64
	if h1 != h0 {
		u1 = mathx.Clamp((hv-h0)/(h1-h0), 0, 1)
	}
	return r2.Vec{X: u0, Y: u1}
}

// subQuadSolidAngle recomputes the solid angle for a quad whose extents
// have been narrowed.
func subQuadSolidAngle(q sphericalQuad) float64 {
	if q.x1 <= q.x0 || q.y1 <= q.y0 {
		return 0
	}
	v00 := r3.Vec{X: q.x0, Y: q.y0, Z: q.z0}
	v01 := r3.Vec{X: q.x0, Y: q.y1, Z: q.z0}
	v10 := r3.Vec{X: q.x1, Y: q.y0, Z: q.z0}
	v11 := r3.Vec{X: q.x1, Y: q.y1, Z: q.z0}
	n0 := r3.Unit(r3.Cross(v00, v10))
	n1 := r3.Unit(r3.Cross(v10, v11))
	n2 := r3.Unit(r3.Cross(v11, v01))
	n3 := r3.Unit(r3.Cross(v01, v00))

	g0 := angleBetween(r3.Scale(-1, n0), n1)
	g1 := angleBetween(r3.Scale(-1, n1), n2)
	g2 := angleBetween(r3.Scale(-1, n2), n3)
	g3 := angleBetween(r3.Scale(-1, n3), n0)
	return math.Max(0, g0+g1+g2+g3-2*math.Pi)
}
