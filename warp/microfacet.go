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

// SampleTrowbridgeReitz draws a microfacet normal from the full
// Trowbridge-Reitz (GGX) distribution with roughnesses alphaX, alphaY,
// in the local frame where the surface normal is +z.
func SampleTrowbridgeReitz(alphaX, alphaY float64, u r2.Vec) r3.Vec {
	var cosTheta float64
	phi := 2 * math.Pi * u.Y
	if alphaX == alphaY {
		tanTheta2 := alphaX * alphaX * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
	} else {
		phi = math.Atan(alphaY / alphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
		if u.Y > 0.5 {
			phi += math.Pi
		}
		sinPhi, cosPhi := math.Sincos(phi)
		alpha2 := 1 / (mathx.Sqr(cosPhi/alphaX) + mathx.Sqr(sinPhi/alphaY))
		tanTheta2 := alpha2 * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
	}
	sinTheta := mathx.SafeSqrt(1 - cosTheta*cosTheta)
	return sphericalDirection(sinTheta, cosTheta, phi)
}

// SampleTrowbridgeReitzVisibleArea draws a microfacet normal from the
// Trowbridge-Reitz distribution of visible normals as seen from
// direction w, following Heitz, "Sampling the GGX Distribution of
// Visible Normals" (JCGT 2018). w and the result are in the local frame
// where the surface normal is +z.
func SampleTrowbridgeReitzVisibleArea(w r3.Vec, alphaX, alphaY float64, u r2.Vec) r3.Vec {
	// Transform the view direction to the hemisphere configuration.
	wh := r3.Unit(r3.Vec{X: alphaX * w.X, Y: alphaY * w.Y, Z: w.Z})

	// Orthonormal basis; t1 must lie in the tangent plane of (0,0,1).
	t1 := r3.Vec{X: 1}
	if wh.Z < 0.99999 {
		t1 = r3.Unit(r3.Cross(r3.Vec{Z: 1}, wh))
	}
	t2 := r3.Cross(wh, t1)

	// Parameterize the projected area.
	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + wh.Z)
	p2 = (1-s)*math.Sqrt(1-p1*p1) + s*p2

	// Reproject onto the hemisphere and back to the ellipsoid
	// configuration.
	nh := r3.Add(r3.Add(r3.Scale(p1, t1), r3.Scale(p2, t2)),
		r3.Scale(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2)), wh))
	return r3.Unit(r3.Vec{
		X: alphaX * nh.X,
		Y: alphaY * nh.Y,
		Z: math.Max(1e-6, nh.Z),
	})
}

// HenyeyGreensteinPDF returns the Henyey-Greenstein phase function for
// the given cosine of the angle between the incident and outgoing
// directions and asymmetry parameter g; it integrates to 1 over the
// sphere of directions.
func HenyeyGreensteinPDF(cosTheta, g float64) float64 {
	denom := 1 + g*g + 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * mathx.SafeSqrt(denom))
}

// SampleHenyeyGreenstein draws a direction from the Henyey-Greenstein
// phase function around the outgoing direction wo, returning the
// direction and its density with respect to solid angle.
func SampleHenyeyGreenstein(wo r3.Vec, g float64, u r2.Vec) (wi r3.Vec, pdf float64) {
	var cosTheta float64
	if math.Abs(g) < 1e-3 {
		cosTheta = 1 - 2*u.X
	} else {
		cosTheta = -(1 + g*g - mathx.Sqr((1-g*g)/(1+g-2*g*u.X))) / (2 * g)
	}
	sinTheta := mathx.SafeSqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * u.Y

	t, b := coordinateSystem(wo)
	d := sphericalDirection(sinTheta, cosTheta, phi)
	wi = r3.Add(r3.Add(r3.Scale(d.X, t), r3.Scale(d.Y, b)), r3.Scale(d.Z, wo))
	return wi, HenyeyGreensteinPDF(cosTheta, g)
}
