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

// SampleUniformHemisphere draws a direction uniformly over the unit
// hemisphere around +z.
func SampleUniformHemisphere(u r2.Vec) r3.Vec {
	z := u.X
	r := mathx.SafeSqrt(1 - z*z)
	phi := 2 * math.Pi * u.Y
	return r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformHemispherePDF returns the constant density of
// SampleUniformHemisphere with respect to solid angle.
func UniformHemispherePDF() float64 { return 1 / (2 * math.Pi) }

// InvertUniformHemisphereSample returns the uniform variates that
// SampleUniformHemisphere maps to v.
func InvertUniformHemisphereSample(v r3.Vec) r2.Vec {
	return r2.Vec{X: v.Z, Y: sphericalPhi(v) / (2 * math.Pi)}
}

// SampleUniformSphere draws a direction uniformly over the unit sphere.
func SampleUniformSphere(u r2.Vec) r3.Vec {
	z := 1 - 2*u.X
	r := mathx.SafeSqrt(1 - z*z)
	phi := 2 * math.Pi * u.Y
	return r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformSpherePDF returns the constant density of SampleUniformSphere
// with respect to solid angle.
func UniformSpherePDF() float64 { return 1 / (4 * math.Pi) }

// InvertUniformSphereSample returns the uniform variates that
// SampleUniformSphere maps to v.
func InvertUniformSphereSample(v r3.Vec) r2.Vec {
	return r2.Vec{X: (1 - v.Z) / 2, Y: sphericalPhi(v) / (2 * math.Pi)}
}

// SampleUniformCone draws a direction uniformly inside the cone around
// +z whose half-angle has cosine cosThetaMax.
func SampleUniformCone(u r2.Vec, cosThetaMax float64) r3.Vec {
	cosTheta := (1 - u.X) + u.X*cosThetaMax
	sinTheta := mathx.SafeSqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * u.Y
	return sphericalDirection(sinTheta, cosTheta, phi)
}

// UniformConePDF returns the constant density of SampleUniformCone with
// respect to solid angle.
func UniformConePDF(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// InvertUniformConeSample returns the uniform variates that
// SampleUniformCone maps to v.
func InvertUniformConeSample(v r3.Vec, cosThetaMax float64) r2.Vec {
	return r2.Vec{X: (v.Z - 1) / (cosThetaMax - 1), Y: sphericalPhi(v) / (2 * math.Pi)}
}

// SampleUniformDiskPolar draws a point uniformly inside the unit disk
// using the polar mapping.
func SampleUniformDiskPolar(u r2.Vec) r2.Vec {
	r := math.Sqrt(u.X)
	theta := 2 * math.Pi * u.Y
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// InvertUniformDiskPolarSample returns the uniform variates that
// SampleUniformDiskPolar maps to p.
func InvertUniformDiskPolarSample(p r2.Vec) r2.Vec {
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return r2.Vec{X: p.X*p.X + p.Y*p.Y, Y: phi / (2 * math.Pi)}
}

// SampleUniformDiskConcentric draws a point uniformly inside the unit
// disk using Shirley's concentric mapping, which preserves stratification
// better than the polar mapping.
func SampleUniformDiskConcentric(u r2.Vec) r2.Vec {
	// Map to [-1,1]² and handle the degeneracy at the origin.
	uOffset := r2.Vec{X: 2*u.X - 1, Y: 2*u.Y - 1}
	if uOffset.X == 0 && uOffset.Y == 0 {
		return r2.Vec{}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// InvertUniformDiskConcentricSample returns the uniform variates that
// SampleUniformDiskConcentric maps to p.
func InvertUniformDiskConcentricSample(p r2.Vec) r2.Vec {
	theta := math.Atan2(p.Y, p.X) // in (-π, π]
	r := math.Sqrt(p.X*p.X + p.Y*p.Y)

	var uo r2.Vec
	if math.Abs(theta) < math.Pi/4 || math.Abs(theta) > 3*math.Pi/4 {
		r = math.Copysign(r, p.X)
		uo.X = r
		if p.X < 0 {
			if p.Y < 0 {
				uo.Y = (math.Pi + theta) * r / (math.Pi / 4)
			} else {
				uo.Y = (theta - math.Pi) * r / (math.Pi / 4)
			}
		} else {
			uo.Y = theta * r / (math.Pi / 4)
		}
	} else {
		r = math.Copysign(r, p.Y)
		uo.Y = r
		if p.Y < 0 {
			uo.X = -(math.Pi/2 + theta) * r / (math.Pi / 4)
		} else {
			uo.X = (math.Pi/2 - theta) * r / (math.Pi / 4)
		}
	}
	return r2.Vec{X: (uo.X + 1) / 2, Y: (uo.Y + 1) / 2}
}

// SampleUniformHemisphereConcentric draws a direction uniformly over
// the unit hemisphere around +z via the concentric disk mapping.
func SampleUniformHemisphereConcentric(u r2.Vec) r3.Vec {
	uOffset := r2.Vec{X: 2*u.X - 1, Y: 2*u.Y - 1}
	if uOffset.X == 0 && uOffset.Y == 0 {
		return r3.Vec{Z: 1}
	}

	var theta, r float64
	if math.Abs(uOffset.X) > math.Abs(uOffset.Y) {
		r = uOffset.X
		theta = math.Pi / 4 * (uOffset.Y / uOffset.X)
	} else {
		r = uOffset.Y
		theta = math.Pi/2 - math.Pi/4*(uOffset.X/uOffset.Y)
	}
	return r3.Vec{
		X: math.Cos(theta) * r * math.Sqrt(2-r*r),
		Y: math.Sin(theta) * r * math.Sqrt(2-r*r),
		Z: 1 - r*r,
	}
}

// SampleCosineHemisphere draws a direction over the unit hemisphere
// around +z with density proportional to the cosine of the polar angle,
// by lifting a concentric disk sample.
func SampleCosineHemisphere(u r2.Vec) r3.Vec {
	d := SampleUniformDiskConcentric(u)
	z := mathx.SafeSqrt(1 - d.X*d.X - d.Y*d.Y)
	return r3.Vec{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePDF returns the density of SampleCosineHemisphere for
// a direction whose polar angle has the given cosine.
func CosineHemispherePDF(cosTheta float64) float64 {
	return cosTheta / math.Pi
}

// InvertCosineHemisphereSample returns the uniform variates that
// SampleCosineHemisphere maps to v.
func InvertCosineHemisphereSample(v r3.Vec) r2.Vec {
	return InvertUniformDiskConcentricSample(r2.Vec{X: v.X, Y: v.Y})
}

// SampleUniformTriangle draws barycentric coordinates uniformly over a
// triangle, using a low-distortion mapping that avoids the square-root
// parameterization's stratification damage.
func SampleUniformTriangle(u r2.Vec) [3]float64 {
	b0, b1 := u.X/2, u.Y/2
	offset := b1 - b0
	if offset > 0 {
		b1 += offset
	} else {
		b0 -= offset
	}
	return [3]float64{b0, b1, 1 - b0 - b1}
}

// InvertUniformTriangleSample returns the uniform variates that
// SampleUniformTriangle maps to the barycentrics b.
func InvertUniformTriangleSample(b [3]float64) r2.Vec {
	if b[0] > b[1] {
		// b0 = u0 - u1/2, b1 = u1/2
		return r2.Vec{X: b[0] + b[1], Y: 2 * b[1]}
	}
	// b1 = u1 - u0/2, b0 = u0/2
	return r2.Vec{X: 2 * b[0], Y: b[1] + b[0]}
}
