package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const vecEpsilon = 1e-9

// lerpVec3 linearly interpolates between a and b by t.
func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// slerpVec3 spherically interpolates between a and b by t: the direction
// rotates along the great arc between the two vectors while the magnitude
// is interpolated linearly. Degenerates to lerp when either vector is near
// zero or the angle between them is negligible.
func slerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	la := a.Len()
	lb := b.Len()
	if la < vecEpsilon || lb < vecEpsilon {
		return lerpVec3(a, b, t)
	}
	dot := mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1)
	theta := math.Acos(dot)
	if theta < vecEpsilon {
		return lerpVec3(a, b, t)
	}
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	dir := a.Mul(1 / la).Mul(wa).Add(b.Mul(1 / lb).Mul(wb))
	mag := la + (lb-la)*t
	return dir.Mul(mag)
}

// roundTo1 rounds a float64 to 1 decimal place to save protocol bytes.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// yawOf extracts the rotation angle about +Y from a forward vector.
func yawOf(forward mgl64.Vec3) float64 {
	return math.Atan2(forward.X(), forward.Z())
}
