package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSlerpVec3Endpoints(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	b := mgl64.Vec3{0, 0, 2}
	vecNear(t, slerpVec3(a, b, 0), a, "t=0")
	vecNear(t, slerpVec3(a, b, 1), b, "t=1")
}

func TestSlerpVec3Midpoint(t *testing.T) {
	a := mgl64.Vec3{1, 0, 0}
	b := mgl64.Vec3{0, 0, 1}
	mid := slerpVec3(a, b, 0.5)
	// Halfway along the arc between two unit vectors 90° apart: equal
	// components, unit length.
	if math.Abs(mid.X()-mid.Z()) > 1e-9 {
		t.Fatalf("mid=%v want equal x and z", mid)
	}
	if math.Abs(mid.Len()-1) > 1e-9 {
		t.Fatalf("mid length=%v want=1", mid.Len())
	}
}

func TestSlerpVec3DegeneratesToLerp(t *testing.T) {
	// Near-zero and near-parallel inputs fall back to linear interpolation.
	a := mgl64.Vec3{}
	b := mgl64.Vec3{2, 0, 0}
	vecNear(t, slerpVec3(a, b, 0.5), mgl64.Vec3{1, 0, 0}, "zero start")

	c := mgl64.Vec3{1, 0, 0}
	d := mgl64.Vec3{3, 0, 0}
	vecNear(t, slerpVec3(c, d, 0.5), mgl64.Vec3{2, 0, 0}, "parallel")
}

func TestRoundTo1(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.24, 1.2},
		{1.25, 1.3},
		{-0.04, -0.0},
		{10500.07, 10500.1},
	}
	for _, c := range cases {
		if got := roundTo1(c.in); got != c.want {
			t.Fatalf("roundTo1(%v)=%v want=%v", c.in, got, c.want)
		}
	}
}

func TestYawOf(t *testing.T) {
	if y := yawOf(mgl64.Vec3{0, 0, 1}); y != 0 {
		t.Fatalf("yaw(+z)=%v want=0", y)
	}
	if y := yawOf(mgl64.Vec3{1, 0, 0}); math.Abs(y-math.Pi/2) > 1e-12 {
		t.Fatalf("yaw(+x)=%v want=%v", y, math.Pi/2)
	}
}
