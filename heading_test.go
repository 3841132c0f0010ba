package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(t *testing.T, got, want mgl64.Vec3, label string) {
	t.Helper()
	if got.Sub(want).Len() > 1e-9 {
		t.Fatalf("%s: got=%v want=%v", label, got, want)
	}
}

func TestHeadingVectors(t *testing.T) {
	cases := []struct {
		h    Heading
		want mgl64.Vec3
		axis Axis
	}{
		{HeadingUp, mgl64.Vec3{0, 0, 1}, AxisZ},
		{HeadingDown, mgl64.Vec3{0, 0, -1}, AxisZ},
		{HeadingLeft, mgl64.Vec3{-1, 0, 0}, AxisX},
		{HeadingRight, mgl64.Vec3{1, 0, 0}, AxisX},
	}
	for _, c := range cases {
		vecNear(t, c.h.Vector(), c.want, c.h.String())
		if c.h.TravelAxis() != c.axis {
			t.Fatalf("%s: axis=%v want=%v", c.h, c.h.TravelAxis(), c.axis)
		}
	}
}

func TestHeadingRotationMapsForward(t *testing.T) {
	// Rotating local +Z by the heading's quaternion must land on the
	// heading's world vector.
	for h := HeadingUp; h <= HeadingRight; h++ {
		got := h.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
		vecNear(t, got, h.Vector(), h.String())
	}
}

func TestHeadingYaw(t *testing.T) {
	if y := HeadingUp.Yaw(); y != 0 {
		t.Fatalf("up yaw=%v want=0", y)
	}
	if y := HeadingRight.Yaw(); math.Abs(y-math.Pi/2) > 1e-12 {
		t.Fatalf("right yaw=%v want=%v", y, math.Pi/2)
	}
}

func TestRandomHeadingCoversAllFour(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[Heading]int{}
	for i := 0; i < 1000; i++ {
		h := randomHeading(rng)
		if h < HeadingUp || h > HeadingRight {
			t.Fatalf("draw outside enumeration: %d", int(h))
		}
		seen[h]++
	}
	for h := HeadingUp; h <= HeadingRight; h++ {
		if seen[h] == 0 {
			t.Fatalf("heading %s never drawn in 1000 tries", h)
		}
	}
}

func TestHeadingOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-range heading")
		}
	}()
	_ = Heading(42).Vector()
}
