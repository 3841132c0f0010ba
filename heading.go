package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Heading is one of the four cardinal travel directions on the XZ plane.
// The game is planar: motion is continuous but the head only ever travels
// along ±X or ±Z.
type Heading int

const (
	HeadingUp    Heading = iota // +Z
	HeadingDown                 // -Z
	HeadingLeft                 // -X
	HeadingRight                // +X
)

// Axis tags a heading with its axis of travel. Turn gating compares axis
// tags rather than forward vectors, so no float equality is involved.
type Axis int

const (
	AxisZ Axis = iota // Up / Down
	AxisX             // Left / Right
)

var headingNames = map[Heading]string{
	HeadingUp:    "up",
	HeadingDown:  "down",
	HeadingLeft:  "left",
	HeadingRight: "right",
}

func (h Heading) String() string {
	if n, ok := headingNames[h]; ok {
		return n
	}
	return fmt.Sprintf("heading(%d)", int(h))
}

// Vector returns the world-space unit forward vector for the heading.
// A heading outside the enumeration is an unrecoverable programming error.
func (h Heading) Vector() mgl64.Vec3 {
	switch h {
	case HeadingUp:
		return mgl64.Vec3{0, 0, 1}
	case HeadingDown:
		return mgl64.Vec3{0, 0, -1}
	case HeadingLeft:
		return mgl64.Vec3{-1, 0, 0}
	case HeadingRight:
		return mgl64.Vec3{1, 0, 0}
	}
	panic(fmt.Sprintf("heading out of range: %d", int(h)))
}

// Rotation returns the yaw about +Y that maps the local +Z forward axis
// onto the heading's world vector.
func (h Heading) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(h.Yaw(), mgl64.Vec3{0, 1, 0})
}

// Yaw returns the heading's rotation angle about +Y in radians.
func (h Heading) Yaw() float64 {
	switch h {
	case HeadingUp:
		return 0
	case HeadingDown:
		return math.Pi
	case HeadingLeft:
		return -math.Pi / 2
	case HeadingRight:
		return math.Pi / 2
	}
	panic(fmt.Sprintf("heading out of range: %d", int(h)))
}

// TravelAxis returns the axis the heading moves along.
func (h Heading) TravelAxis() Axis {
	switch h {
	case HeadingUp, HeadingDown:
		return AxisZ
	case HeadingLeft, HeadingRight:
		return AxisX
	}
	panic(fmt.Sprintf("heading out of range: %d", int(h)))
}

// randomHeading draws one of the four headings uniformly.
func randomHeading(rng *rand.Rand) Heading {
	return Heading(rng.Intn(4))
}
