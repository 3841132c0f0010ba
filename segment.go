package main

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Segment is one rigid body part of the snake: head, body, or tail.
// Gameplay stays on the XZ plane (Y = 0); the forward axis is the local
// +Z rotated by Rotation.
type Segment struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Forward returns the segment's world-space forward axis.
func (s *Segment) Forward() mgl64.Vec3 {
	return s.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// NewSegment creates a segment at pos with the given rotation.
func NewSegment(pos mgl64.Vec3, rot mgl64.Quat) *Segment {
	return &Segment{Position: pos, Rotation: rot}
}

// Chain is the ordered snake body: index 0 = head, increasing index =
// further from the head. It never shrinks; it grows by one segment per
// growth event.
type Chain struct {
	segments []*Segment
}

// NewChain wraps an explicit ordered segment list. The caller is
// responsible for validating the minimum length before building a
// controller around it.
func NewChain(segments []*Segment) *Chain {
	return &Chain{segments: segments}
}

// Head returns the head segment.
func (c *Chain) Head() *Segment {
	return c.segments[0]
}

// Tail returns the last segment.
func (c *Chain) Tail() *Segment {
	return c.segments[len(c.segments)-1]
}

// Len returns the number of segments.
func (c *Chain) Len() int {
	return len(c.segments)
}

// At returns the segment at index i.
func (c *Chain) At(i int) *Segment {
	return c.segments[i]
}

// Append adds a new tail segment.
func (c *Chain) Append(s *Segment) {
	c.segments = append(c.segments, s)
}
