package main

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrChainTooShort is returned when a controller is built over fewer than
// two segments (head + at least one body part). The caller logs it and
// leaves the snake inert; ticks without a controller do nothing.
var ErrChainTooShort = errors.New("segment chain needs at least 2 segments")

// MovementParams holds the movement tuning for one snake.
type MovementParams struct {
	BaseSpeed float64
	// CurrentSpeed is a copy of BaseSpeed; it is not mutated after init in
	// this scope but kept separate so speed modifiers have a seam.
	CurrentSpeed float64
}

// DefaultMovementParams returns the configured movement parameters.
func DefaultMovementParams() MovementParams {
	return MovementParams{BaseSpeed: SnakeBaseSpeed, CurrentSpeed: SnakeBaseSpeed}
}

// SegmentFactory creates new tail segments on growth. A nil factory on the
// controller makes growth a logged no-op.
type SegmentFactory interface {
	Spawn(pos mgl64.Vec3, rot mgl64.Quat) *Segment
}

// Controller owns the snake's segment chain and drives it through
// continuous-space follow-the-leader movement: the head translates along
// its cardinal forward vector, trailing segments close a clamped fraction
// of the gap to their predecessor each tick.
type Controller struct {
	chain   *Chain
	heading Heading
	params  MovementParams
	factory SegmentFactory
	sub     *Subscription
	log     *slog.Logger
}

// NewController builds a controller over an explicit ordered segment list
// (index 0 = head), draws a random initial heading and lays the body out
// behind the head along it, and subscribes to the item-consumed broadcast
// for tail growth. growth may be nil for a snake that never grows.
func NewController(
	segments []*Segment,
	params MovementParams,
	factory SegmentFactory,
	growth *Broadcaster,
	rng *rand.Rand,
	logger *slog.Logger,
) (*Controller, error) {
	if len(segments) < 2 {
		return nil, ErrChainTooShort
	}
	c := &Controller{
		chain:   NewChain(segments),
		heading: randomHeading(rng),
		params:  params,
		factory: factory,
		log:     logger,
	}
	c.assignInitialPoses()
	if growth != nil {
		c.sub = growth.Subscribe(c.onItemConsumed)
	}
	return c, nil
}

// assignInitialPoses lays every segment out behind the head along the
// current heading at BetweenBodyDistance spacing, all facing the heading.
// Runs exactly once, before the first tick.
func (c *Controller) assignInitialPoses() {
	forward := c.heading.Vector()
	rot := c.heading.Rotation()
	head := c.chain.Head()
	head.Rotation = rot
	for i := 1; i < c.chain.Len(); i++ {
		seg := c.chain.At(i)
		seg.Position = head.Position.Sub(forward.Mul(BetweenBodyDistance * float64(i)))
		seg.Rotation = rot
	}
}

// Heading returns the head's current travel direction.
func (c *Controller) Heading() Heading {
	return c.heading
}

// Chain returns the controller's segment chain.
func (c *Controller) Chain() *Chain {
	return c.chain
}

// SetHeadingFromInput gates raw 2-axis input (each in {-1, 0, 1}) into a
// heading change. Only the axis orthogonal to current travel is consulted,
// so an exact U-turn request is ignored by construction — the classic
// snake rule, without any float comparison.
func (c *Controller) SetHeadingFromInput(x, y int) {
	switch c.heading.TravelAxis() {
	case AxisZ:
		switch x {
		case 1:
			c.setHeading(HeadingRight)
		case -1:
			c.setHeading(HeadingLeft)
		}
	case AxisX:
		switch y {
		case 1:
			c.setHeading(HeadingUp)
		case -1:
			c.setHeading(HeadingDown)
		}
	}
}

func (c *Controller) setHeading(h Heading) {
	c.heading = h
	c.chain.Head().Rotation = h.Rotation()
}

// followFactor computes the clamped per-tick interpolation factor for a
// trailing segment. The literal dt*distance*speed product is preserved
// from the original tuning; see DESIGN.md for the normalization question.
func followFactor(dt, distance, speed float64) float64 {
	return mgl64.Clamp(dt*distance*speed, 0, FollowFactorCap)
}

// Tick advances the snake one simulation step. dt is the raw frame delta,
// dtSmooth the smoothed one: the head translates on the smoothed delta to
// reduce jitter while follow factors stay on the raw delta.
func (c *Controller) Tick(dt, dtSmooth float64) {
	head := c.chain.Head()
	head.Position = head.Position.Add(c.heading.Vector().Mul(c.params.CurrentSpeed * dtSmooth))

	// Each trailing segment chases its predecessor's position as of this
	// tick (the predecessor has already moved), closing a clamped fraction
	// of the gap. Spacing is emergent, not enforced.
	for i := 1; i < c.chain.Len(); i++ {
		leader := c.chain.At(i - 1)
		seg := c.chain.At(i)
		target := leader.Position
		distance := target.Sub(seg.Position).Len()
		factor := followFactor(dt, distance, c.params.CurrentSpeed)
		seg.Position = slerpVec3(seg.Position, target, factor)
		seg.Rotation = mgl64.QuatSlerp(seg.Rotation, leader.Rotation, factor)
	}
}

// onItemConsumed appends one segment at the current tail position with
// identity orientation. The new segment starts coincident with the old
// tail and animates into place through the normal follow interpolation.
func (c *Controller) onItemConsumed() {
	if c.factory == nil {
		c.log.Error("tail segment factory not configured, skipping growth")
		return
	}
	tail := c.chain.Tail()
	c.chain.Append(c.factory.Spawn(tail.Position, mgl64.QuatIdent()))
}

// Close releases the growth subscription. Must be called on teardown so a
// late broadcast cannot reach a dead controller.
func (c *Controller) Close() {
	if c.sub != nil {
		c.sub.Unsubscribe()
	}
}
