package main

import "math/rand"

// Autopilot supplies input for demo sessions: every randomized interval it
// emits a single one-tick ±1 pulse on the axis orthogonal to current
// travel, then stays neutral. Every pulse is a legal turn by construction.
type Autopilot struct {
	rng       *rand.Rand
	turnTicks int
}

// NewAutopilot creates an autopilot with a randomized first turn delay.
func NewAutopilot(rng *rand.Rand) *Autopilot {
	return &Autopilot{
		rng:       rng,
		turnTicks: randomTurnDelay(rng),
	}
}

// Decide returns this tick's input given the head's current heading.
func (a *Autopilot) Decide(heading Heading) AxisInput {
	a.turnTicks--
	if a.turnTicks > 0 {
		return AxisInput{}
	}
	a.turnTicks = randomTurnDelay(a.rng)

	pulse := 1
	if a.rng.Intn(2) == 0 {
		pulse = -1
	}
	// Turn on the axis the gate will actually consult.
	if heading.TravelAxis() == AxisZ {
		return AxisInput{X: pulse}
	}
	return AxisInput{Y: pulse}
}

// randomTurnDelay returns a tick count in [AutopilotMinTurnTicks, AutopilotMaxTurnTicks].
func randomTurnDelay(rng *rand.Rand) int {
	return AutopilotMinTurnTicks + rng.Intn(AutopilotMaxTurnTicks-AutopilotMinTurnTicks+1)
}
