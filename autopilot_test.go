package main

import (
	"math/rand"
	"testing"
)

func TestAutopilotPulsesAreGateLegal(t *testing.T) {
	pilot := NewAutopilot(rand.New(rand.NewSource(21)))
	pulses := 0
	for i := 0; i < 2000; i++ {
		in := pilot.Decide(HeadingUp)
		switch {
		case in == (AxisInput{}):
			// neutral between pulses
		case in.Y != 0:
			t.Fatalf("tick %d: y pulse %+v while traveling on Z (gate would ignore it)", i, in)
		case in.X != 1 && in.X != -1:
			t.Fatalf("tick %d: x pulse outside domain: %+v", i, in)
		default:
			pulses++
		}
	}
	if pulses == 0 {
		t.Fatalf("no pulses in 2000 ticks")
	}
}

func TestAutopilotPulsesOrthogonalAxis(t *testing.T) {
	pilot := NewAutopilot(rand.New(rand.NewSource(22)))
	for i := 0; i < 2000; i++ {
		in := pilot.Decide(HeadingRight)
		if in.X != 0 {
			t.Fatalf("tick %d: x pulse %+v while traveling on X", i, in)
		}
		if in.Y < -1 || in.Y > 1 {
			t.Fatalf("tick %d: y outside domain: %+v", i, in)
		}
	}
}

func TestAutopilotFirstPulseWithinMaxDelay(t *testing.T) {
	pilot := NewAutopilot(rand.New(rand.NewSource(23)))
	for i := 0; i <= AutopilotMaxTurnTicks; i++ {
		if in := pilot.Decide(HeadingUp); in.X != 0 {
			return
		}
	}
	t.Fatalf("no pulse within %d ticks", AutopilotMaxTurnTicks)
}
