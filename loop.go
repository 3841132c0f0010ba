package main

import "time"

// run drives the session at a fixed tick rate until Exit closes the stop
// channel. Blocks; launched on its own goroutine by NewGameSession.
func (s *GameSession) run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()
	defer close(s.done)
	s.log.Info("session loop started", "session", s.ID, "tickRate", TickRate)

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick executes a single simulation step. Everything inside runs
// synchronously on the loop goroutine; the growth broadcast fired by the
// pickup sweep lands on this same goroutine.
func (s *GameSession) tick() {
	if s.director.Scene() != SceneGame {
		return
	}

	s.mu.Lock()
	ctrl := s.ctrl
	in := s.input
	client := s.client

	if ctrl == nil {
		// Init failed (chain too short). The session stays alive but
		// performs no movement.
		s.mu.Unlock()
		return
	}

	// 1. Resolve this tick's input: autopilot for demo sessions, the
	// latest client snapshot otherwise.
	if s.pilot != nil {
		in = s.pilot.Decide(ctrl.Heading())
	}
	ctrl.SetHeadingFromInput(in.X, in.Y)

	// 2. Advance the frame clock.
	dt, dtSmooth := s.clock.Tick()

	// 3. Move head and pull trailing segments.
	ctrl.Tick(dt, dtSmooth)

	// 4. Pickup sweep — consumed items fire the growth broadcast, which
	// appends tail segments synchronously.
	s.arena.SweepPickups(ctrl.Chain().Head().Position)

	// 5. Top the item field back up.
	s.arena.MaintainItemCount()

	// 6. Build the state update while still under the lock.
	var msg StateMsg
	if client != nil {
		msg = StateMsg{
			Type:     MsgState,
			Segments: chainToWire(ctrl.Chain()),
			Heading:  ctrl.Heading().String(),
			Items:    s.arena.ItemDTOs(),
		}
	}
	s.mu.Unlock()

	// 7. Broadcast outside the lock.
	if client != nil {
		if err := client.Send(msg); err != nil {
			s.log.Warn("state send failed", "session", s.ID, "err", err)
		}
	}
}
