package main

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
)

// Scene is the menu flow state of one game session.
type Scene int

const (
	SceneMenu    Scene = iota
	SceneLoading       // async world build in flight
	SceneGame          // movement loop live
	SceneExited
)

var sceneNames = map[Scene]string{
	SceneMenu:    "menu",
	SceneLoading: "loading",
	SceneGame:    "game",
	SceneExited:  "exited",
}

func (s Scene) String() string {
	if n, ok := sceneNames[s]; ok {
		return n
	}
	return "unknown"
}

// ErrNotInMenu is returned when StartGame is called outside the menu scene.
var ErrNotInMenu = errors.New("game can only be started from the menu")

// SceneDirector drives the menu → loading → game → exited flow for one
// session. The loading build runs on its own goroutine and reports a
// monotonically non-decreasing progress fraction in [0, 1]; the director
// enters SceneGame only after progress has reached 1.
type SceneDirector struct {
	mu    sync.Mutex
	scene Scene

	progressBits atomic.Uint64 // float64 bits of the load fraction

	log      *slog.Logger
	announce func(scene Scene, progress float64)
}

// NewSceneDirector creates a director in the menu scene. announce, if
// non-nil, is invoked after every scene transition (outside the lock).
func NewSceneDirector(logger *slog.Logger, announce func(Scene, float64)) *SceneDirector {
	return &SceneDirector{
		scene:    SceneMenu,
		log:      logger,
		announce: announce,
	}
}

// Scene returns the current scene.
func (d *SceneDirector) Scene() Scene {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scene
}

// Progress returns the current load fraction, the loading-bar value.
func (d *SceneDirector) Progress() float64 {
	return math.Float64frombits(d.progressBits.Load())
}

// StartGame transitions menu → loading and kicks the build off on a
// goroutine. build receives a report callback for progress updates; when
// it returns the director enters SceneGame. A build error is logged and
// the session enters the game scene anyway, inert — non-functional but
// non-crashing.
func (d *SceneDirector) StartGame(build func(report func(float64)) error) error {
	d.mu.Lock()
	if d.scene != SceneMenu {
		scene := d.scene
		d.mu.Unlock()
		d.log.Warn("start rejected", "scene", scene.String())
		return ErrNotInMenu
	}
	d.scene = SceneLoading
	d.progressBits.Store(0)
	d.mu.Unlock()
	d.emit(SceneLoading)

	go func() {
		if err := build(d.report); err != nil {
			d.log.Error("world build failed", "err", err)
		}
		d.report(1)
		d.mu.Lock()
		if d.scene != SceneLoading {
			// Exited mid-load; do not resurrect.
			d.mu.Unlock()
			return
		}
		d.scene = SceneGame
		d.mu.Unlock()
		d.emit(SceneGame)
	}()
	return nil
}

// report stores a progress value, keeping the published fraction monotonic
// non-decreasing and clamped to [0, 1].
func (d *SceneDirector) report(p float64) {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	for {
		old := d.progressBits.Load()
		if p <= math.Float64frombits(old) {
			return
		}
		if d.progressBits.CompareAndSwap(old, math.Float64bits(p)) {
			return
		}
	}
}

// Exit moves to SceneExited from any scene. Idempotent.
func (d *SceneDirector) Exit() {
	d.mu.Lock()
	if d.scene == SceneExited {
		d.mu.Unlock()
		return
	}
	d.scene = SceneExited
	d.mu.Unlock()
	d.emit(SceneExited)
}

func (d *SceneDirector) emit(s Scene) {
	if d.announce != nil {
		d.announce(s, d.Progress())
	}
}
