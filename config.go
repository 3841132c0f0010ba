package main

// Game configuration constants
const (
	// Server
	ServerAddr    = ":8080"
	IPCooldownSec = 5 // min seconds between session creations per IP

	// Game loop
	TickRate = 50 // ticks per second
	// MaxFrameDelta clamps a single tick's wall-clock delta so a stalled
	// process does not teleport the snake on resume.
	MaxFrameDelta = 0.1 // seconds
	// FrameSmoothing is the EMA weight for the smoothed delta fed to head
	// translation. Raw delta still drives the follow factor.
	FrameSmoothing = 0.2

	// Snake
	SnakeBaseSpeed = 4.0 // world units per second
	// BetweenBodyDistance is the spacing used only for the initial layout;
	// spacing afterwards is emergent from the follow interpolation.
	BetweenBodyDistance = 0.6
	InitialSegments     = 4 // head + 3 body parts at spawn
	// FollowFactorCap bounds how much of the gap to the leader a trailing
	// segment closes per tick.
	FollowFactorCap = 0.8

	// Arena — circular field on the XZ plane, centered at the origin
	ArenaRadius      = 24.0
	SpawnMargin      = 4.0 // keeps the spawn layout away from the boundary
	TargetItemCount  = 30
	ItemSpawnPerTick = 5 // max item respawn per tick to maintain target
	PickupRadius     = 0.5
	// Loading: items are seeded in batches so the progress bar has
	// something to report.
	LoadItemBatches = 6

	// Spatial grid — covers the bounding square of the circular arena
	GridCellSize = 2.0

	// Sessions
	MaxSessions        = 64
	SessionIdleTimeout = 300 // seconds without activity before a session is reaped
	ReapIntervalSec    = 30

	// Autopilot (demo sessions)
	AutopilotMinTurnTicks = 40
	AutopilotMaxTurnTicks = 120
)

// Item colors palette (hex, picked at spawn)
var ItemColors = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6",
	"#1abc9c", "#e67e22", "#e91e63", "#00bcd4", "#8bc34a",
}
