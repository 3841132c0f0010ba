package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// AxisInput is the latest raw 2-axis directional input, each value in
// {-1, 0, 1}.
type AxisInput struct {
	X int
	Y int
}

// GameSession is one complete game run: scene director, arena, movement
// controller, frame clock and a fixed-tick loop goroutine. A client may
// attach over WebSocket to see state and feed input; the session keeps
// running without one.
type GameSession struct {
	ID   string
	Name string

	log      *slog.Logger
	rng      *rand.Rand
	director *SceneDirector
	growth   *Broadcaster
	arena    *Arena
	clock    FrameClock
	pilot    *Autopilot

	mu         sync.Mutex
	ctrl       *Controller
	input      AxisInput
	client     *Client
	lastActive time.Time
	createdAt  time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewGameSession builds a session in the menu scene and starts its tick
// loop. demo sessions get an autopilot input source instead of waiting
// for a client.
func NewGameSession(name string, demo bool, seed int64, logger *slog.Logger) *GameSession {
	rng := rand.New(rand.NewSource(seed))
	growth := NewBroadcaster()
	s := &GameSession{
		ID:         uuid.New().String(),
		Name:       name,
		log:        logger,
		rng:        rng,
		growth:     growth,
		arena:      NewArena(growth, rng, logger),
		clock:      NewWallClock(),
		createdAt:  time.Now(),
		lastActive: time.Now(),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if demo {
		s.pilot = NewAutopilot(rng)
	}
	s.director = NewSceneDirector(logger.With("session", s.ID), s.announceScene)
	go s.run()
	return s
}

// Start drives the menu → loading → game transition.
func (s *GameSession) Start() error {
	s.touch()
	return s.director.StartGame(s.buildWorld)
}

// buildWorld is the asynchronous loading step: seed the item field (with
// batch progress), lay out the initial segment list and construct the
// movement controller. A too-short chain leaves the session without a
// controller; ticks then perform no movement.
func (s *GameSession) buildWorld(report func(float64)) error {
	s.arena.SeedItems(report)
	segments := s.arena.InitialSegmentList(InitialSegments)
	ctrl, err := NewController(
		segments,
		DefaultMovementParams(),
		s.arena.TailFactory(),
		s.growth,
		s.rng,
		s.log.With("session", s.ID),
	)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ctrl = ctrl
	s.mu.Unlock()
	s.log.Info("world built", "session", s.ID, "segments", ctrl.Chain().Len(), "heading", ctrl.Heading().String())
	return nil
}

// Exit tears the session down: stops the loop, waits for it to drain,
// releases the growth subscription and enters the exited scene. Idempotent.
func (s *GameSession) Exit() {
	s.stopOnce.Do(func() {
		s.director.Exit()
		close(s.stop)
		<-s.done
		s.mu.Lock()
		ctrl := s.ctrl
		client := s.client
		s.mu.Unlock()
		if ctrl != nil {
			ctrl.Close()
		}
		if client != nil {
			client.Close()
		}
		s.log.Info("session exited", "session", s.ID)
	})
}

// Exited reports whether the session has been torn down.
func (s *GameSession) Exited() bool {
	return s.director.Scene() == SceneExited
}

// SessionStatus is the API-facing snapshot of a session.
type SessionStatus struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Scene        string  `json:"scene"`
	LoadProgress float64 `json:"loadProgress"`
	ChainLength  int     `json:"chainLength"`
	Heading      string  `json:"heading,omitempty"`
	ItemCount    int     `json:"itemCount"`
	UptimeSec    float64 `json:"uptimeSec"`
}

// Status returns the current session snapshot.
func (s *GameSession) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionStatus{
		ID:           s.ID,
		Name:         s.Name,
		Scene:        s.director.Scene().String(),
		LoadProgress: s.director.Progress(),
		ItemCount:    s.arena.ItemCount(),
		UptimeSec:    time.Since(s.createdAt).Seconds(),
	}
	if s.ctrl != nil {
		st.ChainLength = s.ctrl.Chain().Len()
		st.Heading = s.ctrl.Heading().String()
	}
	return st
}

// Attach binds a WebSocket client to the session and blocks reading its
// input until it disconnects. Only one client at a time; a newcomer
// replaces the previous one.
func (s *GameSession) Attach(ws *websocket.Conn) {
	client := NewClient(ws)
	s.mu.Lock()
	old := s.client
	s.client = client
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}
	s.touch()

	_ = client.Send(WelcomeMsg{Type: MsgWelcome, ID: s.ID, ArenaRadius: ArenaRadius})
	_ = client.Send(SceneMsg{
		Type:     MsgScene,
		Scene:    s.director.Scene().String(),
		Progress: s.director.Progress(),
	})
	s.log.Info("client attached", "session", s.ID)

	client.ReadLoop(s.setInput, func() {
		s.mu.Lock()
		if s.client == client {
			s.client = nil
		}
		s.mu.Unlock()
		s.log.Info("client detached", "session", s.ID)
	})
}

// setInput stores the latest input snapshot, last-wins. Values outside
// {-1, 0, 1} are dropped.
func (s *GameSession) setInput(x, y int) {
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return
	}
	s.mu.Lock()
	s.input = AxisInput{X: x, Y: y}
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *GameSession) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *GameSession) idleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActive)
}

// announceScene forwards scene transitions to the attached client.
func (s *GameSession) announceScene(scene Scene, progress float64) {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return
	}
	_ = client.Send(SceneMsg{Type: MsgScene, Scene: scene.String(), Progress: progress})
}

// Client manages a single attached WebSocket.
type Client struct {
	ws     *websocket.Conn
	mu     sync.Mutex // protects ws writes and closed
	closed bool
}

// NewClient creates a client wrapper around an upgraded socket.
func NewClient(ws *websocket.Conn) *Client {
	return &Client{ws: ws}
}

// Send serializes msg to JSON and writes it to the WebSocket.
func (c *Client) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close marks the client closed and closes the socket.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.ws.Close()
}

// ReadLoop handles incoming messages until the socket closes. onInput is
// called for every input message; onDetach once on disconnect.
func (c *Client) ReadLoop(onInput func(x, y int), onDetach func()) {
	defer func() {
		onDetach()
		c.Close()
	}()
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == MsgInput {
			onInput(msg.X, msg.Y)
		}
	}
}

// ErrServerFull is returned when the session cap is reached.
var ErrServerFull = errors.New("session limit reached")

// SessionManager tracks all live sessions.
type SessionManager struct {
	log  *slog.Logger
	seed int64

	mu       sync.RWMutex
	sessions map[string]*GameSession
	counter  int64
}

// NewSessionManager creates an empty manager and starts the idle reaper.
func NewSessionManager(seed int64, logger *slog.Logger) *SessionManager {
	m := &SessionManager{
		log:      logger,
		seed:     seed,
		sessions: make(map[string]*GameSession),
	}
	go m.reapLoop()
	return m
}

// Create builds and registers a new session, enforcing MaxSessions.
func (m *SessionManager) Create(name string, demo bool) (*GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= MaxSessions {
		return nil, ErrServerFull
	}
	m.counter++
	s := NewGameSession(name, demo, m.seed+m.counter, m.log)
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns a session by ID.
func (m *SessionManager) Get(id string) (*GameSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove unregisters a session. The caller is responsible for exiting it.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of registered sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshot returns a copy of all current sessions.
func (m *SessionManager) Snapshot() []*GameSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	return list
}

// reapLoop periodically sweeps for stale sessions.
func (m *SessionManager) reapLoop() {
	for range time.Tick(ReapIntervalSec * time.Second) {
		m.ReapStale()
	}
}

// ReapStale exits and removes every session that has already exited or
// sat idle past SessionIdleTimeout. Returns how many were reaped.
func (m *SessionManager) ReapStale() int {
	reaped := 0
	for _, s := range m.Snapshot() {
		if s.Exited() || s.idleFor() > SessionIdleTimeout*time.Second {
			m.log.Info("reaping session", "session", s.ID, "idle", s.idleFor().Round(time.Second).String())
			s.Exit()
			m.Remove(s.ID)
			reaped++
		}
	}
	return reaped
}
