package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last session creation time per IP to prevent abuse
type ipRateLimiter struct {
	mu    sync.Mutex
	times map[string]time.Time
}

func newIPRateLimiter() *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time)}
	// Cleanup stale entries every 60s
	go func() {
		for range time.Tick(60 * time.Second) {
			rl.mu.Lock()
			cutoff := time.Now().Add(-time.Duration(IPCooldownSec) * time.Second)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// allow returns true if this IP can create a session, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if time.Since(last) < time.Duration(IPCooldownSec)*time.Second {
			return false
		}
	}
	rl.times[ip] = time.Now()
	return true
}

// middleware aborts with 429 when the client IP is inside its cooldown.
func (rl *ipRateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many sessions, slow down"})
			return
		}
		c.Next()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:    1024,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// createGameRequest is the body of POST /api/games.
type createGameRequest struct {
	Name string `json:"name"`
	Demo bool   `json:"demo"`
}

func main() {
	logger := newLogger()

	seed := time.Now().UnixNano()
	if env := os.Getenv("SERPENT_SEED"); env != "" {
		if v, err := strconv.ParseInt(env, 10, 64); err == nil {
			seed = v
			logger.Info("using fixed seed", "seed", seed)
		}
	}
	addr := ServerAddr
	if env := os.Getenv("SERPENT_ADDR"); env != "" {
		addr = env
	}

	sessions := NewSessionManager(seed, logger)
	rateLimiter := newIPRateLimiter()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	// Create a session in the menu scene.
	api.POST("/games", rateLimiter.middleware(), func(c *gin.Context) {
		var req createGameRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if req.Name == "" {
			req.Name = "Player"
		}
		s, err := sessions.Create(req.Name, req.Demo)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		logger.Info("session created", "session", s.ID, "name", s.Name, "demo", req.Demo)
		c.JSON(http.StatusCreated, s.Status())
	})

	// Menu → loading → game.
	api.POST("/games/:id/start", func(c *gin.Context) {
		s, ok := sessions.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		if err := s.Start(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s.Status())
	})

	// Scene, load progress, chain length, heading, item count, uptime.
	api.GET("/games/:id", func(c *gin.Context) {
		s, ok := sessions.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusOK, s.Status())
	})

	// Tear down and remove.
	api.POST("/games/:id/exit", func(c *gin.Context) {
		s, ok := sessions.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		s.Exit()
		sessions.Remove(s.ID)
		c.JSON(http.StatusOK, gin.H{"status": "exited"})
	})

	// WebSocket attach: state out, input in.
	r.GET("/ws/:id", func(c *gin.Context) {
		s, ok := sessions.Get(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "err", err)
			return
		}
		// Check after upgrade so the client can receive the error message
		if s.Exited() {
			sendErrorAndClose(ws, "session has exited")
			return
		}
		ws.EnableWriteCompression(true)
		// Blocking read loop — runs until the client disconnects
		s.Attach(ws)
	})

	logger.Info("server listening", "addr", addr, "maxSessions", MaxSessions)
	if err := r.Run(addr); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
