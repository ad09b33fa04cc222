package devserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/subwatch/internal/model"
)

const lastRefreshLayout = "2006-01-02 15:04:05"

// Server replays a Script over the backend's HTTP API.
type Server struct {
	addr     string
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	script  Script
	current *model.Snapshot
	next    int
	now     func() time.Time
}

// NewServer creates a fake backend for script.
func NewServer(addr string, script Script) *Server {
	if addr == "" {
		addr = model.DefaultDevServerAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:   addr,
		ctx:    ctx,
		cancel: cancel,
		script: script,
		now:    time.Now,
	}
	s.current = s.stamp(script.Initial.Clone())

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET(model.PathHealth, s.handleHealth)
	r.GET(model.PathCount, s.handleCount)
	r.POST(model.PathRefresh, s.handleRefresh)
	s.engine = r

	return s
}

// Handler exposes the router, for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.engine,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	s.mu.Lock()
	problemID := ""
	if s.current.ProblemID != nil {
		problemID = *s.current.ProblemID
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"timestamp":  s.now().Format(time.RFC3339),
		"problem_id": problemID,
	})
}

func (s *Server) handleCount(c *gin.Context) {
	if code := s.script.CountStatusCode; code != 0 {
		c.JSON(code, gin.H{"error": http.StatusText(code)})
		return
	}

	s.mu.Lock()
	snap := s.current.Clone()
	s.mu.Unlock()

	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleRefresh(c *gin.Context) {
	step, ok := s.nextStep()

	if step.Delay > 0 {
		select {
		case <-time.After(step.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	if step.StatusCode != 0 {
		c.JSON(step.StatusCode, gin.H{"error": http.StatusText(step.StatusCode)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if step.Snapshot != nil || !ok {
		next := step.Snapshot.Clone()
		if next == nil {
			next = s.current.Clone()
			next.LastRefresh = nil
		}
		if next.ProblemID == nil {
			next.ProblemID = s.current.ProblemID
		}
		s.current = s.stamp(next)
	}

	if step.Fail {
		msg := step.Message
		if msg == "" {
			msg = "Failed to refresh count"
		}
		c.JSON(http.StatusOK, model.RefreshResponse{Success: false, Message: msg})
		return
	}

	msg := step.Message
	if msg == "" {
		msg = "Count refreshed successfully"
	}
	c.JSON(http.StatusOK, model.RefreshResponse{Success: true, Data: s.current.Clone(), Message: msg})
}

// nextStep returns the step for this refresh. ok is false when the script
// has no refresh steps, in which case the current snapshot is restamped.
func (s *Server) nextStep() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.script.Refreshes) == 0 {
		return Step{}, false
	}
	idx := s.next
	if idx >= len(s.script.Refreshes) {
		idx = len(s.script.Refreshes) - 1
	} else {
		s.next++
	}
	return s.script.Refreshes[idx], true
}

// stamp fills an empty last_refresh with the server clock.
func (s *Server) stamp(snap *model.Snapshot) *model.Snapshot {
	if snap.LastRefresh == nil || *snap.LastRefresh == "" {
		snap.LastRefresh = model.String(s.now().Format(lastRefreshLayout))
	}
	return snap
}
