// Package server exposes topic exploration over HTTP: JSON endpoints
// for navigation, a WebSocket stream of view updates, and an HTML
// export of the current view.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"topictrail/internal/explorer"
	"topictrail/internal/logger"
)

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigins []string
	// SessionTTL is how long a session without API activity or a
	// connected WebSocket client survives. Zero means the default.
	SessionTTL time.Duration
}

const (
	defaultSessionTTL = 30 * time.Minute
	sweepInterval     = time.Minute
)

// session couples one explorer with the WebSocket hub that streams its
// view updates. lastActive is guarded by the Server mutex.
type session struct {
	ID         string
	explorer   *explorer.Explorer
	hub        *wsHub
	created    time.Time
	lastActive time.Time
}

// Server owns the session registry and the HTTP surface.
type Server struct {
	cfg Config
	gen explorer.Generator
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*session

	router     chi.Router
	httpServer *http.Server
	stopSweep  chan struct{}
}

// New creates a Server. Every session created through the API gets its
// own explorer backed by gen.
func New(cfg Config, gen explorer.Generator) *Server {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	s := &Server{
		cfg:      cfg,
		gen:      gen,
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", s.serveIndex)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetView)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/topic", s.handleSubmitTopic)
			r.Post("/back", s.handleBack)
			r.Post("/forward", s.handleForward)
			r.Post("/random", s.handleRandom)
			r.Get("/trail", s.handleTrail)
			r.Get("/export", s.handleExport)
		})
	})

	r.Get("/ws/sessions/{sessionID}", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// createSession registers a new explorer whose updates feed the
// session's WebSocket hub.
func (s *Server) createSession() *session {
	now := time.Now()
	sess := &session{
		ID:         uuid.NewString(),
		explorer:   explorer.New(s.gen),
		hub:        newWSHub(),
		created:    now,
		lastActive: now,
	}
	sess.explorer.OnChange(sess.hub.broadcast)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	logger.Debugf("session %s created", sess.ID)
	return sess
}

// session looks up a registered session and marks it active.
func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastActive = time.Now()
	}
	return sess, ok
}

// sweepIdle drops sessions whose last activity is older than the TTL
// and returns how many were removed. A session with a connected
// WebSocket client is kept regardless of REST activity.
func (s *Server) sweepIdle(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		if sess.hub.clients() > 0 {
			continue
		}
		if sess.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.hub.closeAll()
		logger.Debugf("session %s expired after %s idle", sess.ID, s.ttl)
	}
	return len(expired)
}

func (s *Server) sweepLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sweepIdle(time.Now()); n > 0 {
				logger.Debugf("swept %d idle sessions", n)
			}
		case <-stop:
			return
		}
	}
}

func (s *Server) dropSession(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.hub.closeAll()
	}
	return ok
}

// Start begins listening on the configured host and port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.stopSweep = make(chan struct{})
	go s.sweepLoop(s.stopSweep)

	logger.Infof("topictrail server listening on http://%s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopSweep != nil {
		close(s.stopSweep)
		s.stopSweep = nil
	}

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.hub.closeAll()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
