package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mwantia/pathways/internal/session"
	"github.com/mwantia/pathways/pkg/catalog"
	"github.com/mwantia/pathways/pkg/inquiry"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/metrics"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type Options struct {
	Colleges   *catalog.Catalog[catalog.College]
	Programs   *catalog.Catalog[catalog.TransferProgram]
	Sessions   *session.Manager
	Inquiries  *inquiry.Service
	Tolerances match.Tolerances

	// Optional
	Health         HealthChecker
	Metrics        *metrics.Metrics
	ExposeMetrics  bool
	RequestTimeout time.Duration
	Logger         log.LoggerService
}

// Server is the HTTP layer over the session manager and the matching engine.
type Server struct {
	colleges  *catalog.Catalog[catalog.College]
	programs  *catalog.Catalog[catalog.TransferProgram]
	sessions  *session.Manager
	inquiries *inquiry.Service

	mu         sync.RWMutex
	tolerances match.Tolerances

	health        HealthChecker
	metrics       *metrics.Metrics
	exposeMetrics bool
	timeout       time.Duration
	log           log.LoggerService
}

// NewServer creates a Server. A nil Logger discards output.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Server{
		colleges:      opts.Colleges,
		programs:      opts.Programs,
		sessions:      opts.Sessions,
		inquiries:     opts.Inquiries,
		tolerances:    opts.Tolerances,
		health:        opts.Health,
		metrics:       opts.Metrics,
		exposeMetrics: opts.ExposeMetrics,
		timeout:       opts.RequestTimeout,
		log:           logger,
	}
}

// SetTolerances replaces the matching tolerances used by later requests.
func (s *Server) SetTolerances(t match.Tolerances) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tolerances = t
}

// Tolerances returns the tolerances currently applied to matching.
func (s *Server) Tolerances() match.Tolerances {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tolerances
}

// Handler builds the complete router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recovery(s.log))
	r.Use(AccessLog(s.log, s.metrics))
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.handleHealth)
	if s.exposeMetrics {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/colleges", s.handleListColleges)
		r.Get("/programs", s.handleListPrograms)
		r.Get("/essays/prompts", s.handleListPrompts)
		r.Post("/inquiries", s.handleSubmitInquiry)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{session}", s.registerSession)
	})

	return r
}

func (s *Server) registerSession(r chi.Router) {
	r.Get("/", s.handleGetSession)
	r.Delete("/", s.handleDeleteSession)
	r.Post("/reset", s.handleResetSession)
	r.Put("/view", s.handleSetView)
	r.Put("/student-type", s.handleSetStudentType)

	r.Get("/criteria", s.handleGetCriteria)
	r.Patch("/criteria", s.handlePatchCriteria)
	r.Post("/criteria/toggle", s.handleToggleCriteria)
	r.Get("/matches", s.handleMatches)

	r.Get("/transfer/criteria", s.handleGetTransferCriteria)
	r.Patch("/transfer/criteria", s.handlePatchTransferCriteria)
	r.Get("/transfer/matches", s.handleTransferMatches)

	r.Get("/selection", s.handleGetSelection)
	r.Post("/selection/{college}", s.handleToggleSelection)
	r.Delete("/selection", s.handleClearSelection)
	r.Get("/comparison", s.handleComparison)

	r.Get("/documents", s.handleListDocuments)
	r.Post("/documents/{document}/advance", s.handleAdvanceDocument)
	r.Delete("/documents/{document}", s.handleDeleteDocument)

	r.Get("/timeline", s.handleTimeline)
	r.Post("/timeline/{task}/toggle", s.handleToggleTask)
	r.Post("/timeline/{task}/subtasks/toggle", s.handleToggleSubtask)

	r.Post("/essays/{prompt}/feedback", s.handleEssayFeedback)
	r.Put("/essays/{prompt}/draft", s.handleSaveDraft)
	r.Get("/essays/{prompt}/draft", s.handleLoadDraft)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	}
	if s.health != nil {
		if err := s.health.Health(r.Context()); err != nil {
			s.log.Warn("Health check failed: %v", err)
			status["status"] = "degraded"
			status["store"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

// withSession resolves the {session} parameter and runs fn under its lock.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.State) (int, any, error)) {
	sess, err := s.sessions.Get(chi.URLParam(r, "session"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		status int
		body   any
	)
	err = sess.Do(func(st *session.State) error {
		var err error
		status, body, err = fn(st)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, body)
}
