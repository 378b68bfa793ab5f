package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/formgest/internal/config"
	"github.com/dgallion1/formgest/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Server is the HTTP API server for formgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
	check        *validator.Validate
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
		check:        validator.New(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.FormgestAPIKey, s.log))

		r.Post("/api/forms/synthesize", s.handleSynthesize)
		r.Get("/api/forms/jobs/{jobID}", s.handleJobStatus)
		r.Post("/api/forms/validate", s.handleValidate)

		r.Get("/api/forms/{formID}", s.handleGetForm)
		r.Delete("/api/forms/{formID}", s.handleDeleteForm)
		r.Get("/api/forms/{formID}/responses", s.handleListResponses)

		r.Post("/api/forms/{formID}/questions", s.handleAddQuestion)
		r.Patch("/api/forms/{formID}/questions/{itemID}", s.handleUpdateQuestion)
		r.Delete("/api/forms/{formID}/questions/{index}", s.handleDeleteQuestion)
		r.Post("/api/forms/{formID}/settings", s.handleUpdateSettings)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
