package api

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ajitpratap0/tripplanner/internal/knowledge"
	"github.com/ajitpratap0/tripplanner/internal/metrics"
	"github.com/ajitpratap0/tripplanner/internal/models"
	"github.com/ajitpratap0/tripplanner/internal/planner"
	"github.com/ajitpratap0/tripplanner/internal/render"
	"github.com/ajitpratap0/tripplanner/internal/session"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// Server is an HTTP API server that exposes trip planning.
type Server struct {
	sessions     *session.Store
	opts         []planner.Option
	logger       *slog.Logger
	authToken    string // empty = no auth required
	currencyCode string
}

// NewServer creates a new Server. opts are applied to the engines used for
// one-shot plans; session engines take theirs from the store.
func NewServer(st *session.Store, logger *slog.Logger, authToken, currencyCode string, opts ...planner.Option) *Server {
	return &Server{
		sessions:     st,
		opts:         opts,
		logger:       logger,
		authToken:    authToken,
		currencyCode: currencyCode,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics — no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	mux.HandleFunc("GET /v1/regions", s.auth(s.handleRegions))
	mux.HandleFunc("GET /v1/quote", s.auth(s.handleQuote))
	mux.HandleFunc("POST /v1/plans", s.auth(s.handlePlan))

	mux.HandleFunc("POST /v1/sessions", s.auth(s.handleCreateSession))
	mux.HandleFunc("DELETE /v1/sessions/{id}", s.auth(s.handleDeleteSession))
	mux.HandleFunc("PUT /v1/sessions/{id}/destination", s.auth(s.handleSetDestination))
	mux.HandleFunc("PUT /v1/sessions/{id}/dates", s.auth(s.handleSetDates))
	mux.HandleFunc("PUT /v1/sessions/{id}/budget", s.auth(s.handleSetBudget))
	mux.HandleFunc("POST /v1/sessions/{id}/activities", s.auth(s.handleAddActivity))
	mux.HandleFunc("POST /v1/sessions/{id}/finalize", s.auth(s.handleFinalize))
	mux.HandleFunc("GET /v1/sessions/{id}/summary", s.auth(s.handleSummary))
	mux.HandleFunc("GET /v1/sessions/{id}/summary.pdf", s.auth(s.handleSummaryPDF))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- read-only handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type regionsResponse struct {
	Regions []models.RegionInfo `json:"regions"`
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	regions := knowledge.Regions()
	out := make([]models.RegionInfo, len(regions))
	for i, r := range regions {
		out[i] = models.RegionInfo{Name: r.Name, Places: r.Places, Facts: r.Facts}
	}
	s.writeJSON(w, http.StatusOK, regionsResponse{Regions: out})
}

func (s *Server) handleQuote(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"quote": planner.New(s.opts...).RandomQuote()})
}

// planRequest is the body accepted by POST /v1/plans. Budget may be sent as
// a JSON number or as the raw text a form would submit.
type planRequest struct {
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Budget      flexString `json:"budget"`
	Activities  []string   `json:"activities"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !s.decode(w, r, &req) {
		return
	}

	summary, err := planner.Plan(planner.Input{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      string(req.Budget),
		Activities:  req.Activities,
	}, s.opts...)
	if err != nil {
		s.writePlannerError(w, err)
		return
	}

	metrics.Inc(metrics.PlansTotal)
	s.writeJSON(w, http.StatusOK, summary)
}

// --- session handlers ---

type sessionResponse struct {
	ID    string       `json:"id"`
	State models.State `json:"state"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id, err := s.sessions.Create()
	if err != nil {
		if errors.Is(err, session.ErrLimitReached) {
			s.writeError(w, http.StatusServiceUnavailable, "too many active sessions")
			return
		}
		s.logger.Error("failed to create session", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.writeJSON(w, http.StatusCreated, sessionResponse{ID: id, State: models.StateEmpty})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type destinationRequest struct {
	Destination string `json:"destination"`
}

func (s *Server) handleSetDestination(w http.ResponseWriter, r *http.Request) {
	var req destinationRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(e *planner.Engine) error {
		if !e.SetDestination(req.Destination) {
			return planner.ErrInvalidDestination
		}
		return nil
	})
}

type datesRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleSetDates(w http.ResponseWriter, r *http.Request) {
	var req datesRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(e *planner.Engine) error {
		if _, _, err := planner.CheckDates(req.StartDate, req.EndDate); err != nil {
			return err
		}
		e.SetDates(req.StartDate, req.EndDate)
		return nil
	})
}

type budgetRequest struct {
	Budget flexString `json:"budget"`
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(e *planner.Engine) error {
		v, err := planner.ParseBudget(string(req.Budget))
		if err != nil {
			return err
		}
		e.SetBudget(v)
		return nil
	})
}

type activityRequest struct {
	Activity string `json:"activity"`
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.update(w, r, func(e *planner.Engine) error {
		if !e.AddActivity(req.Activity) {
			return planner.ErrEmptyActivity
		}
		return nil
	})
}

type finalizeResponse struct {
	TripName    string             `json:"trip_name"`
	Tier        models.Tier        `json:"tier"`
	Suggestions models.Suggestions `json:"suggestions"`
	Places      []string           `json:"places"`
}

func (s *Server) handleFinalize(w http.ResponseWriter, r *http.Request) {
	var resp finalizeResponse
	err := s.sessions.Do(r.PathValue("id"), func(e *planner.Engine) error {
		resp.TripName = e.GenerateTripName()
		resp.Suggestions = e.GenerateSuggestions()
		resp.Tier = planner.TierFor(e.Budget())
		resp.Places = e.LookupPlaces()
		return nil
	})
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	metrics.Inc(metrics.PlansTotal)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summary(r)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summary(r)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	data, filename, err := render.PDF(summary, s.currencyCode)
	if err != nil {
		s.logger.Error("failed to render PDF", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write PDF", "error", err)
	}
}

func (s *Server) summary(r *http.Request) (models.Summary, error) {
	var out models.Summary
	err := s.sessions.Do(r.PathValue("id"), func(e *planner.Engine) error {
		out = e.Summary()
		return nil
	})
	return out, err
}

// update applies fn to the session named in the path and answers with the
// session's new state.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(e *planner.Engine) error) {
	id := r.PathValue("id")
	var state models.State
	err := s.sessions.Do(id, func(e *planner.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		state = e.State()
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			s.writeSessionError(w, err)
			return
		}
		s.writePlannerError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{ID: id, State: state})
}

// --- helpers ---

// flexString decodes from either a JSON string or a JSON number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// decode reads a JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writePlannerError maps validation failures to 400 and anything else to 500.
func (s *Server) writePlannerError(w http.ResponseWriter, err error) {
	if _, msg, ok := planner.Describe(err); ok {
		metrics.Inc(metrics.ValidationFailures)
		s.writeError(w, http.StatusBadRequest, msg)
		return
	}
	s.logger.Error("planning failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "planning failed")
}

func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.logger.Error("session operation failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "session operation failed")
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
// v is encoded before the header goes out so a failure can still answer 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if encErr := json.NewEncoder(&buf).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"failed to encode response"}`+"\n")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
