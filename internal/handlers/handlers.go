package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkjoshua/boltstheover/internal/db"
	"github.com/pkjoshua/boltstheover/internal/jobs"
	"github.com/pkjoshua/boltstheover/pkg/models"
)

// JobSubmitter enqueues report jobs.
type JobSubmitter interface {
	Submit(ctx context.Context, teamName string) (*jobs.Job, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	stats    db.StatsStore
	odds     db.OddsStore
	builder  jobs.ReportBuilder
	runner   JobSubmitter
	jobStore jobs.Store
}

// NewHandler creates a new handler with dependencies
func NewHandler(stats db.StatsStore, odds db.OddsStore, builder jobs.ReportBuilder, runner JobSubmitter, jobStore jobs.Store) *Handler {
	return &Handler{
		stats:    stats,
		odds:     odds,
		builder:  builder,
		runner:   runner,
		jobStore: jobStore,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.stats.Ping(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "boltstheover",
	})
}

// GetTeams lists every known team, for the dashboard's team picker
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	teams, err := h.stats.ListTeams(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetEventOdds returns the raw odds bundle for an event
func (h *Handler) GetEventOdds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := chi.URLParam(r, "eventID")
	if eventID == "" {
		respondError(w, http.StatusBadRequest, "event_id is required", nil)
		return
	}

	odds, err := h.odds.EventOdds(ctx, eventID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve odds", err)
		return
	}

	respondJSON(w, http.StatusOK, odds)
}

// GetReport builds a report synchronously for one team name.
// Query params: team
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	teamName := r.URL.Query().Get("team")
	if teamName == "" {
		respondError(w, http.StatusBadRequest, "team parameter is required", nil)
		return
	}

	report, err := h.builder.Build(ctx, teamName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build report", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, report)
}

// createReportRequest is the POST /api/v1/reports body
type createReportRequest struct {
	Team string `json:"team"`
}

// CreateReportJob enqueues an async report build and returns the job record
func (h *Handler) CreateReportJob(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Team == "" {
		respondError(w, http.StatusBadRequest, "team is required", nil)
		return
	}

	job, err := h.runner.Submit(r.Context(), req.Team)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to queue report", err)
		return
	}

	respondJSON(w, http.StatusAccepted, job)
}

// GetReportJob returns a job's status and, once done, its rendered report
func (h *Handler) GetReportJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, "job id is required", nil)
		return
	}

	job, err := h.jobStore.Get(ctx, jobID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve job", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
