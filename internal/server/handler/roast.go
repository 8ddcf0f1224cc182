// Package handler provides HTTP handlers for the code review API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/storage"
)

const (
	msgEmptyInput     = "No code to analyze found."
	msgInvalidBody    = "invalid request body"
	msgTimeout        = "review timed out"
	msgReviewNotFound = "review not found"
)

// maxBodyBytes bounds the JSON request body.
const maxBodyBytes = 4 << 20

type roastResponse struct {
	Success      bool              `json:"success"`
	SessionID    string            `json:"session_id"`
	Status       core.ReviewStatus `json:"status"`
	OverallScore int               `json:"overall_score"`
	Badge        string            `json:"badge"`
}

type reviewResponse struct {
	Success bool         `json:"success"`
	Review  *core.Review `json:"review"`
	Issues  []core.Issue `json:"issues"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RoastHandler serves review submissions and lookups.
type RoastHandler struct {
	job    core.Job
	store  storage.Store
	logger *slog.Logger
}

func NewRoastHandler(job core.Job, store storage.Store, logger *slog.Logger) *RoastHandler {
	return &RoastHandler{
		job:    job,
		store:  store,
		logger: logger,
	}
}

// Roast runs a review synchronously and answers with its summary.
func (h *RoastHandler) Roast(w http.ResponseWriter, r *http.Request) {
	var req core.ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Warn("rejecting review request with invalid body", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	summary, err := h.job.Run(r.Context(), &req)
	if err != nil {
		status, msg := classify(err)
		h.logger.Error("review request failed", "status", status, "input_type", req.InputType, "error", err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, roastResponse{
		Success:      true,
		SessionID:    summary.SessionID,
		Status:       summary.Status,
		OverallScore: summary.OverallScore,
		Badge:        summary.Badge,
	})
}

// GetReview returns a stored review and its issues by session id.
func (h *RoastHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	review, err := h.store.GetReviewBySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			writeError(w, http.StatusNotFound, msgReviewNotFound)
			return
		}
		h.logger.Error("failed to load review", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	issues, err := h.store.ListIssues(r.Context(), review.ID)
	if err != nil {
		h.logger.Error("failed to load review issues", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{Success: true, Review: review, Issues: issues})
}

// classify maps a pipeline error to an HTTP status and the message shown to the caller.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrEmptyInput):
		return http.StatusBadRequest, msgEmptyInput
	case core.IsConfigError(err):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msgTimeout
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
