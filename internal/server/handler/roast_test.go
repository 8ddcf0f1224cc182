package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/storage"
	"github.com/sevigo/code-critic/mocks"
)

type jobFunc func(ctx context.Context, req *core.ReviewRequest) (*core.ReviewSummary, error)

func (f jobFunc) Run(ctx context.Context, req *core.ReviewRequest) (*core.ReviewSummary, error) {
	return f(ctx, req)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoastHandler_Roast(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		job        jobFunc
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "success",
			body: `{"code":"SELECT 1","language":"sql","roastLevel":"savage"}`,
			job: func(_ context.Context, req *core.ReviewRequest) (*core.ReviewSummary, error) {
				if req.Code != "SELECT 1" || req.Language != "sql" || req.RoastLevel != core.RoastSavage {
					return nil, fmt.Errorf("unexpected request %+v", req)
				}
				return &core.ReviewSummary{SessionID: "abc123def456", Status: core.StatusComplete, OverallScore: 87, Badge: "💪 Getting There"}, nil
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"success": true, "session_id": "abc123def456", "status": "complete",
				"overall_score": float64(87), "badge": "💪 Getting There",
			},
		},
		{
			name: "snake case fields",
			body: `{"input_type":"github_pr","github_url":"https://github.com/o/r/pull/1"}`,
			job: func(_ context.Context, req *core.ReviewRequest) (*core.ReviewSummary, error) {
				if req.InputType != core.InputGitHubPR || req.GitHubURL != "https://github.com/o/r/pull/1" {
					return nil, fmt.Errorf("unexpected request %+v", req)
				}
				return &core.ReviewSummary{SessionID: "s", Status: core.StatusComplete, OverallScore: 100, Badge: "🏆 Code Master"}, nil
			},
			wantStatus: http.StatusOK,
			wantBody: map[string]any{
				"success": true, "session_id": "s", "status": "complete",
				"overall_score": float64(100), "badge": "🏆 Code Master",
			},
		},
		{
			name:       "invalid json",
			body:       `{"code":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "invalid request body"},
		},
		{
			name: "empty input",
			body: `{"input_type":"code","code":""}`,
			job: func(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
				return nil, core.ErrEmptyInput
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"success": false, "error": "No code to analyze found."},
		},
		{
			name: "misconfigured",
			body: `{"code":"x"}`,
			job: func(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
				return nil, &core.ConfigError{Reason: "Missing Perplexity API Key"}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "Misconfigured: Missing Perplexity API Key"},
		},
		{
			name: "timeout",
			body: `{"code":"x"}`,
			job: func(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
				return nil, fmt.Errorf("critique: %w", context.DeadlineExceeded)
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   map[string]any{"success": false, "error": "review timed out"},
		},
		{
			name: "upstream failure",
			body: `{"code":"x"}`,
			job: func(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
				return nil, &core.UpstreamServiceError{Provider: "Perplexity", StatusCode: 401, Body: "Unauthorized"}
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"success": false, "error": "Perplexity API error: 401 Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := tt.job
			if job == nil {
				job = func(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
					return nil, errors.New("job must not run")
				}
			}
			h := NewRoastHandler(job, nil, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/roast", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Roast(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decodeBody(t, rec))
		})
	}
}

func TestRoastHandler_GetReview(t *testing.T) {
	impact := 40
	review := &core.Review{ID: 3, SessionID: "abc", Status: core.StatusComplete, Scores: &core.Scores{Overall: 87, Badge: "💪 Getting There"}}

	tests := []struct {
		name       string
		mockSetup  func(s *mocks.MockStore)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name: "found",
			mockSetup: func(s *mocks.MockStore) {
				s.EXPECT().GetReviewBySession(gomock.Any(), "abc").Return(review, nil)
				s.EXPECT().ListIssues(gomock.Any(), int64(3)).Return([]core.Issue{{Title: "SQL Injection", ImpactScore: &impact}}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, true, body["success"])
				rv := body["review"].(map[string]any)
				assert.Equal(t, "abc", rv["session_id"])
				assert.Equal(t, "complete", rv["status"])
				issues := body["issues"].([]any)
				require.Len(t, issues, 1)
				assert.Equal(t, "SQL Injection", issues[0].(map[string]any)["title"])
			},
		},
		{
			name: "not found",
			mockSetup: func(s *mocks.MockStore) {
				s.EXPECT().GetReviewBySession(gomock.Any(), "abc").
					Return(nil, &core.StoreError{Op: "get review by session", Err: storage.ErrReviewNotFound})
			},
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, map[string]any{"success": false, "error": "review not found"}, body)
			},
		},
		{
			name: "store failure",
			mockSetup: func(s *mocks.MockStore) {
				s.EXPECT().GetReviewBySession(gomock.Any(), "abc").Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, false, body["success"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			tt.mockSetup(store)

			h := NewRoastHandler(nil, store, discardLogger())
			r := chi.NewRouter()
			r.Get("/api/v1/reviews/{sessionID}", h.GetReview)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reviews/abc", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.check(t, decodeBody(t, rec))
		})
	}
}
