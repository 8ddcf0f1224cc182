package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
)

type stubJob struct {
	calls int
}

func (j *stubJob) Run(context.Context, *core.ReviewRequest) (*core.ReviewSummary, error) {
	j.calls++
	return &core.ReviewSummary{SessionID: "s", Status: core.StatusComplete, OverallScore: 100, Badge: "🏆 Code Master"}, nil
}

func TestRouter(t *testing.T) {
	job := &stubJob{}
	cfg := &config.Config{Server: config.ServerConfig{RequestTimeout: time.Second}}
	router := NewRouter(cfg, job, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/roast", `{"code":"x"}`, http.StatusOK},
		{http.MethodPost, "/api/v1/roast", `{"code":"x"}`, http.StatusOK},
		{http.MethodGet, "/api/roast", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, 2, job.calls)
}

type pipelineDeadlineJob struct {
	timeout        time.Duration
	requestExpired bool
}

// Run mimics the review pipeline: it derives its own deadline and reports whether
// the request context had already expired when that deadline fired.
func (j *pipelineDeadlineJob) Run(ctx context.Context, _ *core.ReviewRequest) (*core.ReviewSummary, error) {
	pipelineCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	<-pipelineCtx.Done()
	j.requestExpired = ctx.Err() != nil
	return nil, pipelineCtx.Err()
}

func TestRouter_PipelineDeadlineFiresFirst(t *testing.T) {
	timeout := 50 * time.Millisecond
	cfg := &config.Config{Server: config.ServerConfig{RequestTimeout: timeout}}
	job := &pipelineDeadlineJob{timeout: timeout}
	router := NewRouter(cfg, job, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/roast", strings.NewReader(`{"code":"x"}`)))

	assert.False(t, job.requestExpired, "the router timeout must outlast the pipeline deadline")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"review timed out"}`, rec.Body.String())
}
