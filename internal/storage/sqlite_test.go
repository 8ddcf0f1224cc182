package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/db"
)

func newTestStore(t *testing.T) *sqliteStore {
	t.Helper()
	conn, cleanup, err := db.NewSQLite(&config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	store, err := NewSQLiteStore(conn)
	require.NoError(t, err)
	return store.(*sqliteStore)
}

func newAnalyzingReview(sessionID string) *core.Review {
	return &core.Review{
		SessionID:   sessionID,
		CodeSnippet: "SELECT * FROM users WHERE id = ' + id",
		GitHubURL:   "",
		Language:    "sql",
		RoastLevel:  core.RoastSavage,
		Status:      core.StatusAnalyzing,
	}
}

func intPtr(n int) *int { return &n }

func TestSQLiteStore_ReviewLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	review := newAnalyzingReview("abc123def456")
	require.NoError(t, store.CreateReview(ctx, review))
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	got, err := store.GetReview(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusAnalyzing, got.Status)
	assert.Equal(t, core.RoastSavage, got.RoastLevel)
	assert.Nil(t, got.Scores)

	issues := []core.Issue{
		{
			IssueType:    core.IssueSecurity,
			Severity:     core.SeverityCritical,
			Title:        "SQL Injection Buffet",
			LineNumber:   intPtr(1),
			WidgetType:   core.WidgetSecurityBomb,
			WidgetConfig: json.RawMessage(`{"severity_level":9}`),
			ImpactScore:  intPtr(40),
		},
		{
			IssueType:  core.IssueStyle,
			Severity:   core.SeverityLow,
			Title:      "Shouting SQL",
			WidgetType: core.WidgetGenericRoast,
		},
	}
	require.NoError(t, store.SaveIssues(ctx, review.ID, issues))

	scores := core.Scores{Security: 60, Performance: 100, Maintainability: 90, Overall: 83, Badge: "💪 Getting There"}
	require.NoError(t, store.CompleteReview(ctx, review.ID, scores))

	got, err = store.GetReviewBySession(ctx, "abc123def456")
	require.NoError(t, err)
	assert.Equal(t, core.StatusComplete, got.Status)
	require.NotNil(t, got.Scores)
	assert.Equal(t, scores, *got.Scores)

	stored, err := store.ListIssues(ctx, review.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "SQL Injection Buffet", stored[0].Title)
	assert.Equal(t, review.ID, stored[0].ReviewID)
	require.NotNil(t, stored[0].LineNumber)
	assert.Equal(t, 1, *stored[0].LineNumber)
	assert.JSONEq(t, `{"severity_level":9}`, string(stored[0].WidgetConfig))
	assert.Equal(t, 40, *stored[0].ImpactScore)

	// A missing impact is persisted as 0 and the missing widget config as an empty object.
	assert.Equal(t, 0, *stored[1].ImpactScore)
	assert.JSONEq(t, `{}`, string(stored[1].WidgetConfig))
	assert.Nil(t, stored[1].LineNumber)
}

func TestSQLiteStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.GetReview(ctx, 42)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = store.GetReviewBySession(ctx, "missing")
	assert.ErrorIs(t, err, ErrReviewNotFound)

	err = store.CompleteReview(ctx, 42, core.Scores{})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	var storeErr *core.StoreError
	assert.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "complete review", storeErr.Op)
}

func TestSQLiteStore_DuplicateSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateReview(ctx, newAnalyzingReview("dup")))
	err := store.CreateReview(ctx, newAnalyzingReview("dup"))
	require.Error(t, err)

	var storeErr *core.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestSQLiteStore_SaveNoIssues(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.SaveIssues(context.Background(), 1, nil))
}

func TestSQLiteStore_MarkStaleReviews(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	store.now = func() time.Time { return base }
	stale := newAnalyzingReview("stale")
	require.NoError(t, store.CreateReview(ctx, stale))
	done := newAnalyzingReview("done")
	require.NoError(t, store.CreateReview(ctx, done))
	require.NoError(t, store.CompleteReview(ctx, done.ID, core.Scores{Overall: 100, Badge: "🏆 Code Master"}))

	store.now = func() time.Time { return base.Add(time.Hour) }
	fresh := newAnalyzingReview("fresh")
	require.NoError(t, store.CreateReview(ctx, fresh))

	n, err := store.MarkStaleReviews(ctx, base.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := store.GetReview(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusFailed, got.Status)

	got, err = store.GetReview(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusComplete, got.Status)

	got, err = store.GetReview(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusAnalyzing, got.Status)

	// Running again changes nothing.
	n, err = store.MarkStaleReviews(ctx, base.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)
}
