package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sevigo/code-critic/internal/core"
)

// ErrReviewNotFound is returned by lookups that match no review.
var ErrReviewNotFound = errors.New("review not found")

// Store defines the interface for all database operations.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	// CreateReview inserts review and fills in its ID and timestamps.
	CreateReview(ctx context.Context, review *core.Review) error
	// SaveIssues inserts all issues of a review in one transaction.
	SaveIssues(ctx context.Context, reviewID int64, issues []core.Issue) error
	// CompleteReview stores the scores and moves the review to complete.
	CompleteReview(ctx context.Context, reviewID int64, scores core.Scores) error
	GetReview(ctx context.Context, id int64) (*core.Review, error)
	GetReviewBySession(ctx context.Context, sessionID string) (*core.Review, error)
	ListIssues(ctx context.Context, reviewID int64) ([]core.Issue, error)
	// MarkStaleReviews moves reviews still analyzing since before olderThan to failed
	// and returns how many were changed.
	MarkStaleReviews(ctx context.Context, olderThan time.Time) (int64, error)
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &core.StoreError{Op: op, Err: err}
}
