package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sevigo/code-critic/internal/core"
)

type sqliteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLiteStore creates a gorm-backed Store and migrates its schema.
func NewSQLiteStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&reviewRecord{}, &issueRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return &sqliteStore{db: db, now: utcNow}, nil
}

func (s *sqliteStore) CreateReview(ctx context.Context, review *core.Review) error {
	rec := newReviewRecord(review, s.now())
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return storeErr("create review", err)
	}
	review.ID = rec.ID
	review.CreatedAt = rec.CreatedAt
	review.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *sqliteStore) SaveIssues(ctx context.Context, reviewID int64, issues []core.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	now := s.now()
	recs := make([]issueRecord, 0, len(issues))
	for _, issue := range issues {
		recs = append(recs, newIssueRecord(reviewID, issue, now))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recs).Error
	})
	return storeErr("save issues", err)
}

func (s *sqliteStore) CompleteReview(ctx context.Context, reviewID int64, scores core.Scores) error {
	res := s.db.WithContext(ctx).Model(&reviewRecord{}).Where("id = ?", reviewID).Updates(map[string]any{
		"status":                string(core.StatusComplete),
		"security_score":        scores.Security,
		"performance_score":     scores.Performance,
		"maintainability_score": scores.Maintainability,
		"overall_score":         scores.Overall,
		"badge":                 scores.Badge,
		"updated_at":            s.now(),
	})
	if res.Error != nil {
		return storeErr("complete review", res.Error)
	}
	if res.RowsAffected == 0 {
		return storeErr("complete review", fmt.Errorf("%w: id %d", ErrReviewNotFound, reviewID))
	}
	return nil
}

func (s *sqliteStore) GetReview(ctx context.Context, id int64) (*core.Review, error) {
	return s.getReview(ctx, "get review", "id = ?", id)
}

func (s *sqliteStore) GetReviewBySession(ctx context.Context, sessionID string) (*core.Review, error) {
	return s.getReview(ctx, "get review by session", "session_id = ?", sessionID)
}

func (s *sqliteStore) getReview(ctx context.Context, op, where string, arg any) (*core.Review, error) {
	var rec reviewRecord
	if err := s.db.WithContext(ctx).Where(where, arg).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeErr(op, ErrReviewNotFound)
		}
		return nil, storeErr(op, err)
	}
	return rec.toReview(), nil
}

func (s *sqliteStore) ListIssues(ctx context.Context, reviewID int64) ([]core.Issue, error) {
	var recs []issueRecord
	if err := s.db.WithContext(ctx).Where("review_id = ?", reviewID).Order("id").Find(&recs).Error; err != nil {
		return nil, storeErr("list issues", err)
	}

	issues := make([]core.Issue, 0, len(recs))
	for _, rec := range recs {
		issues = append(issues, rec.toIssue())
	}
	return issues, nil
}

func (s *sqliteStore) MarkStaleReviews(ctx context.Context, olderThan time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&reviewRecord{}).
		Where("status = ? AND created_at < ?", string(core.StatusAnalyzing), olderThan.UTC()).
		Updates(map[string]any{
			"status":     string(core.StatusFailed),
			"updated_at": s.now(),
		})
	if res.Error != nil {
		return 0, storeErr("mark stale reviews", res.Error)
	}
	return res.RowsAffected, nil
}
