package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/mocks"
)

func TestSweeper_Sweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := NewSweeper(store, config.ReviewConfig{StaleAfter: 15 * time.Minute}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }

	store.EXPECT().MarkStaleReviews(gomock.Any(), now.Add(-15*time.Minute)).Return(int64(3), nil)
	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	store.EXPECT().MarkStaleReviews(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	_, err = s.Sweep(context.Background())
	assert.Error(t, err)
}

func TestSweeper_DefaultStaleAfter(t *testing.T) {
	s := NewSweeper(nil, config.ReviewConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, DefaultStaleAfter, s.staleAfter)
}

func TestSweeper_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	swept := make(chan struct{}, 1)
	store.EXPECT().MarkStaleReviews(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 0, nil
	}).MinTimes(1)

	s := NewSweeper(store, config.ReviewConfig{SweepInterval: 10 * time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Start()

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep did not run")
	}
	s.Stop()
	s.Stop()
}

func TestSweeper_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewSweeper(mocks.NewMockStore(ctrl), config.ReviewConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Start()
	s.Stop()
}

func TestSweeper_ConcurrentStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().MarkStaleReviews(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	s := NewSweeper(store, config.ReviewConfig{SweepInterval: time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Start()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, s.Stop)
		}()
	}
	wg.Wait()
}
