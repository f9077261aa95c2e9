package bets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/joefazee/betpoints/internal/logger"
)

func TestSweeper_Sweep(t *testing.T) {
	settler := new(MockSettler)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	settler.On("ExpireStaleBets", mock.Anything, now).Return(&BatchResult{Cancelled: 2, Pushed: 1}, nil)

	sweeper := NewSweeper(settler, nil, logger.NewNullLogger())
	sweeper.now = func() time.Time { return now }

	result := sweeper.Sweep(context.Background())

	assert.Equal(t, 3, result.Total())
	settler.AssertExpectations(t)
}

func TestSweeper_SweepSurvivesErrors(t *testing.T) {
	settler := new(MockSettler)
	settler.On("ExpireStaleBets", mock.Anything, mock.Anything).Return(&BatchResult{Failed: 1}, errors.New("boom"))

	sweeper := NewSweeper(settler, nil, logger.NewNullLogger())

	result := sweeper.Sweep(context.Background())

	assert.Equal(t, 1, result.Failed)
}

func TestSweeper_RunStopsOnCancel(t *testing.T) {
	swept := make(chan struct{}, 1)
	settler := new(MockSettler)
	settler.On("ExpireStaleBets", mock.Anything, mock.Anything).Return(&BatchResult{}, nil).
		Run(func(mock.Arguments) {
			select {
			case swept <- struct{}{}:
			default:
			}
		})

	cfg := GetDefaultConfig()
	cfg.SweepInterval = time.Hour
	sweeper := NewSweeper(settler, cfg, logger.NewNullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
