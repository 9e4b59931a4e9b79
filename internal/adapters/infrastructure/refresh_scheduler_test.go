package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/mocks"
	"weatherview.app/pkg/errors"
)

func TestRefreshScheduler_PostsToDispatcher(t *testing.T) {
	loop := NewEventLoop()
	scheduler := NewRefreshScheduler(loop, mocks.NewQuietLogger(t))

	refreshes := 0
	require.NoError(t, scheduler.Every(50*time.Millisecond, "observations", func() { refreshes++ }))
	scheduler.Start()
	defer scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	loop.RunUntil(ctx, func() bool { return refreshes >= 2 })

	assert.GreaterOrEqual(t, refreshes, 2)
}

func TestRefreshScheduler_RejectsNonPositiveInterval(t *testing.T) {
	scheduler := NewRefreshScheduler(NewEventLoop(), mocks.NewQuietLogger(t))
	assert.True(t, errors.IsValidationError(scheduler.Every(0, "x", func() {})))
}
