package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitSpacing(t *testing.T) {
	tr := New(30*time.Millisecond, 100, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, tr.Admit(ctx))
	}
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond,
		"3 admissions must be spaced by at least 2 minimum intervals")
}

func TestAdmitQuotaCooldown(t *testing.T) {
	tr := New(time.Millisecond, 2, 120*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, tr.Admit(ctx))
	require.NoError(t, tr.Admit(ctx))

	count, quota, _ := tr.Stats()
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, quota)

	// Third admission has to wait out the rest of the window.
	start := time.Now()
	require.NoError(t, tr.Admit(ctx))
	waited := time.Since(start)

	assert.GreaterOrEqual(t, waited, 50*time.Millisecond)

	// Window rolled over, counter restarted.
	count, _, _ = tr.Stats()
	assert.Equal(t, 1, count)
}

func TestAdmitCancelLeavesStateUntouched(t *testing.T) {
	tr := New(time.Millisecond, 1, time.Minute)
	require.NoError(t, tr.Admit(context.Background()))

	before, _, beforeStart := tr.Stats()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := tr.Admit(ctx)
	require.ErrorIs(t, err, context.Canceled)

	after, _, afterStart := tr.Stats()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeStart, afterStart)
}

func TestAdmitCancelWhileWaiting(t *testing.T) {
	tr := New(time.Millisecond, 1, time.Minute)
	require.NoError(t, tr.Admit(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tr.Admit(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	count, _, _ := tr.Stats()
	assert.Equal(t, 1, count)
}

func TestConcurrentAdmitsHoldInvariants(t *testing.T) {
	const workers = 5
	minInterval := 10 * time.Millisecond
	tr := New(minInterval, workers, time.Minute)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.Admit(context.Background())
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, time.Duration(workers-1)*minInterval,
		"concurrent admissions must still be serialized by the minimum interval")

	count, _, _ := tr.Stats()
	assert.Equal(t, workers, count)
}

func TestQuotaNeverExceededInWindow(t *testing.T) {
	tr := New(time.Millisecond, 3, 200*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tr.Admit(context.Background())
		}()
	}
	wg.Wait()

	count, quota, _ := tr.Stats()
	assert.LessOrEqual(t, count, quota)
}
