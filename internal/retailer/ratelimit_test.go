package retailer_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 2000,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 2000,
			calls: 5,
		},
		{
			name:  "zero daily limit means unlimited",
			rate:  100,
			burst: 10,
			daily: 0,
			calls: 10,
		},
		{
			name:    "rejects when daily limit reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := retailer.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.Error(t, lastErr)
				assert.ErrorIs(t, lastErr, retailer.ErrDailyLimitReached)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_DailyCount(t *testing.T) {
	t.Parallel()

	rl := retailer.NewRateLimiter(100, 10, 50)

	assert.Equal(t, int64(0), rl.DailyCount())
	assert.Equal(t, int64(50), rl.Remaining())

	for range 3 {
		require.NoError(t, rl.Wait(context.Background()))
	}

	assert.Equal(t, int64(3), rl.DailyCount())
	assert.Equal(t, int64(47), rl.Remaining())
}

func TestRateLimiter_RemainingWithoutDailyBudget(t *testing.T) {
	t.Parallel()

	for _, maxDaily := range []int64{0, -1} {
		rl := retailer.NewRateLimiter(100, 10, maxDaily)
		require.NoError(t, rl.Wait(context.Background()))

		assert.Equal(t, int64(math.MaxInt64), rl.Remaining(), "maxDaily=%d", maxDaily)
		assert.Equal(t, int64(1), rl.DailyCount())
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	rl := retailer.NewRateLimiter(100, 10, 1, retailer.WithRateLimiterNowFunc(clock))
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), retailer.ErrDailyLimitReached)
	assert.Equal(t, now.Add(24*time.Hour), rl.ResetAt())

	mu.Lock()
	now = now.Add(25 * time.Hour)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_CanceledWaitReleasesBudget(t *testing.T) {
	t.Parallel()

	// One token, refilled once per hour.
	rl := retailer.NewRateLimiter(1.0/3600, 1, 10)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	rl := retailer.NewRateLimiter(1000, 100, 20)

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for range 30 {
		wg.Go(func() {
			errs <- rl.Wait(context.Background())
		})
	}
	wg.Wait()
	close(errs)

	var failed int
	for err := range errs {
		if err != nil {
			failed++
		}
	}
	assert.Equal(t, 10, failed)
	assert.Equal(t, int64(20), rl.DailyCount())
}
