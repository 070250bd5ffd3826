package source

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSynthetic_Load(t *testing.T) {
	registeredAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := NewSynthetic(DefaultCount, DefaultMaxBalance, 0,
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(fixedClock(registeredAt)),
	)

	users, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 100)

	ids := make(map[string]struct{}, len(users))
	balances := make(map[float64]struct{}, len(users))
	active := 0
	for i, u := range users {
		n := strconv.Itoa(i + 1)
		assert.Equal(t, n, u.ID)
		assert.Equal(t, "User "+n, u.Name)
		assert.Equal(t, "user"+n+"@example.com", u.Email)
		assert.Equal(t, registeredAt, u.RegisterAt)
		assert.GreaterOrEqual(t, u.Balance, 0.0)
		assert.Less(t, u.Balance, DefaultMaxBalance)
		ids[u.ID] = struct{}{}
		balances[u.Balance] = struct{}{}
		if u.Active {
			active++
		}
	}
	assert.Len(t, ids, 100)
	assert.Len(t, balances, 100)
	assert.Greater(t, active, 20)
	assert.Less(t, active, 80)
}

func TestSynthetic_LoadWaitsForDelay(t *testing.T) {
	src := NewSynthetic(3, DefaultMaxBalance, 30*time.Millisecond)

	start := time.Now()
	users, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestSynthetic_LoadCancelled(t *testing.T) {
	src := NewSynthetic(DefaultCount, DefaultMaxBalance, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	users, err := src.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, users)
}

func TestSynthetic_Defaults(t *testing.T) {
	src := NewSynthetic(-1, 0, -time.Second)
	assert.Equal(t, DefaultCount, src.Count)
	assert.Equal(t, DefaultMaxBalance, src.MaxBalance)
	assert.Zero(t, src.Delay)

	empty := NewSynthetic(0, 10, 0)
	users, err := empty.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}
