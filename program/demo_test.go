package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

var demoNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDemoBackendIsDeterministic(t *testing.T) {
	t.Parallel()

	a := newDemoBackend(20, 42, demoNow)
	b := newDemoBackend(20, 42, demoNow)
	assert.Equal(t, a.traders, b.traders)

	c := newDemoBackend(20, 43, demoNow)
	assert.NotEqual(t, a.traders, c.traders)
}

func TestDemoBackendData(t *testing.T) {
	t.Parallel()

	d := newDemoBackend(demoSize, 7, demoNow)
	require.Len(t, d.traders, demoSize)

	var prev decimal.Decimal
	for i, tr := range d.traders {
		assert.Len(t, tr.Address, 42)
		assert.True(t, strings.HasPrefix(tr.Address, "0x"))

		v, err := decimal.NewFromString(tr.TotalVolumeUSD)
		require.NoError(t, err)
		assert.True(t, v.GreaterThanOrEqual(decimal.NewFromInt(100_000)), "volume %s", v)
		assert.True(t, v.LessThan(decimal.NewFromInt(5_000_000)), "volume %s", v)
		if i > 0 {
			assert.True(t, v.LessThanOrEqual(prev), "not sorted by volume at %d", i)
		}
		prev = v

		assert.GreaterOrEqual(t, tr.BuyCount, int64(10))
		assert.LessOrEqual(t, tr.BuyCount, int64(500))
		assert.GreaterOrEqual(t, tr.SellCount, int64(5))
		assert.LessOrEqual(t, tr.SellCount, int64(400))

		require.NotNil(t, tr.FirstTradeAt)
		require.NotNil(t, tr.LastTradeAt)
		first, err := time.Parse(time.RFC3339, *tr.FirstTradeAt)
		require.NoError(t, err)
		last, err := time.Parse(time.RFC3339, *tr.LastTradeAt)
		require.NoError(t, err)
		assert.True(t, first.Before(last))
		assert.False(t, last.After(demoNow))
	}
}

func TestDemoBackendPaging(t *testing.T) {
	t.Parallel()

	d := newDemoBackend(25, 1, demoNow)
	ctx := context.Background()

	page, err := d.Leaderboard(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, d.traders[:10], page)

	page, err = d.Leaderboard(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, d.traders[20:], page)

	page, err = d.Leaderboard(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = d.Leaderboard(ctx, 0, 10)
	require.Error(t, err)
	_, err = d.Leaderboard(ctx, 1, 0)
	require.Error(t, err)

	// callers own the returned slice
	page, err = d.Leaderboard(ctx, 1, 1)
	require.NoError(t, err)
	page[0].Address = "changed"
	assert.NotEqual(t, "changed", d.traders[0].Address)
}

func TestDemoBackendCannotSync(t *testing.T) {
	t.Parallel()

	var backend leaderboard.Backend = newDemoBackend(1, 1, demoNow)
	_, ok := backend.(leaderboard.Syncer)
	assert.False(t, ok)

	ctrl := leaderboard.NewController(backend, leaderboard.Options{})
	assert.False(t, ctrl.CanSync())
	assert.Nil(t, ctrl.Sync())
}
