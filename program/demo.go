package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keilerkonzept/leaderboard-tui/internal/api"
)

// demoBackend serves a generated leaderboard without any network. It has no
// Sync method, so the view it backs offers no sync action.
type demoBackend struct {
	traders []api.Trader
}

func newDemoBackend(n int, seed uint64, now time.Time) *demoBackend {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	traders := make([]api.Trader, n)
	for i := range traders {
		// $100K to $5M, with cents
		volume := decimal.New(r.Int64N(490_000_000)+10_000_000, -2)
		first := now.Add(-time.Duration(r.IntN(30*24)+24) * time.Hour).UTC().Format(time.RFC3339)
		last := now.Add(-time.Duration(r.IntN(24*60)) * time.Minute).UTC().Format(time.RFC3339)
		traders[i] = api.Trader{
			Address:        fmt.Sprintf("0x%016x%016x%08x", r.Uint64(), r.Uint64(), r.Uint32()),
			BuyCount:       r.Int64N(491) + 10,
			SellCount:      r.Int64N(396) + 5,
			TotalVolumeUSD: volume.String(),
			FirstTradeAt:   &first,
			LastTradeAt:    &last,
		}
	}
	slices.SortStableFunc(traders, func(a, b api.Trader) int {
		return decimal.RequireFromString(b.TotalVolumeUSD).Cmp(decimal.RequireFromString(a.TotalVolumeUSD))
	})
	return &demoBackend{traders: traders}
}

func (d *demoBackend) Leaderboard(_ context.Context, page, pageSize int) ([]api.Trader, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("invalid paging page=%d page_size=%d", page, pageSize)
	}
	start := (page - 1) * pageSize
	if start >= len(d.traders) {
		return []api.Trader{}, nil
	}
	end := min(start+pageSize, len(d.traders))
	return slices.Clone(d.traders[start:end]), nil
}
