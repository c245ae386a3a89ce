package leaderboard

import (
	"github.com/keilerkonzept/leaderboard-tui/internal/api"
)

// Entry is one ranked address.
//
// Rank is the 1-based position in the last successful fetch response, not a
// stable server-side identifier: if the backend reorders between syncs,
// ranks change with it.
type Entry struct {
	Address      string `json:"address"`
	Rank         int    `json:"rank"`
	BuyCount     int64  `json:"buy_count"`
	SellCount    int64  `json:"sell_count"`
	TotalVolume  string `json:"total_volume_usd"`         // decimal string; parse for display only
	FirstTradeAt string `json:"first_trade_at,omitempty"` // ISO-8601, empty when unknown
	LastTradeAt  string `json:"last_trade_at,omitempty"`  // ISO-8601, empty when unknown
}

// Trades is the total number of swaps for the entry.
func (e Entry) Trades() int64 { return e.BuyCount + e.SellCount }

// EntriesFromTraders maps a backend response into entries, assigning ranks
// by response order.
func EntriesFromTraders(traders []api.Trader) []Entry {
	entries := make([]Entry, len(traders))
	for i, t := range traders {
		entries[i] = Entry{
			Address:      t.Address,
			Rank:         i + 1,
			BuyCount:     t.BuyCount,
			SellCount:    t.SellCount,
			TotalVolume:  t.TotalVolumeUSD,
			FirstTradeAt: deref(t.FirstTradeAt),
			LastTradeAt:  deref(t.LastTradeAt),
		}
	}
	return entries
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
