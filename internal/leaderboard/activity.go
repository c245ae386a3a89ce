package leaderboard

import (
	"math"

	"github.com/keilerkonzept/topk"
)

// Activity is an address ranked by number of trades instead of volume.
type Activity struct {
	Address string
	Trades  uint32
}

// MostActive returns up to k entries with the most trades (buys + sells),
// most active first. Entries without trades are skipped.
//
// Counting goes through a top-k sketch sized generously for the batch, so
// for a single fetched batch the counts are exact in practice.
func MostActive(entries []Entry, k int) []Activity {
	if k < 1 || len(entries) == 0 {
		return nil
	}
	sketch := topk.New(k,
		topk.WithWidth(max(256, 16*len(entries))),
		topk.WithDepth(4),
		topk.WithDecay(0.9),
	)
	for _, e := range entries {
		trades := e.Trades()
		if trades <= 0 {
			continue
		}
		sketch.Add(e.Address, uint32(min(trades, math.MaxUint32)))
	}

	items := sketch.SortedSlice()
	out := make([]Activity, 0, len(items))
	for _, item := range items {
		if item.Count == 0 {
			continue
		}
		out = append(out, Activity{Address: item.Item, Trades: item.Count})
	}
	return out
}
