package main

import (
	"strings"
	"testing"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/keilerkonzept/leaderboard-tui/internal/leaderboard"
)

func TestHeaderView(t *testing.T) {
	t.Parallel()

	t.Run("no sync action without a sync callback", func(t *testing.T) {
		t.Parallel()
		h := header{title: "Top Traders", subtitle: "demo data"}
		view := h.View(80)
		assert.Contains(t, view, "Top Traders")
		assert.Contains(t, view, "demo data")
		assert.NotContains(t, view, "sync")
	})

	t.Run("sync hint when callback is set", func(t *testing.T) {
		t.Parallel()
		h := header{title: "Top Traders", onSync: func() tui.Cmd { return nil }}
		assert.Contains(t, h.View(80), "[s] sync")
	})

	t.Run("syncing replaces the hint", func(t *testing.T) {
		t.Parallel()
		h := header{title: "Top Traders", onSync: func() tui.Cmd { return nil }, syncing: true}
		view := h.View(80)
		assert.Contains(t, view, "syncing")
		assert.NotContains(t, view, "[s] sync")
	})
}

func TestRenderPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		current  int
		total    int
		contains []string
		excludes []string
	}{
		{name: "no pages", current: 1, total: 0},
		{name: "single page", current: 1, total: 1, contains: []string{"[1]"}, excludes: []string{"2"}},
		{
			name: "start of many", current: 1, total: 10,
			contains: []string{"[1]", "2", "5", "…", "10"},
			excludes: []string{"6"},
		},
		{
			name: "middle", current: 5, total: 10,
			contains: []string{"3", "4", "[5]", "6", "7", "10"},
			excludes: []string{"[1]"},
		},
		{
			name: "end", current: 10, total: 10,
			contains: []string{"6", "[10]"},
			excludes: []string{"…"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := renderPagination(tt.current, tt.total)
			if tt.total == 0 {
				assert.Empty(t, out)
				return
			}
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestShowingLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No addresses", showingLine(leaderboard.View{}))
	assert.Equal(t,
		"Showing 11-20 of 25 addresses (Page 2 of 3)",
		showingLine(leaderboard.View{
			Entries:    make([]leaderboard.Entry, 10),
			Page:       2,
			TotalPages: 3,
			StartItem:  11,
			EndItem:    20,
			Total:      25,
		}),
	)
	assert.Equal(t,
		"Nothing on page 4 of 3 (25 addresses)",
		showingLine(leaderboard.View{Page: 4, TotalPages: 3, Total: 25}),
	)
}

func TestListItem(t *testing.T) {
	t.Parallel()

	item := listItem{
		entry: leaderboard.Entry{
			Address:     "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			Rank:        7,
			BuyCount:    1234,
			SellCount:   5,
			TotalVolume: "1500",
		},
		rankFormat: rankFormat(100),
	}
	assert.Equal(t, "#7   0x5aAe...eAed", item.Title())
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", item.FilterValue())

	desc := item.Description()
	assert.Contains(t, desc, "$1.5K")
	assert.Contains(t, desc, "buys 1,234")
	assert.Contains(t, desc, "sells 5")
	assert.Contains(t, desc, "last unknown")

	item.copied = true
	assert.True(t, strings.HasSuffix(item.Title(), "✓ copied"))
}

func TestRankFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#%-1d", rankFormat(0))
	assert.Equal(t, "#%-1d", rankFormat(9))
	assert.Equal(t, "#%-2d", rankFormat(10))
	assert.Equal(t, "#%-3d", rankFormat(100))
}

func TestBanner(t *testing.T) {
	t.Parallel()

	failed := leaderboard.State{Err: leaderboard.MsgFetchFailed, IsLoaded: true}
	assert.Contains(t, banner(leaderboard.ModeInlineError, failed, true), leaderboard.MsgFetchFailed)
	assert.Contains(t, banner(leaderboard.ModeInlineError, failed, true), "s to sync")
	assert.NotContains(t, banner(leaderboard.ModeInlineError, failed, false), "sync")

	empty := leaderboard.State{IsLoaded: true}
	assert.Contains(t, banner(leaderboard.ModeEmpty, empty, true), "Press s to sync")
	assert.Equal(t, "No leaderboard data.", banner(leaderboard.ModeEmpty, empty, false))

	assert.Empty(t, banner(leaderboard.ModeData, empty, true))
}

func TestSnapshotTable(t *testing.T) {
	t.Parallel()

	v := leaderboard.View{
		Entries: []leaderboard.Entry{{
			Address:     "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			Rank:        1,
			BuyCount:    2,
			SellCount:   3,
			TotalVolume: "2500000",
		}},
	}
	out := snapshotTable(v)
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	assert.Contains(t, out, "$2.50M")
}

func TestComputePaneWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total, split, left, right int
	}{
		{total: 0, split: 50, left: 1, right: 1},
		{total: 100, split: 55, left: 55, right: 45},
		{total: 100, split: 10, left: 18, right: 82},
		{total: 100, split: 90, left: 82, right: 18},
		{total: 20, split: 50, left: 10, right: 10},
	}
	for _, tt := range tests {
		left, right := computePaneWidths(tt.total, tt.split)
		assert.Equal(t, tt.left, left, "left for total=%d split=%d", tt.total, tt.split)
		assert.Equal(t, tt.right, right, "right for total=%d split=%d", tt.total, tt.split)
	}
}
