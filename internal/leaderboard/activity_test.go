package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMostActive(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Address: "0xa", BuyCount: 3, SellCount: 2},
		{Address: "0xb", BuyCount: 40, SellCount: 10},
		{Address: "0xc", BuyCount: 0, SellCount: 0},
		{Address: "0xd", BuyCount: 7, SellCount: 13},
	}

	top := MostActive(entries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, Activity{Address: "0xb", Trades: 50}, top[0])
	assert.Equal(t, Activity{Address: "0xd", Trades: 20}, top[1])
}

func TestMostActiveSkipsIdle(t *testing.T) {
	t.Parallel()

	top := MostActive([]Entry{{Address: "0xidle"}}, 3)
	assert.Empty(t, top)
}

func TestMostActiveEdgeCases(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MostActive(nil, 3))
	assert.Nil(t, MostActive(makeEntries(3), 0))
}
