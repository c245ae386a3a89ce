package api

// Trader is one row of the leaderboard as served by the backend.
// TotalVolumeUSD stays a string so large decimals are never rounded.
type Trader struct {
	Address        string  `json:"address"`
	BuyCount       int64   `json:"buy_count"`
	SellCount      int64   `json:"sell_count"`
	TotalVolumeUSD string  `json:"total_volume_usd"`
	FirstTradeAt   *string `json:"first_trade_at"`
	LastTradeAt    *string `json:"last_trade_at"`
}

// Health is the backend's liveness payload.
type Health struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
