package model

// Coin is one fungible coin object from a wallet's inventory.
type Coin struct {
	CoinObjectID string `json:"coin_object_id"`
	CoinType     string `json:"coin_type"`
	Balance      uint64 `json:"balance"`
	Version      string `json:"version,omitempty"`
	Digest       string `json:"digest,omitempty"`
}

type Balance struct {
	CoinType        string `json:"coin_type"`
	CoinObjectCount int    `json:"coin_object_count"`
	TotalBalance    uint64 `json:"total_balance"`
}

// Total sums the balances of coins.
func Total(coins []Coin) uint64 {
	var t uint64
	for _, c := range coins {
		t += c.Balance
	}
	return t
}
