package txbuilder

import (
	"sort"

	"tokentrip-marketplace/apperr"
	"tokentrip-marketplace/model"
)

// GasPayment splits amount off the gas coin. The native asset never needs a
// merge.
func (t *Transaction) GasPayment(amount uint64) Argument {
	return t.SplitCoins(GasCoin(), t.U64(amount))[0]
}

// SelectCoins chooses the coins to combine for a payment of amount. The first
// returned coin is the primary; at most maxMerge others follow it. When the
// wallet holds more than that the largest coins are taken.
func SelectCoins(coins []model.Coin, amount uint64, maxMerge int, coinType string) ([]model.Coin, error) {
	if len(coins) == 0 {
		return nil, &apperr.InsufficientFunds{CoinType: coinType, Required: amount}
	}
	chosen := coins
	if maxMerge >= 0 && len(coins) > maxMerge+1 {
		sorted := append([]model.Coin(nil), coins...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Balance > sorted[j].Balance })
		chosen = sorted[:maxMerge+1]
	}
	var total uint64
	for _, c := range chosen {
		total += c.Balance
	}
	if total < amount {
		return nil, &apperr.InsufficientFunds{CoinType: coinType, Required: amount, Available: total}
	}
	return chosen, nil
}

// MergedCoin merges the selected coins into the primary one and returns it.
func (t *Transaction) MergedCoin(coins []model.Coin, amount uint64, maxMerge int, coinType string) (Argument, error) {
	chosen, err := SelectCoins(coins, amount, maxMerge, coinType)
	if err != nil {
		return Argument{}, err
	}
	primary := t.Object(chosen[0].CoinObjectID)
	if len(chosen) > 1 {
		srcs := make([]Argument, 0, len(chosen)-1)
		for _, c := range chosen[1:] {
			srcs = append(srcs, t.Object(c.CoinObjectID))
		}
		t.MergeCoins(primary, srcs...)
	}
	return primary, nil
}

// CoinPayment merges then splits exactly amount off the merged coin.
func (t *Transaction) CoinPayment(coins []model.Coin, amount uint64, maxMerge int, coinType string) (Argument, error) {
	primary, err := t.MergedCoin(coins, amount, maxMerge, coinType)
	if err != nil {
		return Argument{}, err
	}
	return t.SplitCoins(primary, t.U64(amount))[0], nil
}
