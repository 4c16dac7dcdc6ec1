package types

import "github.com/shopspring/decimal"

// OrderRow is one line of the simulated order table. Sell rows carry a zero
// multiplier and negative shares for the liquidated quantity.
type OrderRow struct {
	Round           int             `json:"round"`
	BuyPrice        decimal.Decimal `json:"buyPrice"`
	Multiplier      int             `json:"multiplier"`
	Shares          decimal.Decimal `json:"shares"`
	Amount          decimal.Decimal `json:"amount"`
	TotalShares     decimal.Decimal `json:"totalShares"`
	AvgPrice        decimal.Decimal `json:"avgPrice"`
	TargetSellPrice decimal.Decimal `json:"targetSellPrice"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
}
