package types

import "github.com/shopspring/decimal"

// StrategySummary is a read-only projection of the engine's current state,
// exposed for reporting. It never references internal mutable state.
type StrategySummary struct {
	Cycle               int             `json:"cycle"`
	TValue              decimal.Decimal `json:"tValue"`
	StarPct             decimal.Decimal `json:"starPct"`
	Half                Half            `json:"half"`
	UnitAmount          decimal.Decimal `json:"unitAmount"`
	AvgPrice            decimal.Decimal `json:"avgPrice"`
	TotalShares         decimal.Decimal `json:"totalShares"`
	RemainingBudget     decimal.Decimal `json:"remainingBudget"`
	CumulativeProfit    decimal.Decimal `json:"cumulativeProfit"`
	MaxCumulativeProfit decimal.Decimal `json:"maxCumulativeProfit"`
	ReservePool         decimal.Decimal `json:"reservePool"`
}
