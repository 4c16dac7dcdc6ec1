package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is an immutable snapshot emitted for every executed fill. The
// ordered record history is the sole audit trail of a simulation run; all
// state fields reflect the position after the fill was applied.
type TradeRecord struct {
	Date            time.Time       `json:"date"`
	Cycle           int             `json:"cycle"`
	Round           int             `json:"round"`
	Action          Action          `json:"action"`
	Price           decimal.Decimal `json:"price"`
	Shares          decimal.Decimal `json:"shares"`
	Amount          decimal.Decimal `json:"amount"`
	TotalShares     decimal.Decimal `json:"totalShares"`
	AvgPrice        decimal.Decimal `json:"avgPrice"`
	TargetSellPrice decimal.Decimal `json:"targetSellPrice"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
	TValue          decimal.Decimal `json:"tValue"`
	StarPct         decimal.Decimal `json:"starPct"`
	Half            Half            `json:"half"`
	UnitAmount      decimal.Decimal `json:"unitAmount"`
}
