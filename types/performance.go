package types

import "github.com/shopspring/decimal"

// Performance summarises a completed simulation run.
type Performance struct {
	TotalReturnPct  decimal.Decimal `json:"totalReturnPct"`
	CyclesCompleted int             `json:"cyclesCompleted"`
	TotalCycles     int             `json:"totalCycles"`
	MaxDrawdownPct  decimal.Decimal `json:"maxDrawdownPct"`
}
