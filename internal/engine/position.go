package engine

import (
	"github.com/shopspring/decimal"
)

// Position is the mutable per-cycle accumulator, owned exclusively by one
// Engine. It is reset at every cycle boundary; the compounding state on the
// Engine survives resets.
type Position struct {
	roundNum            int
	totalShares         decimal.Decimal
	totalCost           decimal.Decimal
	remainingBudget     decimal.Decimal
	cumulativeBuyAmount decimal.Decimal
}

func newPosition(budget decimal.Decimal) *Position {
	return &Position{remainingBudget: budget}
}

// avgPrice is totalCost / totalShares, or zero before the first buy.
func (p *Position) avgPrice() decimal.Decimal {
	if p.totalShares.IsZero() {
		return decimal.Zero
	}
	return p.totalCost.Div(p.totalShares)
}

// reset starts a new cycle with the given opening budget.
func (p *Position) reset(budget decimal.Decimal) {
	p.roundNum = 0
	p.totalShares = decimal.Zero
	p.totalCost = decimal.Zero
	p.remainingBudget = budget
	p.cumulativeBuyAmount = decimal.Zero
}
