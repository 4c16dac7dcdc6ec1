package engine

import (
	"infinitebuy/types"

	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	two        = decimal.NewFromInt(2)
	oneHundred = decimal.NewFromInt(100)
)

// PlannedBuy is one limit-on-close order a policy wants placed for the day.
// Amount is the uncapped order size; the engine caps it by the remaining
// budget before filling.
type PlannedBuy struct {
	Action types.Action
	Limit  decimal.Decimal
	Amount decimal.Decimal
}

// PlanView is the read-only strategy state a policy sizes orders from.
type PlanView struct {
	UnitAmount decimal.Decimal
	AvgPrice   decimal.Decimal
	Round      int
	TValue     decimal.Decimal
	StarPct    decimal.Decimal
}

// PricingPolicy decides the day's buy orders. Implementations must be
// stateless; the engine owns all mutable state.
type PricingPolicy interface {
	Name() string
	PlanBuys(bar types.Bar, view PlanView) []PlannedBuy
}

// locPrice is the limit-on-close price at a pct discount from the previous
// close. pct=0 is the previous close itself.
func locPrice(prevClose, pct decimal.Decimal) decimal.Decimal {
	return prevClose.Mul(one.Sub(pct.Div(oneHundred)))
}

// Compile-time interface checks.
var _ PricingPolicy = StarSplitPolicy{}
var _ PricingPolicy = MultiplierPolicy{}

// StarSplitPolicy is the canonical ruleset: in the first half the unit
// amount is split across a star-pct LOC order and a 0% LOC order; in the
// second half the full unit goes to a single order at the absolute star pct.
type StarSplitPolicy struct{}

func (StarSplitPolicy) Name() string { return PolicyStarSplit }

func (StarSplitPolicy) PlanBuys(bar types.Bar, view PlanView) []PlannedBuy {
	if view.StarPct.IsPositive() {
		half := view.UnitAmount.Div(two)
		return []PlannedBuy{
			{Action: types.ActionBuyStar, Limit: locPrice(bar.PrevClose, view.StarPct), Amount: half},
			{Action: types.ActionBuyZero, Limit: locPrice(bar.PrevClose, decimal.Zero), Amount: half},
		}
	}
	return []PlannedBuy{
		{Action: types.ActionBuyStar, Limit: locPrice(bar.PrevClose, view.StarPct.Abs()), Amount: view.UnitAmount},
	}
}

// MultiplierPolicy is the legacy ruleset: one order per day, doubled when
// the buy price is at or below the current average price. The first round
// of a cycle is always 1x.
type MultiplierPolicy struct {
	UseLOC         bool
	LOCDiscountPct decimal.Decimal
}

func (MultiplierPolicy) Name() string { return PolicyMultiplier }

func (p MultiplierPolicy) PlanBuys(bar types.Bar, view PlanView) []PlannedBuy {
	action := types.ActionBuyZero
	limit := bar.Close
	if p.UseLOC {
		action = types.ActionBuyStar
		limit = locPrice(bar.PrevClose, p.LOCDiscountPct)
	}

	amount := view.UnitAmount
	if view.Round > 0 && limit.LessThanOrEqual(view.AvgPrice) {
		amount = amount.Mul(two)
	}
	return []PlannedBuy{{Action: action, Limit: limit, Amount: amount}}
}
