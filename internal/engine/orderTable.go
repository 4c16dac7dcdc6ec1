package engine

import (
	"infinitebuy/types"

	"github.com/shopspring/decimal"
)

// OrderTableGenerator produces a deterministic order preview over a
// synthetic geometric price path, for sanity-checking parameters before
// committing capital. It uses the simpler multiplier sizing rule and its own
// budget rescaling on sells; it is a distinct algorithm from the backtest
// engine's star-split/compounding rules and must stay that way.
type OrderTableGenerator struct {
	cfg Config
}

// NewOrderTableGenerator validates the configuration and builds a generator.
func NewOrderTableGenerator(cfg Config) (*OrderTableGenerator, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &OrderTableGenerator{cfg: norm}, nil
}

// Generate walks a price path where every step moves by priceStepPct from
// the previous close and emits one row per buy, plus a sell row whenever
// the walked price reaches the target sell price. steps and maxRounds
// default to the configured divisions when non-positive.
func (g *OrderTableGenerator) Generate(startPrice, priceStepPct decimal.Decimal, steps, maxRounds int) []types.OrderRow {
	if steps <= 0 {
		steps = g.cfg.Divisions
	}
	if maxRounds <= 0 {
		maxRounds = g.cfg.Divisions
	}

	divisions := decimal.NewFromInt(int64(g.cfg.Divisions))
	unitAmount := g.cfg.TotalInvestment.Div(divisions)
	pos := newPosition(g.cfg.TotalInvestment)
	prevClose := startPrice

	var rows []types.OrderRow
	for step := 0; step < steps; step++ {
		round := pos.roundNum + 1
		if round > maxRounds {
			break
		}

		current := prevClose.Mul(one.Add(priceStepPct.Div(oneHundred)))
		buyPrice := current
		if g.cfg.UseLOC {
			buyPrice = locPrice(prevClose, g.cfg.LOCDiscountPct)
		}

		multiplier := 1
		if pos.roundNum > 0 && buyPrice.LessThanOrEqual(pos.avgPrice()) {
			multiplier = 2
		}
		amount := decimal.Min(unitAmount.Mul(decimal.NewFromInt(int64(multiplier))), pos.remainingBudget)
		if !amount.IsPositive() {
			break
		}

		shares := amount.Div(buyPrice)
		pos.roundNum = round
		pos.totalShares = pos.totalShares.Add(shares)
		pos.totalCost = pos.totalCost.Add(amount)
		pos.remainingBudget = pos.remainingBudget.Sub(amount)

		target := decimal.Zero
		if pos.avgPrice().IsPositive() {
			target = pos.avgPrice().Mul(one.Add(g.cfg.TargetProfitPct.Div(oneHundred)))
		}

		rows = append(rows, types.OrderRow{
			Round:           round,
			BuyPrice:        buyPrice.Round(2),
			Multiplier:      multiplier,
			Shares:          shares.Round(6),
			Amount:          amount.Round(2),
			TotalShares:     pos.totalShares.Round(6),
			AvgPrice:        pos.avgPrice().Round(2),
			TargetSellPrice: target.Round(2),
			RemainingBudget: pos.remainingBudget.Round(2),
		})

		prevClose = current

		// A walked price at or above the target liquidates everything and
		// rescales the unit amount from the recovered budget.
		if pos.totalShares.IsPositive() && target.IsPositive() && current.GreaterThanOrEqual(target) {
			proceeds := pos.totalShares.Mul(target)
			newBudget := pos.remainingBudget.Add(proceeds)
			rows = append(rows, types.OrderRow{
				Round:           round,
				BuyPrice:        target.Round(2),
				Multiplier:      0,
				Shares:          pos.totalShares.Neg().Round(6),
				Amount:          proceeds.Round(2),
				TotalShares:     decimal.Zero,
				AvgPrice:        decimal.Zero,
				TargetSellPrice: decimal.Zero,
				RemainingBudget: newBudget.Round(2),
			})
			pos.reset(newBudget)
			unitAmount = newBudget.Div(divisions)
		}
	}
	return rows
}
