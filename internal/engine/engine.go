package engine

import (
	"time"

	"infinitebuy/types"

	"github.com/shopspring/decimal"
)

// Engine replays the infinite-buying strategy one trading day at a time. It
// owns the per-cycle Position and the profit-compounding state that persists
// across cycles. ProcessDay must be called with bars in non-decreasing date
// order; the engine has no concept of calendar gaps and treats every call as
// the next trading day. An Engine must not be shared across goroutines.
type Engine struct {
	cfg    Config
	policy PricingPolicy
	stars  StarParams

	// Compounding state. Created with the engine, mutated only on sells,
	// never reset by Position.reset.
	baseUnitAmount      decimal.Decimal
	unitAmount          decimal.Decimal
	cumulativeProfit    decimal.Decimal
	maxCumulativeProfit decimal.Decimal
	reservePool         decimal.Decimal

	totalInvestment decimal.Decimal // current cycle's opening budget
	cycle           int
	position        *Position
	trades          []types.TradeRecord
}

// New validates the configuration and builds a fresh engine at cycle 1 with
// the full investment as its budget.
func New(cfg Config) (*Engine, error) {
	norm, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	unit := norm.TotalInvestment.Div(decimal.NewFromInt(int64(norm.Divisions)))
	return &Engine{
		cfg:             norm,
		policy:          norm.pricingPolicy(),
		stars:           norm.Stars.Lookup(norm.Ticker),
		baseUnitAmount:  unit,
		unitAmount:      unit,
		totalInvestment: norm.TotalInvestment,
		cycle:           1,
		position:        newPosition(norm.TotalInvestment),
	}, nil
}

// TValue is the cycle progress metric: cumulative buy amount over the unit
// amount, rounded up to two decimal places. Zero before the first buy or
// when the unit amount is non-positive.
func (e *Engine) TValue() decimal.Decimal {
	if !e.unitAmount.IsPositive() {
		return decimal.Zero
	}
	return e.position.cumulativeBuyAmount.Div(e.unitAmount).RoundCeil(2)
}

// StarPct is the ticker formula Base - Coeff*T. Positive in the first half
// of a cycle, zero or negative in the second.
func (e *Engine) StarPct() decimal.Decimal {
	return e.stars.Base.Sub(e.stars.Coeff.Mul(e.TValue()))
}

func (e *Engine) half() types.Half {
	if e.StarPct().IsPositive() {
		return types.HalfFirst
	}
	return types.HalfSecond
}

// targetSellPrice rises and falls with the average price; zero when no
// shares are held.
func (e *Engine) targetSellPrice() decimal.Decimal {
	avg := e.position.avgPrice()
	if avg.IsZero() {
		return decimal.Zero
	}
	return avg.Mul(one.Add(e.cfg.TargetProfitPct.Div(oneHundred)))
}

// ProcessDay runs one trading day: the sell check first, then the buy
// attempts. A day that sells never buys. Returns the records emitted that
// day, zero to two of them.
func (e *Engine) ProcessDay(bar types.Bar) []types.TradeRecord {
	if e.shouldSell(bar.High) {
		return []types.TradeRecord{e.executeSell(bar.Date)}
	}
	return e.executeDailyBuys(bar)
}

func (e *Engine) shouldSell(high decimal.Decimal) bool {
	if e.position.totalShares.IsZero() {
		return false
	}
	return high.GreaterThanOrEqual(e.targetSellPrice())
}

// executeDailyBuys asks the policy for the day's orders and fills each one
// whose limit was reached by the day's low. Buys stop once the divisions
// are exhausted; sell evaluation is unaffected.
func (e *Engine) executeDailyBuys(bar types.Bar) []types.TradeRecord {
	if e.position.roundNum >= e.cfg.Divisions {
		return nil
	}

	view := PlanView{
		UnitAmount: e.unitAmount,
		AvgPrice:   e.position.avgPrice(),
		Round:      e.position.roundNum,
		TValue:     e.TValue(),
		StarPct:    e.StarPct(),
	}
	half := e.half()

	var records []types.TradeRecord
	for _, plan := range e.policy.PlanBuys(bar, view) {
		if bar.Low.GreaterThan(plan.Limit) {
			continue // limit never reached, order expires unfilled
		}
		amount := decimal.Min(plan.Amount, e.position.remainingBudget)
		if !amount.IsPositive() {
			continue
		}
		records = append(records, e.fillBuy(bar.Date, plan.Action, plan.Limit, amount, half))
	}
	return records
}

// fillBuy mutates the position in fixed order (round, shares, cost, budget,
// cumulative buy amount) and emits a record reflecting post-fill state.
func (e *Engine) fillBuy(date time.Time, action types.Action, price, amount decimal.Decimal, half types.Half) types.TradeRecord {
	shares := amount.Div(price)

	e.position.roundNum++
	e.position.totalShares = e.position.totalShares.Add(shares)
	e.position.totalCost = e.position.totalCost.Add(amount)
	e.position.remainingBudget = e.position.remainingBudget.Sub(amount)
	e.position.cumulativeBuyAmount = e.position.cumulativeBuyAmount.Add(amount)

	rec := types.TradeRecord{
		Date:            date,
		Cycle:           e.cycle,
		Round:           e.position.roundNum,
		Action:          action,
		Price:           price.Round(4),
		Shares:          shares.Round(6),
		Amount:          amount.Round(2),
		TotalShares:     e.position.totalShares.Round(6),
		AvgPrice:        e.position.avgPrice().Round(4),
		TargetSellPrice: e.targetSellPrice().Round(4),
		RemainingBudget: e.position.remainingBudget.Round(2),
		TValue:          e.TValue(),
		StarPct:         e.StarPct().Round(2),
		Half:            half,
		UnitAmount:      e.unitAmount.Round(2),
	}
	e.trades = append(e.trades, rec)
	return rec
}

// executeSell liquidates the full position at the target price, applies the
// profit-compounding rules, and opens the next cycle with the proceeds plus
// whatever budget was never deployed.
func (e *Engine) executeSell(date time.Time) types.TradeRecord {
	sellPrice := e.targetSellPrice()
	proceeds := e.position.totalShares.Mul(sellPrice)
	profit := proceeds.Sub(e.position.totalCost)
	newBudget := proceeds.Add(e.position.remainingBudget)

	rec := types.TradeRecord{
		Date:            date,
		Cycle:           e.cycle,
		Round:           e.position.roundNum,
		Action:          types.ActionSell,
		Price:           sellPrice.Round(4),
		Shares:          e.position.totalShares.Round(6),
		Amount:          proceeds.Round(2),
		TotalShares:     decimal.Zero,
		AvgPrice:        decimal.Zero,
		TargetSellPrice: decimal.Zero,
		RemainingBudget: newBudget.Round(2),
		TValue:          e.TValue(),
		StarPct:         e.StarPct().Round(2),
		Half:            e.half(),
		UnitAmount:      e.unitAmount.Round(2),
	}
	e.trades = append(e.trades, rec)

	divisions := decimal.NewFromInt(int64(e.cfg.Divisions))
	if profit.IsPositive() {
		halfProfit := profit.Div(two)
		e.cumulativeProfit = e.cumulativeProfit.Add(halfProfit)
		e.reservePool = e.reservePool.Add(halfProfit)
		if e.cumulativeProfit.GreaterThan(e.maxCumulativeProfit) {
			e.maxCumulativeProfit = e.cumulativeProfit
		}
		e.unitAmount = e.baseUnitAmount.Add(e.cumulativeProfit.Div(divisions))
	} else {
		// Sizing never shrinks below the best compounding level reached.
		e.unitAmount = e.baseUnitAmount.Add(e.maxCumulativeProfit.Div(divisions))
	}

	e.cycle++
	e.totalInvestment = newBudget
	e.position.reset(newBudget)
	return rec
}

// Summary returns a read-only projection of the current strategy state.
func (e *Engine) Summary() types.StrategySummary {
	return types.StrategySummary{
		Cycle:               e.cycle,
		TValue:              e.TValue(),
		StarPct:             e.StarPct().Round(2),
		Half:                e.half(),
		UnitAmount:          e.unitAmount.Round(2),
		AvgPrice:            e.position.avgPrice().Round(4),
		TotalShares:         e.position.totalShares.Round(6),
		RemainingBudget:     e.position.remainingBudget.Round(2),
		CumulativeProfit:    e.cumulativeProfit.Round(2),
		MaxCumulativeProfit: e.maxCumulativeProfit.Round(2),
		ReservePool:         e.reservePool.Round(2),
	}
}

// Trades returns a copy of the append-only record history.
func (e *Engine) Trades() []types.TradeRecord {
	return append([]types.TradeRecord(nil), e.trades...)
}
