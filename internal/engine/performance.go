package engine

import (
	"sort"
	"time"

	"infinitebuy/types"

	"github.com/shopspring/decimal"
)

// Evaluator computes backtest performance metrics from the trade history and
// the bar series the history was produced on.
type Evaluator struct {
	initialInvestment decimal.Decimal
}

// NewEvaluator builds an evaluator for a run that started with the given
// investment.
func NewEvaluator(initialInvestment decimal.Decimal) *Evaluator {
	return &Evaluator{initialInvestment: initialInvestment}
}

// Evaluate derives the run's metrics. The current value is the budget after
// the last sell, or the remaining budget plus the open position marked at the
// last close when the run ends mid-cycle. An empty trade history evaluates
// to all zeroes.
func (ev *Evaluator) Evaluate(trades []types.TradeRecord, bars []types.Bar) types.Performance {
	if len(trades) == 0 {
		return types.Performance{
			TotalReturnPct: decimal.Zero,
			MaxDrawdownPct: decimal.Zero,
		}
	}

	var perf types.Performance
	currentValue := decimal.Zero
	lastSellIdx := -1
	for i, t := range trades {
		if t.Action == types.ActionSell {
			perf.CyclesCompleted++
			lastSellIdx = i
		}
	}
	perf.TotalCycles = trades[len(trades)-1].Cycle

	if lastSellIdx == len(trades)-1 {
		currentValue = trades[lastSellIdx].RemainingBudget
	} else {
		last := trades[len(trades)-1]
		currentValue = last.RemainingBudget
		if len(bars) > 0 {
			lastClose := bars[len(bars)-1].Close
			currentValue = currentValue.Add(last.TotalShares.Mul(lastClose))
		}
	}

	if ev.initialInvestment.IsPositive() {
		perf.TotalReturnPct = currentValue.Div(ev.initialInvestment).Sub(one).Mul(oneHundred).Round(2)
	}
	perf.MaxDrawdownPct = maxDrawdownPct(trades, bars).Round(2)
	return perf
}

// maxDrawdownPct walks the daily position value (shares held marked at each
// close) and returns the deepest peak-to-trough decline as a negative
// percentage. Shares are forward-filled between trade days; days before the
// first trade hold nothing.
func maxDrawdownPct(trades []types.TradeRecord, bars []types.Bar) decimal.Decimal {
	if len(bars) == 0 {
		return decimal.Zero
	}

	sharesByDate := make(map[time.Time]decimal.Decimal, len(trades))
	for _, t := range trades {
		sharesByDate[t.Date] = t.TotalShares
	}

	sorted := append([]types.Bar(nil), bars...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	peak := decimal.Zero
	maxDD := decimal.Zero
	shares := decimal.Zero
	for _, b := range sorted {
		if s, ok := sharesByDate[b.Date]; ok {
			shares = s
		}
		value := shares.Mul(b.Close)

		if value.GreaterThan(peak) {
			peak = value
		}
		if peak.IsPositive() {
			dd := value.Sub(peak).Div(peak).Mul(oneHundred)
			if dd.LessThan(maxDD) {
				maxDD = dd
			}
		}
	}
	return maxDD
}
