package engine

import (
	"fmt"
	"io"

	"infinitebuy/types"
)

// PrintReport writes a human-readable run report to w.
func PrintReport(w io.Writer, perf types.Performance, summary types.StrategySummary) {
	fmt.Fprintln(w, "===== Backtest Report =====")

	fmt.Fprintln(w, "-- Performance --")
	fmt.Fprintf(w, "Total Return:          %s%%\n", perf.TotalReturnPct)
	fmt.Fprintf(w, "Max Drawdown:          %s%%\n", perf.MaxDrawdownPct)
	fmt.Fprintf(w, "Cycles Completed:      %d\n", perf.CyclesCompleted)
	fmt.Fprintf(w, "Total Cycles:          %d\n", perf.TotalCycles)

	fmt.Fprintln(w, "\n-- Strategy State --")
	fmt.Fprintf(w, "Cycle:                 %d\n", summary.Cycle)
	fmt.Fprintf(w, "Half:                  %s\n", summary.Half)
	fmt.Fprintf(w, "T Value:               %s\n", summary.TValue)
	fmt.Fprintf(w, "Star Pct:              %s\n", summary.StarPct)
	fmt.Fprintf(w, "Unit Amount:           %s\n", summary.UnitAmount)
	fmt.Fprintf(w, "Avg Price:             %s\n", summary.AvgPrice)
	fmt.Fprintf(w, "Total Shares:          %s\n", summary.TotalShares)
	fmt.Fprintf(w, "Remaining Budget:      %s\n", summary.RemainingBudget)

	fmt.Fprintln(w, "\n-- Compounding --")
	fmt.Fprintf(w, "Cumulative Profit:     %s\n", summary.CumulativeProfit)
	fmt.Fprintf(w, "Max Cumulative Profit: %s\n", summary.MaxCumulativeProfit)
	fmt.Fprintf(w, "Reserve Pool:          %s\n", summary.ReservePool)

	fmt.Fprintln(w, "===========================")
}
