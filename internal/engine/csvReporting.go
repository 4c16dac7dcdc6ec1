package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"infinitebuy/types"
)

// WriteTradesCSVFile writes the trade history to a CSV file at the given path.
func WriteTradesCSVFile(path string, trades []types.TradeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return writeTradesCSV(f, trades)
}

// writeTradesCSV writes the trade history to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeTradesCSV(w io.Writer, trades []types.TradeRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"cycle",
		"round",
		"action",
		"half",
		"price",
		"shares",
		"amount",
		"total_shares",
		"avg_price",
		"target_sell_price",
		"remaining_budget",
		"t_value",
		"star_pct",
		"unit_amount",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			t.Date.Format("2006-01-02"),
			strconv.Itoa(t.Cycle),
			strconv.Itoa(t.Round),
			string(t.Action),
			string(t.Half),
			t.Price.String(),
			t.Shares.String(),
			t.Amount.String(),
			t.TotalShares.String(),
			t.AvgPrice.String(),
			t.TargetSellPrice.String(),
			t.RemainingBudget.String(),
			t.TValue.String(),
			t.StarPct.String(),
			t.UnitAmount.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
