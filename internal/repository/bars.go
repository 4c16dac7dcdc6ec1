package repository

import (
	"context"
	"errors"
	"time"

	"infinitebuy/types"

	"github.com/jackc/pgx/v5"
)

// DailyBars loads the daily bars for a ticker in [start, end], oldest first,
// with PrevClose populated from the prior bar. The earliest bar in range has
// no prior close and is dropped; it only serves as the reference for the
// next day's orders.
func (db *Database) DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]types.Bar, error) {
	asset, err := db.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}

	rows, err := db.bars.GetDailyBars(ctx, int32(asset.Id), start, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoBars
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoBars
	}
	return convertBars(rows), nil
}

func convertBars(rows []barRow) []types.Bar {
	var bars []types.Bar
	for i, row := range rows {
		if i == 0 {
			continue
		}
		bars = append(bars, types.Bar{
			Date:      *row.Day,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			PrevClose: rows[i-1].Close,
		})
	}
	return bars
}
