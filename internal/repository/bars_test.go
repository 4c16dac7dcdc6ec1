package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type mockBarsRepository struct {
	rows     []barRow
	sqlError error
}

func (m mockBarsRepository) GetDailyBars(_ context.Context, _ int32, _, _ time.Time) ([]barRow, error) {
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.rows, nil
}

func testBarRow(day int, close string) barRow {
	d := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	c := decimal.RequireFromString(close)
	return barRow{
		Day:    &d,
		Open:   c,
		High:   c,
		Low:    c,
		Close:  c,
		Volume: decimal.RequireFromString("1000"),
	}
}

func TestDatabase_DailyBars(t *testing.T) {
	db := &Database{
		assets: mockAssetsRepository{},
		bars: mockBarsRepository{rows: []barRow{
			testBarRow(2, "100"),
			testBarRow(3, "90"),
			testBarRow(4, "95"),
		}},
	}

	bars, err := db.DailyBars(context.Background(), "TQQQ", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("DailyBars() error = %v", err)
	}

	// The earliest row only seeds the next day's previous close.
	if len(bars) != 2 {
		t.Fatalf("DailyBars() bars = %d, want 2", len(bars))
	}
	if !bars[0].PrevClose.Equal(decimal.RequireFromString("100")) {
		t.Errorf("bar 0 prev close = %s, want 100", bars[0].PrevClose)
	}
	if !bars[0].Close.Equal(decimal.RequireFromString("90")) {
		t.Errorf("bar 0 close = %s, want 90", bars[0].Close)
	}
	if !bars[1].PrevClose.Equal(decimal.RequireFromString("90")) {
		t.Errorf("bar 1 prev close = %s, want 90", bars[1].PrevClose)
	}
	if bars[0].Date.Day() != 3 || bars[1].Date.Day() != 4 {
		t.Errorf("dates = %s, %s, want Jan 3 and Jan 4", bars[0].Date, bars[1].Date)
	}
}

func TestDatabase_DailyBarsErrors(t *testing.T) {
	tests := []struct {
		name    string
		assets  assetsRepository
		bars    barsRepository
		wantErr error
	}{
		{"asset missing", mockAssetsRepository{sqlError: pgx.ErrNoRows}, mockBarsRepository{}, ErrAssetNotFound},
		{"no rows", mockAssetsRepository{}, mockBarsRepository{}, ErrNoBars},
		{"no rows error", mockAssetsRepository{}, mockBarsRepository{sqlError: pgx.ErrNoRows}, ErrNoBars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{assets: tt.assets, bars: tt.bars}
			_, err := db.DailyBars(context.Background(), "TQQQ", time.Time{}, time.Time{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DailyBars() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
