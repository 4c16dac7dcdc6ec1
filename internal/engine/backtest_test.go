package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"infinitebuy/types"
)

type stubBarSource struct {
	bars []types.Bar
	err  error
}

func (s stubBarSource) DailyBars(_ context.Context, _ string, _, _ time.Time) ([]types.Bar, error) {
	return s.bars, s.err
}

func TestBacktesterRun(t *testing.T) {
	source := stubBarSource{bars: []types.Bar{
		newBar(2, "99", "102", "95", "100", "100"),
		newBar(3, "103", "106", "100", "104", "100"),
	}}
	driver := NewBacktester(multiplierConfig(), source, nil)

	result, err := driver.Run(context.Background(), day(2), day(3))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Trades) != 2 {
		t.Fatalf("trades = %d, want 2", len(result.Trades))
	}
	if result.Trades[1].Action != types.ActionSell {
		t.Errorf("last action = %s, want %s", result.Trades[1].Action, types.ActionSell)
	}
	if result.Summary.Cycle != 2 {
		t.Errorf("cycle = %d, want 2", result.Summary.Cycle)
	}
	if result.Performance.CyclesCompleted != 1 {
		t.Errorf("cycles completed = %d, want 1", result.Performance.CyclesCompleted)
	}
	want := "0.25"
	if result.Performance.TotalReturnPct.String() != want {
		t.Errorf("return = %s, want %s", result.Performance.TotalReturnPct, want)
	}
}

func TestBacktesterRunNoBars(t *testing.T) {
	driver := NewBacktester(multiplierConfig(), stubBarSource{}, nil)
	_, err := driver.Run(context.Background(), day(2), day(3))
	if !errors.Is(err, ErrNoBars) {
		t.Errorf("Run() error = %v, want ErrNoBars", err)
	}
}

func TestBacktesterRunSourceError(t *testing.T) {
	boom := errors.New("connection refused")
	driver := NewBacktester(multiplierConfig(), stubBarSource{err: boom}, nil)
	_, err := driver.Run(context.Background(), day(2), day(3))
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped source error", err)
	}
}

func TestBacktesterRunInvalidConfig(t *testing.T) {
	cfg := multiplierConfig()
	cfg.Divisions = 7
	driver := NewBacktester(cfg, stubBarSource{}, nil)
	_, err := driver.Run(context.Background(), day(2), day(3))
	if !errors.Is(err, ErrInvalidDivisions) {
		t.Errorf("Run() error = %v, want ErrInvalidDivisions", err)
	}
}
