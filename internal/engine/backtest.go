package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"infinitebuy/types"

	"github.com/schollz/progressbar/v3"
)

// ErrNoBars is returned when the source has no bars in the requested range.
var ErrNoBars = errors.New("no bars in range")

// BarSource provides daily bars for a ticker, oldest first, with PrevClose
// populated on every bar.
type BarSource interface {
	DailyBars(ctx context.Context, ticker string, start, end time.Time) ([]types.Bar, error)
}

// Result bundles everything a finished backtest produces.
type Result struct {
	Trades      []types.TradeRecord
	Summary     types.StrategySummary
	Performance types.Performance
}

// Backtester wires an engine, a bar source and an evaluator into a single
// run over a date range.
type Backtester struct {
	cfg    Config
	source BarSource
	logger *slog.Logger
}

// NewBacktester builds a driver. The config is validated lazily by Run so a
// single driver can report config errors alongside data errors.
func NewBacktester(cfg Config, source BarSource, logger *slog.Logger) *Backtester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backtester{cfg: cfg, source: source, logger: logger}
}

// Run replays the strategy over every bar in [start, end] and evaluates the
// outcome.
func (b *Backtester) Run(ctx context.Context, start, end time.Time) (*Result, error) {
	eng, err := New(b.cfg)
	if err != nil {
		return nil, err
	}

	bars, err := b.source.DailyBars(ctx, b.cfg.Ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading bars for %s: %w", b.cfg.Ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s %s..%s", ErrNoBars, b.cfg.Ticker,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	b.logger.Info("backtest started",
		"ticker", b.cfg.Ticker,
		"bars", len(bars),
		"start", bars[0].Date.Format("2006-01-02"),
		"end", bars[len(bars)-1].Date.Format("2006-01-02"),
	)

	bar := initProgressBar(len(bars))
	for _, day := range bars {
		eng.ProcessDay(day)
		bar.Add(1)
	}

	trades := eng.Trades()
	perf := NewEvaluator(b.cfg.TotalInvestment).Evaluate(trades, bars)

	b.logger.Info("backtest finished",
		"trades", len(trades),
		"cycles_completed", perf.CyclesCompleted,
		"total_return_pct", perf.TotalReturnPct.String(),
	)

	return &Result{
		Trades:      trades,
		Summary:     eng.Summary(),
		Performance: perf,
	}, nil
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
