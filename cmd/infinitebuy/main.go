package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"infinitebuy/internal/config"
	"infinitebuy/internal/engine"
	"infinitebuy/internal/repository"
	"infinitebuy/internal/util"
	"infinitebuy/types"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// Best effort; environments without a .env rely on real env vars.
	_ = godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: infinitebuy <command> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  backtest   Replay the strategy over historical bars\n")
		fmt.Fprintf(os.Stderr, "  table      Print an order table preview\n")
		fmt.Fprintf(os.Stderr, "\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "backtest":
		err = runBacktest(os.Args[2:])

	case "table":
		err = runTable(os.Args[2:])

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runBacktest(args []string) error {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := util.NewLogger(cfg.Logging.Level)
	util.SetDefault(logger)

	strategyCfg, err := strategyConfig(cfg)
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", cfg.Backtest.StartDate)
	if err != nil {
		return fmt.Errorf("parsing start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.Backtest.EndDate)
	if err != nil {
		return fmt.Errorf("parsing end_date: %w", err)
	}

	db, err := repository.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	driver := engine.NewBacktester(strategyCfg, &db, logger)
	result, err := driver.Run(context.Background(), start, end)
	if err != nil {
		return err
	}

	fmt.Println()
	printLastTrades(os.Stdout, result.Trades, 10)
	fmt.Println()
	engine.PrintReport(os.Stdout, result.Performance, result.Summary)

	if cfg.Report.CSVPath != "" {
		if err := engine.WriteTradesCSVFile(cfg.Report.CSVPath, result.Trades); err != nil {
			return err
		}
		logger.Info("trades exported", "path", cfg.Report.CSVPath, "rows", len(result.Trades))
	}
	return nil
}

func runTable(args []string) error {
	fs := flag.NewFlagSet("table", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to the YAML config file")
	startPrice := fs.String("start-price", "", "starting price (overrides config)")
	priceStep := fs.String("price-step", "", "per-step price change in percent (overrides config)")
	steps := fs.Int("steps", 0, "number of price steps (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	util.SetDefault(util.NewLogger(cfg.Logging.Level))

	strategyCfg, err := strategyConfig(cfg)
	if err != nil {
		return err
	}

	if *startPrice == "" {
		*startPrice = cfg.Table.StartPrice
	}
	if *priceStep == "" {
		*priceStep = cfg.Table.PriceStepPct
	}
	if *steps == 0 {
		*steps = cfg.Table.Steps
	}

	start, err := decimal.NewFromString(*startPrice)
	if err != nil {
		return fmt.Errorf("parsing start price %q: %w", *startPrice, err)
	}
	step, err := decimal.NewFromString(*priceStep)
	if err != nil {
		return fmt.Errorf("parsing price step %q: %w", *priceStep, err)
	}

	gen, err := engine.NewOrderTableGenerator(strategyCfg)
	if err != nil {
		return err
	}
	rows := gen.Generate(start, step, *steps, 0)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "round\tbuy price\tmult\tshares\tamount\ttotal shares\tavg price\ttarget sell\tremaining\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Round, r.BuyPrice, r.Multiplier, r.Shares, r.Amount,
			r.TotalShares, r.AvgPrice, r.TargetSellPrice, r.RemainingBudget)
	}
	return tw.Flush()
}

func printLastTrades(w io.Writer, trades []types.TradeRecord, n int) {
	if len(trades) > n {
		trades = trades[len(trades)-n:]
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tcycle\tround\taction\tprice\tshares\tamount\tremaining\t")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			t.Date.Format("2006-01-02"), t.Cycle, t.Round, t.Action,
			t.Price, t.Shares, t.Amount, t.RemainingBudget)
	}
	tw.Flush()
}

func strategyConfig(cfg *config.Config) (engine.Config, error) {
	investment, err := decimal.NewFromString(cfg.Strategy.TotalInvestment)
	if err != nil {
		return engine.Config{}, fmt.Errorf("parsing total_investment %q: %w", cfg.Strategy.TotalInvestment, err)
	}
	target, err := decimal.NewFromString(cfg.Strategy.TargetProfitPct)
	if err != nil {
		return engine.Config{}, fmt.Errorf("parsing target_profit_pct %q: %w", cfg.Strategy.TargetProfitPct, err)
	}
	locDiscount := decimal.Zero
	if cfg.Strategy.LOCDiscountPct != "" {
		locDiscount, err = decimal.NewFromString(cfg.Strategy.LOCDiscountPct)
		if err != nil {
			return engine.Config{}, fmt.Errorf("parsing loc_discount_pct %q: %w", cfg.Strategy.LOCDiscountPct, err)
		}
	}

	return engine.Config{
		Ticker:          cfg.Ticker,
		TotalInvestment: investment,
		Divisions:       cfg.Strategy.Divisions,
		TargetProfitPct: target,
		Policy:          cfg.Strategy.Policy,
		UseLOC:          cfg.Strategy.UseLOC,
		LOCDiscountPct:  locDiscount,
	}, nil
}
