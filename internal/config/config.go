package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the simulator.
type Config struct {
	Ticker      string         `yaml:"ticker"`
	DatabaseURL string         `yaml:"database_url"`
	Logging     Logging        `yaml:"logging"`
	Strategy    StrategyConfig `yaml:"strategy"`
	Backtest    BacktestConfig `yaml:"backtest"`
	Table       TableConfig    `yaml:"table"`
	Report      ReportConfig   `yaml:"report"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// StrategyConfig holds the strategy parameters.
type StrategyConfig struct {
	TotalInvestment string `yaml:"total_investment"`
	Divisions       int    `yaml:"divisions"`
	TargetProfitPct string `yaml:"target_profit_pct"`
	Policy          string `yaml:"policy"`
	UseLOC          bool   `yaml:"use_loc"`
	LOCDiscountPct  string `yaml:"loc_discount_pct"`
}

// BacktestConfig holds the date range for a backtest run, as YYYY-MM-DD.
type BacktestConfig struct {
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

// TableConfig holds defaults for the order table preview.
type TableConfig struct {
	StartPrice   string `yaml:"start_price"`
	PriceStepPct string `yaml:"price_step_pct"`
	Steps        int    `yaml:"steps"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	CSVPath string `yaml:"csv_path"`
}

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
