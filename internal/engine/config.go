package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Selectable pricing policy names.
const (
	PolicyStarSplit  = "star-split"
	PolicyMultiplier = "multiplier"
)

var (
	ErrInvalidDivisions  = errors.New("divisions must be one of 20, 30, 40")
	ErrInvalidInvestment = errors.New("total investment must be positive")
	ErrUnknownPolicy     = errors.New("unknown pricing policy")
)

// StarParams hold the ticker-specific parameters of the star-percentage
// formula: starPct = Base - Coeff*T.
type StarParams struct {
	Base  decimal.Decimal
	Coeff decimal.Decimal
}

// StarTable maps tickers to star-percentage parameters. Unknown tickers fall
// back to the TQQQ parameters.
type StarTable map[string]StarParams

// DefaultStarTable returns the built-in parameter table.
func DefaultStarTable() StarTable {
	return StarTable{
		"TQQQ": {Base: decimal.NewFromInt(15), Coeff: decimal.NewFromFloat(1.5)},
		"SOXL": {Base: decimal.NewFromInt(20), Coeff: decimal.NewFromFloat(2.0)},
	}
}

// Lookup resolves the parameters for a ticker, case-insensitively.
func (t StarTable) Lookup(ticker string) StarParams {
	if p, ok := t[strings.ToUpper(ticker)]; ok {
		return p
	}
	return StarParams{Base: decimal.NewFromInt(15), Coeff: decimal.NewFromFloat(1.5)}
}

// Config is the immutable strategy configuration. Build one, validate it
// through New, and never mutate it afterwards.
type Config struct {
	Ticker          string
	TotalInvestment decimal.Decimal
	Divisions       int
	TargetProfitPct decimal.Decimal

	// Policy selects the pricing/sizing variant; empty means PolicyStarSplit.
	Policy string

	// UseLOC and LOCDiscountPct only affect the multiplier policy and the
	// order table path.
	UseLOC         bool
	LOCDiscountPct decimal.Decimal

	// Stars overrides the built-in ticker parameter table when non-nil.
	Stars StarTable
}

// normalize validates the configuration and applies defaults. It fails fast,
// before any simulation runs, naming the offending parameter.
func (c Config) normalize() (Config, error) {
	if !c.TotalInvestment.IsPositive() {
		return c, fmt.Errorf("%w: got %s", ErrInvalidInvestment, c.TotalInvestment)
	}
	switch c.Divisions {
	case 20, 30, 40:
	default:
		return c, fmt.Errorf("%w: got %d", ErrInvalidDivisions, c.Divisions)
	}
	if c.Policy == "" {
		c.Policy = PolicyStarSplit
	}
	switch c.Policy {
	case PolicyStarSplit, PolicyMultiplier:
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Policy)
	}
	if c.Stars == nil {
		c.Stars = DefaultStarTable()
	}
	c.Ticker = strings.ToUpper(c.Ticker)
	return c, nil
}

// pricingPolicy builds the configured policy variant. Only valid after
// normalize.
func (c Config) pricingPolicy() PricingPolicy {
	if c.Policy == PolicyMultiplier {
		return MultiplierPolicy{UseLOC: c.UseLOC, LOCDiscountPct: c.LOCDiscountPct}
	}
	return StarSplitPolicy{}
}
