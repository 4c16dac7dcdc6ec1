package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one trading day of OHLC data. PrevClose is the close of the prior
// trading day and is what LOC order prices are derived from.
type Bar struct {
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	PrevClose decimal.Decimal `json:"prevClose"`
}
