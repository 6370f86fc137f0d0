package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one hourly spot price quote. Price is NOK per kWh, carried
// as a decimal so the feed's own representation survives into notifications.
type PricePoint struct {
	Time  time.Time
	Price decimal.Decimal
}

// PriceSeries holds the day-ahead hourly prices for one price area,
// in chronological order.
type PriceSeries struct {
	Area      string
	Points    []PricePoint
	FetchedAt time.Time
}
