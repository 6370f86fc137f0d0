package pricefeed

import "stromvarsel/internal/model"

// Fetcher defines the interface for retrieving day-ahead spot prices.
type Fetcher interface {
	FetchDayAhead(area string) (*model.PriceSeries, error)
	Name() string
}
