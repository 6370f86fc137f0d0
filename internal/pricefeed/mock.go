package pricefeed

import (
	"time"

	"stromvarsel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PricePoint
	Errs   map[string]error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDayAhead(area string) (*model.PriceSeries, error) {
	m.Calls = append(m.Calls, area)
	if err, ok := m.Errs[area]; ok {
		return nil, &FetchError{Area: area, Err: err}
	}
	return &model.PriceSeries{
		Area:      area,
		Points:    m.Series[area],
		FetchedAt: time.Now(),
	}, nil
}
