package pricefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stromvarsel/internal/model"
)

// FetchError reports a failed price feed request for one area.
type FetchError struct {
	Area string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch prices for %s: %v", e.Area, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client implements Fetcher against the hvakosterstrommen.no price API.
type Client struct {
	BaseURL string
	Client  *http.Client

	now func() time.Time
}

// NewClient creates a new price feed client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
}

func (c *Client) Name() string { return "hvakosterstrommen" }

// priceRecord is the expected JSON shape from the price API.
type priceRecord struct {
	NOKPerKWh decimal.Decimal `json:"NOK_per_kWh"`
	TimeStart string          `json:"time_start"`
}

// FetchDayAhead retrieves tomorrow's hourly price series for the given area.
// The target date is the local clock's current date plus one day.
func (c *Client) FetchDayAhead(area string) (*model.PriceSeries, error) {
	tomorrow := c.now().AddDate(0, 0, 1)
	endpoint := fmt.Sprintf("%s/%d/%02d-%02d_%s.json",
		c.BaseURL, tomorrow.Year(), int(tomorrow.Month()), tomorrow.Day(), area)

	resp, err := c.Client.Get(endpoint)
	if err != nil {
		return nil, &FetchError{Area: area, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Area: area, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var records []priceRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &FetchError{Area: area, Err: fmt.Errorf("decode prices: %w", err)}
	}

	points := make([]model.PricePoint, len(records))
	for i, r := range records {
		ts, err := time.Parse(time.RFC3339, r.TimeStart)
		if err != nil {
			return nil, &FetchError{Area: area, Err: fmt.Errorf("parse time_start %q: %w", r.TimeStart, err)}
		}
		points[i] = model.PricePoint{Time: ts, Price: r.NOKPerKWh}
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return &model.PriceSeries{Area: area, Points: points, FetchedAt: c.now()}, nil
}
