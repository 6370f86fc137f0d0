package analyzer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stromvarsel/internal/model"
)

func point(hour int, price string) model.PricePoint {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return model.PricePoint{
		Time:  time.Date(2024, 1, 2, hour, 0, 0, 0, time.FixedZone("CET", 3600)),
		Price: d,
	}
}

func TestFilterExceeding_KeepsOnlyAboveCeiling(t *testing.T) {
	points := []model.PricePoint{
		point(0, "0.45"),
		point(1, "1.5"),
		point(2, "1.0"),
		point(3, "2.31"),
	}
	got := FilterExceeding(points, decimal.NewFromFloat(1.0))
	if len(got) != 2 {
		t.Fatalf("expected 2 exceedances, got %d", len(got))
	}
	if !got[0].Price.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("expected first exceedance 1.5, got %s", got[0].Price)
	}
	if !got[1].Price.Equal(decimal.RequireFromString("2.31")) {
		t.Errorf("expected second exceedance 2.31, got %s", got[1].Price)
	}
}

func TestFilterExceeding_BoundaryDoesNotQualify(t *testing.T) {
	points := []model.PricePoint{point(0, "1.0"), point(1, "1.00")}
	got := FilterExceeding(points, decimal.NewFromFloat(1.0))
	if len(got) != 0 {
		t.Fatalf("price equal to ceiling must not qualify, got %d matches", len(got))
	}
}

func TestFilterExceeding_PreservesOrder(t *testing.T) {
	points := []model.PricePoint{
		point(3, "1.2"),
		point(1, "1.8"),
		point(2, "1.4"),
	}
	got := FilterExceeding(points, decimal.NewFromFloat(1.0))
	if len(got) != 3 {
		t.Fatalf("expected 3 exceedances, got %d", len(got))
	}
	for i := range points {
		if !got[i].Time.Equal(points[i].Time) {
			t.Errorf("order changed at %d: got %v, want %v", i, got[i].Time, points[i].Time)
		}
	}
}

func TestFilterExceeding_Idempotent(t *testing.T) {
	ceiling := decimal.NewFromFloat(1.0)
	points := []model.PricePoint{
		point(0, "0.9"),
		point(1, "1.1"),
		point(2, "1.9"),
	}
	once := FilterExceeding(points, ceiling)
	twice := FilterExceeding(once, ceiling)
	if len(once) != len(twice) {
		t.Fatalf("re-filtering changed set size: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Price.Equal(twice[i].Price) {
			t.Errorf("re-filtering changed entry %d", i)
		}
	}
}

func TestFilterExceeding_Empty(t *testing.T) {
	if got := FilterExceeding(nil, decimal.NewFromFloat(1.0)); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %d", len(got))
	}
}
