// Package chart builds image URLs for price series via a QuickChart-style
// rendering service. The chart description is plain data serialized with
// encoding/json; identical series always produce byte-identical descriptions,
// so rendered URLs are stable across runs and usable as test fixtures.
package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"stromvarsel/internal/model"
)

// RenderError reports a chart description that could not be produced.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render chart: %v", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer builds chart image URLs. No network call is made here; the URL is
// resolved by whoever needs the image bytes.
type Renderer struct {
	BaseURL string
}

// chartDescription is the wire shape expected by the rendering service.
// Field order fixes the serialized form.
type chartDescription struct {
	Type    string       `json:"type"`
	Data    chartData    `json:"data"`
	Options chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label string        `json:"label"`
	Data  []json.Number `json:"data"`
	Fill  bool          `json:"fill"`
}

type chartOptions struct {
	Title chartTitle `json:"title"`
}

type chartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// RenderURL transforms the full series into a line-chart description (hourly
// labels, price values, date title from the first point) and returns the
// rendering endpoint URL carrying the encoded description.
func (r *Renderer) RenderURL(series *model.PriceSeries) (string, error) {
	if series == nil || len(series.Points) == 0 {
		return "", &RenderError{Err: errors.New("empty price series")}
	}

	labels := make([]string, len(series.Points))
	values := make([]json.Number, len(series.Points))
	for i, p := range series.Points {
		labels[i] = p.Time.Format("15:04")
		values[i] = json.Number(p.Price.String())
	}
	date := series.Points[0].Time.Format("02/01/2006")

	desc := chartDescription{
		Type: "line",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{{
				Label: "NOK per kWh",
				Data:  values,
				Fill:  false,
			}},
		},
		Options: chartOptions{
			Title: chartTitle{Display: true, Text: "Strømpriser " + date},
		},
	}

	raw, err := json.Marshal(desc)
	if err != nil {
		return "", &RenderError{Err: fmt.Errorf("encode chart description: %w", err)}
	}
	return r.BaseURL + "/chart?c=" + url.QueryEscape(string(raw)), nil
}
