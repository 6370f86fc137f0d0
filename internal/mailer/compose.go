package mailer

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stromvarsel/internal/model"
)

// ComposeError reports a notification that could not be assembled.
type ComposeError struct {
	Err error
}

func (e *ComposeError) Error() string { return fmt.Sprintf("compose notification: %v", e.Err) }

func (e *ComposeError) Unwrap() error { return e.Err }

const (
	subject  = "Strømprisvarsel"
	preamble = "Hei,\n" +
		"Dette er en automatisk varslingstjeneste for høye strømpriser!\n" +
		"I morgen vil strømprisene overstige 1 NOK per kWH.\n\n"
	signature = "\nMvh\nStrømprisvarsel"

	chartCID = "strompris-chart"
)

// Composer builds notification messages with an inline chart image.
type Composer struct {
	Sender string
	Client *http.Client
}

// NewComposer creates a Composer sending from the given address.
func NewComposer(sender string) *Composer {
	return &Composer{
		Sender: sender,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Compose builds the multipart notification for one recipient: Norwegian
// preamble, one line per exceeding hour, an HTML fragment referencing the
// chart by Content-ID, the chart image bytes fetched from chartURL, and the
// signature. exceedances must be non-empty; callers skip subscribers whose
// prices stay below the ceiling.
func (c *Composer) Compose(recipient string, exceedances []model.PricePoint, chartURL string) (*Notification, error) {
	if len(exceedances) == 0 {
		return nil, &ComposeError{Err: errors.New("no exceedances to report")}
	}

	img, imgType, err := c.fetchImage(chartURL)
	if err != nil {
		return nil, &ComposeError{Err: err}
	}

	var body strings.Builder
	body.WriteString(preamble)
	for _, p := range exceedances {
		body.WriteString(PeakLine(p))
	}

	html := fmt.Sprintf("<html><body><img src=\"cid:%s\" alt=\"Strømpriser i morgen\"></body></html>", chartCID)

	return &Notification{
		Subject: subject,
		From:    c.Sender,
		To:      recipient,
		Parts: []Part{
			{ContentType: `text/plain; charset="utf-8"`, Body: []byte(body.String())},
			{ContentType: `text/html; charset="utf-8"`, Body: []byte(html)},
			{ContentType: imgType, ContentID: chartCID, Body: img},
			{ContentType: `text/plain; charset="utf-8"`, Body: []byte(signature)},
		},
	}, nil
}

// PeakLine formats one exceeding hour for the plaintext body. The timestamp
// keeps the series' own zone and the price keeps the feed's own decimal form.
func PeakLine(p model.PricePoint) string {
	return fmt.Sprintf("%s vil strømprisen være %s NOK per kWh\n",
		p.Time.Format("02/01/2006 15:04"), p.Price.String())
}

func (c *Composer) fetchImage(chartURL string) ([]byte, string, error) {
	resp, err := c.Client.Get(chartURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch chart image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch chart image: status %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("fetch chart image: unexpected content type %q", contentType)
	}
	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read chart image: %w", err)
	}
	return img, contentType, nil
}
