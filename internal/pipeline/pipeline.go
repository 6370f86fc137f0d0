// Package pipeline drives the per-subscriber notification flow:
// fetch prices, filter exceedances, render a chart, compose and dispatch mail.
package pipeline

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"stromvarsel/internal/analyzer"
	"stromvarsel/internal/chart"
	"stromvarsel/internal/mailer"
	"stromvarsel/internal/model"
	"stromvarsel/internal/pricefeed"
	"stromvarsel/internal/recorder"
	"stromvarsel/internal/subscribers"
)

// Runner processes the mailing list one subscriber at a time. No state is
// shared between iterations.
type Runner struct {
	ListPath   string
	Ceiling    decimal.Decimal
	Fetcher    pricefeed.Fetcher
	Renderer   *chart.Renderer
	Composer   *mailer.Composer
	Dispatcher mailer.Dispatcher
	Creds      mailer.Credentials
	Recorder   recorder.Recorder
}

// RunOnce loads the mailing list and notifies every subscriber whose area
// has next-day prices above the ceiling. A malformed list aborts before any
// subscriber is touched; every other failure is scoped to its subscriber and
// the loop continues.
func (r *Runner) RunOnce() error {
	started := time.Now()
	subs, err := subscribers.Load(r.ListPath)
	if err != nil {
		return err
	}
	log.Printf("[INFO] run started: %d subscriber(s), ceiling %s NOK/kWh", len(subs), r.Ceiling.String())

	sum := recorder.RunSummary{StartedAt: started, Subscribers: len(subs)}
	deliveries := make([]recorder.Delivery, 0, len(subs))
	for _, sub := range subs {
		d := r.process(sub)
		switch d.Status {
		case recorder.StatusNotified:
			sum.Notified++
		case recorder.StatusSkipped:
			sum.Skipped++
		default:
			sum.Failed++
		}
		deliveries = append(deliveries, d)
	}

	if err := r.Recorder.RecordRun(&sum, deliveries); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	log.Printf("[INFO] run finished: %d notified, %d below ceiling, %d failed",
		sum.Notified, sum.Skipped, sum.Failed)
	return nil
}

func (r *Runner) process(sub model.Subscriber) recorder.Delivery {
	d := recorder.Delivery{Email: sub.Email, Area: sub.Area}

	series, err := r.Fetcher.FetchDayAhead(sub.Area)
	if err != nil {
		return r.fail(d, "fetch", err)
	}

	exceeding := analyzer.FilterExceeding(series.Points, r.Ceiling)
	d.Exceedances = len(exceeding)
	if len(exceeding) == 0 {
		d.Status = recorder.StatusSkipped
		return d
	}

	// The chart shows the whole day, not just the exceeding hours.
	chartURL, err := r.Renderer.RenderURL(series)
	if err != nil {
		return r.fail(d, "render", err)
	}
	n, err := r.Composer.Compose(sub.Email, exceeding, chartURL)
	if err != nil {
		return r.fail(d, "compose", err)
	}
	if err := r.Dispatcher.Send(n, r.Creds); err != nil {
		return r.fail(d, "dispatch", err)
	}

	d.Status = recorder.StatusNotified
	log.Printf("[INFO] notified %s (%s): %d hour(s) above ceiling", sub.Email, sub.Area, len(exceeding))
	return d
}

func (r *Runner) fail(d recorder.Delivery, stage string, err error) recorder.Delivery {
	d.Status = recorder.StatusFailed
	d.Stage = stage
	d.Error = err.Error()
	log.Printf("[ERROR] %s for %s (%s): %v", stage, d.Email, d.Area, err)
	return d
}
