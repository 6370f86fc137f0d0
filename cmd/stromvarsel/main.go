package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"stromvarsel/internal/chart"
	"stromvarsel/internal/config"
	"stromvarsel/internal/mailer"
	"stromvarsel/internal/pipeline"
	"stromvarsel/internal/pricefeed"
	"stromvarsel/internal/recorder"
	"stromvarsel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stromvarsel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init price feed
	fetcher := pricefeed.NewClient(cfg.PriceAPI.BaseURL)
	log.Printf("[INFO] price feed: %s", fetcher.Name())

	// Init renderer, composer, dispatcher
	renderer := &chart.Renderer{BaseURL: cfg.Chart.BaseURL}
	composer := mailer.NewComposer(cfg.Mail.Sender)
	dispatcher := mailer.NewSMTPDispatcher(cfg.Mail.Host, cfg.Mail.Port)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	runner := &pipeline.Runner{
		ListPath:   cfg.Alert.MailingList,
		Ceiling:    decimal.NewFromFloat(cfg.Alert.Ceiling),
		Fetcher:    fetcher,
		Renderer:   renderer,
		Composer:   composer,
		Dispatcher: dispatcher,
		Creds:      mailer.Credentials{Sender: cfg.Mail.Sender, Secret: cfg.Mail.Password},
		Recorder:   rec,
	}

	// One-shot mode for external schedulers (cron, compose up)
	if os.Getenv("RUN_ONCE") == "true" {
		if err := runner.RunOnce(); err != nil {
			log.Fatalf("[FATAL] run aborted: %v", err)
		}
		return
	}

	// Daemon mode: robfig cron fires the run once a day
	sched := scheduler.NewScheduler(runner)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunNow()
	}

	log.Println("[INFO] stromvarsel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
