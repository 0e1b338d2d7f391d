package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/hvaldez/dayplan/internal/model"
	"github.com/hvaldez/dayplan/internal/notify"
	"github.com/hvaldez/dayplan/internal/remind"
	"github.com/hvaldez/dayplan/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dayplan:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info().Str("db", cfg.Database.Path).Msg("store opened")

	mailer := notify.NewMailer(cfg.SMTP, log)
	poller := remind.New(s, mailer, cfg.Reminder, log)
	poller.Start()
	defer poller.Stop()

	log.Info().
		Int("interval_sec", cfg.Reminder.PollIntervalSec).
		Int("lookback_days", cfg.Reminder.LookbackDays).
		Int("lookahead_days", cfg.Reminder.LookaheadDays).
		Msg("reminder poller started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	log.Info().Str("signal", sig.String()).Msg("shutting down")
	return nil
}
