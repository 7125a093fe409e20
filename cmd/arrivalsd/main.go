package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	realtime "github.com/cleanride/realtime"
	"github.com/cleanride/realtime/arrivals"
	"github.com/cleanride/realtime/config"
	"github.com/cleanride/realtime/feeds"
	"github.com/cleanride/realtime/gtfsrt"
	"github.com/cleanride/realtime/metrics"
	"github.com/cleanride/realtime/schedule"
	"github.com/cleanride/realtime/stations"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	offline := flag.Bool("offline", false, "serve generated data only, no upstream fetches")
	flag.Parse()

	if err := run(*configPath, *offline); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, offlineFlag bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if offlineFlag {
		cfg.Feeds.Offline = true
	}

	logger, err := realtime.NewLogger(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector()
	fetcher := gtfsrt.NewFetcher(gtfsrt.FetcherOptions{
		BaseURL:  cfg.Feeds.BaseURL,
		APIKey:   cfg.Feeds.APIKey,
		Timeout:  time.Duration(cfg.Feeds.TimeoutMS) * time.Millisecond,
		CacheTTL: time.Duration(cfg.Feeds.CacheTTLMS) * time.Millisecond,
		Offline:  cfg.Feeds.Offline,
	}, logger, collector)

	store, closeStore, err := openStations(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sched, closeSched, err := openSchedule(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer closeSched()

	svc := arrivals.NewService(store, sched, fetcher, feeds.Default(), logger, collector)
	srv := realtime.NewServer(cfg.Server, svc, fetcher, collector, logger)

	go srv.WaitForShutdown()
	logger.Info("starting",
		zap.Bool("offline", cfg.Feeds.Offline),
		zap.Int("port", cfg.Server.Port))
	return srv.Start()
}

func openStations(cfg config.StorageConfig, logger *zap.Logger) (stations.Store, func(), error) {
	if cfg.StationsDB == "" {
		logger.Info("no stations db configured, using built-in demo registry")
		return stations.Demo(), func() {}, nil
	}
	store, err := stations.OpenSQLite(cfg.StationsDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open stations db: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func openSchedule(cfg config.StorageConfig, logger *zap.Logger) (schedule.Source, func(), error) {
	if cfg.ScheduleDB == "" {
		logger.Info("no schedule db configured, serving without timetable merge")
		return nil, func() {}, nil
	}
	src, err := schedule.OpenSQLite(cfg.ScheduleDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open schedule db: %w", err)
	}
	return src, func() { _ = src.Close() }, nil
}
