package arrivals

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cleanride/realtime/feeds"
	"github.com/cleanride/realtime/gtfsrt"
	"github.com/cleanride/realtime/metrics"
	"github.com/cleanride/realtime/schedule"
	"github.com/cleanride/realtime/stations"
)

const defaultScheduleWindow = 45 * time.Minute

// Service orchestrates a full arrival lookup: station resolution, routed
// feed fetches, extraction, schedule merge and, when realtime yields
// nothing, synthetic generation. The only error it returns is a station
// lookup failure; every upstream problem degrades to generated data.
type Service struct {
	stations stations.Store
	schedule schedule.Source
	fetcher  *gtfsrt.Fetcher
	registry *feeds.Registry
	synth    *Synthesizer

	scheduleWindow time.Duration
	log            *zap.Logger
	metrics        *metrics.Collector
	now            func() time.Time
}

func NewService(store stations.Store, sched schedule.Source, fetcher *gtfsrt.Fetcher, registry *feeds.Registry, logger *zap.Logger, collector *metrics.Collector) *Service {
	if registry == nil {
		registry = feeds.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Service{
		stations:       store,
		schedule:       sched,
		fetcher:        fetcher,
		registry:       registry,
		synth:          NewSynthesizer(),
		scheduleWindow: defaultScheduleWindow,
		log:            logger,
		metrics:        collector,
		now:            time.Now,
	}
}

// StationArrivals is the response payload for one station lookup.
type StationArrivals struct {
	Station   stations.Station `json:"station"`
	Arrivals  []Arrival        `json:"arrivals"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// GetTrainArrivals returns the merged arrival board for a station. The error
// is non-nil only when the station id is unknown; test with
// errors.Is(err, stations.ErrNotFound).
func (s *Service) GetTrainArrivals(ctx context.Context, stationID string) (StationArrivals, error) {
	start := time.Now()
	defer func() {
		s.metrics.ArrivalRequestDuration.Observe(time.Since(start).Seconds())
	}()

	st, err := s.stations.Get(ctx, stationID)
	if err != nil {
		return StationArrivals{}, fmt.Errorf("station %q: %w", stationID, err)
	}

	sources := s.registry.SourcesForLines(st.Lines)
	results := s.fetcher.FetchAll(ctx, sources)
	now := s.now()

	var extracted []Arrival
	for _, res := range results {
		extracted = append(extracted, Extract(res.Feed, stationID, now)...)
	}

	list := extracted
	if synthesize, reason := decideFallback(results, extracted); synthesize {
		s.metrics.SyntheticFallbacks.Inc()
		s.log.Info("no realtime arrivals, generating",
			zap.String("station", stationID),
			zap.String("reason", reason))
		list = s.synth.ForLines(st.Lines)
	}

	list = Merge(list, s.upcoming(ctx, st), now)

	return StationArrivals{Station: st, Arrivals: list, UpdatedAt: now}, nil
}

// upcoming pulls scheduled departures for the merge. Schedule trouble is
// never worth failing the request over.
func (s *Service) upcoming(ctx context.Context, st stations.Station) []schedule.Departure {
	if s.schedule == nil || s.fetcher.Offline() {
		return nil
	}
	deps, err := s.schedule.Upcoming(ctx, st.ID, st.Lines, s.scheduleWindow)
	if err != nil {
		s.log.Warn("schedule lookup failed",
			zap.String("station", st.ID),
			zap.Error(err))
		return nil
	}
	return deps
}

// decideFallback is the merge-or-synthesize decision. Generation kicks in
// whenever realtime yielded nothing for the station: every source failed,
// feeds decoded empty, or no trip in a healthy feed serves these platforms.
// The outcomes distinguish the cases for the log; the policy treats them
// alike.
func decideFallback(results []gtfsrt.Result, extracted []Arrival) (bool, string) {
	if len(extracted) > 0 {
		return false, ""
	}
	failed := 0
	for _, r := range results {
		if r.Outcome == gtfsrt.RealtimeFailed {
			failed++
		}
	}
	switch {
	case len(results) == 0:
		return true, "no_sources"
	case failed == len(results):
		return true, "all_feeds_failed"
	case failed > 0:
		return true, "partial_failure_no_matches"
	default:
		return true, "no_matching_trips"
	}
}
