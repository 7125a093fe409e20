package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bluele/gcache"
	"go.uber.org/zap"

	"github.com/cleanride/realtime/feeds"
	"github.com/cleanride/realtime/metrics"
)

// DefaultFeedBaseURL is the MTA's public GTFS-RT endpoint prefix.
const DefaultFeedBaseURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds"

const (
	defaultCacheTTL = 30 * time.Second
	defaultTimeout  = 15 * time.Second
)

// FetcherOptions configures a Fetcher. Zero values take the defaults above.
type FetcherOptions struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration

	// Offline short-circuits every fetch to a failed result without touching
	// the network. Used for demo operation; the caller's synthetic fallback
	// then supplies all data.
	Offline bool
}

// Fetcher retrieves and decodes feed payloads with a short-lived per-source
// cache. Transport and decode failures degrade to an empty feed and are
// reported through the Result outcome, never as errors.
type Fetcher struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	cache    gcache.Cache
	cacheTTL time.Duration
	offline  bool
	log      *zap.Logger
	metrics  *metrics.Collector

	latest atomic.Int64 // newest feed header epoch seen, for health reporting
}

func NewFetcher(opts FetcherOptions, logger *zap.Logger, collector *metrics.Collector) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultFeedBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if collector == nil {
		collector = metrics.NewCollector()
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		baseURL: opts.BaseURL,
		apiKey:  opts.APIKey,
		// One entry per registered source; a fresh write simply overwrites.
		cache:    gcache.New(16).LRU().Expiration(opts.CacheTTL).Build(),
		cacheTTL: opts.CacheTTL,
		offline:  opts.Offline,
		log:      logger,
		metrics:  collector,
	}
}

// Offline reports whether the fetcher is pinned to offline operation.
func (f *Fetcher) Offline() bool { return f.offline }

// LatestTimestamp returns the newest feed header epoch observed, or zero when
// nothing has been fetched yet.
func (f *Fetcher) LatestTimestamp() int64 { return f.latest.Load() }

// Fetch returns a Result for one source. A cached feed younger than the TTL
// is returned without network access.
func (f *Fetcher) Fetch(ctx context.Context, src feeds.Source) Result {
	now := time.Now()

	if f.offline {
		f.metrics.FeedFetches.WithLabelValues(src.ID, RealtimeFailed.String()).Inc()
		return Result{SourceID: src.ID, Outcome: RealtimeFailed, Feed: EmptyFeed(now)}
	}

	if v, err := f.cache.Get(src.ID); err == nil {
		if feed, ok := v.(DecodedFeed); ok {
			f.metrics.FeedCacheHits.Inc()
			return Result{SourceID: src.ID, Outcome: outcomeOf(feed), Feed: feed}
		}
	}

	raw, err := f.fetchRaw(ctx, src)
	if err != nil {
		f.log.Warn("feed fetch failed",
			zap.String("source", src.ID),
			zap.Error(err))
		f.metrics.FeedFetches.WithLabelValues(src.ID, RealtimeFailed.String()).Inc()
		return Result{SourceID: src.ID, Outcome: RealtimeFailed, Feed: EmptyFeed(now)}
	}

	feed, ok := decodeFeed(raw, now)
	if !ok {
		f.log.Warn("feed decode failed",
			zap.String("source", src.ID),
			zap.Int("payload_bytes", len(raw)))
		f.metrics.DecodeFailures.Inc()
		f.metrics.FeedFetches.WithLabelValues(src.ID, RealtimeFailed.String()).Inc()
		return Result{SourceID: src.ID, Outcome: RealtimeFailed, Feed: feed}
	}

	_ = f.cache.Set(src.ID, feed)
	f.observeTimestamp(feed.Timestamp)

	outcome := outcomeOf(feed)
	f.metrics.FeedFetches.WithLabelValues(src.ID, outcome.String()).Inc()
	return Result{SourceID: src.ID, Outcome: outcome, Feed: feed}
}

// FetchAll fetches every source concurrently. Results keep the order of the
// input; extraction treats entities as stop-keyed so no ordering between
// sources is needed beyond that.
func (f *Fetcher) FetchAll(ctx context.Context, sources []feeds.Source) []Result {
	results := make([]Result, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src feeds.Source) {
			defer wg.Done()
			results[i] = f.Fetch(ctx, src)
		}(i, src)
	}
	wg.Wait()
	return results
}

func (f *Fetcher) fetchRaw(ctx context.Context, src feeds.Source) ([]byte, error) {
	url := f.baseURL + "/" + src.Path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", src.ID, err)
	}
	if f.apiKey != "" {
		req.Header.Set("x-api-key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, src.ID)
	}
	return io.ReadAll(resp.Body)
}

func (f *Fetcher) observeTimestamp(ts int64) {
	for {
		cur := f.latest.Load()
		if ts <= cur || f.latest.CompareAndSwap(cur, ts) {
			return
		}
	}
}

func outcomeOf(feed DecodedFeed) Outcome {
	if len(feed.Entities) == 0 {
		return RealtimeEmpty
	}
	return RealtimeOk
}
