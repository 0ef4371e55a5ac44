// Package aggregate fans a search out to every configured provider, joins
// the settled results and runs them through the post-processing pipeline.
package aggregate

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/eventmux/eventmux/internal/cache"
	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/metrics"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/party"
	"github.com/eventmux/eventmux/internal/pipeline"
	"github.com/eventmux/eventmux/internal/provider"
	"github.com/eventmux/eventmux/internal/search"
)

// SourceStat is one provider's per-search diagnostic.
type SourceStat struct {
	Count int     `json:"count"`
	Error *string `json:"error"`
}

// Meta describes the search run for the client.
type Meta struct {
	ExecutionTimeMs       int64  `json:"executionTime"`
	TotalEvents           int    `json:"totalEvents"`
	EventsWithCoordinates int    `json:"eventsWithCoordinates"`
	CurrentPage           int    `json:"currentPage"`
	PageSize              int    `json:"pageSize"`
	TotalPages            int    `json:"totalPages"`
	Timestamp             string `json:"timestamp"`
}

// Response is the full search result envelope.
type Response struct {
	Events      []event.Event         `json:"events"`
	SourceStats map[string]SourceStat `json:"sourceStats"`
	Meta        Meta                  `json:"meta"`
	Warning     string                `json:"warning,omitempty"`
}

// Warning messages for empty or degraded results.
const (
	warnNoEvents    = "no events found"
	warnAllFailed   = "all providers failed"
	warnFilteredOut = "events were found but filtered out due to missing required fields"
)

// Aggregator owns the provider set, the classifier and the optional cache.
// The classifier is swapped atomically on config hot-reload; in-flight
// searches keep the instance they started with.
type Aggregator struct {
	providers  []provider.Provider
	timeouts   map[string]time.Duration
	classifier atomic.Pointer[party.Classifier]
	cache      cache.Cache
	cacheTTL   time.Duration
}

// New wires an Aggregator from config.
func New(cfg *config.Config) (*Aggregator, error) {
	providers, err := provider.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewWith(providers, cfg), nil
}

// NewWith wires an Aggregator around an explicit provider set.
func NewWith(providers []provider.Provider, cfg *config.Config) *Aggregator {
	a := &Aggregator{
		providers: providers,
		timeouts:  providerTimeouts(cfg),
		cache:     cache.FromConfig(cfg.Cache),
		cacheTTL:  time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	}
	a.classifier.Store(party.New(cfg.Classifier))
	return a
}

func providerTimeouts(cfg *config.Config) map[string]time.Duration {
	return map[string]time.Duration{
		event.SourceTicketmaster: provider.Timeout(cfg.Providers.Ticketmaster),
		event.SourcePredictHQ:    provider.Timeout(cfg.Providers.PredictHQ),
		event.SourceSeatGeek:     provider.Timeout(cfg.Providers.SeatGeek),
		event.SourceRapidAPI:     provider.Timeout(cfg.Providers.RapidAPI),
		event.SourceMock:         provider.Timeout(cfg.Providers.Mock),
	}
}

// SwapClassifier rebuilds the party classifier from new config (hot-reload).
func (a *Aggregator) SwapClassifier(cfg config.ClassifierConf) {
	a.classifier.Store(party.New(cfg))
}

// Search runs the full aggregation: cache check, provider fan-out,
// normalization, post-processing. It never returns an error for
// data-quality problems; those degrade into warnings and sourceStats.
func (a *Aggregator) Search(ctx context.Context, p *search.Params) *Response {
	start := time.Now()
	p.Normalize()

	cacheKey := p.CacheKey()
	if a.cache != nil {
		if data, ok := a.cache.Get(ctx, cacheKey); ok {
			var cached Response
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.CacheHits.Inc()
				return &cached
			}
		}
		metrics.CacheMisses.Inc()
	}

	clf := a.classifier.Load()

	type fetched struct {
		events []event.Event
		total  int
	}
	outcomes := fanOut(ctx, a.providers, func(ctx context.Context, prov provider.Provider) (fetched, error) {
		timeout := a.timeouts[prov.Name()]
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		fctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		raws, err := prov.Fetch(fctx, p)
		if err != nil {
			metrics.ProviderRequests.WithLabelValues(prov.Name(), "error").Inc()
			return fetched{}, err
		}
		metrics.ProviderRequests.WithLabelValues(prov.Name(), "ok").Inc()
		return fetched{events: normalize.Batch(raws, clf), total: len(raws)}, nil
	})

	stats := make(map[string]SourceStat, len(a.providers))
	var merged []event.Event
	failures := 0
	for i, prov := range a.providers {
		out := outcomes[i]
		if out.err != nil {
			msg := out.err.Error()
			stats[prov.Name()] = SourceStat{Count: 0, Error: &msg}
			failures++
			slog.Warn("provider failed", "provider", prov.Name(), "err", out.err)
			continue
		}
		stats[prov.Name()] = SourceStat{Count: len(out.val.events)}
		merged = append(merged, out.val.events...)
	}

	result := pipeline.Run(merged, p)

	resp := &Response{
		Events:      result.Events,
		SourceStats: stats,
		Meta: Meta{
			ExecutionTimeMs:       time.Since(start).Milliseconds(),
			TotalEvents:           result.Total,
			EventsWithCoordinates: result.WithCoordinates,
			CurrentPage:           p.Page,
			PageSize:              p.Limit,
			TotalPages:            result.TotalPages,
			Timestamp:             time.Now().UTC().Format(time.RFC3339),
		},
	}
	// A page past the end of a non-empty result set is not "no events";
	// meta.totalEvents tells the client what happened.
	if len(resp.Events) == 0 {
		switch {
		case len(a.providers) > 0 && failures == len(a.providers):
			resp.Warning = warnAllFailed
		case result.DroppedIncomplete > 0 && result.Total == 0:
			resp.Warning = warnFilteredOut
		case result.Total == 0:
			resp.Warning = warnNoEvents
		}
	}
	metrics.SearchDuration.Observe(float64(resp.Meta.ExecutionTimeMs))

	if a.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			a.cache.Set(ctx, cacheKey, data, a.cacheTTL)
		}
	}
	return resp
}
