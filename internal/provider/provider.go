// Package provider holds the upstream event API clients. Each client fetches
// one page of raw records for a search; normalization happens downstream.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/search"
)

// Provider is one upstream event API.
type Provider interface {
	Name() string
	// Fetch returns the provider's raw records for the search. It honors
	// ctx cancellation; a failure is returned as an error and never
	// panics.
	Fetch(ctx context.Context, p *search.Params) ([]normalize.RawEventSource, error)
}

// FromConfig builds the enabled providers in configured order. Order
// matters: it decides which provider wins when deduplication collapses the
// same event from two sources.
func FromConfig(cfg *config.Config) ([]Provider, error) {
	var providers []Provider
	for _, name := range cfg.Providers.Order {
		var (
			p  Provider
			pc config.ProviderConf
		)
		switch name {
		case "ticketmaster":
			pc = cfg.Providers.Ticketmaster
			p = newTicketmaster(pc)
		case "predicthq":
			pc = cfg.Providers.PredictHQ
			p = newPredictHQ(pc)
		case "seatgeek":
			pc = cfg.Providers.SeatGeek
			p = newSeatGeek(pc)
		case "rapidapi":
			pc = cfg.Providers.RapidAPI
			p = newRapidAPI(pc)
		case "mock":
			pc = cfg.Providers.Mock
			p = newMock()
		default:
			return nil, fmt.Errorf("unknown provider %q in providers.order", name)
		}
		if pc.Enabled {
			providers = append(providers, p)
		}
	}
	return providers, nil
}

// Timeout returns the configured per-provider timeout.
func Timeout(pc config.ProviderConf) time.Duration {
	if pc.TimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(pc.TimeoutMs) * time.Millisecond
}
