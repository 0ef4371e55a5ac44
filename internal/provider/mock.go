package provider

import (
	"context"

	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/search"
)

// mock serves canned events for local development and smoke tests without
// burning upstream API quota.
type mock struct{}

func newMock() *mock { return &mock{} }

func (m *mock) Name() string { return event.SourceMock }

func (m *mock) Fetch(ctx context.Context, p *search.Params) ([]normalize.RawEventSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := p.StartDate
	if start == "" {
		start = "2025-06-01"
	}
	var lon, lat *float64
	if clat, clon, ok := p.Center(); ok {
		lat, lon = &clat, &clon
	}
	return []normalize.RawEventSource{
		&normalize.MockRaw{
			MockID:    "m1",
			MockTitle: "Friday Night DJ Party",
			MockDesc:  "House and disco all night at the downtown club.",
			Start:     start + "T22:00:00",
			VenueName: "The Basement Club",
			City:      p.Location,
			NativeCat: event.CategoryMusic,
			Lon:       lon,
			Lat:       lat,
		},
		&normalize.MockRaw{
			MockID:    "m2",
			MockTitle: "City Farmers Market",
			MockDesc:  "Local produce and food stalls.",
			Start:     start + "T09:00:00",
			VenueName: "Riverside Park",
			City:      p.Location,
			NativeCat: event.CategoryFood,
		},
	}, nil
}
