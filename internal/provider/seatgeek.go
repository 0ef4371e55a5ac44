package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/search"
)

type seatgeek struct {
	cfg    config.ProviderConf
	client *resty.Client
}

type sgResponse struct {
	Events []*normalize.SeatGeekRaw `json:"events"`
}

func newSeatGeek(cfg config.ProviderConf) *seatgeek {
	return &seatgeek{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(Timeout(cfg)),
	}
}

func (s *seatgeek) Name() string { return event.SourceSeatGeek }

func (s *seatgeek) Fetch(ctx context.Context, p *search.Params) ([]normalize.RawEventSource, error) {
	params := map[string]string{
		"client_id": s.cfg.APIKey,
		"per_page":  "100",
		"sort":      "datetime_local.asc",
	}
	if p.Keyword != "" {
		params["q"] = p.Keyword
	}
	if lat, lon, ok := p.Center(); ok {
		params["lat"] = strconv.FormatFloat(lat, 'f', 6, 64)
		params["lon"] = strconv.FormatFloat(lon, 'f', 6, 64)
		if p.RadiusKm > 0 {
			params["range"] = fmt.Sprintf("%dkm", int(p.RadiusKm))
		}
	} else if p.Location != "" {
		params["venue.city"] = p.Location
	}
	if p.StartDate != "" {
		params["datetime_local.gte"] = p.StartDate
	}
	if p.EndDate != "" {
		params["datetime_local.lte"] = p.EndDate
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&sgResponse{}).
		Get("/events")
	if err != nil {
		return nil, fmt.Errorf("seatgeek: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("seatgeek: status %d", resp.StatusCode())
	}
	result, ok := resp.Result().(*sgResponse)
	if !ok {
		return nil, fmt.Errorf("seatgeek: unexpected response shape")
	}

	raws := make([]normalize.RawEventSource, 0, len(result.Events))
	for _, ev := range result.Events {
		raws = append(raws, ev)
	}
	return raws, nil
}
