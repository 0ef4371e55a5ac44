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

type ticketmaster struct {
	cfg    config.ProviderConf
	client *resty.Client
}

type tmResponse struct {
	Embedded struct {
		Events []*normalize.TicketmasterRaw `json:"events"`
	} `json:"_embedded"`
}

func newTicketmaster(cfg config.ProviderConf) *ticketmaster {
	return &ticketmaster{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(Timeout(cfg)),
	}
}

func (t *ticketmaster) Name() string { return event.SourceTicketmaster }

func (t *ticketmaster) Fetch(ctx context.Context, p *search.Params) ([]normalize.RawEventSource, error) {
	params := map[string]string{
		"apikey": t.cfg.APIKey,
		"size":   "100",
		"sort":   "date,asc",
	}
	if p.Keyword != "" {
		params["keyword"] = p.Keyword
	}
	if lat, lon, ok := p.Center(); ok {
		params["latlong"] = fmt.Sprintf("%f,%f", lat, lon)
		if p.RadiusKm > 0 {
			params["radius"] = strconv.Itoa(int(p.RadiusKm))
			params["unit"] = "km"
		}
	} else if p.Location != "" {
		params["city"] = p.Location
	}
	if p.StartDate != "" {
		params["startDateTime"] = p.StartDate + "T00:00:00Z"
	}
	if p.EndDate != "" {
		params["endDateTime"] = p.EndDate + "T23:59:59Z"
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&tmResponse{}).
		Get("/events.json")
	if err != nil {
		return nil, fmt.Errorf("ticketmaster: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("ticketmaster: status %d", resp.StatusCode())
	}
	result, ok := resp.Result().(*tmResponse)
	if !ok {
		return nil, fmt.Errorf("ticketmaster: unexpected response shape")
	}

	raws := make([]normalize.RawEventSource, 0, len(result.Embedded.Events))
	for _, ev := range result.Embedded.Events {
		raws = append(raws, ev)
	}
	return raws, nil
}
