package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/search"
)

type predicthq struct {
	cfg    config.ProviderConf
	client *resty.Client
}

type phqResponse struct {
	Results []*normalize.PredictHQRaw `json:"results"`
}

func newPredictHQ(cfg config.ProviderConf) *predicthq {
	return &predicthq{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(Timeout(cfg)).
			SetAuthToken(cfg.APIKey),
	}
}

func (p *predicthq) Name() string { return event.SourcePredictHQ }

func (p *predicthq) Fetch(ctx context.Context, sp *search.Params) ([]normalize.RawEventSource, error) {
	params := map[string]string{
		"limit": "100",
		"sort":  "start",
	}
	if sp.Keyword != "" {
		params["q"] = sp.Keyword
	}
	if lat, lon, ok := sp.Center(); ok {
		radius := sp.RadiusKm
		if radius == 0 {
			radius = search.MaxRadiusKm
		}
		params["within"] = fmt.Sprintf("%dkm@%f,%f", int(radius), lat, lon)
	}
	if len(sp.Categories) > 0 {
		params["category"] = strings.Join(sp.Categories, ",")
	}
	if sp.StartDate != "" {
		params["active.gte"] = sp.StartDate
	}
	if sp.EndDate != "" {
		params["active.lte"] = sp.EndDate
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&phqResponse{}).
		Get("/events/")
	if err != nil {
		return nil, fmt.Errorf("predicthq: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("predicthq: status %d", resp.StatusCode())
	}
	result, ok := resp.Result().(*phqResponse)
	if !ok {
		return nil, fmt.Errorf("predicthq: unexpected response shape")
	}

	raws := make([]normalize.RawEventSource, 0, len(result.Results))
	for _, ev := range result.Results {
		raws = append(raws, ev)
	}
	return raws, nil
}
