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

type rapidapi struct {
	cfg    config.ProviderConf
	client *resty.Client
}

type raResponse struct {
	Data []*normalize.RapidAPIRaw `json:"data"`
}

func newRapidAPI(cfg config.ProviderConf) *rapidapi {
	host := strings.TrimPrefix(cfg.BaseURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	return &rapidapi{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(Timeout(cfg)).
			SetHeader("X-RapidAPI-Key", cfg.APIKey).
			SetHeader("X-RapidAPI-Host", strings.TrimSuffix(host, "/")),
	}
}

func (r *rapidapi) Name() string { return event.SourceRapidAPI }

func (r *rapidapi) Fetch(ctx context.Context, p *search.Params) ([]normalize.RawEventSource, error) {
	// The API takes a single free-text query; fold keyword and location in.
	query := strings.TrimSpace(p.Keyword + " events " + p.Location)
	params := map[string]string{
		"query": query,
		"limit": "100",
	}
	if p.StartDate != "" {
		params["start_date"] = p.StartDate
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&raResponse{}).
		Get("/search-events")
	if err != nil {
		return nil, fmt.Errorf("rapidapi: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("rapidapi: status %d", resp.StatusCode())
	}
	result, ok := resp.Result().(*raResponse)
	if !ok {
		return nil, fmt.Errorf("rapidapi: unexpected response shape")
	}

	raws := make([]normalize.RawEventSource, 0, len(result.Data))
	for _, ev := range result.Data {
		raws = append(raws, ev)
	}
	return raws, nil
}
