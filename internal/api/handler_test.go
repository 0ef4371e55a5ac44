package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/eventmux/eventmux/internal/aggregate"
	"github.com/eventmux/eventmux/internal/config"
)

const testYAML = `version: "1"
server:
  rate_limit_rps: 1000
  rate_limit_burst: 1000
providers:
  order: [mock]
  mock:
    enabled: true
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	loader, err := config.NewLoader(path)
	if err != nil {
		t.Fatal(err)
	}
	agg, err := aggregate.New(loader.Config())
	if err != nil {
		t.Fatal(err)
	}
	return New(agg, loader)
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/events/search?keyword=party", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp aggregate.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) == 0 {
		t.Fatal("mock provider returned no events")
	}
	if resp.SourceStats["mock"].Count == 0 {
		t.Errorf("sourceStats = %+v", resp.SourceStats)
	}
	if resp.Meta.CurrentPage != 1 || resp.Meta.PageSize == 0 {
		t.Errorf("meta = %+v", resp.Meta)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestSearchEndpoint_BadParams(t *testing.T) {
	h := newTestHandler(t)
	cases := []struct {
		name  string
		query string
	}{
		{"latitude without longitude", "latitude=40.7"},
		{"latitude out of range", "latitude=95&longitude=-74"},
		{"NaN latitude", "latitude=NaN&longitude=-74"},
		{"infinite longitude", "latitude=40.7&longitude=Inf"},
		{"negative infinite latitude", "latitude=-Inf&longitude=-74"},
		{"bad radius", "latitude=40.7&longitude=-74&radius=-5"},
		{"bad limit", "limit=zero"},
		{"bad page", "page=0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/events/search?"+tc.query, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReloadEndpoint(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/config/reload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Reloaded  bool    `json:"reloaded"`
		Threshold float64 `json:"threshold"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Reloaded || body.Threshold != 5 {
		t.Errorf("body = %+v", body)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}

func TestParseSearchParams_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/events/search", nil)
	p, err := parseSearchParams(req)
	if err != nil {
		t.Fatal(err)
	}
	if p.Limit != 20 || p.Page != 1 {
		t.Errorf("defaults Limit/Page = %d/%d", p.Limit, p.Page)
	}
}

func TestParseSearchParams_CSV(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/v1/events/search?categories=music,party&excludeIds=a,%20b%20,", nil)
	p, err := parseSearchParams(req)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Categories) != 2 {
		t.Errorf("Categories = %v", p.Categories)
	}
	if len(p.ExcludeIDs) != 2 || p.ExcludeIDs[1] != "b" {
		t.Errorf("ExcludeIDs = %v", p.ExcludeIDs)
	}
}
