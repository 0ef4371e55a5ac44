package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/eventmux/eventmux/internal/aggregate"
	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/search"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	agg    *aggregate.Aggregator
	loader *config.Loader
}

// New creates the HTTP handler stack: routes, rate limiting, CORS, security
// headers and request logging.
func New(agg *aggregate.Aggregator, loader *config.Loader) http.Handler {
	h := &Handler{agg: agg, loader: loader}
	cfg := loader.Config()
	rl := NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	router := httprouter.New()
	router.GET("/v1/events/search", rl.Limit(h.searchEvents))
	router.POST("/v1/config/reload", h.reloadConfig)
	router.GET("/healthz", h.healthz)
	router.GET("/readyz", h.readyz)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(loggingMiddleware(securityHeaders(router)))
}

// GET /v1/events/search runs the aggregation for the query parameters.
func (h *Handler) searchEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	params, err := parseSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := h.agg.Search(r.Context(), params)
	writeJSON(w, http.StatusOK, resp)
}

// POST /v1/config/reload re-reads config from disk and swaps the classifier.
func (h *Handler) reloadConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cfg, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.agg.SwapClassifier(cfg.Classifier)
	writeJSON(w, http.StatusOK, map[string]any{
		"reloaded":  true,
		"threshold": cfg.Classifier.Threshold,
	})
}

// GET /healthz is the liveness probe, always 200.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz reports 503 until a config is loaded.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.loader.Config() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// parseSearchParams validates query parameters into search.Params.
func parseSearchParams(r *http.Request) (*search.Params, error) {
	q := r.URL.Query()
	p := &search.Params{
		Keyword:   q.Get("keyword"),
		Location:  q.Get("location"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	var err error
	if p.Latitude, err = optFloat(q.Get("latitude"), "latitude"); err != nil {
		return nil, err
	}
	if p.Longitude, err = optFloat(q.Get("longitude"), "longitude"); err != nil {
		return nil, err
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return nil, fmt.Errorf("latitude and longitude must be supplied together")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return nil, fmt.Errorf("latitude out of range")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return nil, fmt.Errorf("longitude out of range")
	}

	if v := q.Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			return nil, fmt.Errorf("invalid radius %q", v)
		}
		p.RadiusKm = radius
	}
	if v := q.Get("limit"); v != "" {
		if p.Limit, err = strconv.Atoi(v); err != nil || p.Limit <= 0 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
	}
	if v := q.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page <= 0 {
			return nil, fmt.Errorf("invalid page %q", v)
		}
	}
	p.Categories = splitCSV(q.Get("categories"))
	p.ExcludeIDs = splitCSV(q.Get("excludeIds"))

	p.Normalize()
	return p, nil
}

func optFloat(v, name string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a coordinate.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &f, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
