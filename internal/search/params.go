// Package search defines the validated query every aggregation run starts
// from.
package search

import (
	"fmt"
	"sort"
	"strings"
)

// Limits applied during normalization.
const (
	MinRadiusKm  = 5
	MaxRadiusKm  = 100
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated search query. Latitude/Longitude are pointers
// because "no search center" is meaningful: without one, no coordinate
// backfill and no distance filtering happens.
type Params struct {
	Keyword    string
	Location   string
	Latitude   *float64
	Longitude  *float64
	RadiusKm   float64 // 0 disables the distance filter
	StartDate  string  // YYYY-MM-DD
	EndDate    string
	Categories []string
	Limit      int
	Page       int
	ExcludeIDs []string
}

// Center returns the search center when both components were supplied.
func (p *Params) Center() (lat, lon float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// Normalize clamps the tunables into their documented ranges and fills
// defaults. Call once before handing the params to the aggregator.
func (p *Params) Normalize() {
	if p.RadiusKm != 0 {
		if p.RadiusKm < MinRadiusKm {
			p.RadiusKm = MinRadiusKm
		}
		if p.RadiusKm > MaxRadiusKm {
			p.RadiusKm = MaxRadiusKm
		}
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
}

// CacheKey renders the params as a stable string: same logical query, same
// key, regardless of slice order.
func (p *Params) CacheKey() string {
	cats := append([]string(nil), p.Categories...)
	sort.Strings(cats)
	excl := append([]string(nil), p.ExcludeIDs...)
	sort.Strings(excl)

	lat, lon := "", ""
	if p.Latitude != nil {
		lat = fmt.Sprintf("%.4f", *p.Latitude)
	}
	if p.Longitude != nil {
		lon = fmt.Sprintf("%.4f", *p.Longitude)
	}
	return strings.Join([]string{
		"q=" + strings.ToLower(strings.TrimSpace(p.Keyword)),
		"loc=" + strings.ToLower(strings.TrimSpace(p.Location)),
		"lat=" + lat,
		"lon=" + lon,
		fmt.Sprintf("r=%.1f", p.RadiusKm),
		"from=" + p.StartDate,
		"to=" + p.EndDate,
		"cat=" + strings.Join(cats, ","),
		fmt.Sprintf("limit=%d", p.Limit),
		fmt.Sprintf("page=%d", p.Page),
		"excl=" + strings.Join(excl, ","),
	}, "&")
}
