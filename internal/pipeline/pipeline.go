// Package pipeline applies the cross-provider post-processing steps to the
// merged event list: filtering, deduplication, coordinate backfill, sorting
// and pagination. Step order is fixed; see Run.
package pipeline

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/search"
)

// unsortableKey pushes events with unparsable dates behind every valid one.
const unsortableKey = int64(math.MaxInt64)

// Result is the pipeline output plus the counters the response meta needs.
type Result struct {
	Events            []event.Event
	Total             int // pre-pagination count
	TotalPages        int
	WithCoordinates   int
	DroppedIncomplete int
}

// Run executes the post-processing steps in order: completeness filter,
// exclusion filter, dedup, coordinate backfill, sort, optional distance
// filter, pagination. The input slice is never mutated.
func Run(events []event.Event, p *search.Params) Result {
	var res Result

	kept := make([]event.Event, 0, len(events))
	excluded := toSet(p.ExcludeIDs)
	seen := make(map[string]bool, len(events))
	for _, ev := range events {
		if !ev.Complete() {
			res.DroppedIncomplete++
			continue
		}
		if excluded[ev.ID] {
			continue
		}
		// First occurrence wins: provider order decides duplicates.
		if key := ev.DedupKey(); seen[key] {
			continue
		} else {
			seen[key] = true
		}
		kept = append(kept, ev)
	}

	if lat, lon, ok := p.Center(); ok {
		for i := range kept {
			if kept[i].Coordinates == nil {
				kept[i].Coordinates = jitteredCoordinates(lat, lon)
			}
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return sortKey(&kept[i]) < sortKey(&kept[j])
	})

	if lat, lon, ok := p.Center(); ok && p.RadiusKm > 0 {
		inRadius := kept[:0]
		for _, ev := range kept {
			// No coordinates means the event cannot be proven inside
			// the radius.
			if ev.Coordinates == nil {
				continue
			}
			if haversineKm(lat, lon, ev.Coordinates.Lat(), ev.Coordinates.Lon()) <= p.RadiusKm {
				inRadius = append(inRadius, ev)
			}
		}
		kept = inRadius
	}

	for i := range kept {
		if kept[i].Coordinates != nil {
			res.WithCoordinates++
		}
	}

	res.Total = len(kept)
	limit := p.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	res.TotalPages = (res.Total + limit - 1) / limit
	res.Events = paginate(kept, p.Page, limit)
	return res
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// jitteredCoordinates synthesizes an approximate position near the search
// center: each axis gets a random offset of 0.01 to 0.1 degrees (roughly 1
// to 10 km) in a random direction. An approximation, not a geocode. A center
// that cannot yield a valid pair produces nil; an event never carries
// non-finite or out-of-range coordinates.
func jitteredCoordinates(lat, lon float64) *event.Coordinates {
	c := event.Coordinates{lon + jitter(), lat + jitter()}
	if !c.Valid() {
		c = event.Coordinates{lon, lat}
		if !c.Valid() {
			return nil
		}
	}
	return &c
}

func jitter() float64 {
	off := 0.01 + rand.Float64()*0.09
	if rand.Intn(2) == 0 {
		off = -off
	}
	return off
}

var sortKeyLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// sortKey parses the event's datetime into a millisecond timestamp.
// RawDate is preferred for precision; unparsable dates sort last. Never
// panics: a broken comparator would drop the whole response.
func sortKey(ev *event.Event) int64 {
	candidates := []string{}
	if ev.RawDate != "" {
		candidates = append(candidates, ev.RawDate)
	}
	if ev.Date != "" {
		clock := ev.Time
		if clock == "" {
			clock = "00:00"
		}
		candidates = append(candidates, ev.Date+"T"+clock)
	}
	for _, c := range candidates {
		for _, layout := range sortKeyLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				return t.UnixMilli()
			}
		}
	}
	return unsortableKey
}

func paginate(events []event.Event, page, limit int) []event.Event {
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(events) {
		return []event.Event{}
	}
	end := start + limit
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}
