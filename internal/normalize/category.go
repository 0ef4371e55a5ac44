package normalize

import (
	"strings"

	"github.com/eventmux/eventmux/internal/event"
)

// Fixed per-provider taxonomy tables. Lookups are case-insensitive and
// unknown values always map to CategoryOther; the party classifier runs
// afterwards and may override whatever comes out of here.

var ticketmasterSegments = map[string]string{
	"music":          event.CategoryMusic,
	"sports":         event.CategorySports,
	"arts & theatre": event.CategoryArts,
	"film":           event.CategoryArts,
	"family":         event.CategoryFamily,
	"miscellaneous":  event.CategoryOther,
}

var predicthqCategories = map[string]string{
	"concerts":        event.CategoryMusic,
	"festivals":       event.CategoryMusic,
	"performing-arts": event.CategoryArts,
	"sports":          event.CategorySports,
	"community":       event.CategoryFamily,
	"school-holidays": event.CategoryFamily,
	"food-drink":      event.CategoryFood,
	"expos":           event.CategoryOther,
	"conferences":     event.CategoryOther,
}

var seatgeekTypes = map[string]string{
	"concert":                    event.CategoryMusic,
	"music_festival":             event.CategoryMusic,
	"band":                       event.CategoryMusic,
	"theater":                    event.CategoryArts,
	"broadway_tickets_national":  event.CategoryArts,
	"comedy":                     event.CategoryArts,
	"dance_performance_tour":     event.CategoryArts,
	"family":                     event.CategoryFamily,
	"circus":                     event.CategoryFamily,
}

// seatgeekSportsHints catches SeatGeek's long tail of per-league types
// ("nba", "mlb_spring_training", "ncaa_football", ...).
var seatgeekSportsHints = []string{
	"nba", "nfl", "mlb", "nhl", "mls", "ncaa", "wnba",
	"baseball", "basketball", "football", "hockey", "soccer",
	"tennis", "golf", "boxing", "mma", "racing", "wrestling", "sports",
}

func mapTicketmasterSegment(segment string) string {
	if c, ok := ticketmasterSegments[strings.ToLower(strings.TrimSpace(segment))]; ok {
		return c
	}
	return event.CategoryOther
}

func mapPredictHQCategory(category string) string {
	if c, ok := predicthqCategories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return c
	}
	return event.CategoryOther
}

func mapSeatGeekType(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if c, ok := seatgeekTypes[typ]; ok {
		return c
	}
	for _, hint := range seatgeekSportsHints {
		if strings.Contains(typ, hint) {
			return event.CategorySports
		}
	}
	return event.CategoryOther
}

// rapidapiTagHints maps free-form tags onto the canonical set; the first
// tag with a hit wins.
var rapidapiTagHints = []struct {
	hint     string
	category string
}{
	{"music", event.CategoryMusic},
	{"concert", event.CategoryMusic},
	{"sport", event.CategorySports},
	{"art", event.CategoryArts},
	{"theatre", event.CategoryArts},
	{"theater", event.CategoryArts},
	{"family", event.CategoryFamily},
	{"kids", event.CategoryFamily},
	{"food", event.CategoryFood},
	{"drink", event.CategoryFood},
}

func mapRapidAPITags(tags []string) string {
	for _, tag := range tags {
		tag = strings.ToLower(tag)
		for _, h := range rapidapiTagHints {
			if strings.Contains(tag, h.hint) {
				return h.category
			}
		}
	}
	return event.CategoryOther
}
