// Package normalize converts raw provider payloads into canonical events.
// Each provider's raw record type implements RawEventSource; the shared
// Normalize orchestrator does the rest.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// RawEventSource is the capability interface every provider raw record
// implements. Extract methods never panic on missing fields; they return
// the zero value instead.
type RawEventSource interface {
	Source() string
	ID() string
	Title() string
	Description() string
	URL() string

	// ExtractDate returns the normalized date (YYYY-MM-DD), time (HH:MM)
	// and the provider's original datetime string.
	ExtractDate() (date, clock, rawDate string)
	// ExtractLocation returns the human-readable location composite and
	// the specific venue name.
	ExtractLocation() (location, venue string)
	ExtractCoordinates() *event.Coordinates
	ExtractImage() string
	ExtractPrice() string

	// Category maps the provider's native taxonomy onto the canonical set.
	Category() string
	// PartySignals collects the inputs the party classifier scores.
	PartySignals() party.Signals
}

// ---------------------------------------------------------------------------
// Shared field helpers
// ---------------------------------------------------------------------------

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// splitDateTime normalizes a provider datetime string into a YYYY-MM-DD
// date and an HH:MM clock. Time defaults to "00:00" when the provider only
// gave a date; both come back empty when nothing parses.
func splitDateTime(raw string) (date, clock string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			if layout == "2006-01-02" {
				return t.Format("2006-01-02"), "00:00"
			}
			return t.Format("2006-01-02"), t.Format("15:04")
		}
	}
	// Last resort: a recognizable date prefix.
	if len(raw) >= 10 {
		if _, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return raw[:10], "00:00"
		}
	}
	return "", ""
}

// startHour extracts the hour from an HH:MM clock, or -1 when absent.
func startHour(clock string) int {
	if len(clock) < 2 {
		return -1
	}
	h, err := strconv.Atoi(clock[:2])
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

var providerRefs = regexp.MustCompile(`(?i)\b(?:predicthq|seatgeek|ticketmaster|rapidapi)\.com\b`)

// stripProviderRefs removes provider self-references from free text.
func stripProviderRefs(s string) string {
	return strings.TrimSpace(providerRefs.ReplaceAllString(s, ""))
}

// composeLocation joins the non-empty parts with ", ", dropping
// case-insensitive duplicates while keeping first-seen order.
func composeLocation(parts ...string) string {
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// formatPrice renders a price range as "$min - $max", or "$min" when the
// range collapses. Zero or negative minimums mean no price is known.
func formatPrice(min, max float64) string {
	if min <= 0 {
		return ""
	}
	lo := strconv.FormatFloat(min, 'f', -1, 64)
	if max > min {
		return "$" + lo + " - $" + strconv.FormatFloat(max, 'f', -1, 64)
	}
	return "$" + lo
}

// coords validates a lon/lat pair; invalid or out-of-range values yield nil
// so an event is never left with half a coordinate.
func coords(lon, lat float64) *event.Coordinates {
	c := event.Coordinates{lon, lat}
	if !c.Valid() {
		return nil
	}
	if lon == 0 && lat == 0 {
		// Null Island is a missing value in every provider we consume.
		return nil
	}
	return &c
}

// parseFloat is a tolerant string-to-float conversion for providers that
// ship numbers as strings.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// ---------------------------------------------------------------------------
// Image placeholders
// ---------------------------------------------------------------------------

const defaultImage = "https://placehold.co/600x400?text=Event"

var categoryImages = map[string]string{
	event.CategoryMusic:  "https://placehold.co/600x400?text=Music",
	event.CategorySports: "https://placehold.co/600x400?text=Sports",
	event.CategoryArts:   "https://placehold.co/600x400?text=Arts",
	event.CategoryFamily: "https://placehold.co/600x400?text=Family",
	event.CategoryFood:   "https://placehold.co/600x400?text=Food",
	event.CategoryParty:  "https://placehold.co/600x400?text=Party",
}

// placeholderImage returns the category-keyed placeholder, else the generic
// default.
func placeholderImage(category string) string {
	if img, ok := categoryImages[category]; ok {
		return img
	}
	return defaultImage
}
