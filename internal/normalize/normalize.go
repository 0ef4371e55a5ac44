package normalize

import (
	"github.com/google/uuid"

	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/metrics"
	"github.com/eventmux/eventmux/internal/party"
)

// Normalize assembles one canonical Event from a raw provider record: field
// extraction, category mapping, then the party classifier, which may
// override the mapped category.
//
// A panic anywhere inside yields a tagged error event instead of
// propagating, so one malformed record never aborts a provider's batch.
// The pipeline's completeness filter drops error events later.
func Normalize(raw RawEventSource, clf *party.Classifier) (ev event.Event) {
	source := raw.Source()
	defer func() {
		if r := recover(); r != nil {
			metrics.ErrorEvents.WithLabelValues(source).Inc()
			ev = errorEvent(source)
		}
	}()

	date, clock, rawDate := raw.ExtractDate()
	if clock == "" {
		clock = "00:00"
	}
	location, venue := raw.ExtractLocation()

	ev = event.Event{
		Source:      source,
		Title:       raw.Title(),
		Description: raw.Description(),
		Date:        date,
		Time:        clock,
		RawDate:     rawDate,
		Location:    location,
		Venue:       venue,
		Category:    raw.Category(),
		Image:       raw.ExtractImage(),
		Coordinates: raw.ExtractCoordinates(),
		URL:         raw.URL(),
		Price:       raw.ExtractPrice(),
	}
	if raw.ID() != "" {
		ev.ID = source + "-" + raw.ID()
	}

	if res := clf.Classify(raw.PartySignals()); res.IsParty {
		ev.Category = event.CategoryParty
		ev.PartySubcategory = res.Subcategory
		metrics.PartyOverrides.WithLabelValues(source).Inc()
	}

	metrics.EventsNormalized.WithLabelValues(source).Inc()
	return ev
}

// Batch normalizes a provider's whole result page in order.
func Batch(raws []RawEventSource, clf *party.Classifier) []event.Event {
	out := make([]event.Event, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, clf))
	}
	return out
}

// errorEvent is the minimal stand-in for a record that blew up during
// normalization. It carries no date, so the completeness filter removes it
// before the response is built.
func errorEvent(source string) event.Event {
	return event.Event{
		ID:       source + "-error-" + uuid.New().String(),
		Source:   source,
		Category: event.CategoryError,
		Image:    defaultImage,
	}
}
