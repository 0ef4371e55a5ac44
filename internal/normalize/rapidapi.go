package normalize

import (
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// RapidAPIRaw is one event from the RapidAPI real-time events search API.
type RapidAPIRaw struct {
	EventID     string        `json:"event_id"`
	Name        string        `json:"name"`
	Desc        string        `json:"description"`
	StartTime   string        `json:"start_time"`
	Link        string        `json:"link"`
	Thumbnail   string        `json:"thumbnail"`
	Tags        []string      `json:"tags"`
	Venue       raVenue       `json:"venue"`
	TicketLinks []raTicketRef `json:"ticket_links"`
	InfoLinks   []raTicketRef `json:"info_links"`
}

type raVenue struct {
	Name        string  `json:"name"`
	FullAddress string  `json:"full_address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type raTicketRef struct {
	Source string `json:"source"`
	Link   string `json:"link"`
}

func (r *RapidAPIRaw) Source() string      { return event.SourceRapidAPI }
func (r *RapidAPIRaw) ID() string          { return r.EventID }
func (r *RapidAPIRaw) Title() string       { return r.Name }
func (r *RapidAPIRaw) Description() string { return stripProviderRefs(r.Desc) }

// URL prefers a direct ticket link over the event page.
func (r *RapidAPIRaw) URL() string {
	for _, t := range r.TicketLinks {
		if t.Link != "" {
			return t.Link
		}
	}
	return r.Link
}

func (r *RapidAPIRaw) ExtractDate() (string, string, string) {
	date, clock := splitDateTime(r.StartTime)
	return date, clock, r.StartTime
}

func (r *RapidAPIRaw) ExtractLocation() (string, string) {
	v := r.Venue
	return composeLocation(v.Name, v.FullAddress, v.City, v.State, v.Country), v.Name
}

func (r *RapidAPIRaw) ExtractCoordinates() *event.Coordinates {
	return coords(r.Venue.Longitude, r.Venue.Latitude)
}

func (r *RapidAPIRaw) ExtractImage() string {
	if r.Thumbnail != "" {
		return r.Thumbnail
	}
	return placeholderImage(r.Category())
}

func (r *RapidAPIRaw) ExtractPrice() string { return "" }

func (r *RapidAPIRaw) Category() string {
	return mapRapidAPITags(r.Tags)
}

func (r *RapidAPIRaw) PartySignals() party.Signals {
	_, clock, _ := r.ExtractDate()
	return party.Signals{
		Title:       r.Title(),
		Description: r.Description(),
		Venue:       r.Venue.Name,
		Labels:      r.Tags,
		StartHour:   startHour(clock),
	}
}
