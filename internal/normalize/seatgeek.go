package normalize

import (
	"strconv"

	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// SeatGeekRaw is one event from the SeatGeek /2/events API.
type SeatGeekRaw struct {
	EventID       int64         `json:"id"`
	EventTitle    string        `json:"title"`
	EventType     string        `json:"type"`
	DatetimeLocal string        `json:"datetime_local"`
	EventURL      string        `json:"url"`
	EventDesc     string        `json:"description"`
	Venue         sgVenue       `json:"venue"`
	Performers    []sgPerformer `json:"performers"`
	Stats         sgStats       `json:"stats"`
}

type sgVenue struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Location struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
}

type sgPerformer struct {
	Name   string `json:"name"`
	Image  string `json:"image"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type sgStats struct {
	LowestPrice  float64 `json:"lowest_price"`
	HighestPrice float64 `json:"highest_price"`
}

func (r *SeatGeekRaw) Source() string      { return event.SourceSeatGeek }
func (r *SeatGeekRaw) ID() string          { return strconv.FormatInt(r.EventID, 10) }
func (r *SeatGeekRaw) Title() string       { return r.EventTitle }
func (r *SeatGeekRaw) URL() string         { return r.EventURL }
func (r *SeatGeekRaw) Description() string { return stripProviderRefs(r.EventDesc) }

func (r *SeatGeekRaw) ExtractDate() (string, string, string) {
	date, clock := splitDateTime(r.DatetimeLocal)
	return date, clock, r.DatetimeLocal
}

func (r *SeatGeekRaw) ExtractLocation() (string, string) {
	v := r.Venue
	return composeLocation(v.Name, v.City, v.State, v.Country), v.Name
}

func (r *SeatGeekRaw) ExtractCoordinates() *event.Coordinates {
	return coords(r.Venue.Location.Lon, r.Venue.Location.Lat)
}

// ExtractImage falls back from performer imagery to the category placeholder;
// SeatGeek events carry no image of their own.
func (r *SeatGeekRaw) ExtractImage() string {
	for _, p := range r.Performers {
		if p.Image != "" {
			return p.Image
		}
	}
	return placeholderImage(r.Category())
}

func (r *SeatGeekRaw) ExtractPrice() string {
	return formatPrice(r.Stats.LowestPrice, r.Stats.HighestPrice)
}

func (r *SeatGeekRaw) Category() string {
	return mapSeatGeekType(r.EventType)
}

func (r *SeatGeekRaw) PartySignals() party.Signals {
	_, clock, _ := r.ExtractDate()
	var labels []string
	for _, p := range r.Performers {
		for _, g := range p.Genres {
			if g.Name != "" {
				labels = append(labels, g.Name)
			}
		}
	}
	return party.Signals{
		Title:       r.Title(),
		Description: r.Description(),
		Venue:       r.Venue.Name,
		Labels:      labels,
		StartHour:   startHour(clock),
	}
}
