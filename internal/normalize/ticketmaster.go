package normalize

import (
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// TicketmasterRaw is one event from the Discovery v2 API.
type TicketmasterRaw struct {
	EventID     string    `json:"id"`
	Name        string    `json:"name"`
	EventURL    string    `json:"url"`
	Info        string    `json:"info"`
	PleaseNote  string    `json:"pleaseNote"`
	Images      []tmImage `json:"images"`
	Dates       tmDates   `json:"dates"`
	PriceRanges []tmPrice `json:"priceRanges"`

	Classifications []tmClassification `json:"classifications"`
	Embedded        tmEmbedded         `json:"_embedded"`
}

type tmImage struct {
	URL   string `json:"url"`
	Width int    `json:"width"`
}

type tmDates struct {
	Start struct {
		LocalDate string `json:"localDate"`
		LocalTime string `json:"localTime"`
		DateTime  string `json:"dateTime"`
	} `json:"start"`
}

type tmPrice struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type tmClassification struct {
	Segment tmNamed `json:"segment"`
	Genre   tmNamed `json:"genre"`
}

type tmNamed struct {
	Name string `json:"name"`
}

type tmEmbedded struct {
	Venues      []tmVenue      `json:"venues"`
	Attractions []tmAttraction `json:"attractions"`
}

type tmVenue struct {
	Name    string  `json:"name"`
	City    tmNamed `json:"city"`
	State   struct {
		Name      string `json:"name"`
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Country struct {
		Name        string `json:"name"`
		CountryCode string `json:"countryCode"`
	} `json:"country"`
	Location struct {
		Longitude string `json:"longitude"`
		Latitude  string `json:"latitude"`
	} `json:"location"`
	Images []tmImage `json:"images"`
}

type tmAttraction struct {
	Name   string    `json:"name"`
	Images []tmImage `json:"images"`
}

func (r *TicketmasterRaw) Source() string { return event.SourceTicketmaster }
func (r *TicketmasterRaw) ID() string     { return r.EventID }
func (r *TicketmasterRaw) Title() string  { return r.Name }
func (r *TicketmasterRaw) URL() string    { return r.EventURL }

func (r *TicketmasterRaw) Description() string {
	if r.Info != "" {
		return stripProviderRefs(r.Info)
	}
	return stripProviderRefs(r.PleaseNote)
}

func (r *TicketmasterRaw) ExtractDate() (string, string, string) {
	start := r.Dates.Start
	raw := start.DateTime
	if raw == "" {
		raw = start.LocalDate
		if start.LocalTime != "" {
			raw += "T" + start.LocalTime
		}
	}
	// Prefer the local fields; DateTime is UTC and shifts the local day.
	if start.LocalDate != "" {
		clock := "00:00"
		if len(start.LocalTime) >= 5 {
			clock = start.LocalTime[:5]
		}
		return start.LocalDate, clock, raw
	}
	date, clock := splitDateTime(raw)
	return date, clock, raw
}

func (r *TicketmasterRaw) venue() *tmVenue {
	if len(r.Embedded.Venues) == 0 {
		return nil
	}
	return &r.Embedded.Venues[0]
}

func (r *TicketmasterRaw) ExtractLocation() (string, string) {
	v := r.venue()
	if v == nil {
		return "", ""
	}
	state := v.State.StateCode
	if state == "" {
		state = v.State.Name
	}
	country := v.Country.CountryCode
	if country == "" {
		country = v.Country.Name
	}
	return composeLocation(v.Name, v.City.Name, state, country), v.Name
}

func (r *TicketmasterRaw) ExtractCoordinates() *event.Coordinates {
	v := r.venue()
	if v == nil {
		return nil
	}
	lon, okLon := parseFloat(v.Location.Longitude)
	lat, okLat := parseFloat(v.Location.Latitude)
	if !okLon || !okLat {
		return nil
	}
	return coords(lon, lat)
}

// ExtractImage fallback order: event images, attraction images, venue
// images, then the category placeholder.
func (r *TicketmasterRaw) ExtractImage() string {
	if img := widestImage(r.Images); img != "" {
		return img
	}
	for _, a := range r.Embedded.Attractions {
		if img := widestImage(a.Images); img != "" {
			return img
		}
	}
	if v := r.venue(); v != nil {
		if img := widestImage(v.Images); img != "" {
			return img
		}
	}
	return placeholderImage(r.Category())
}

func widestImage(images []tmImage) string {
	best := ""
	bestW := -1
	for _, img := range images {
		if img.URL != "" && img.Width > bestW {
			best = img.URL
			bestW = img.Width
		}
	}
	return best
}

func (r *TicketmasterRaw) ExtractPrice() string {
	if len(r.PriceRanges) == 0 {
		return ""
	}
	return formatPrice(r.PriceRanges[0].Min, r.PriceRanges[0].Max)
}

func (r *TicketmasterRaw) Category() string {
	if len(r.Classifications) == 0 {
		return event.CategoryOther
	}
	return mapTicketmasterSegment(r.Classifications[0].Segment.Name)
}

func (r *TicketmasterRaw) PartySignals() party.Signals {
	_, venue := r.ExtractLocation()
	_, clock, _ := r.ExtractDate()
	var labels []string
	for _, c := range r.Classifications {
		if c.Genre.Name != "" {
			labels = append(labels, c.Genre.Name)
		}
	}
	return party.Signals{
		Title:       r.Title(),
		Description: r.Description(),
		Venue:       venue,
		Labels:      labels,
		StartHour:   startHour(clock),
	}
}
