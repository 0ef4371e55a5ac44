package normalize

import (
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// PredictHQRaw is one event from the PredictHQ /v1/events API.
type PredictHQRaw struct {
	EventID       string      `json:"id"`
	EventTitle    string      `json:"title"`
	EventDesc     string      `json:"description"`
	EventCategory string      `json:"category"`
	Labels        []string    `json:"labels"`
	Start         string      `json:"start"`
	Location      []float64   `json:"location"` // [lon, lat]
	Geo           phqGeo      `json:"geo"`
	Entities      []phqEntity `json:"entities"`
	Country       string      `json:"country"`
	State         string      `json:"state"`
	Rank          int         `json:"rank"`
	LocalRank     int         `json:"local_rank"`
	PHQAttendance int         `json:"phq_attendance"`
}

type phqGeo struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
}

type phqEntity struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	FormattedAddress string `json:"formatted_address"`
}

func (r *PredictHQRaw) Source() string      { return event.SourcePredictHQ }
func (r *PredictHQRaw) ID() string          { return r.EventID }
func (r *PredictHQRaw) Title() string       { return r.EventTitle }
func (r *PredictHQRaw) URL() string         { return "" } // PredictHQ carries no public ticket link
func (r *PredictHQRaw) Description() string { return stripProviderRefs(r.EventDesc) }

func (r *PredictHQRaw) ExtractDate() (string, string, string) {
	date, clock := splitDateTime(r.Start)
	return date, clock, r.Start
}

func (r *PredictHQRaw) venueEntity() *phqEntity {
	for i := range r.Entities {
		if r.Entities[i].Type == "venue" {
			return &r.Entities[i]
		}
	}
	return nil
}

func (r *PredictHQRaw) ExtractLocation() (string, string) {
	venue := ""
	address := ""
	if e := r.venueEntity(); e != nil {
		venue = e.Name
		address = e.FormattedAddress
	}
	return composeLocation(venue, address, r.State, r.Country), venue
}

// ExtractCoordinates prefers the top-level location array, then the GeoJSON
// geometry.
func (r *PredictHQRaw) ExtractCoordinates() *event.Coordinates {
	if len(r.Location) == 2 {
		if c := coords(r.Location[0], r.Location[1]); c != nil {
			return c
		}
	}
	if g := r.Geo.Geometry.Coordinates; len(g) >= 2 {
		return coords(g[0], g[1])
	}
	return nil
}

// PredictHQ has no imagery; always the category placeholder.
func (r *PredictHQRaw) ExtractImage() string {
	return placeholderImage(r.Category())
}

func (r *PredictHQRaw) ExtractPrice() string { return "" }

func (r *PredictHQRaw) Category() string {
	return mapPredictHQCategory(r.EventCategory)
}

func (r *PredictHQRaw) PartySignals() party.Signals {
	_, venue := r.ExtractLocation()
	_, clock, _ := r.ExtractDate()
	return party.Signals{
		Title:       r.Title(),
		Description: r.Description(),
		Venue:       venue,
		Labels:      r.Labels,
		StartHour:   startHour(clock),
		Rank:        r.Rank,
		LocalRank:   r.LocalRank,
		Attendance:  r.PHQAttendance,
	}
}
