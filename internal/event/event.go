package event

import "math"

// Source identifiers for the providers an Event can originate from.
const (
	SourceTicketmaster = "ticketmaster"
	SourcePredictHQ    = "predicthq"
	SourceSeatGeek     = "seatgeek"
	SourceRapidAPI     = "rapidapi"
	SourceMock         = "mock"
)

// Canonical categories. Exactly one is assigned per event; the party
// classifier may override any of them with CategoryParty.
const (
	CategoryMusic  = "music"
	CategorySports = "sports"
	CategoryArts   = "arts"
	CategoryFamily = "family"
	CategoryFood   = "food"
	CategoryParty  = "party"
	CategoryOther  = "other"
	// CategoryError tags events synthesized from a failed normalization.
	// They never survive the post-processing pipeline.
	CategoryError = "error"
)

// Party subcategories, assigned only when Category == CategoryParty.
const (
	SubcategoryClub     = "club"
	SubcategoryDayParty = "day-party"
	SubcategorySocial   = "social"
	SubcategoryMusic    = "music"
	SubcategoryGeneral  = "general"
)

// Coordinates is a [longitude, latitude] pair. Both values are always
// present; an event without coordinates carries a nil *Coordinates.
type Coordinates [2]float64

// Lon returns the longitude component.
func (c Coordinates) Lon() float64 { return c[0] }

// Lat returns the latitude component.
func (c Coordinates) Lat() float64 { return c[1] }

// Valid reports whether both components are finite and within range.
func (c Coordinates) Valid() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return c[0] >= -180 && c[0] <= 180 && c[1] >= -90 && c[1] <= 90
}

// Event is the canonical output model, independent of originating provider.
type Event struct {
	ID               string       `json:"id"`
	Source           string       `json:"source"`
	Title            string       `json:"title"`
	Description      string       `json:"description,omitempty"`
	Date             string       `json:"date"` // YYYY-MM-DD
	Time             string       `json:"time"` // HH:MM, 24h, "00:00" when unknown
	RawDate          string       `json:"rawDate,omitempty"`
	Location         string       `json:"location,omitempty"`
	Venue            string       `json:"venue,omitempty"`
	Category         string       `json:"category"`
	PartySubcategory string       `json:"partySubcategory,omitempty"`
	Image            string       `json:"image"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	URL              string       `json:"url,omitempty"`
	Price            string       `json:"price,omitempty"`
}

// Complete reports whether the event carries the fields every pipeline
// output must have.
func (e *Event) Complete() bool {
	return e.ID != "" && e.Title != "" && e.Date != ""
}

// DedupKey is the composite key used for cross-provider deduplication.
func (e *Event) DedupKey() string {
	return e.Title + "-" + e.Date
}

// ValidCategory reports whether s belongs to the closed canonical set.
func ValidCategory(s string) bool {
	switch s {
	case CategoryMusic, CategorySports, CategoryArts, CategoryFamily,
		CategoryFood, CategoryParty, CategoryOther:
		return true
	}
	return false
}
