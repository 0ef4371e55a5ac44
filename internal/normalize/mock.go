package normalize

import (
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/party"
)

// MockRaw is the flat raw record the mock provider and tests use. Unlike
// the real providers it has no awkward nesting, which makes fixtures short.
type MockRaw struct {
	MockID     string   `json:"id"`
	MockTitle  string   `json:"title"`
	MockDesc   string   `json:"description"`
	Start      string   `json:"start"` // any supported datetime layout
	VenueName  string   `json:"venue"`
	City       string   `json:"city"`
	Tags       []string `json:"tags"`
	Link       string   `json:"url"`
	ImageURL   string   `json:"image"`
	PriceMin   float64  `json:"price_min"`
	PriceMax   float64  `json:"price_max"`
	NativeCat  string   `json:"category"`
	Lon        *float64 `json:"lon"`
	Lat        *float64 `json:"lat"`
	ForcePanic bool     `json:"-"` // trips the normalizer's recovery path in tests
}

func (r *MockRaw) Source() string      { return event.SourceMock }
func (r *MockRaw) ID() string          { return r.MockID }
func (r *MockRaw) Title() string       { return r.MockTitle }
func (r *MockRaw) URL() string         { return r.Link }
func (r *MockRaw) Description() string { return stripProviderRefs(r.MockDesc) }

func (r *MockRaw) ExtractDate() (string, string, string) {
	date, clock := splitDateTime(r.Start)
	return date, clock, r.Start
}

func (r *MockRaw) ExtractLocation() (string, string) {
	return composeLocation(r.VenueName, r.City), r.VenueName
}

func (r *MockRaw) ExtractCoordinates() *event.Coordinates {
	if r.ForcePanic {
		panic("mock: forced extraction failure")
	}
	if r.Lon == nil || r.Lat == nil {
		return nil
	}
	return coords(*r.Lon, *r.Lat)
}

func (r *MockRaw) ExtractImage() string {
	if r.ImageURL != "" {
		return r.ImageURL
	}
	return placeholderImage(r.Category())
}

func (r *MockRaw) ExtractPrice() string {
	return formatPrice(r.PriceMin, r.PriceMax)
}

func (r *MockRaw) Category() string {
	if event.ValidCategory(r.NativeCat) {
		return r.NativeCat
	}
	return event.CategoryOther
}

func (r *MockRaw) PartySignals() party.Signals {
	_, clock, _ := r.ExtractDate()
	return party.Signals{
		Title:       r.Title(),
		Description: r.Description(),
		Venue:       r.VenueName,
		Labels:      r.Tags,
		StartHour:   startHour(clock),
	}
}
