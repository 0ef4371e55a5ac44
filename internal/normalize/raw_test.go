package normalize

import (
	"testing"

	"github.com/eventmux/eventmux/internal/event"
)

func TestSplitDateTime(t *testing.T) {
	cases := []struct {
		in        string
		wantDate  string
		wantClock string
	}{
		{"2025-06-01T19:00:00Z", "2025-06-01", "19:00"},
		{"2025-06-01T19:00:00", "2025-06-01", "19:00"},
		{"2025-06-01 19:00:00", "2025-06-01", "19:00"},
		{"2025-06-01", "2025-06-01", "00:00"},
		{"2025-06-01T19:00:00-05:00", "2025-06-01", "19:00"},
		{"2025-06-01junk", "2025-06-01", "00:00"},
		{"TBD", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			date, clock := splitDateTime(tc.in)
			if date != tc.wantDate || clock != tc.wantClock {
				t.Errorf("splitDateTime(%q) = %q, %q; want %q, %q",
					tc.in, date, clock, tc.wantDate, tc.wantClock)
			}
		})
	}
}

func TestComposeLocation(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"basic", []string{"The Venue", "Austin", "TX", "US"}, "The Venue, Austin, TX, US"},
		{"dedup case-insensitive", []string{"Austin", "austin", "TX"}, "Austin, TX"},
		{"skips empties", []string{"", "Austin", " ", "TX"}, "Austin, TX"},
		{"all empty", []string{"", ""}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := composeLocation(tc.parts...); got != tc.want {
				t.Errorf("composeLocation(%v) = %q, want %q", tc.parts, got, tc.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		min, max float64
		want     string
	}{
		{25, 60, "$25 - $60"},
		{25, 25, "$25"},
		{25, 0, "$25"},
		{19.5, 49.5, "$19.5 - $49.5"},
		{0, 60, ""},
		{-1, 60, ""},
	}
	for _, tc := range cases {
		if got := formatPrice(tc.min, tc.max); got != tc.want {
			t.Errorf("formatPrice(%v, %v) = %q, want %q", tc.min, tc.max, got, tc.want)
		}
	}
}

func TestCoords(t *testing.T) {
	if c := coords(-73.98, 40.75); c == nil || !c.Valid() {
		t.Error("valid pair rejected")
	}
	if c := coords(0, 0); c != nil {
		t.Error("null island accepted")
	}
	if c := coords(-200, 40); c != nil {
		t.Error("out-of-range longitude accepted")
	}
	if c := coords(-73.98, 95); c != nil {
		t.Error("out-of-range latitude accepted")
	}
}

func TestStartHour(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"19:00", 19}, {"00:30", 0}, {"23:59", 23},
		{"", -1}, {"x", -1}, {"99:00", -1},
	}
	for _, tc := range cases {
		if got := startHour(tc.clock); got != tc.want {
			t.Errorf("startHour(%q) = %d, want %d", tc.clock, got, tc.want)
		}
	}
}

func TestCategoryMappers(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"tm music", mapTicketmasterSegment("Music"), event.CategoryMusic},
		{"tm arts", mapTicketmasterSegment("Arts & Theatre"), event.CategoryArts},
		{"tm unknown", mapTicketmasterSegment("Quidditch"), event.CategoryOther},
		{"phq food", mapPredictHQCategory("food-drink"), event.CategoryFood},
		{"phq community", mapPredictHQCategory("community"), event.CategoryFamily},
		{"phq unknown", mapPredictHQCategory("severe-weather"), event.CategoryOther},
		{"sg concert", mapSeatGeekType("concert"), event.CategoryMusic},
		{"sg league suffix", mapSeatGeekType("mlb_spring_training"), event.CategorySports},
		{"sg unknown", mapSeatGeekType("mystery"), event.CategoryOther},
		{"ra tags", mapRapidAPITags([]string{"outdoors", "Live Music"}), event.CategoryMusic},
		{"ra no hit", mapRapidAPITags([]string{"misc"}), event.CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %q, want %q", tc.got, tc.want)
			}
		})
	}
}
