package party

import (
	"testing"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return New(cfg.Classifier)
}

func TestClassify(t *testing.T) {
	clf := defaultClassifier(t)

	cases := []struct {
		name    string
		signals Signals
		want    bool
		wantSub string
	}{
		{
			name: "dj night at a club",
			signals: Signals{
				Title:     "Saturday Night DJ Party at The Grand Club",
				Venue:     "The Grand Club",
				StartHour: 22,
			},
			want:    true,
			wantSub: event.SubcategoryClub,
		},
		{
			name: "daytime community brunch scores low",
			signals: Signals{
				Title:     "Sunday Pool Brunch",
				StartHour: 13,
			},
			want: false,
		},
		{
			name: "popularity alone can cross the threshold",
			signals: Signals{
				Title:      "Summer Gathering",
				StartHour:  10,
				Rank:       75,
				LocalRank:  60,
				Attendance: 600,
			},
			want:    true,
			wantSub: event.SubcategorySocial,
		},
		{
			name: "strong label plus evening start",
			signals: Signals{
				Title:     "Warehouse Sessions",
				Labels:    []string{"nightlife"},
				StartHour: 23,
			},
			want:    true,
			wantSub: event.SubcategoryGeneral,
		},
		{
			name: "weak signals stay below threshold",
			signals: Signals{
				Title:     "Morning Concert in the Park",
				StartHour: 9,
			},
			want: false,
		},
		{
			name:    "missing start time contributes nothing",
			signals: Signals{Title: "DJ Rave Dance Party", StartHour: -1},
			// strong keyword channel alone: 4 < 5
			want: false,
		},
		{
			name: "early morning counts as night",
			signals: Signals{
				Title:     "Afterhours Disco",
				StartHour: 2,
			},
			// strong keyword (disco) 4 + night 3
			want:    true,
			wantSub: event.SubcategoryClub,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := clf.Classify(tc.signals)
			if got.IsParty != tc.want {
				t.Fatalf("IsParty = %v (score %.1f), want %v", got.IsParty, got.Score, tc.want)
			}
			if tc.want && got.Subcategory != tc.wantSub {
				t.Errorf("Subcategory = %q, want %q", got.Subcategory, tc.wantSub)
			}
			if !tc.want && got.Subcategory != "" {
				t.Errorf("Subcategory = %q, want empty for non-party", got.Subcategory)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	clf := defaultClassifier(t)
	s := Signals{
		Title:       "Rooftop DJ Social",
		Description: "Dance till late",
		Venue:       "Sky Lounge",
		Labels:      []string{"nightlife", "live-music"},
		StartHour:   20,
		Rank:        55,
	}
	first := clf.Classify(s)
	for i := 0; i < 10; i++ {
		if got := clf.Classify(s); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}

func TestClassify_ThresholdConfigurable(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)

	s := Signals{Title: "DJ Rave Dance Party", StartHour: -1} // keyword channel scores 4

	strict := New(cfg.Classifier)
	if strict.Classify(s).IsParty {
		t.Fatal("score 4 should not pass threshold 5")
	}

	cfg.Classifier.Threshold = 4
	lenient := New(cfg.Classifier)
	if !lenient.Classify(s).IsParty {
		t.Fatal("score 4 should pass threshold 4")
	}
}

func TestHourBonus(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{22, 3}, {19, 3}, {0, 3}, {4, 3},
		{16, 1.5}, {18, 1.5},
		{12, 0}, {5, 0}, {15, 0},
		{-1, 0}, {24, 0},
	}
	for _, tc := range cases {
		if got := hourBonus(tc.hour); got != tc.want {
			t.Errorf("hourBonus(%d) = %v, want %v", tc.hour, got, tc.want)
		}
	}
}

func TestSubcategory_Priority(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"dj set on the rooftop", event.SubcategoryClub}, // club outranks day-party
		{"afternoon pool party vibes", event.SubcategoryDayParty},
		{"rooftop brunch", event.SubcategoryDayParty},
		{"open air festival", event.SubcategoryMusic},
		{"networking mixer downtown", event.SubcategorySocial},
		{"a night to remember", event.SubcategoryGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			if got := Subcategory(tc.text); got != tc.want {
				t.Errorf("Subcategory(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
