// Package party implements the weighted scoring engine that decides whether
// an event is better described as a party than whatever category its
// provider's taxonomy mapped to, and if so which party subcategory fits.
package party

import (
	"strings"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
)

// Signals is the provider-independent input to the classifier. Missing
// values use the zero value (StartHour -1 when unknown); they contribute
// nothing to the score, never a penalty.
type Signals struct {
	Title       string
	Description string
	Venue       string
	Labels      []string
	StartHour   int // 0-23, or -1 when the provider gave no start time
	Rank        int // provider popularity rank, 0-100
	LocalRank   int
	Attendance  int // forecast attendance
}

// Result is the classifier's verdict for one event.
type Result struct {
	IsParty     bool
	Score       float64
	Subcategory string // set only when IsParty
}

type weighted struct {
	weight float64
	terms  []string
}

type tier struct {
	strong weighted
	medium weighted
	weak   weighted
}

// score adds the tier's weight once per matched tier. A single strong hit
// is worth as much as ten; counting every term would let long descriptions
// dominate the venue and time channels.
func (t tier) score(text string) float64 {
	var s float64
	if matchAny(text, t.strong.terms) {
		s += t.strong.weight
	}
	if matchAny(text, t.medium.terms) {
		s += t.medium.weight
	}
	if matchAny(text, t.weak.terms) {
		s += t.weak.weight
	}
	return s
}

func matchAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Classifier scores events against configured vocabularies. It is immutable
// after construction; hot-reload swaps in a new instance.
type Classifier struct {
	threshold float64
	keywords  tier
	venues    tier
	labels    tier
}

// New builds a Classifier from config. Terms are lowercased once here so
// Classify never allocates for the vocabulary side.
func New(cfg config.ClassifierConf) *Classifier {
	return &Classifier{
		threshold: cfg.Threshold,
		keywords:  newTier(cfg.Keywords),
		venues:    newTier(cfg.Venues),
		labels:    newTier(cfg.Labels),
	}
}

func newTier(tc config.TierConf) tier {
	return tier{
		strong: newWeighted(tc.Strong),
		medium: newWeighted(tc.Medium),
		weak:   newWeighted(tc.Weak),
	}
}

func newWeighted(wt config.WeightedTerms) weighted {
	terms := make([]string, 0, len(wt.Terms))
	for _, t := range wt.Terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	return weighted{weight: wt.Weight, terms: terms}
}

// Classify is a pure function of the signals: no I/O, deterministic, and
// independent of any other event.
func (c *Classifier) Classify(s Signals) Result {
	text := strings.ToLower(s.Title + " " + s.Description)

	score := c.keywords.score(text)
	if s.Venue != "" {
		score += c.venues.score(strings.ToLower(s.Venue))
	}
	for _, label := range s.Labels {
		if matchAny(strings.ToLower(label), c.labels.strong.terms) {
			score += c.labels.strong.weight
			continue
		}
		if matchAny(strings.ToLower(label), c.labels.medium.terms) {
			score += c.labels.medium.weight
			continue
		}
		if matchAny(strings.ToLower(label), c.labels.weak.terms) {
			score += c.labels.weak.weight
		}
	}
	score += hourBonus(s.StartHour)
	score += popularityBonus(s)

	res := Result{Score: score}
	if score >= c.threshold {
		res.IsParty = true
		res.Subcategory = Subcategory(text)
	}
	return res
}

// hourBonus rewards evening and night starts. Hours wrap past midnight:
// 19:00 through 04:59 count as night.
func hourBonus(hour int) float64 {
	switch {
	case hour < 0 || hour > 23:
		return 0
	case hour >= 19 || hour <= 4:
		return 3
	case hour >= 16:
		return 1.5
	default:
		return 0
	}
}

func popularityBonus(s Signals) float64 {
	var b float64
	switch {
	case s.Rank >= 70:
		b += 3
	case s.Rank >= 50:
		b += 2
	case s.Rank >= 30:
		b += 1
	}
	switch {
	case s.LocalRank >= 70:
		b += 2
	case s.LocalRank >= 50:
		b += 1
	}
	switch {
	case s.Attendance >= 500:
		b += 2
	case s.Attendance >= 200:
		b += 1
	}
	return b
}

// Subcategory picks the best-fitting party subcategory for already-lowercased
// text. Patterns are checked in priority order: a DJ set at a rooftop bar is
// a club night, not a day party.
func Subcategory(text string) string {
	switch {
	case matchAny(text, clubTerms):
		return event.SubcategoryClub
	case matchAny(text, dayTerms):
		return event.SubcategoryDayParty
	case matchAny(text, musicTerms):
		return event.SubcategoryMusic
	case matchAny(text, socialTerms):
		return event.SubcategorySocial
	default:
		return event.SubcategoryGeneral
	}
}

var (
	clubTerms   = []string{"club", "nightclub", "dj", "dance", "disco"}
	dayTerms    = []string{"day", "afternoon", "pool", "rooftop", "brunch"}
	musicTerms  = []string{"festival", "concert", "live", "performance"}
	socialTerms = []string{"social", "mixer", "networking", "gathering"}
)
