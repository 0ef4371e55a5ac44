package search

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Limit: 20, Page: 1}},
		{"radius clamped up", Params{RadiusKm: 1}, Params{RadiusKm: 5, Limit: 20, Page: 1}},
		{"radius clamped down", Params{RadiusKm: 500}, Params{RadiusKm: 100, Limit: 20, Page: 1}},
		{"zero radius untouched", Params{RadiusKm: 0}, Params{Limit: 20, Page: 1}},
		{"limit capped", Params{Limit: 1000}, Params{Limit: 100, Page: 1}},
		{"valid values pass through", Params{RadiusKm: 30, Limit: 50, Page: 3}, Params{RadiusKm: 30, Limit: 50, Page: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			if tc.in.RadiusKm != tc.want.RadiusKm || tc.in.Limit != tc.want.Limit || tc.in.Page != tc.want.Page {
				t.Errorf("got radius=%v limit=%d page=%d, want radius=%v limit=%d page=%d",
					tc.in.RadiusKm, tc.in.Limit, tc.in.Page,
					tc.want.RadiusKm, tc.want.Limit, tc.want.Page)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	lat, lon := 40.7, -74.0
	p := Params{Latitude: &lat, Longitude: &lon}
	if gotLat, gotLon, ok := p.Center(); !ok || gotLat != lat || gotLon != lon {
		t.Errorf("Center() = %v, %v, %v", gotLat, gotLon, ok)
	}
	half := Params{Latitude: &lat}
	if _, _, ok := half.Center(); ok {
		t.Error("Center() with only latitude should not be ok")
	}
}

func TestCacheKey_StableUnderSliceOrder(t *testing.T) {
	a := Params{Keyword: "Jazz", Categories: []string{"music", "party"}, ExcludeIDs: []string{"x", "y"}}
	b := Params{Keyword: "jazz", Categories: []string{"party", "music"}, ExcludeIDs: []string{"y", "x"}}
	a.Normalize()
	b.Normalize()
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("keys differ:\n%s\n%s", a.CacheKey(), b.CacheKey())
	}
}

func TestCacheKey_DistinguishesQueries(t *testing.T) {
	a := Params{Keyword: "jazz"}
	b := Params{Keyword: "jazz", Page: 2}
	a.Normalize()
	b.Normalize()
	if a.CacheKey() == b.CacheKey() {
		t.Error("different pages share a cache key")
	}
}
