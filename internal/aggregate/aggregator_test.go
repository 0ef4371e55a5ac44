package aggregate

import (
	"context"
	"errors"
	"testing"

	"github.com/eventmux/eventmux/internal/config"
	"github.com/eventmux/eventmux/internal/event"
	"github.com/eventmux/eventmux/internal/normalize"
	"github.com/eventmux/eventmux/internal/provider"
	"github.com/eventmux/eventmux/internal/search"
)

type fakeProvider struct {
	name  string
	raws  []normalize.RawEventSource
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(_ context.Context, _ *search.Params) ([]normalize.RawEventSource, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raws, nil
}

func raw(id, title, start string) normalize.RawEventSource {
	return &normalize.MockRaw{MockID: id, MockTitle: title, Start: start}
}

func testConfig() *config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return &cfg
}

func searchParams() *search.Params {
	p := &search.Params{}
	p.Normalize()
	return p
}

func TestSearch_MergesProviders(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
			raw("a1", "Jazz Night", "2025-06-01T20:00:00"),
		}},
		&fakeProvider{name: "beta", raws: []normalize.RawEventSource{
			raw("b1", "Food Fair", "2025-06-02"),
			raw("b2", "Art Walk", "2025-06-03"),
		}},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if len(resp.Events) != 3 {
		t.Fatalf("len(Events) = %d, want 3", len(resp.Events))
	}
	if resp.Warning != "" {
		t.Errorf("Warning = %q, want none", resp.Warning)
	}
	if resp.SourceStats["alpha"].Count != 1 || resp.SourceStats["beta"].Count != 2 {
		t.Errorf("SourceStats = %+v", resp.SourceStats)
	}
	if resp.Meta.TotalEvents != 3 || resp.Meta.TotalPages != 1 {
		t.Errorf("Meta = %+v", resp.Meta)
	}
}

func TestSearch_PartialFailureKeepsOtherResults(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", err: errors.New("upstream 503")},
		&fakeProvider{name: "beta", raws: []normalize.RawEventSource{
			raw("b1", "Food Fair", "2025-06-02"),
		}},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if len(resp.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(resp.Events))
	}
	stat := resp.SourceStats["alpha"]
	if stat.Error == nil || *stat.Error != "upstream 503" {
		t.Errorf("alpha stat = %+v, want recorded error", stat)
	}
	if resp.SourceStats["beta"].Error != nil {
		t.Errorf("beta stat carries an error: %+v", resp.SourceStats["beta"])
	}
	if resp.Warning != "" {
		t.Errorf("Warning = %q, partial failure with results should not warn", resp.Warning)
	}
}

func TestSearch_AllProvidersFailed(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", err: errors.New("boom")},
		&fakeProvider{name: "beta", err: errors.New("bang")},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if len(resp.Events) != 0 {
		t.Fatalf("len(Events) = %d, want 0", len(resp.Events))
	}
	if resp.Warning != warnAllFailed {
		t.Errorf("Warning = %q, want %q", resp.Warning, warnAllFailed)
	}
}

func TestSearch_NoEventsWarning(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha"},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if resp.Warning != warnNoEvents {
		t.Errorf("Warning = %q, want %q", resp.Warning, warnNoEvents)
	}
	if resp.Events == nil {
		t.Error("Events must serialize as [], not null")
	}
}

func TestSearch_PagePastEndDoesNotWarn(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
			raw("a1", "Jazz Night", "2025-06-01"),
		}},
	}, testConfig())

	p := searchParams()
	p.Page = 3
	resp := a.Search(context.Background(), p)
	if len(resp.Events) != 0 {
		t.Fatalf("len(Events) = %d, want 0 past the last page", len(resp.Events))
	}
	if resp.Warning != "" {
		t.Errorf("Warning = %q, want none when events exist", resp.Warning)
	}
	if resp.Meta.TotalEvents != 1 {
		t.Errorf("TotalEvents = %d, want 1", resp.Meta.TotalEvents)
	}
}

func TestSearch_FilteredOutWarning(t *testing.T) {
	// A record with no start date survives normalization but fails the
	// completeness filter.
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
			raw("a1", "Dateless", ""),
		}},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if len(resp.Events) != 0 {
		t.Fatalf("len(Events) = %d, want 0", len(resp.Events))
	}
	if resp.Warning != warnFilteredOut {
		t.Errorf("Warning = %q, want %q", resp.Warning, warnFilteredOut)
	}
}

func TestSearch_DedupFirstProviderWins(t *testing.T) {
	a := NewWith([]provider.Provider{
		&fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
			raw("a1", "Jazz Night", "2025-06-01"),
		}},
		&fakeProvider{name: "beta", raws: []normalize.RawEventSource{
			raw("b1", "Jazz Night", "2025-06-01"),
		}},
	}, testConfig())

	resp := a.Search(context.Background(), searchParams())
	if len(resp.Events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(resp.Events))
	}
	if resp.Events[0].ID != "mock-a1" {
		t.Errorf("survivor = %q, want the first provider's record", resp.Events[0].ID)
	}
}

func TestSearch_CacheHitSkipsProviders(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTLSeconds = 60

	fp := &fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
		raw("a1", "Jazz Night", "2025-06-01"),
	}}
	a := NewWith([]provider.Provider{fp}, cfg)

	first := a.Search(context.Background(), searchParams())
	second := a.Search(context.Background(), searchParams())

	if fp.calls != 1 {
		t.Fatalf("provider called %d times, want 1 (second search cached)", fp.calls)
	}
	if len(second.Events) != len(first.Events) {
		t.Errorf("cached response differs: %d vs %d events", len(second.Events), len(first.Events))
	}
}

func TestSearch_HotReloadSwapsClassifier(t *testing.T) {
	cfg := testConfig()
	fp := &fakeProvider{name: "alpha", raws: []normalize.RawEventSource{
		raw("a1", "DJ Rave Dance Party", "2025-06-01T12:00:00"), // keyword channel scores 4, noon adds nothing
	}}
	a := NewWith([]provider.Provider{fp}, cfg)

	resp := a.Search(context.Background(), searchParams())
	if resp.Events[0].Category == event.CategoryParty {
		t.Fatal("score 4 should not pass the default threshold")
	}

	reloaded := cfg.Classifier
	reloaded.Threshold = 4
	a.SwapClassifier(reloaded)

	resp = a.Search(context.Background(), searchParams())
	if resp.Events[0].Category != event.CategoryParty {
		t.Errorf("Category = %q after lowering the threshold, want party", resp.Events[0].Category)
	}
}

func TestFanOut(t *testing.T) {
	items := []int{1, 2, 3}
	outcomes := fanOut(context.Background(), items, func(_ context.Context, n int) (int, error) {
		if n == 2 {
			return 0, errors.New("nope")
		}
		if n == 3 {
			panic("kaboom")
		}
		return n * 10, nil
	})

	if outcomes[0].err != nil || outcomes[0].val != 10 {
		t.Errorf("outcome[0] = %+v", outcomes[0])
	}
	if outcomes[1].err == nil {
		t.Error("outcome[1] should carry the error")
	}
	if outcomes[2].err == nil {
		t.Error("outcome[2] should settle the panic as an error")
	}
}
