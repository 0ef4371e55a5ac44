package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML config file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Config
	onChange []func(*Config)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = cfg
	return l, nil
}

// Config returns the current (latest) configuration.
func (l *Loader) Config() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the config reloads.
func (l *Loader) OnChange(fn func(*Config)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the config on file
// changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("config watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					cfg, err := l.load()
					if err != nil {
						// Log and continue with old config.
						continue
					}
					l.mu.Lock()
					l.current = cfg
					callbacks := make([]func(*Config), len(l.onChange))
					copy(callbacks, l.onChange)
					l.mu.Unlock()
					for _, fn := range callbacks {
						fn(cfg)
					}
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the config file.
func (l *Loader) Reload() (*Config, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = cfg
	callbacks := make([]func(*Config), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(cfg)
	}
	return cfg, nil
}

func (l *Loader) load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", l.path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", l.path, err)
	}
	ApplyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default. Exposed so tests
// can build configs without a file on disk.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 5
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 10
	}
	if len(cfg.Providers.Order) == 0 {
		cfg.Providers.Order = []string{"ticketmaster", "predicthq", "seatgeek", "rapidapi"}
	}
	for _, p := range []*ProviderConf{
		&cfg.Providers.Ticketmaster, &cfg.Providers.PredictHQ,
		&cfg.Providers.SeatGeek, &cfg.Providers.RapidAPI, &cfg.Providers.Mock,
	} {
		if p.TimeoutMs == 0 {
			p.TimeoutMs = 10000
		}
	}
	if cfg.Providers.Ticketmaster.BaseURL == "" {
		cfg.Providers.Ticketmaster.BaseURL = "https://app.ticketmaster.com/discovery/v2"
	}
	if cfg.Providers.PredictHQ.BaseURL == "" {
		cfg.Providers.PredictHQ.BaseURL = "https://api.predicthq.com/v1"
	}
	if cfg.Providers.SeatGeek.BaseURL == "" {
		cfg.Providers.SeatGeek.BaseURL = "https://api.seatgeek.com/2"
	}
	if cfg.Providers.RapidAPI.BaseURL == "" {
		cfg.Providers.RapidAPI.BaseURL = "https://real-time-events-search.p.rapidapi.com"
	}
	if cfg.Classifier.Threshold == 0 {
		cfg.Classifier.Threshold = 5
	}
	defaultTier(&cfg.Classifier.Keywords, TierConf{
		Strong: WeightedTerms{Weight: 4, Terms: []string{
			"party", "club", "nightclub", "dj", "rave", "dance", "disco",
		}},
		Medium: WeightedTerms{Weight: 2.5, Terms: []string{
			"festival", "mixer", "social", "gala", "lounge",
		}},
		Weak: WeightedTerms{Weight: 1, Terms: []string{
			"entertainment", "live", "show", "concert",
		}},
	})
	defaultTier(&cfg.Classifier.Venues, TierConf{
		Strong: WeightedTerms{Weight: 4, Terms: []string{"club", "nightclub", "lounge"}},
		Medium: WeightedTerms{Weight: 2.5, Terms: []string{"bar", "hall", "rooftop"}},
		Weak:   WeightedTerms{Weight: 1, Terms: []string{"restaurant", "theater"}},
	})
	defaultTier(&cfg.Classifier.Labels, TierConf{
		Strong: WeightedTerms{Weight: 4, Terms: []string{"nightlife", "dance-club", "dj-set"}},
		Medium: WeightedTerms{Weight: 2.5, Terms: []string{"live-music", "social-gathering"}},
		Weak:   WeightedTerms{Weight: 1, Terms: []string{"food-and-drink", "community"}},
	})
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
}

func defaultTier(t *TierConf, def TierConf) {
	if len(t.Strong.Terms) == 0 {
		t.Strong = def.Strong
	}
	if len(t.Medium.Terms) == 0 {
		t.Medium = def.Medium
	}
	if len(t.Weak.Terms) == 0 {
		t.Weak = def.Weak
	}
	if t.Strong.Weight == 0 {
		t.Strong.Weight = def.Strong.Weight
	}
	if t.Medium.Weight == 0 {
		t.Medium.Weight = def.Medium.Weight
	}
	if t.Weak.Weight == 0 {
		t.Weak.Weight = def.Weak.Weight
	}
}

// applyEnv overlays API keys from the environment. Keys never live in the
// YAML file in deployments.
func applyEnv(cfg *Config) {
	overlay := func(p *ProviderConf, envKey string) {
		if v := os.Getenv(envKey); v != "" {
			p.APIKey = v
		}
	}
	overlay(&cfg.Providers.Ticketmaster, "TICKETMASTER_API_KEY")
	overlay(&cfg.Providers.PredictHQ, "PREDICTHQ_API_KEY")
	overlay(&cfg.Providers.SeatGeek, "SEATGEEK_CLIENT_ID")
	overlay(&cfg.Providers.RapidAPI, "RAPIDAPI_KEY")
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
}
