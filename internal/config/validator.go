package config

import (
	"fmt"
	"strings"
)

var knownProviders = map[string]bool{
	"ticketmaster": true,
	"predicthq":    true,
	"seatgeek":     true,
	"rapidapi":     true,
	"mock":         true,
}

// Validate checks the config for:
//   - Unknown or duplicate provider names in the fan-out order
//   - Enabled providers missing a base URL
//   - Classifier threshold and tier weights out of range
func Validate(cfg *Config) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string

	seen := make(map[string]bool)
	for i, name := range cfg.Providers.Order {
		if !knownProviders[name] {
			errs = append(errs, fmt.Sprintf("providers.order[%d]: unknown provider %q", i, name))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("providers.order[%d]: duplicate provider %q", i, name))
		}
		seen[name] = true
	}

	check := func(name string, p ProviderConf) {
		if !p.Enabled {
			return
		}
		if p.BaseURL == "" {
			errs = append(errs, fmt.Sprintf("providers.%s: base_url is required when enabled", name))
		}
		if p.TimeoutMs < 0 {
			errs = append(errs, fmt.Sprintf("providers.%s: timeout_ms must be >= 0", name))
		}
	}
	check("ticketmaster", cfg.Providers.Ticketmaster)
	check("predicthq", cfg.Providers.PredictHQ)
	check("seatgeek", cfg.Providers.SeatGeek)
	check("rapidapi", cfg.Providers.RapidAPI)

	if cfg.Classifier.Threshold <= 0 {
		errs = append(errs, "classifier: threshold must be > 0")
	}
	validateTier("classifier.keywords", cfg.Classifier.Keywords, &errs)
	validateTier("classifier.venues", cfg.Classifier.Venues, &errs)
	validateTier("classifier.labels", cfg.Classifier.Labels, &errs)

	if cfg.Cache.Enabled && cfg.Cache.TTLSeconds <= 0 {
		errs = append(errs, "cache: ttl_seconds must be > 0 when enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateTier(loc string, t TierConf, errs *[]string) {
	for name, wt := range map[string]WeightedTerms{
		"strong": t.Strong, "medium": t.Medium, "weak": t.Weak,
	} {
		if wt.Weight < 0 {
			*errs = append(*errs, fmt.Sprintf("%s.%s: weight must be >= 0", loc, name))
		}
		for i, term := range wt.Terms {
			if strings.TrimSpace(term) == "" {
				*errs = append(*errs, fmt.Sprintf("%s.%s.terms[%d]: empty term", loc, name, i))
			}
		}
	}
}
