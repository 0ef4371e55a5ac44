package config

// Config is the top-level YAML structure.
type Config struct {
	Version    string         `yaml:"version"`
	Server     ServerConf     `yaml:"server"`
	Providers  ProvidersConf  `yaml:"providers"`
	Classifier ClassifierConf `yaml:"classifier"`
	Cache      CacheConf      `yaml:"cache"`
}

// ServerConf holds HTTP server tunables.
type ServerConf struct {
	Addr           string  `yaml:"addr"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

// ProvidersConf configures every upstream event API. Order controls both
// fan-out iteration and dedup precedence (first provider wins).
type ProvidersConf struct {
	Order        []string     `yaml:"order"`
	Ticketmaster ProviderConf `yaml:"ticketmaster"`
	PredictHQ    ProviderConf `yaml:"predicthq"`
	SeatGeek     ProviderConf `yaml:"seatgeek"`
	RapidAPI     ProviderConf `yaml:"rapidapi"`
	Mock         ProviderConf `yaml:"mock"`
}

// ProviderConf is one upstream API. APIKey is normally left empty in the
// YAML file and filled from the environment.
type ProviderConf struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ClassifierConf holds the party-classifier tuning surface: the score
// threshold and the tiered vocabularies for each signal channel.
type ClassifierConf struct {
	Threshold float64  `yaml:"threshold"`
	Keywords  TierConf `yaml:"keywords"`
	Venues    TierConf `yaml:"venues"`
	Labels    TierConf `yaml:"labels"`
}

// TierConf is one signal channel's strong/medium/weak vocabulary.
type TierConf struct {
	Strong WeightedTerms `yaml:"strong"`
	Medium WeightedTerms `yaml:"medium"`
	Weak   WeightedTerms `yaml:"weak"`
}

// WeightedTerms is a term list with the score each match contributes.
type WeightedTerms struct {
	Weight float64  `yaml:"weight"`
	Terms  []string `yaml:"terms"`
}

// CacheConf configures the optional search-response cache. When RedisAddr
// is set the cache is Redis-backed, otherwise in-memory.
type CacheConf struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	RedisAddr  string `yaml:"redis_addr"`
}
