package config

import "time"

// Limits bound the generator client and the progress estimators.
type Limits struct {
	MaxRetries int `yaml:"max_retries" validate:"min=0,max=10"`

	// RequestTimeoutSec is the per-request HTTP timeout in seconds.
	RequestTimeoutSec int `yaml:"request_timeout" validate:"omitempty,min=10,max=3600"`

	// DailyWords is the assumed writing rate used by progress estimates.
	DailyWords int `yaml:"daily_words" validate:"min=1"`

	// WorldExpansionWorkers caps concurrent world-bible category
	// expansions.
	WorldExpansionWorkers int `yaml:"world_expansion_workers" validate:"min=1,max=16"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (l Limits) RequestTimeout() time.Duration {
	return time.Duration(l.RequestTimeoutSec) * time.Second
}

// RateLimitConfig shapes the token bucket in front of the generation API.
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"min=1,max=1000"`
	BurstSize         int `yaml:"burst_size" validate:"min=1,max=100"`
}

// DefaultLimits returns the limits used when the config file sets none.
func DefaultLimits() Limits {
	return Limits{
		MaxRetries:            3,
		RequestTimeoutSec:     120,
		DailyWords:            1000,
		WorldExpansionWorkers: 4,
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			BurstSize:         15,
		},
	}
}
