package goCred

import (
	"errors"
	"runtime"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config carries all engine tunables. Instances are configured before
// [Builder.Build] and treated as immutable afterwards.
type Config struct {
	Password  PasswordConfig
	Reset     ResetConfig
	Freshness FreshnessConfig
	Store     StoreConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig controls hashing cost and password policy.
type PasswordConfig struct {
	// Cost is the bcrypt work factor. Higher values increase brute-force
	// resistance and per-hash latency.
	Cost int
	// MinLength is the minimum accepted password length in bytes.
	MinLength int
	// MaxConcurrentHashes bounds the number of bcrypt computations running
	// at once so a burst of logins or registrations cannot monopolize every
	// CPU. Zero selects a GOMAXPROCS-sized bound.
	MaxConcurrentHashes int
}

/*
====================================
RESET CONFIG
====================================
*/

// ResetConfig controls password-reset token issuance.
type ResetConfig struct {
	// TTL is how long an issued reset token stays consumable.
	TTL time.Duration
	// EnableIdentifierThrottle turns on the per-identifier fixed-window
	// request limiter. Requires a Redis client on the builder.
	EnableIdentifierThrottle bool
	// MaxRequests is the number of reset requests allowed per identifier
	// within ThrottleWindow.
	MaxRequests int
	// ThrottleWindow is the fixed limiter window.
	ThrottleWindow time.Duration
}

/*
====================================
FRESHNESS CONFIG
====================================
*/

// FreshnessConfig controls how password changes are stamped relative to the
// wall clock.
type FreshnessConfig struct {
	// ChangeBackdate is subtracted from the wall-clock instant when stamping
	// PasswordChangedAt on an existing record. It guarantees that a session
	// token issued in the same instant as the change is classified as issued
	// before it, even under coarse clock resolution. Treat it as a clock-skew
	// tolerance, not a magic constant.
	ChangeBackdate time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig configures the bundled Redis-backed credential store installed
// by [Builder.WithRedis]. Ignored when a custom store is injected.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig configures the buffered audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the caller when the
	// buffer is saturated. Dropped counts are visible via
	// [Engine.AuditDropped].
	DropIfFull bool
}

// MetricsConfig configures the in-process counters.
type MetricsConfig struct {
	Enabled bool
	// EnableLatencyHistogram records login verification latency buckets in
	// addition to counters.
	EnableLatencyHistogram bool
}

// DefaultConfig returns the configuration a fresh [Builder] starts from:
// bcrypt cost 12, minimum password length 8, 10-minute reset TTL, one-second
// change backdate, audit and metrics off. Mutate a copy and pass it to
// [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Cost:                12,
			MinLength:           8,
			MaxConcurrentHashes: 0,
		},
		Reset: ResetConfig{
			TTL:                      10 * time.Minute,
			EnableIdentifierThrottle: false,
			MaxRequests:              5,
			ThrottleWindow:           15 * time.Minute,
		},
		Freshness: FreshnessConfig{
			ChangeBackdate: time.Second,
		},
		Store: StoreConfig{
			RedisPrefix: "gc",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                false,
			EnableLatencyHistogram: false,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for values the engine cannot operate
// with. It is called by [Builder.Build].
func (c *Config) Validate() error {
	if c.Password.Cost < bcrypt.MinCost || c.Password.Cost > bcrypt.MaxCost {
		return errors.New("password cost outside bcrypt range")
	}
	if c.Password.MinLength < 8 {
		return errors.New("password min length must be >= 8")
	}
	if c.Password.MaxConcurrentHashes < 0 {
		return errors.New("password max concurrent hashes must be >= 0")
	}

	if c.Reset.TTL <= 0 {
		return errors.New("reset TTL must be > 0")
	}
	if c.Reset.EnableIdentifierThrottle {
		if c.Reset.MaxRequests <= 0 {
			return errors.New("reset max requests must be > 0 when throttling")
		}
		if c.Reset.ThrottleWindow <= 0 {
			return errors.New("reset throttle window must be > 0 when throttling")
		}
	}

	if c.Freshness.ChangeBackdate < 0 {
		return errors.New("freshness change backdate must be >= 0")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be > 0 when audit enabled")
	}

	return nil
}

func effectiveHashConcurrency(cfg PasswordConfig) int {
	if cfg.MaxConcurrentHashes > 0 {
		return cfg.MaxConcurrentHashes
	}
	return runtime.GOMAXPROCS(0)
}
