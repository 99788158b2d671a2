package goCred

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	internalaudit "github.com/MrEthical07/goCred/internal/audit"
	"github.com/MrEthical07/goCred/internal/stores"
	"github.com/MrEthical07/goCred/password"
)

// Builder assembles an [Engine]. Construction is allocation-only; no I/O
// happens before the first Engine method call.
type Builder struct {
	config Config
	store  CredentialStore
	redis  *redis.Client

	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with the default configuration: bcrypt cost
// 12, minimum password length 8, 10-minute reset TTL, one-second change
// backdate.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the caller's CredentialStore implementation. The store
// owns per-record atomicity; the engine owns everything above it.
func (b *Builder) WithStore(store CredentialStore) *Builder {
	b.store = store
	return b
}

// WithRedis supplies a Redis client. When no custom store is injected the
// bundled Redis-backed store is installed over this client; the reset
// request limiter, when enabled, always uses it.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the sink that receives audit events when auditing is
// enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration, wires all components, and returns the
// ready engine. A Builder builds at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already built")
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		if b.redis == nil {
			return nil, errors.New("a CredentialStore or a Redis client is required")
		}
		store = &redisCredentialStore{
			inner: stores.NewRedisCredentialStore(b.redis, b.config.Store.RedisPrefix),
		}
	}

	hasher, err := password.NewBcrypt(password.Config{Cost: b.config.Password.Cost})
	if err != nil {
		return nil, err
	}

	var limiter *resetRequestLimiter
	if b.config.Reset.EnableIdentifierThrottle {
		if b.redis == nil {
			return nil, errors.New("reset identifier throttle requires a Redis client")
		}
		limiter = newResetRequestLimiter(b.redis, b.config.Store.RedisPrefix, b.config.Reset)
	}

	var dispatcher *internalaudit.Dispatcher
	if b.config.Audit.Enabled {
		dispatcher = internalaudit.NewDispatcher(internalaudit.DispatcherConfig{
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.auditSink)
	}

	engine := &Engine{
		config:       b.config,
		store:        store,
		hasher:       hasher,
		hashSem:      make(chan struct{}, effectiveHashConcurrency(b.config.Password)),
		resetLimiter: limiter,
		audit:        dispatcher,
		metrics:      NewMetrics(b.config.Metrics),
		now:          time.Now,
		newID:        uuid.NewString,
	}

	b.built = true
	return engine, nil
}
