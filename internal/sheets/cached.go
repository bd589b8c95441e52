package sheets

import (
	"context"
	"log/slog"
	"time"

	"cashflow/internal/cache"
	"cashflow/internal/core"
	"cashflow/internal/log"
)

const rulesCacheKey = "rules"

// CachedReader serves the rules of another reader from memory until they
// expire.
type CachedReader struct {
	next  RuleReader
	cache *cache.TTL[[]core.Rule]
}

var _ RuleReader = (*CachedReader)(nil)

// NewCachedReader wraps next with a cache living for ttl. A zero ttl
// disables caching.
func NewCachedReader(next RuleReader, ttl time.Duration) *CachedReader {
	return &CachedReader{
		next:  next,
		cache: cache.NewTTL[[]core.Rule](1, ttl),
	}
}

// WithClock replaces the cache time source, for tests.
func (c *CachedReader) WithClock(now func() time.Time) *CachedReader {
	c.cache.WithClock(now)
	return c
}

func (c *CachedReader) ReadRules(ctx context.Context) ([]core.Rule, error) {
	if rules, ok := c.cache.Get(rulesCacheKey); ok {
		slog.DebugContext(ctx, "Rules served from cache",
			log.FieldComponent, log.ComponentCache,
			log.FieldRules, len(rules))
		return append([]core.Rule(nil), rules...), nil
	}
	rules, err := c.next.ReadRules(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.Set(rulesCacheKey, rules)
	return append([]core.Rule(nil), rules...), nil
}

// Invalidate forces the next read to reach the wrapped reader.
func (c *CachedReader) Invalidate() {
	c.cache.Delete(rulesCacheKey)
}
