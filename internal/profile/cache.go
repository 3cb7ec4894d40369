package profile

import (
	"encoding/json"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
)

const minCacheSizeBytes = 512 * 1024

// Cache is an in-process read cache of encoded profiles.
type Cache struct {
	cache          *freecache.Cache
	expireSeconds  int
	metricsManager *metrics.Manager
}

func NewCache(sizeMB int, ttl time.Duration, metricsManager *metrics.Manager) *Cache {
	size := sizeMB * 1024 * 1024
	if size < minCacheSizeBytes {
		size = minCacheSizeBytes
	}

	expireSeconds := int(ttl.Seconds())
	if expireSeconds < 1 {
		expireSeconds = 1
	}

	return &Cache{
		cache:          freecache.NewCache(size),
		expireSeconds:  expireSeconds,
		metricsManager: metricsManager,
	}
}

func cacheKey(userID string) []byte {
	return []byte("profile::" + userID)
}

// Get returns nil on a miss, or when the cached bytes can't be decoded.
func (c *Cache) Get(userID string) *UserProfile {
	data, err := c.cache.Get(cacheKey(userID))
	if err != nil {
		c.observe("miss")
		return nil
	}

	p, err := decodeProfile(data)
	if err != nil {
		log.Errorf("decode cached profile for %s: %s", userID, err)
		c.cache.Del(cacheKey(userID))
		c.observe("miss")
		return nil
	}

	c.observe("hit")
	return p
}

func (c *Cache) Set(p *UserProfile) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Errorf("marshal profile %s for cache: %s", p.UserID, err)
		return
	}

	if err := c.cache.Set(cacheKey(p.UserID), data, c.expireSeconds); err != nil {
		log.Warnf("profile cache set for %s: %s", p.UserID, err)
	}
}

func (c *Cache) Invalidate(userID string) {
	c.cache.Del(cacheKey(userID))
}

func (c *Cache) observe(result string) {
	if c.metricsManager != nil {
		c.metricsManager.CounterProfileCache.WithLabelValues(result).Inc()
	}
}
