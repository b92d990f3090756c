// Package cache provides the side cache for single-itinerary reads.
//
// The cache is an accelerator, never the system of record: entries are
// written only as a side effect of a successful point lookup, expire after a
// fixed TTL, and are removed unconditionally whenever the record is updated
// or deleted. A miss says nothing about whether the record exists.
package cache

import (
	"time"

	"github.com/viccon/sturdyc"

	"github.com/forgo/voyage/api/internal/model"
)

const (
	defaultCapacity = 10000
	defaultShards   = 64
	defaultTTL      = 300 * time.Second

	// evictionPercentage is how much of a full shard sturdyc evicts at once.
	evictionPercentage = 10
)

// Config holds side-cache settings.
type Config struct {
	Capacity int
	Shards   int
	TTL      time.Duration
}

// ItineraryCache caches itinerary snapshots keyed by record id with a fixed
// per-entry TTL.
type ItineraryCache struct {
	client *sturdyc.Client[*model.Itinerary]
	ttl    time.Duration
}

// New creates an itinerary cache. Zero config fields fall back to defaults;
// the default TTL is the 300 second staleness bound the service documents.
func New(cfg Config) *ItineraryCache {
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.Shards <= 0 {
		cfg.Shards = defaultShards
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	return &ItineraryCache{
		client: sturdyc.New[*model.Itinerary](cfg.Capacity, cfg.Shards, cfg.TTL, evictionPercentage),
		ttl:    cfg.TTL,
	}
}

// Get returns the cached snapshot for id, if present and unexpired.
func (c *ItineraryCache) Get(id string) (*model.Itinerary, bool) {
	return c.client.Get(id)
}

// Set stores a snapshot under the record's id. SurrealDB record ids are
// already namespaced ("itinerary:<uuid>"), so the id doubles as the cache
// key.
func (c *ItineraryCache) Set(id string, it *model.Itinerary) {
	c.client.Set(id, it)
}

// Invalidate removes the entry for id. Removing an absent entry is a no-op.
func (c *ItineraryCache) Invalidate(id string) {
	c.client.Delete(id)
}

// TTL returns the fixed per-entry time-to-live.
func (c *ItineraryCache) TTL() time.Duration {
	return c.ttl
}
