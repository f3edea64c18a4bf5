// Package adcache fronts active announcements with a per-process TTL cache.
// Entries are keyed by position and display limit, hold the full active list
// for the position and are sliced on read.
package adcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"smsguide/internal/models"
)

const (
	DefaultTTL    = 5 * time.Minute
	DefaultMaxAds = 3
)

// PreloadLimits are the display limits warmed for each position by Preload.
var PreloadLimits = []int{3, 1, 5}

// DefaultPreloadPositions is used when Preload is given no positions.
var DefaultPreloadPositions = []string{
	string(models.PositionNotice),
	string(models.PositionBanner),
	string(models.PositionSidebar),
}

// FetchFunc returns the announcements currently visible for position, or for
// every position when position is empty.
type FetchFunc func(ctx context.Context, position string) ([]*models.Announcement, error)

// Options selects a slot. A positive CacheTime overrides the cache TTL for
// that read.
type Options struct {
	Position  string
	MaxAds    int
	CacheTime time.Duration
}

func (o Options) normalize() Options {
	if o.MaxAds <= 0 {
		o.MaxAds = DefaultMaxAds
	}
	return o
}

func (o Options) Key() string {
	o = o.normalize()
	return Key(o.Position, o.MaxAds)
}

func Key(position string, maxAds int) string {
	if position == "" {
		position = "all"
	}
	return fmt.Sprintf("announcements-%s-%d", position, maxAds)
}

type entry struct {
	data      []*models.Announcement
	timestamp time.Time
}

type Result struct {
	Ads        []*models.Announcement
	LastUpdate time.Time
	FromCache  bool
}

type CacheInfo struct {
	HasCached bool          `json:"has_cached"`
	Age       time.Duration `json:"age"`
	Size      int           `json:"size"`
}

type Stats struct {
	TotalCached int      `json:"total_cached"`
	CacheKeys   []string `json:"cache_keys"`
	TotalMemory int      `json:"total_memory"`
}

type PreloadResult struct {
	Position  string   `json:"position"`
	Count     int      `json:"count"`
	Success   bool     `json:"success"`
	CacheKeys []string `json:"cache_keys,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	fetch  FetchFunc
	ttl    time.Duration
	now    func() time.Time
	broker *Broker
	log    *logrus.Entry
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithBroker(b *Broker) Option {
	return func(c *Cache) { c.broker = b }
}

func WithLogger(logger *logrus.Entry) Option {
	return func(c *Cache) { c.log = logger }
}

func New(fetch FetchFunc, opts ...Option) *Cache {
	c := &Cache{
		entries: map[string]entry{},
		fetch:   fetch,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.WithField("component", "adcache")
	}
	if c.broker == nil {
		c.broker = NewBroker(c.log)
	}
	return c
}

func (c *Cache) Broker() *Broker { return c.broker }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Load returns up to opts.MaxAds announcements for opts.Position. A fresh
// entry is served without fetching unless force is set. Fetch errors leave
// the cache unchanged.
func (c *Cache) Load(ctx context.Context, opts Options, force bool) (Result, error) {
	opts = opts.normalize()
	key := Key(opts.Position, opts.MaxAds)
	ttl := c.ttl
	if opts.CacheTime > 0 {
		ttl = opts.CacheTime
	}

	now := c.now()
	if !force {
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && now.Sub(cached.timestamp) < ttl {
			c.log.WithFields(logrus.Fields{"key": key, "age": now.Sub(cached.timestamp)}).Debug("serving cached announcements")
			return Result{Ads: limit(cached.data, opts.MaxAds), LastUpdate: cached.timestamp, FromCache: true}, nil
		}
	}

	data, err := c.fetch(ctx, opts.Position)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Error("failed to load announcements")
		return Result{}, fmt.Errorf("load announcements: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = entry{data: data, timestamp: now}
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"key": key, "count": len(data), "force": force}).Debug("announcement cache updated")
	return Result{Ads: limit(data, opts.MaxAds), LastUpdate: now}, nil
}

func limit(data []*models.Announcement, n int) []*models.Announcement {
	if len(data) <= n {
		return data
	}
	return data[:n]
}

// Clear drops one entry without notifying subscribers.
func (c *Cache) Clear(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// ClearAll drops every entry, then emits SignalCleared. It returns the
// number of entries dropped.
func (c *Cache) ClearAll() int {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = map[string]entry{}
	c.mu.Unlock()

	c.log.WithField("entries", n).Info("announcement cache cleared")
	c.broker.Notify(SignalCleared)
	return n
}

// Preload fetches each position once and stores the result under every
// PreloadLimits key, then emits SignalUpdated.
func (c *Cache) Preload(ctx context.Context, positions []string) []PreloadResult {
	if len(positions) == 0 {
		positions = DefaultPreloadPositions
	}

	results := make([]PreloadResult, len(positions))
	var wg sync.WaitGroup
	for i, position := range positions {
		wg.Add(1)
		go func(i int, position string) {
			defer wg.Done()
			results[i] = c.preloadOne(ctx, position)
		}(i, position)
	}
	wg.Wait()

	c.broker.Notify(SignalUpdated)
	return results
}

func (c *Cache) preloadOne(ctx context.Context, position string) PreloadResult {
	data, err := c.fetch(ctx, position)
	if err != nil {
		c.log.WithError(err).WithField("position", position).Warn("preload failed")
		return PreloadResult{Position: position, Error: err.Error()}
	}

	now := c.now()
	keys := make([]string, 0, len(PreloadLimits))
	c.mu.Lock()
	for _, n := range PreloadLimits {
		key := Key(position, n)
		c.entries[key] = entry{data: data, timestamp: now}
		keys = append(keys, key)
	}
	c.mu.Unlock()

	return PreloadResult{Position: position, Count: len(data), Success: true, CacheKeys: keys}
}

func (c *Cache) Info(key string) CacheInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info := CacheInfo{Size: len(c.entries)}
	if e, ok := c.entries[key]; ok {
		info.HasCached = true
		info.Age = c.now().Sub(e.timestamp)
	}
	return info
}

// Stats reports cached keys and an approximate footprint in bytes of JSON.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{TotalCached: len(c.entries), CacheKeys: make([]string, 0, len(c.entries))}
	for key, e := range c.entries {
		stats.CacheKeys = append(stats.CacheKeys, key)
		if b, err := json.Marshal(e.data); err == nil {
			stats.TotalMemory += len(b)
		}
	}
	sort.Strings(stats.CacheKeys)
	return stats
}
