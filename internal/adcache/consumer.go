package adcache

import (
	"context"
	"sync"
	"time"

	"smsguide/internal/models"
)

// State is a consumer's view of one slot.
type State struct {
	Ads        []*models.Announcement
	Loading    bool
	Err        error
	LastUpdate time.Time
}

// Consumer keeps one display slot in sync with the cache. It reloads with
// force on SignalCleared and normally on SignalUpdated.
type Consumer struct {
	cache *Cache
	opts  Options

	ctx    context.Context
	cancel context.CancelFunc
	unsubs []func()

	mu    sync.RWMutex
	state State
}

// NewConsumer subscribes to the cache's broker and performs the first load.
// Loads triggered by signals run with ctx until Close.
func NewConsumer(ctx context.Context, cache *Cache, opts Options) *Consumer {
	ctx, cancel := context.WithCancel(ctx)
	c := &Consumer{
		cache:  cache,
		opts:   opts.normalize(),
		ctx:    ctx,
		cancel: cancel,
		state:  State{Loading: true},
	}

	c.unsubs = append(c.unsubs,
		cache.Broker().Subscribe(SignalCleared, func() { c.load(c.ctx, true) }),
		cache.Broker().Subscribe(SignalUpdated, func() { c.load(c.ctx, false) }),
	)
	c.load(ctx, false)
	return c
}

func (c *Consumer) load(ctx context.Context, force bool) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	c.mu.Lock()
	c.state.Loading = true
	c.state.Err = nil
	c.mu.Unlock()

	res, err := c.cache.Load(ctx, c.opts, force)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		return err
	}
	c.state.Ads = res.Ads
	c.state.LastUpdate = res.LastUpdate
	return nil
}

func (c *Consumer) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Consumer) Ads() []*models.Announcement {
	return c.State().Ads
}

// Refresh reloads the slot bypassing the cache.
func (c *Consumer) Refresh(ctx context.Context) error {
	return c.load(ctx, true)
}

// ClearCache drops key, or every entry when key is empty. Unlike
// Cache.ClearAll it does not notify other consumers.
func (c *Consumer) ClearCache(key string) {
	if key != "" {
		c.cache.Clear(key)
		return
	}
	c.cache.mu.Lock()
	c.cache.entries = map[string]entry{}
	c.cache.mu.Unlock()
}

func (c *Consumer) CacheInfo() CacheInfo {
	return c.cache.Info(c.opts.Key())
}

func (c *Consumer) Options() Options { return c.opts }

// Close unsubscribes from the broker and cancels signal-triggered loads.
func (c *Consumer) Close() {
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.cancel()
}
