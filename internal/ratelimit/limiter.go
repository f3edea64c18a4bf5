// Package ratelimit gates submissions per client address with a counter
// whose window is anchored to the address's most recent accepted request.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

const (
	DefaultMax    = 10
	DefaultWindow = time.Hour

	maxAttempts = 5
)

// ErrContended is returned when concurrent writers for one address kept
// winning the compare-and-swap.
var ErrContended = errors.New("ratelimit: too much contention")

// Decision is the outcome of one Check. Count is the stored counter after the
// decision and RetryAfter is only set on denials.
type Decision struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

type Options struct {
	Max      int
	Window   time.Duration
	FailOpen bool
	Now      func() time.Time
	Logger   *logrus.Entry
}

type Limiter struct {
	store    interfaces.IPLogRepository
	max      int
	window   time.Duration
	failOpen bool
	now      func() time.Time
	log      *logrus.Entry
}

func New(store interfaces.IPLogRepository, opts Options) *Limiter {
	l := &Limiter{
		store:    store,
		max:      opts.Max,
		window:   opts.Window,
		failOpen: opts.FailOpen,
		now:      opts.Now,
		log:      opts.Logger,
	}
	if l.max <= 0 {
		l.max = DefaultMax
	}
	if l.window <= 0 {
		l.window = DefaultWindow
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.log == nil {
		l.log = logrus.WithField("component", "ratelimit")
	}
	return l
}

func (l *Limiter) Max() int { return l.max }

func (l *Limiter) Window() time.Duration { return l.window }

// Check records an attempt for ip and reports whether it may proceed. A
// denied attempt leaves the stored row untouched.
func (l *Limiter) Check(ctx context.Context, ip string) (Decision, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		d, done, err := l.try(ctx, ip)
		if err != nil {
			return Decision{}, err
		}
		if done {
			return d, nil
		}
		l.log.WithFields(logrus.Fields{"ip": ip, "attempt": attempt + 1}).Debug("lost ip log race, retrying")
	}
	return Decision{}, ErrContended
}

func (l *Limiter) try(ctx context.Context, ip string) (Decision, bool, error) {
	// Postgres keeps microseconds; truncating keeps the CAS comparison exact.
	now := l.now().UTC().Truncate(time.Microsecond)

	current, err := l.store.Get(ctx, ip)
	if errors.Is(err, interfaces.ErrNotFound) {
		ok, err := l.store.Insert(ctx, &models.IPLog{IPAddress: ip, RequestCount: 1, LastRequestAt: now})
		if err != nil {
			return Decision{}, false, fmt.Errorf("insert ip log: %w", err)
		}
		return Decision{Allowed: true, Count: 1}, ok, nil
	}
	if err != nil {
		return Decision{}, false, fmt.Errorf("get ip log: %w", err)
	}

	next := &models.IPLog{IPAddress: ip, RequestCount: 1, LastRequestAt: now}
	if elapsed := now.Sub(current.LastRequestAt); elapsed < l.window {
		if current.RequestCount >= l.max {
			return Decision{
				Allowed:    false,
				Count:      current.RequestCount,
				RetryAfter: l.window - elapsed,
			}, true, nil
		}
		next.RequestCount = current.RequestCount + 1
	}

	ok, err := l.store.CompareAndSwap(ctx, current, next)
	if err != nil {
		return Decision{}, false, fmt.Errorf("update ip log: %w", err)
	}
	return Decision{Allowed: true, Count: next.RequestCount}, ok, nil
}

// Allow is Check with the store-failure policy applied: errors deny the
// request unless the limiter was built to fail open.
func (l *Limiter) Allow(ctx context.Context, ip string) bool {
	d, err := l.Check(ctx, ip)
	if err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{"ip": ip, "failOpen": l.failOpen}).Error("rate limit check failed")
		return l.failOpen
	}
	return d.Allowed
}

func (l *Limiter) FailOpen() bool { return l.failOpen }
