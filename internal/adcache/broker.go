package adcache

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	SignalCleared = "ads-cache-cleared"
	SignalUpdated = "ads-cache-updated"
)

type subscription struct {
	id int
	fn func()
}

// Broker delivers named signals to in-process subscribers. Delivery is
// synchronous and in registration order; a panicking subscriber is logged
// and does not stop the others.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
	log    *logrus.Entry
}

func NewBroker(logger *logrus.Entry) *Broker {
	if logger == nil {
		logger = logrus.WithField("component", "adcache.broker")
	}
	return &Broker{subs: map[string][]subscription{}, log: logger}
}

// Subscribe registers fn for signal and returns a func that removes it.
// Calling the returned func more than once is a no-op.
func (b *Broker) Subscribe(signal string, fn func()) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[signal] = append(b.subs[signal], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(signal, id) })
	}
}

func (b *Broker) remove(signal string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[signal]
	for i, s := range subs {
		if s.id == id {
			b.subs[signal] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[signal]) == 0 {
		delete(b.subs, signal)
	}
}

// Notify calls every subscriber of signal and returns how many were called.
// Subscribers may subscribe or unsubscribe while being notified; the change
// applies from the next Notify.
func (b *Broker) Notify(signal string) int {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs[signal]...)
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"signal": signal, "subscribers": len(subs)}).Debug("notifying")
	for _, s := range subs {
		b.call(signal, s.fn)
	}
	return len(subs)
}

func (b *Broker) call(signal string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.WithField("signal", signal).WithField("panic", fmt.Sprint(rec)).Error("subscriber panicked")
		}
	}()
	fn()
}

func (b *Broker) Count(signal string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[signal])
}
