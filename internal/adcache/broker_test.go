package adcache

import (
	"reflect"
	"testing"
)

func TestNotifyRunsInRegistrationOrder(t *testing.T) {
	b := NewBroker(nil)
	var order []string
	b.Subscribe(SignalCleared, func() { order = append(order, "a") })
	b.Subscribe(SignalCleared, func() { order = append(order, "b") })
	b.Subscribe(SignalUpdated, func() { order = append(order, "other") })

	if n := b.Notify(SignalCleared); n != 2 {
		t.Fatalf("expected 2 subscribers, got %d", n)
	}
	if !reflect.DeepEqual(order, []string{"a", "b"}) {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestPanickingSubscriberDoesNotStopOthers(t *testing.T) {
	b := NewBroker(nil)
	called := false
	b.Subscribe(SignalCleared, func() { panic("boom") })
	b.Subscribe(SignalCleared, func() { called = true })

	b.Notify(SignalCleared)
	if !called {
		t.Fatalf("expected second subscriber to run")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := NewBroker(nil)
	calls := 0
	unsub := b.Subscribe(SignalUpdated, func() { calls++ })
	b.Subscribe(SignalUpdated, func() {})

	unsub()
	unsub()
	b.Notify(SignalUpdated)

	if calls != 0 {
		t.Fatalf("expected unsubscribed func not to run")
	}
	if b.Count(SignalUpdated) != 1 {
		t.Fatalf("expected one remaining subscriber, got %d", b.Count(SignalUpdated))
	}
}
