package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (m *memorySink) Record(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return m.err
}

func TestDispatcherDeliversToEverySink(t *testing.T) {
	a := &memorySink{}
	b := &memorySink{err: errors.New("broker down")}

	d := NewDispatcher(a, b)
	d.Dispatch(Event{Action: "booking_created", Entity: "booking", EntityID: "1"})
	d.Dispatch(Event{Action: "booking_cancelled", Entity: "booking", EntityID: "1"})
	d.Close()

	for name, s := range map[string]*memorySink{"a": a, "b": b} {
		if len(s.events) != 2 {
			t.Fatalf("sink %s got %d events, want 2", name, len(s.events))
		}
		if s.events[1].Action != "booking_cancelled" {
			t.Errorf("sink %s: events out of order: %+v", name, s.events)
		}
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	d.Close()
}

func TestRoutingKey(t *testing.T) {
	if got := RoutingKey("review_added"); got != "audit.review_added" {
		t.Fatalf("RoutingKey = %q", got)
	}
}
