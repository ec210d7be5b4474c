package realtime

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func recv(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case event := <-sub.C:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	a := hub.Subscribe("user-1")
	b := hub.Subscribe("user-1")
	other := hub.Subscribe("user-2")
	defer hub.Unsubscribe(other)

	hub.Publish("user-1", "workspace.saved", map[string]any{"pages": 3})

	for _, sub := range []*Subscriber{a, b} {
		event := recv(t, sub)
		if event.Type != "workspace.saved" || event.Topic != "user-1" {
			t.Errorf("got event %+v", event)
		}
	}

	select {
	case event := <-other.C:
		t.Errorf("subscriber of another topic received %+v", event)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sub := hub.Subscribe("user-1")
	hub.Unsubscribe(sub)

	if _, ok := <-sub.C; ok {
		t.Error("channel should be closed after unsubscribe")
	}
	if n := hub.Subscribers("user-1"); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}

	// Publishing to a drained topic is a no-op.
	hub.Publish("user-1", "workspace.saved", nil)

	// Double unsubscribe must not panic or close twice.
	hub.Unsubscribe(sub)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(zap.NewNop())

	sub := hub.Subscribe("user-1")
	defer hub.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < cap(sub.C)+10; i++ {
			hub.Publish("user-1", "dashboard.updated", i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
