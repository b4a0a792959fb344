package service

import (
	"testing"
	"time"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

func TestTallyHub_SubscriberReceivesBroadcast(t *testing.T) {
	hub := NewTallyHub()
	frames, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	want := model.TallyFrame{
		Type:        "update",
		Contestants: []model.TallyEntry{{ID: "a", Name: "A", Votes: 3}},
	}
	hub.Broadcast(want)

	select {
	case got := <-frames:
		if got.Type != "update" || len(got.Contestants) != 1 || got.Contestants[0].Votes != 3 {
			t.Errorf("got %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive the frame")
	}
}

func TestTallyHub_UnsubscribeStopsDelivery(t *testing.T) {
	hub := NewTallyHub()
	frames, unsubscribe := hub.Subscribe()

	unsubscribe()
	hub.Broadcast(model.TallyFrame{Type: "update"})

	// The channel is closed on unsubscribe, so the receive must report closed
	// rather than deliver a frame.
	select {
	case _, ok := <-frames:
		if ok {
			t.Fatal("unsubscribed channel should be closed, not receive frames")
		}
	case <-time.After(time.Second):
		t.Fatal("closed channel should be immediately readable")
	}

	if hub.Subscribers() != 0 {
		t.Fatalf("subscriber count = %d, want 0", hub.Subscribers())
	}
}

func TestTallyHub_UnsubscribeIdempotent(t *testing.T) {
	hub := NewTallyHub()
	_, unsubscribe := hub.Subscribe()

	unsubscribe()
	unsubscribe() // must not panic on double close
}

func TestTallyHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewTallyHub()
	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		// Overflow the subscriber buffer; extra frames must be dropped,
		// never queued against the broadcaster.
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Broadcast(model.TallyFrame{Type: "update"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
}

func TestTallyHub_IndependentSubscribers(t *testing.T) {
	hub := NewTallyHub()
	a, unsubA := hub.Subscribe()
	b, unsubB := hub.Subscribe()
	defer unsubB()

	if hub.Subscribers() != 2 {
		t.Fatalf("subscriber count = %d, want 2", hub.Subscribers())
	}

	unsubA()
	hub.Broadcast(model.TallyFrame{Type: "update"})

	select {
	case frame, ok := <-b:
		if !ok {
			t.Fatal("live subscriber channel should stay open")
		}
		if frame.Type != "update" {
			t.Errorf("frame type = %q, want update", frame.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("live subscriber should still receive frames")
	}

	if _, ok := <-a; ok {
		t.Fatal("unsubscribed channel should be closed")
	}
}
