package service

import "testing"

func TestTallyWorker_ListeningTracksConnectionState(t *testing.T) {
	w := NewTallyWorker(nil, nil, NewTallyHub())

	if w.Listening() {
		t.Fatal("a worker that never connected must not report listening")
	}

	w.listening.Store(true)
	if !w.Listening() {
		t.Fatal("Listening must reflect the stored connection state")
	}

	w.listening.Store(false)
	if w.Listening() {
		t.Fatal("Listening must drop when the LISTEN connection is lost")
	}
}
