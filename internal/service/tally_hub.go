package service

import (
	"sync"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

// subscriber buffer depth. A subscriber that falls this far behind starts
// dropping frames rather than blocking the hub.
const subscriberBuffer = 8

// TallyHub fans tally frames out to stream subscribers. The worker publishes
// delta frames after committed vote writes; each subscriber additionally
// receives one full snapshot on subscribe, produced by its handler.
type TallyHub struct {
	mu   sync.Mutex
	subs map[chan model.TallyFrame]struct{}
}

func NewTallyHub() *TallyHub {
	return &TallyHub{subs: make(map[chan model.TallyFrame]struct{})}
}

// Subscribe registers a new subscriber and returns its frame channel plus an
// unsubscribe function. Unsubscribe is idempotent and closes the channel, so
// the stream handler's send loop terminates deterministically on disconnect.
func (h *TallyHub) Subscribe() (<-chan model.TallyFrame, func()) {
	ch := make(chan model.TallyFrame, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Broadcast delivers a frame to every subscriber without blocking. Frames to
// full subscriber buffers are dropped; the next delta carries fresh totals
// anyway.
func (h *TallyHub) Broadcast(frame model.TallyFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Subscribers reports the current subscriber count (for metrics).
func (h *TallyHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
