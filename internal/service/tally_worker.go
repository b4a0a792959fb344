package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
)

// TallyWorker listens for PostgreSQL NOTIFY on the 'vote_changes' channel and
// pushes delta tally frames to stream subscribers. Changed contestant IDs are
// batched per flush window, so a burst of votes for one contestant costs a
// single recount and a single frame.
type TallyWorker struct {
	pool        *pgxpool.Pool
	contestants *repository.ContestantRepo
	hub         *TallyHub
	flushEvery  time.Duration

	listening atomic.Bool

	mu      sync.Mutex
	pending map[string]struct{} // contestant IDs waiting for a recount
}

// Listening reports whether the worker currently holds a LISTEN connection.
// False while (re)connecting, so readiness probes can surface a stalled feed.
func (w *TallyWorker) Listening() bool {
	return w.listening.Load()
}

// NewTallyWorker creates a tally push worker with a one-second flush window.
func NewTallyWorker(pool *pgxpool.Pool, contestants *repository.ContestantRepo, hub *TallyHub) *TallyWorker {
	return &TallyWorker{
		pool:        pool,
		contestants: contestants,
		hub:         hub,
		flushEvery:  time.Second,
		pending:     make(map[string]struct{}),
	}
}

// Start begins listening for vote_changes notifications and pushing deltas.
// It blocks until ctx is cancelled, reconnecting on listen errors.
func (w *TallyWorker) Start(ctx context.Context) {
	log.Printf("tally-worker: starting (flush window=%s)", w.flushEvery)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("tally-worker: stopping (context cancelled)")
				return
			}
			log.Printf("tally-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("tally-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on vote_changes, and
// accumulates notified contestant IDs for the flush loop.
func (w *TallyWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN vote_changes")
	if err != nil {
		return err
	}
	log.Println("tally-worker: listening on vote_changes")
	w.listening.Store(true)
	defer w.listening.Store(false)

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		contestantID := notification.Payload
		if contestantID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[contestantID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and broadcasts a delta frame.
func (w *TallyWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.flushEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush recounts the changed contestants and pushes one update frame.
func (w *TallyWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending set
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}

	entries, err := w.contestants.TalliesFor(ctx, ids)
	if err != nil {
		log.Printf("tally-worker: recount error for %d contestants: %v", len(ids), err)
		return
	}

	w.hub.Broadcast(model.TallyFrame{Type: "update", Contestants: entries})
}
