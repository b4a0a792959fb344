package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/valyala/fasthttp"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

// keepaliveInterval paces SSE comment lines so dead peers are detected even
// when no votes are landing.
const keepaliveInterval = 15 * time.Second

type StreamHandler struct {
	contestants *repository.ContestantRepo
	hub         *service.TallyHub
}

func NewStreamHandler(contestants *repository.ContestantRepo, hub *service.TallyHub) *StreamHandler {
	return &StreamHandler{contestants: contestants, hub: hub}
}

// Stream handles GET /api/votes/stream — a public SSE feed of live tallies.
// Each subscriber gets one "initial" frame with the full snapshot, then
// "update" delta frames pushed by the tally worker. The subscription is
// released as soon as a write to the peer fails.
func (h *StreamHandler) Stream(c fiber.Ctx) error {
	// Snapshot first: if the database is down we answer 500 instead of
	// opening a stream that can never send its initial frame.
	entries, err := h.contestants.Tallies(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute tallies")
	}

	frames, unsubscribe := h.hub.Subscribe()

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		streamTallies(w, model.TallyFrame{Type: "initial", Contestants: entries}, frames, keepalive.C)
	}))

	return nil
}

// flushWriter is the write surface streamTallies needs. *bufio.Writer
// satisfies it in production.
type flushWriter interface {
	io.Writer
	Flush() error
}

// streamTallies writes the snapshot as the subscriber's first frame, then
// forwards delta frames until the channel closes or a write to the peer
// fails. Keepalive ticks emit SSE comment lines between frames.
func streamTallies(w flushWriter, initial model.TallyFrame, frames <-chan model.TallyFrame, keepalive <-chan time.Time) {
	if err := writeFrame(w, initial); err != nil {
		return
	}

	for {
		select {
		case frame, ok := <-frames:
			if !ok {
				return
			}
			if err := writeFrame(w, frame); err != nil {
				return
			}
		case <-keepalive:
			if _, err := io.WriteString(w, ": keepalive\n\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}
}

func writeFrame(w flushWriter, frame model.TallyFrame) error {
	b, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
		return err
	}
	return w.Flush()
}
