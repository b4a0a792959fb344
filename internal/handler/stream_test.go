package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

// captureWriter collects SSE output in memory.
type captureWriter struct {
	bytes.Buffer
	flushes int
}

func (w *captureWriter) Flush() error {
	w.flushes++
	return nil
}

// brokenWriter simulates a peer that went away.
type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (brokenWriter) Flush() error              { return errors.New("connection reset") }

func decodeFrames(t *testing.T, raw string) []model.TallyFrame {
	t.Helper()
	var frames []model.TallyFrame
	for _, chunk := range strings.Split(raw, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || strings.HasPrefix(chunk, ":") {
			continue
		}
		payload, ok := strings.CutPrefix(chunk, "data: ")
		if !ok {
			t.Fatalf("unexpected SSE chunk %q", chunk)
		}
		var frame model.TallyFrame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			t.Fatalf("decode frame %q: %v", payload, err)
		}
		frames = append(frames, frame)
	}
	return frames
}

func TestStreamTallies_InitialFrameBeforeUpdates(t *testing.T) {
	w := &captureWriter{}
	frames := make(chan model.TallyFrame)

	done := make(chan struct{})
	go func() {
		defer close(done)
		streamTallies(w, model.TallyFrame{
			Type:        "initial",
			Contestants: []model.TallyEntry{{ID: "c1", Name: "Naledi", Votes: 10}},
		}, frames, nil)
	}()

	frames <- model.TallyFrame{Type: "update", Contestants: []model.TallyEntry{{ID: "c1", Votes: 11}}}
	frames <- model.TallyFrame{Type: "update", Contestants: []model.TallyEntry{{ID: "c2", Votes: 4}}}
	close(frames)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream loop did not stop after the frame channel closed")
	}

	got := decodeFrames(t, w.String())
	if len(got) != 3 {
		t.Fatalf("decoded %d frames, want 3", len(got))
	}
	if got[0].Type != "initial" {
		t.Errorf("first frame type = %q, want initial", got[0].Type)
	}
	if got[0].Contestants[0].Votes != 10 {
		t.Errorf("snapshot votes = %d, want 10", got[0].Contestants[0].Votes)
	}
	for i, frame := range got[1:] {
		if frame.Type != "update" {
			t.Errorf("frame %d type = %q, want update", i+1, frame.Type)
		}
	}
	if got[2].Contestants[0].ID != "c2" {
		t.Error("delta frames must arrive in broadcast order")
	}
}

func TestStreamTallies_KeepaliveCommentBetweenFrames(t *testing.T) {
	w := &captureWriter{}
	frames := make(chan model.TallyFrame)
	keepalive := make(chan time.Time)

	done := make(chan struct{})
	go func() {
		defer close(done)
		streamTallies(w, model.TallyFrame{Type: "initial"}, frames, keepalive)
	}()

	// Unbuffered sends below return only once the loop has consumed them,
	// so the output order is deterministic.
	keepalive <- time.Now()
	frames <- model.TallyFrame{Type: "update"}
	close(frames)
	<-done

	out := w.String()
	if !strings.Contains(out, ": keepalive\n\n") {
		t.Fatalf("output missing keepalive comment: %q", out)
	}
	got := decodeFrames(t, out)
	if len(got) != 2 || got[0].Type != "initial" || got[1].Type != "update" {
		t.Errorf("keepalive comments must not disturb frame order, got %+v", got)
	}
}

func TestStreamTallies_StopsWhenPeerGone(t *testing.T) {
	frames := make(chan model.TallyFrame)

	done := make(chan struct{})
	go func() {
		defer close(done)
		streamTallies(brokenWriter{}, model.TallyFrame{Type: "initial"}, frames, nil)
	}()

	// The loop must exit on the failed initial write even though the frame
	// channel is still open.
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream loop kept running after the peer write failed")
	}
}
