package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// writeSSEEvent writes one named server-sent event and flushes it.
func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// sseSetup negotiates streaming and writes the SSE headers.
func sseSetup(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported", codeInternal)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	return flusher, true
}

// GameEvents handles GET /api/v1/games/{id}/events: a server-sent event
// stream of everything that happens in the game. The stream opens with
// a snapshot so late joiners see the current position.
func (h *Handlers) GameEvents(w http.ResponseWriter, r *http.Request) {
	s, ok := h.getSession(w, r)
	if !ok {
		return
	}
	flusher, ok := sseSetup(w)
	if !ok {
		return
	}

	s.mu.Lock()
	snapshot := h.gameResponse(s, nil)
	s.mu.Unlock()
	if err := writeSSEEvent(w, flusher, "snapshot", snapshot); err != nil {
		return
	}

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	keepalive := time.NewTicker(25 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev := <-ch:
			if err := writeSSEEvent(w, flusher, string(ev.Kind()), ev); err != nil {
				return
			}
		}
	}
}

// SimulateStream handles GET /api/v1/simulate/stream: a self-play batch
// with per-game progress events, closing with a result event. Batch
// parameters come from the query string.
func (h *Handlers) SimulateStream(w http.ResponseWriter, r *http.Request) {
	req := simulateRequestFromQuery(r)

	if err := h.pool.Acquire(r.Context(), LaneSim); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", codeInternal)
		return
	}
	defer h.pool.Release(LaneSim)

	flusher, ok := sseSetup(w)
	if !ok {
		return
	}

	resp, err := runSimulation(r.Context(), req, func(p SimProgress) {
		writeSSEEvent(w, flusher, "progress", p)
	})
	if err != nil {
		writeSSEEvent(w, flusher, "error", ErrorResponse{Error: err.Error(), Code: codeInternal})
		return
	}
	writeSSEEvent(w, flusher, "result", resp)
}

func simulateRequestFromQuery(r *http.Request) SimulateRequest {
	q := r.URL.Query()
	var req SimulateRequest
	req.Games, _ = strconv.Atoi(q.Get("games"))
	req.Seed, _ = strconv.ParseInt(q.Get("seed"), 10, 64)
	req.White = q.Get("white")
	req.Black = q.Get("black")
	return req
}
