package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/thenvoi/mcp-server/internal/protocol"
)

// The split binding: a long-lived SSE stream carries every
// server-to-client envelope, and a separate POST endpoint keyed by
// session id carries client-to-server envelopes. The POST only
// acknowledges receipt; results always come back on the stream.

// handleSSE serves GET /sse. The first event on the stream is an
// "endpoint" event naming the POST URL for this session; everything
// after is "message" events with response envelopes.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	log := s.log.Sub("sse")

	sess := s.sessions.Register()
	defer s.sessions.Deregister(sess.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: /messages/?session_id=%s\n\n", sess.ID)
	flusher.Flush()

	log.Debug().Str("sessionId", sess.ID).Str("remote", r.RemoteAddr).Msg("stream opened")

	// One worker per session keeps envelope processing strictly
	// ordered; this handler goroutine is the sink's single writer.
	go s.sessionWorker(r.Context(), sess)

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("sessionId", sess.ID).Msg("stream closed")
			return
		case resp := <-sess.Out():
			data, err := json.Marshal(resp)
			if err != nil {
				log.Error().Err(err).Msg("encoding response")
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// sessionWorker drains one session's inbound queue in order, handing
// each response to the session's sink.
func (s *Server) sessionWorker(ctx context.Context, sess *Session) {
	for {
		select {
		case <-sess.Done():
			return
		case <-ctx.Done():
			return
		case req := <-sess.queue:
			// A dispatched handler runs to completion even if the
			// client goes away mid-call; Deliver drops the response
			// once the sink is gone.
			if resp := s.Handle(ctx, sess, req); resp != nil {
				sess.Deliver(*resp)
			}
		}
	}
}

// handleMessages serves POST /messages/?session_id=... for the split
// binding. The body is one request envelope; the HTTP response only
// acknowledges receipt.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	log := s.log.Sub("sse")

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeJSONError(w, http.StatusBadRequest, "session_id query parameter is required")
		return
	}

	// Unknown or expired sessions are rejected here, before the
	// dispatcher ever sees the envelope.
	sess, ok := s.sessions.Lookup(sessionID)
	if !ok {
		log.Debug().Str("sessionId", sessionID).Msg("unknown session")
		writeJSONError(w, http.StatusNotFound, "session not found")
		return
	}

	var req protocol.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFrameSize)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid envelope: "+err.Error())
		return
	}

	switch err := sess.Enqueue(req); {
	case errors.Is(err, ErrBacklogFull):
		writeJSONError(w, http.StatusTooManyRequests, "too many pending requests")
		return
	case errors.Is(err, ErrDuplicateID):
		writeJSONError(w, http.StatusBadRequest, "correlation id already in flight")
		return
	case errors.Is(err, ErrSessionClosed):
		writeJSONError(w, http.StatusNotFound, "session not found")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
