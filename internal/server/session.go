package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thenvoi/mcp-server/internal/logging"
	"github.com/thenvoi/mcp-server/internal/platform"
	"github.com/thenvoi/mcp-server/internal/protocol"
)

var (
	// ErrSessionClosed reports an envelope arriving after the session's
	// transport went away.
	ErrSessionClosed = errors.New("session closed")

	// ErrBacklogFull reports a session whose pending-request queue is at
	// its bound; the caller should back off.
	ErrBacklogFull = errors.New("too many pending requests")

	// ErrDuplicateID reports a correlation id already in flight on the
	// same session.
	ErrDuplicateID = errors.New("duplicate correlation id")
)

// Session is one logical client connection, regardless of binding. Its
// scope binds once, on the first envelope, and never changes. Inbound
// envelopes go through a bounded queue consumed by a single worker, so
// envelope N+1 never starts before N's response reached the sink.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	kind      platform.CredentialKind
	kindBound bool
	pending   map[any]struct{}
	closed    bool

	queue chan protocol.Request
	out   chan protocol.Response
	done  chan struct{}
	once  sync.Once
}

func newSession(id string, maxPending int) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		pending:   make(map[any]struct{}),
		queue:     make(chan protocol.Request, maxPending),
		out:       make(chan protocol.Response, maxPending),
		done:      make(chan struct{}),
	}
}

// BindKind binds the session's credential scope. Only the first call has
// any effect; the bound kind is returned either way.
func (s *Session) BindKind(kind platform.CredentialKind) platform.CredentialKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.kindBound {
		s.kind = kind
		s.kindBound = true
	}
	return s.kind
}

// Kind returns the bound credential scope, if any.
func (s *Session) Kind() (platform.CredentialKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind, s.kindBound
}

// Enqueue admits one inbound envelope to the session's queue. It rejects
// closed sessions, full queues, and correlation ids already in flight.
func (s *Session) Enqueue(req protocol.Request) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if !req.IsNotification() {
		key := correlationKey(req.ID)
		if _, inFlight := s.pending[key]; inFlight {
			s.mu.Unlock()
			return ErrDuplicateID
		}
		s.pending[key] = struct{}{}
	}
	s.mu.Unlock()

	select {
	case s.queue <- req:
		return nil
	default:
		s.clearPending(req.ID)
		return ErrBacklogFull
	}
}

// Deliver hands a response to the session's sink and releases its
// pending slot. Responses for a closed session are dropped: there is no
// one left to report to.
func (s *Session) Deliver(resp protocol.Response) {
	s.clearPending(resp.ID)
	select {
	case s.out <- resp:
	case <-s.done:
	}
}

// Out is the single-consumer stream of outbound envelopes for this
// session's transport writer.
func (s *Session) Out() <-chan protocol.Response { return s.out }

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close marks the session dead and releases all pending bookkeeping.
// Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.pending = make(map[any]struct{})
		s.mu.Unlock()
		close(s.done)
	})
}

// PendingCount returns the number of in-flight requests.
func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Session) clearPending(id any) {
	if id == nil {
		return
	}
	s.mu.Lock()
	delete(s.pending, correlationKey(id))
	s.mu.Unlock()
}

// correlationKey normalizes a JSON-RPC id for map keying: JSON numbers
// decode as float64 and strings as string, both comparable. Anything
// else is stringly-keyed to stay hashable.
func correlationKey(id any) any {
	switch v := id.(type) {
	case string, float64, bool, nil:
		return v
	default:
		return "unhashable"
	}
}

// SessionRegistry is the shared table of live sessions. Every mutation
// goes through its lock; generated identifiers are unique for the
// registry's whole lifetime, not merely among live sessions, so a stale
// id can never be misrouted to a newer connection.
type SessionRegistry struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	issued     map[string]bool
	maxPending int
	log        *logging.Logger
}

// NewSessionRegistry creates an empty registry. maxPending bounds each
// session's inbound queue.
func NewSessionRegistry(maxPending int, log *logging.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions:   make(map[string]*Session),
		issued:     make(map[string]bool),
		maxPending: maxPending,
		log:        log,
	}
}

// Register creates and registers a new session with a fresh identifier.
func (r *SessionRegistry) Register() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	for r.issued[id] {
		id = uuid.New().String()
	}
	r.issued[id] = true

	sess := newSession(id, r.maxPending)
	r.sessions[id] = sess
	r.log.Info().Str("sessionId", id).Msg("session registered")
	return sess
}

// Lookup returns a live session by id.
func (r *SessionRegistry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Deregister removes and closes a session. Closing releases the pending
// bookkeeping, so no correlation entries outlive the session.
func (r *SessionRegistry) Deregister(id string) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		sess.Close()
		r.log.Info().Str("sessionId", id).Msg("session deregistered")
	}
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll closes and removes every live session.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		sess.Close()
		delete(r.sessions, id)
	}
}
