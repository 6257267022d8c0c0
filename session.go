package mboxevent

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-operation accumulator context: it owns the ordered
// queue of in-flight events one server operation builds up, and drains it
// exactly once via Flush. Sessions are not safe for concurrent use; each
// connection or operation gets its own.
type Session struct {
	n    *Notifier
	user string
	id   string

	// insertion-ordered queue; events are owned exclusively by it
	queue []*Event
}

// Session creates a per-operation accumulator for the given authenticated
// user (may be empty before login).
func (n *Notifier) Session(user string) *Session {
	return &Session{
		n:    n,
		user: user,
		id:   uuid.NewString(),
	}
}

// ID returns the session identifier reported on events.
func (s *Session) ID() string {
	return s.id
}

// SetUser records the authenticated user once login succeeds.
func (s *Session) SetUser(user string) {
	s.user = user
}

// Add constructs an event of the given kind and appends it to the session
// queue. It returns nil when notification is disabled globally or the
// kind's category is disabled; every Event method tolerates a nil receiver,
// so callers chain extraction calls without checking.
func (s *Session) Add(kind Kind) *Event {
	if s == nil || !s.n.IsConnected() {
		return nil
	}
	if !s.n.gating.categoryEnabled(kind) {
		return nil
	}

	e := &Event{
		kind:   kind,
		time:   time.Now(),
		params: make(map[ParamID]Value),
		s:      s,
	}

	// seed process and session identity per gating
	e.set(ParamPid, IntValue(int64(s.n.pid)))
	e.set(ParamSessionID, StringValue(s.id))
	if id := s.n.clientID.Load(); id != nil && *id != "" {
		e.set(ParamClientID, StringValue(*id))
	}

	s.queue = append(s.queue, e)
	return e
}

// Len returns the number of queued events.
func (s *Session) Len() int {
	if s == nil {
		return 0
	}
	return len(s.queue)
}
