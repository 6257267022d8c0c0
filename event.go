package mboxevent

import (
	"strings"
	"time"
)

// Event is one in-flight notification being accumulated during a server
// operation. Events are created through Session.Add, mutated by the
// extraction methods, and consumed by Session.Flush. Every event belongs to
// exactly one session queue from creation until the queue is drained.
//
// All mutation methods are safe to call on a nil *Event; they become no-ops.
// Session.Add returns nil when the kind's category is disabled, so call
// sites never need to branch on whether notification is active.
type Event struct {
	kind Kind
	// capture time; best-effort, rendered at flush
	time time.Time

	// sparse parameter map; presence of a key is the "filled" flag
	params map[ParamID]Value

	// UID accumulation for bulk operations
	uidset    *UIDSet
	oldUidset *UIDSet
	midset    []string

	// flag names for Flags events, deduplicated case-insensitively
	flagNames []string

	s *Session
}

// Kind returns the event's current kind.
func (e *Event) Kind() Kind {
	if e == nil {
		return KindCancelled
	}
	return e.kind
}

// Cancel marks the event so flush skips it without encoding.
func (e *Event) Cancel() {
	if e == nil {
		return
	}
	e.kind = KindCancelled
}

// set fills a parameter if gating expects it for the event's kind and the
// parameter is not already filled. Every extraction routine funnels through
// here, so the gating decision lives in exactly one place.
func (e *Event) set(p ParamID, v Value) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if !e.s.n.gating.expected(e.kind, p) {
		return
	}
	if _, ok := e.params[p]; ok {
		return
	}
	e.params[p] = v
}

// unset clears a parameter's filled state. Used where the contract calls
// for an explicit reset, such as modseq once a batch spans multiple
// messages.
func (e *Event) unset(p ParamID) {
	if e == nil {
		return
	}
	delete(e.params, p)
}

// filled reports whether a parameter has been filled.
func (e *Event) filled(p ParamID) bool {
	if e == nil {
		return false
	}
	_, ok := e.params[p]
	return ok
}

// param returns a filled parameter value.
func (e *Event) param(p ParamID) (Value, bool) {
	v, ok := e.params[p]
	return v, ok
}

// AddFlag appends a flag name for a Flags event. Duplicates (compared
// case-insensitively) and flags on the configured exclusion list are
// dropped.
func (e *Event) AddFlag(flag string) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if e.s.n.cfg.flagExcluded(flag) {
		return
	}
	for _, f := range e.flagNames {
		if strings.EqualFold(f, flag) {
			return
		}
	}
	e.flagNames = append(e.flagNames, flag)
}

// AddFlags appends multiple flag names.
func (e *Event) AddFlags(flags []string) {
	for _, f := range flags {
		e.AddFlag(f)
	}
}
