package mboxevent

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	flagSeen    = `\Seen`
	flagDeleted = `\Deleted`
)

// timestampLayout renders capture times as ISO-8601 with milliseconds and a
// numeric zone offset.
const timestampLayout = "2006-01-02T15:04:05.000-07:00"

func containsFold(flags []string, flag string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

func removeFold(flags []string, flag string) []string {
	for i, f := range flags {
		if strings.EqualFold(f, flag) {
			return append(flags[:i:i], flags[i+1:]...)
		}
	}
	return flags
}

// Flush drains the session queue: reorders, validates, finalizes, splits
// and hands every finished notification to the delivery sink. The queue is
// released afterwards whether or not every event was encoded.
//
// Delivery is best-effort fire-and-forget by default: sink failures are
// reported through the failure handler and Flush returns nil. With
// WithSinkErrorsFatal(true) the first failure aborts the flush and is
// returned as a SinkError.
func (s *Session) Flush(ctx context.Context) error {
	if s == nil || len(s.queue) == 0 {
		return nil
	}
	queue := s.queue
	s.queue = nil

	n := s.n
	if err := n.flushSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer n.flushSem.Release(1)

	start := time.Now()
	ctx, endSpan := n.otel.startSpan(ctx, "mboxevent.Flush")

	// Clearing \Seen changes the unseen count later events report, so a
	// FlagsClear carrying \Seen moves ahead of an adjacent preceding
	// FlagsSet. Only the first matching adjacent pair is swapped; longer
	// chains are deliberately left alone.
	for i := 0; i+1 < len(queue); i++ {
		if queue[i].kind == KindFlagsSet &&
			queue[i+1].kind == KindFlagsClear &&
			containsFold(queue[i+1].flagNames, flagSeen) {
			queue[i], queue[i+1] = queue[i+1], queue[i]
			break
		}
	}

	for _, e := range queue {
		if e.kind == KindCancelled {
			n.otel.countDropped(ctx, "cancelled")
			continue
		}
		if !e.viable() {
			n.logger.Debug("skipping incomplete event", "event", e.kind.String())
			n.otel.countDropped(ctx, "not_viable")
			continue
		}
		e.finalize()
		if err := s.emitAll(ctx, e); err != nil {
			n.otel.recordFlush(ctx, time.Since(start), err)
			endSpan(err)
			return err
		}
	}

	n.otel.recordFlush(ctx, time.Since(start), nil)
	endSpan(nil)
	return nil
}

// viable reports whether the event accumulated enough state to encode.
func (e *Event) viable() bool {
	switch e.kind.Category() {
	case CategoryMessage, CategoryFlags:
		if e.kind.isMessageNewOrAppend() {
			return e.filled(ParamURI)
		}
		return e.uidset.Len() > 0
	case CategoryQuota:
		return e.filled(ParamDiskQuota) || e.filled(ParamMaxMessages)
	}
	return true
}

// finalize fills the computed parameters every finished notification
// carries: service identity, capture timestamp, and the rendered UID and
// message-id sets.
func (e *Event) finalize() {
	n := e.s.n
	e.set(ParamService, StringValue(n.serviceName))
	e.set(ParamServerFQDN, StringValue(n.serverFQDN))
	e.set(ParamTimestamp, StringValue(e.time.Format(timestampLayout)))
	if e.uidset.Len() > 0 {
		e.set(ParamUidset, StringValue(e.uidset.String()))
	}
	if len(e.midset) > 0 {
		e.set(ParamMidset, ListValue(e.midset))
	}
	if e.oldUidset.Len() > 0 {
		e.set(ParamOldUidset, StringValue(e.oldUidset.String()))
	}
}

// emitAll runs the split loop: one pass per encoded message. A FlagsSet
// event carrying \Deleted emits MessageTrash first, one carrying \Seen
// emits MessageRead, and whatever flags remain emit in a single residual
// message under the original kind. The accumulated event is not mutated;
// the loop works on its own copy of the flag list.
func (s *Session) emitAll(ctx context.Context, e *Event) error {
	flags := append([]string(nil), e.flagNames...)
	for {
		emitKind := e.kind
		var flagParam string
		if len(flags) > 0 {
			switch {
			case e.kind == KindFlagsSet && containsFold(flags, flagDeleted):
				emitKind = KindMessageTrash
				flags = removeFold(flags, flagDeleted)
			case e.kind == KindFlagsSet && containsFold(flags, flagSeen):
				emitKind = KindMessageRead
				flags = removeFold(flags, flagSeen)
			default:
				flagParam = strings.Join(flags, " ")
				flags = nil
			}
		}

		if s.n.verify {
			s.checkComplete(emitKind, e, flagParam)
		}
		if err := s.deliver(ctx, emitKind, e, flagParam); err != nil {
			return err
		}
		if len(flags) == 0 {
			return nil
		}
	}
}

// checkComplete reports expected-but-unfilled parameters for an emission.
// This is a developer-facing consistency check: violations are logged and
// delivery proceeds regardless. modseq is exempt because its fill state
// legitimately varies with batch size.
func (s *Session) checkComplete(emitKind Kind, e *Event, flagParam string) {
	var missing []string
	for p := ParamID(0); p < numParams; p++ {
		if p == ParamModseq || !s.n.gating.expected(emitKind, p) {
			continue
		}
		if p == ParamFlagNames {
			if flagParam == "" {
				missing = append(missing, p.Key())
			}
			continue
		}
		if !e.filled(p) {
			missing = append(missing, p.Key())
		}
	}
	if len(missing) > 0 {
		s.n.logger.Debug("event missing expected parameters",
			"event", emitKind.WireName(),
			"missing", strings.Join(missing, " "))
	}
}

// deliver encodes one emission and hands it to the sink.
func (s *Session) deliver(ctx context.Context, emitKind Kind, e *Event, flagParam string) error {
	payload := encodeDocument(emitKind, e, flagParam)

	user := s.user
	if v, ok := e.param(ParamUser); ok {
		user = v.String()
	}

	n := s.n
	err := n.sink.Deliver(ctx, ChannelEvent, payload, user)
	n.otel.countNotification(ctx, attribute.String("event", emitKind.WireName()), err)
	if err == nil {
		return nil
	}
	if n.opts.sinkErrorsFatal {
		return &SinkError{Event: emitKind.WireName(), Err: err}
	}
	n.opts.safeSinkFailure(emitKind.WireName(), err)
	return nil
}
