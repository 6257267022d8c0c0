package mboxevent

import (
	"context"
	"encoding/json"
)

// Sink is the external delivery interface. Deliver performs a single
// best-effort hand-off of a rendered notification document; this package
// never retries and never inspects the result beyond error accounting.
type Sink interface {
	Deliver(ctx context.Context, channel string, payload []byte, user string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, channel string, payload []byte, user string) error

// Deliver implements Sink.
func (f SinkFunc) Deliver(ctx context.Context, channel string, payload []byte, user string) error {
	return f(ctx, channel, payload, user)
}

// busSink publishes rendered notifications on the notifier's event bus.
// It is the default sink when none is configured explicitly.
type busSink struct {
	events *ServiceEvents
}

func (b *busSink) Deliver(ctx context.Context, channel string, payload []byte, user string) error {
	return b.events.Notification.Publish(ctx, Notification{
		Channel: channel,
		Event:   eventNameOf(payload),
		Payload: append([]byte(nil), payload...),
		User:    user,
	})
}

// eventNameOf pulls the event name back out of a rendered document so
// subscribers can route without parsing the payload themselves.
func eventNameOf(payload []byte) string {
	var doc struct {
		Event string `json:"event"`
	}
	_ = json.Unmarshal(payload, &doc)
	return doc.Event
}
