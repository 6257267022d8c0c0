package mboxevent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rbaliyan/event/v3"
)

// EventNameNotification is the event published for every rendered
// notification document.
const EventNameNotification = "mboxevent.notification"

// Notification is the payload handed to subscribers: the fixed channel tag,
// the notification's wire name, the rendered JSON document, and the
// originating user identity.
type Notification struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	User    string          `json:"user"`
}

// ServiceEvents provides access to per-notifier event instances. Each
// notifier creates its own events bound to its own event bus, enabling
// independent routing and parallel testing.
//
// Subscribe to rendered notifications:
//
//	n.Events().Notification.Subscribe(ctx, handler)
type ServiceEvents struct {
	// Notification is published for every rendered notification document.
	Notification event.Event[Notification]
}

// newServiceEvents creates per-notifier event instances with a unique name prefix.
func newServiceEvents(namePrefix string) *ServiceEvents {
	return &ServiceEvents{
		Notification: event.New[Notification](namePrefix + "." + EventNameNotification),
	}
}

// registerServiceEvents registers per-notifier events with the given bus.
func registerServiceEvents(ctx context.Context, bus *event.Bus, events *ServiceEvents) error {
	if err := event.Register(ctx, bus, events.Notification); err != nil {
		return fmt.Errorf("register Notification: %w", err)
	}
	return nil
}
