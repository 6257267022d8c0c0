// Package mboxevent renders mailbox server actions as structured
// notification documents and hands them to a pub/sub delivery sink.
//
// It models RFC 5423-style "Message event" notifications plus private
// extensions: message delivery, flag changes, mailbox lifecycle, quota
// crossings, ACL edits, login/logout, and calendar alarms. Each server
// operation accumulates events through a Session and flushes them once at
// the end; flushing reorders, validates, splits and encodes the queue and
// publishes every finished document.
//
// # Basic Usage
//
//	cfg, err := mboxevent.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	n, err := mboxevent.NewNotifier(
//	    mboxevent.WithConfig(cfg),
//	    mboxevent.WithServiceName("imap"),
//	    mboxevent.WithServerFQDN("mail.example.com"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := n.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer n.Close(ctx)
//
//	// per server operation
//	s := n.Session("bob")
//	e := s.Add(mboxevent.KindMessageNew)
//	e.ExtractRecord(mbox, rec)
//	e.ExtractMailbox(mbox)
//	s.Flush(ctx)
//
// Session.Add returns nil when the kind's category is disabled, and every
// Event method tolerates a nil receiver, so call sites never branch on
// whether notification is active.
//
// # Collaborators
//
// The store package defines the read-only contracts the encoder consumes
// (mailbox identity, record metadata, quota usage, DAV resolution);
// store/memory provides in-memory implementations for tests and embedders.
//
// # Delivery
//
// Rendered documents go to a Sink. The default sink publishes a typed
// Notification on a per-notifier event bus using the
// github.com/rbaliyan/event/v3 library, which supports multiple transports
// (Redis Streams, NATS, Kafka, in-memory channel):
//
//	n, err := mboxevent.NewNotifier(
//	    mboxevent.WithConfig(cfg),
//	    mboxevent.WithRedisClient(redisClient),
//	)
//
// Subscribe via the Events() method after Connect():
//
//	n.Events().Notification.Subscribe(ctx, handler)
//
// Delivery is best-effort fire-and-forget: this package performs a single
// hand-off per notification and never retries.
package mboxevent
