// Package store defines the read-only collaborator contracts the event
// notification encoder consumes: mailbox identity and counters, message
// record metadata, quota usage, and DAV resource resolution.
//
// Implementations live elsewhere (a real message store, or store/memory for
// tests and embedders). Nothing in this package mutates the underlying
// storage; the encoder treats every interface here as a pure data source.
package store

// MailboxType identifies the kind of data a mailbox holds.
type MailboxType string

const (
	TypeEmail       MailboxType = "email"
	TypeCalendar    MailboxType = "calendar"
	TypeAddressbook MailboxType = "addressbook"
)

// Counters is the monotonic counters tuple a mailbox exposes.
type Counters struct {
	Version       int
	HighestModseq uint64
	MailModseq    uint64
	CalDAVModseq  uint64
	CardDAVModseq uint64
	UIDValidity   uint32
}

// NotifyPolicy is a mailbox's notification opt-out state.
type NotifyPolicy struct {
	// DisableFolder suppresses notifications for this folder.
	DisableFolder bool
	// DisableSubfolders suppresses notifications for every folder below
	// the top level of this hierarchy.
	DisableSubfolders bool
}

// Mailbox exposes a mailbox's canonical identity and counters.
type Mailbox interface {
	// Name returns the canonical mailbox path.
	Name() string
	// UniqueID returns the stable mailbox identifier.
	UniqueID() string
	// Owner returns the owning user, or "" for shared mailboxes.
	Owner() string
	// ACL returns the mailbox ACL string.
	ACL() string
	// Type returns the mailbox data type.
	Type() MailboxType
	// SpecialUse returns special-use attributes (e.g. "\Sent", "\Junk").
	SpecialUse() []string
	// UIDValidity returns the mailbox UID validity value.
	UIDValidity() uint32
	// LastUID returns the last assigned message UID.
	LastUID() uint32
	// Exists returns the message count.
	Exists() uint32
	// Unseen returns the unseen message count.
	Unseen() uint32
	// ConvExists returns the conversation count.
	ConvExists() uint64
	// ConvUnseen returns the unseen conversation count.
	ConvUnseen() uint64
	// Counters returns the monotonic counters tuple.
	Counters() Counters
	// NotifyPolicy returns the mailbox's notification opt-out state.
	NotifyPolicy() NotifyPolicy
	// IsTopLevel reports whether the mailbox is at the top of its
	// hierarchy (the subfolder opt-out does not apply to it).
	IsTopLevel() bool
}

// Record exposes one message record's metadata. Envelope and BodyStructure
// return opaque cached byte ranges; nil means not cached.
type Record interface {
	UID() uint32
	Size() int64
	HeaderSize() int64
	ConversationID() uint64
	Modseq() uint64
	// MessageID returns the Message-ID header value, or "" if absent.
	MessageID() string
	Envelope() []byte
	BodyStructure() []byte
}

// QuotaResource selects a quota resource kind.
type QuotaResource int

const (
	// QuotaStorage is the disk usage resource, in bytes.
	QuotaStorage QuotaResource = iota
	// QuotaMessage is the message count resource.
	QuotaMessage
)

// Quota exposes per-resource limit and usage for one quota root.
type Quota interface {
	// Root returns the quota root identity string.
	Root() string
	// Limit returns the configured limit for a resource and whether one
	// is set at all.
	Limit(res QuotaResource) (int64, bool)
	// Used returns the current usage for a resource.
	Used(res QuotaResource) int64
}

// DAVResolver looks up the DAV resource backing a message in a
// calendar or address-book mailbox. Present only when DAV support is
// available; the encoder tolerates a nil resolver.
type DAVResolver interface {
	// CalendarResource returns the resource filename and stored iCalendar
	// UID for a message in a calendar mailbox.
	CalendarResource(mailbox Mailbox, uid uint32) (resource, davUID string, ok bool)
	// AddressbookResource returns the resource filename and stored vCard
	// UID for a message in an address-book mailbox.
	AddressbookResource(mailbox Mailbox, uid uint32) (resource, davUID string, ok bool)
}
