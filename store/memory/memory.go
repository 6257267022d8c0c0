// Package memory provides in-memory collaborator implementations for tests
// and for embedders without a real message store behind the encoder.
package memory

import (
	"strconv"

	"github.com/rbaliyan/mboxevent/store"
)

// Mailbox is a value-type store.Mailbox. Populate the fields and pass a
// pointer wherever the encoder wants a mailbox.
type Mailbox struct {
	Path         string
	ID           string
	User         string
	ACLString    string
	Kind         store.MailboxType
	SpecialUses  []string
	Validity     uint32
	LastAssigned uint32
	Messages     uint32
	UnseenCount  uint32
	Convs        uint64
	ConvsUnseen  uint64
	Count        store.Counters
	Policy       store.NotifyPolicy
	TopLevel     bool
}

func (m *Mailbox) Name() string                     { return m.Path }
func (m *Mailbox) UniqueID() string                 { return m.ID }
func (m *Mailbox) Owner() string                    { return m.User }
func (m *Mailbox) ACL() string                      { return m.ACLString }
func (m *Mailbox) Type() store.MailboxType          { return m.Kind }
func (m *Mailbox) SpecialUse() []string             { return m.SpecialUses }
func (m *Mailbox) UIDValidity() uint32              { return m.Validity }
func (m *Mailbox) LastUID() uint32                  { return m.LastAssigned }
func (m *Mailbox) Exists() uint32                   { return m.Messages }
func (m *Mailbox) Unseen() uint32                   { return m.UnseenCount }
func (m *Mailbox) ConvExists() uint64               { return m.Convs }
func (m *Mailbox) ConvUnseen() uint64               { return m.ConvsUnseen }
func (m *Mailbox) Counters() store.Counters         { return m.Count }
func (m *Mailbox) NotifyPolicy() store.NotifyPolicy { return m.Policy }
func (m *Mailbox) IsTopLevel() bool                 { return m.TopLevel }

// Record is a value-type store.Record.
type Record struct {
	MsgUID     uint32
	MsgSize    int64
	HdrSize    int64
	CID        uint64
	MsgModseq  uint64
	MsgID      string
	Env        []byte
	BodyStruct []byte
}

func (r *Record) UID() uint32            { return r.MsgUID }
func (r *Record) Size() int64            { return r.MsgSize }
func (r *Record) HeaderSize() int64      { return r.HdrSize }
func (r *Record) ConversationID() uint64 { return r.CID }
func (r *Record) Modseq() uint64         { return r.MsgModseq }
func (r *Record) MessageID() string      { return r.MsgID }
func (r *Record) Envelope() []byte       { return r.Env }
func (r *Record) BodyStructure() []byte  { return r.BodyStruct }

// Quota is a value-type store.Quota. Limits of zero-value entries are
// treated as unset.
type Quota struct {
	RootName     string
	StorageLimit *int64
	StorageUsed  int64
	MessageLimit *int64
	MessageUsed  int64
}

func (q *Quota) Root() string { return q.RootName }

func (q *Quota) Limit(res store.QuotaResource) (int64, bool) {
	switch res {
	case store.QuotaStorage:
		if q.StorageLimit == nil {
			return 0, false
		}
		return *q.StorageLimit, true
	case store.QuotaMessage:
		if q.MessageLimit == nil {
			return 0, false
		}
		return *q.MessageLimit, true
	}
	return 0, false
}

func (q *Quota) Used(res store.QuotaResource) int64 {
	switch res {
	case store.QuotaStorage:
		return q.StorageUsed
	case store.QuotaMessage:
		return q.MessageUsed
	}
	return 0
}

// DAVEntry is one resolved DAV resource.
type DAVEntry struct {
	Resource string
	UID      string
}

// DAVResolver resolves DAV resources from static maps keyed by
// "<mailbox unique id>/<message uid>".
type DAVResolver struct {
	Calendar    map[string]DAVEntry
	Addressbook map[string]DAVEntry
}

func davKey(m store.Mailbox, uid uint32) string {
	return m.UniqueID() + "/" + strconv.FormatUint(uint64(uid), 10)
}

func (d *DAVResolver) CalendarResource(m store.Mailbox, uid uint32) (string, string, bool) {
	e, ok := d.Calendar[davKey(m, uid)]
	return e.Resource, e.UID, ok
}

func (d *DAVResolver) AddressbookResource(m store.Mailbox, uid uint32) (string, string, bool) {
	e, ok := d.Addressbook[davKey(m, uid)]
	return e.Resource, e.UID, ok
}
