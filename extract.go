package mboxevent

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rbaliyan/mboxevent/store"
)

// midPlaceholder substitutes for a missing Message-ID so midset stays
// aligned 1:1 with uidset additions.
const midPlaceholder = "NIL"

// hostOf returns the host part of a composite "host;port" address.
func hostOf(addr string) string {
	if i := strings.IndexByte(addr, ';'); i >= 0 {
		return addr[:i]
	}
	return addr
}

// imapURI builds the canonical resource identifier for a mailbox on a host.
// user and mailbox may be empty.
func imapURI(user, host, mailbox string) string {
	u := url.URL{Scheme: "imap", Host: host}
	if user != "" {
		u.User = url.User(user)
	}
	if mailbox != "" {
		u.Path = "/" + mailbox
	}
	return u.String()
}

// SetAccess records the server/client endpoints and authenticated user for
// a Login or Logout event, and builds the canonical URI for the target.
// A Logout event with no authenticated user is cancelled: the session never
// logged in, so no logout is reported.
func (e *Event) SetAccess(serverAddr, clientAddr, user, mailboxName string) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if e.kind == KindLogout && user == "" {
		e.Cancel()
		return
	}
	e.set(ParamServerAddress, StringValue(serverAddr))
	e.set(ParamClientAddress, StringValue(clientAddr))
	e.set(ParamUser, StringValue(user))
	e.set(ParamURI, StringValue(imapURI(user, hostOf(serverAddr), mailboxName)))
}

// SetACL records an ACL change. A nil rights value still marks the rights
// parameter filled (with an empty value): that signals removal of the
// subject's rights, which is distinct from rights never being reported.
func (e *Event) SetACL(subject string, rights *string) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	e.set(ParamACLSubject, StringValue(subject))
	if rights != nil {
		e.set(ParamACLRights, StringValue(*rights))
	} else {
		e.set(ParamACLRights, StringValue(""))
	}
}

// ExtractRecord accumulates one message record into the event. Repeated
// calls within one event build up a bulk batch: UIDs aggregate into uidset,
// message-ids into midset, and modseq stays filled only while the batch
// holds a single message.
func (e *Event) ExtractRecord(m store.Mailbox, r store.Record) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if e.uidset == nil {
		e.uidset = &UIDSet{}
	}
	if e.uidset.Add(r.UID()) {
		mid := r.MessageID()
		if mid == "" {
			mid = midPlaceholder
		}
		e.midset = append(e.midset, mid)
	}
	switch e.uidset.Len() {
	case 1:
		e.set(ParamModseq, IntValue(int64(r.Modseq())))
	default:
		e.unset(ParamModseq)
	}

	e.set(ParamMessageSize, IntValue(r.Size()))
	e.set(ParamConversationID, StringValue(fmt.Sprintf("%016x", r.ConversationID())))
	if env := r.Envelope(); len(env) > 0 {
		e.set(ParamEnvelope, StringValue(string(env)))
	}
	if bs := r.BodyStructure(); len(bs) > 0 {
		e.set(ParamBodyStructure, StringValue(string(bs)))
	}

	e.extractDAV(m, r.UID())
}

// extractDAV fills the DAV resource filename and underlying UID for
// calendar and address-book mailboxes, when a resolver is available.
func (e *Event) extractDAV(m store.Mailbox, uid uint32) {
	dav := e.s.n.dav
	if dav == nil {
		return
	}
	var resource, davUID string
	var ok bool
	switch m.Type() {
	case store.TypeCalendar:
		resource, davUID, ok = dav.CalendarResource(m, uid)
	case store.TypeAddressbook:
		resource, davUID, ok = dav.AddressbookResource(m, uid)
	default:
		return
	}
	if !ok {
		return
	}
	e.set(ParamDAVFilename, StringValue(resource))
	e.set(ParamDAVUID, StringValue(davUID))
}

// ExtractCopiedRecord accumulates the source record of a copy/move. The
// first call allocates the old-UID set and records the old mailbox
// identity; later calls only append the UID.
func (e *Event) ExtractCopiedRecord(m store.Mailbox, r store.Record) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if e.oldUidset == nil {
		e.oldUidset = &UIDSet{}
		e.ExtractOldMailbox(m)
	}
	e.oldUidset.Add(r.UID())
}

// ExtractContent fills messageContent with the byte range chosen by the
// configured inclusion mode. In standard mode a message over the truncation
// threshold is excluded entirely and the parameter stays unfilled.
func (e *Event) ExtractContent(r store.Record, msg []byte) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	cfg := e.s.n.cfg
	offset, n, ok := contentRange(cfg.ContentInclusion, cfg.ContentTruncation, r.Size(), r.HeaderSize())
	if !ok {
		return
	}
	// clamp to what the caller actually handed us
	if offset > int64(len(msg)) {
		offset = int64(len(msg))
	}
	if offset+n > int64(len(msg)) {
		n = int64(len(msg)) - offset
	}
	e.set(ParamMessageContent, StringValue(string(msg[offset:offset+n])))
}

// ExtractQuota fills limit and usage for one quota resource. The first call
// on an event also records the quota root's URI and owning user.
func (e *Event) ExtractQuota(q store.Quota, res store.QuotaResource) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	switch res {
	case store.QuotaStorage:
		if limit, ok := q.Limit(res); ok {
			e.set(ParamDiskQuota, IntValue(limit))
		}
		e.set(ParamDiskUsed, IntValue(q.Used(res)))
	case store.QuotaMessage:
		if limit, ok := q.Limit(res); ok {
			e.set(ParamMaxMessages, IntValue(limit))
		}
		e.set(ParamMessages, IntValue(q.Used(res)))
	}
	if !e.filled(ParamURI) {
		root := q.Root()
		e.set(ParamURI, StringValue(imapURI("", e.s.n.serverFQDN, root)))
		if user := userOfQuotaRoot(root); user != "" {
			e.set(ParamUser, StringValue(user))
		}
	}
}

// userOfQuotaRoot derives the owning user from a quota root identity like
// "user/bob" or "user.bob". Shared roots yield "".
func userOfQuotaRoot(root string) string {
	rest, ok := strings.CutPrefix(root, "user")
	if !ok || rest == "" {
		return ""
	}
	if rest[0] != '/' && rest[0] != '.' {
		return ""
	}
	return rest[1:]
}

// SetNumUnseen fills the unseen count. Pass a negative count to have it
// computed from the mailbox.
func (e *Event) SetNumUnseen(m store.Mailbox, count int) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	if count < 0 {
		count = int(m.Unseen())
	}
	e.set(ParamUnseenMessages, IntValue(int64(count)))
}

// ExtractMailbox fills the target mailbox's identity and counters. It is
// idempotent per event: once uri is filled, later calls are no-ops. When
// the mailbox's notification policy or the configured special-use exclusion
// list rules the mailbox out, the event is cancelled instead.
//
// For MessageNew and MessageAppend the single message UID is embedded into
// the URI and the uidset is discarded; those kinds never carry a separate
// uidset parameter.
func (e *Event) ExtractMailbox(m store.Mailbox) {
	if e == nil || e.kind == KindCancelled || e.filled(ParamURI) {
		return
	}

	policy := m.NotifyPolicy()
	if policy.DisableFolder || (policy.DisableSubfolders && !m.IsTopLevel()) {
		e.Cancel()
		return
	}
	if e.s.n.cfg.specialUseExcluded(m.SpecialUse()) {
		e.Cancel()
		return
	}

	uri := imapURI(m.Owner(), e.s.n.serverFQDN, m.Name())
	if e.kind.isMessageNewOrAppend() && e.uidset.Len() > 0 {
		uri += fmt.Sprintf(";UIDVALIDITY=%d/;UID=%d", m.UIDValidity(), e.uidset.First())
		e.uidset = nil
	}
	e.set(ParamURI, StringValue(uri))

	e.set(ParamMailboxID, StringValue(m.UniqueID()))
	e.set(ParamMailboxACL, StringValue(m.ACL()))
	e.set(ParamMbtype, StringValue(string(m.Type())))
	e.set(ParamMessages, IntValue(int64(m.Exists())))
	e.set(ParamUidnext, IntValue(int64(m.LastUID())+1))
	e.set(ParamConvExists, IntValue(int64(m.ConvExists())))
	e.set(ParamConvUnseen, IntValue(int64(m.ConvUnseen())))
}

// ExtractOldMailbox records the source mailbox identity for renames and for
// the first copied record of a copy/move.
func (e *Event) ExtractOldMailbox(m store.Mailbox) {
	if e == nil || e.kind == KindCancelled {
		return
	}
	e.set(ParamOldMailboxID, StringValue(m.UniqueID()))
}
