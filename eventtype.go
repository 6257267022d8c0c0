package mboxevent

import "fmt"

// Kind identifies a single notification kind.
//
// Kinds are a closed set: every value this package constructs is one of the
// constants below. The only composite server action, a new message that also
// fires a calendar alarm, has its own variant (KindMessageNewAlarm) rather
// than being an OR of two kinds.
type Kind int

const (
	// KindCancelled marks an event that must be skipped at flush time and
	// never encoded. Events are cancelled cooperatively (failed login,
	// policy-excluded mailbox); there is no other cancellation concept.
	KindCancelled Kind = iota

	// Message events.
	KindMessageAppend
	KindMessageExpire
	KindMessageExpunge
	KindMessageNew
	KindMessageCopy
	KindMessageMove

	// Flag events. MessageRead and MessageTrash are never accumulated
	// directly; they are produced by flush-time splitting of FlagsSet.
	KindFlagsSet
	KindFlagsClear
	KindMessageRead
	KindMessageTrash

	// Mailbox lifecycle events.
	KindMailboxCreate
	KindMailboxDelete
	KindMailboxRename

	// Subscription events.
	KindMailboxSubscribe
	KindMailboxUnsubscribe

	// Quota events.
	KindQuotaExceed
	KindQuotaWithin
	KindQuotaChange

	// ACL events.
	KindACLChange

	// Access events.
	KindLogin
	KindLogout

	// Calendar events.
	KindCalendarAlarm

	// KindMessageNewAlarm is the one allowed combination: a MessageNew
	// delivery that simultaneously reports a calendar alarm. It encodes
	// under the MessageNew wire name with the calendar parameter set.
	KindMessageNewAlarm
)

// Category groups related kinds under one enable/disable toggle.
type Category int

const (
	CategoryNone Category = iota
	CategoryMessage
	CategoryFlags
	CategoryMailbox
	CategorySubscription
	CategoryQuota
	CategoryACL
	CategoryAccess
	CategoryCalendar
)

// categories maps every kind to its category. KindMessageNewAlarm is
// resolved specially in categoryEnabled (either Message or Calendar
// enables it).
var categories = map[Kind]Category{
	KindMessageAppend:      CategoryMessage,
	KindMessageExpire:      CategoryMessage,
	KindMessageExpunge:     CategoryMessage,
	KindMessageNew:         CategoryMessage,
	KindMessageCopy:        CategoryMessage,
	KindMessageMove:        CategoryMessage,
	KindFlagsSet:           CategoryFlags,
	KindFlagsClear:         CategoryFlags,
	KindMessageRead:        CategoryFlags,
	KindMessageTrash:       CategoryFlags,
	KindMailboxCreate:      CategoryMailbox,
	KindMailboxDelete:      CategoryMailbox,
	KindMailboxRename:      CategoryMailbox,
	KindMailboxSubscribe:   CategorySubscription,
	KindMailboxUnsubscribe: CategorySubscription,
	KindQuotaExceed:        CategoryQuota,
	KindQuotaWithin:        CategoryQuota,
	KindQuotaChange:        CategoryQuota,
	KindACLChange:          CategoryACL,
	KindLogin:              CategoryAccess,
	KindLogout:             CategoryAccess,
	KindCalendarAlarm:      CategoryCalendar,
	KindMessageNewAlarm:    CategoryMessage,
}

// kindNames maps kinds to their canonical wire names. Private extensions
// carry the vnd.cmu prefix. KindMessageNewAlarm deliberately shares the
// MessageNew wire name.
var kindNames = map[Kind]string{
	KindMessageAppend:      "MessageAppend",
	KindMessageExpire:      "MessageExpire",
	KindMessageExpunge:     "MessageExpunge",
	KindMessageNew:         "MessageNew",
	KindMessageCopy:        "vnd.cmu.MessageCopy",
	KindMessageMove:        "vnd.cmu.MessageMove",
	KindFlagsSet:           "FlagsSet",
	KindFlagsClear:         "FlagsClear",
	KindMessageRead:        "MessageRead",
	KindMessageTrash:       "MessageTrash",
	KindMailboxCreate:      "MailboxCreate",
	KindMailboxDelete:      "MailboxDelete",
	KindMailboxRename:      "MailboxRename",
	KindMailboxSubscribe:   "MailboxSubscribe",
	KindMailboxUnsubscribe: "MailboxUnSubscribe",
	KindQuotaExceed:        "QuotaExceed",
	KindQuotaWithin:        "QuotaWithin",
	KindQuotaChange:        "vnd.cmu.QuotaChange",
	KindACLChange:          "AclChange",
	KindLogin:              "Login",
	KindLogout:             "Logout",
	KindCalendarAlarm:      "CalendarAlarm",
	KindMessageNewAlarm:    "MessageNew",
}

// Category returns the category a kind belongs to.
func (k Kind) Category() Category {
	return categories[k]
}

// WireName returns the canonical notification name for a kind.
// An unmapped kind is a programming error, not a runtime condition.
func (k Kind) WireName() string {
	name, ok := kindNames[k]
	if !ok {
		panic(fmt.Sprintf("mboxevent: no wire name for kind %d", int(k)))
	}
	return name
}

// String implements fmt.Stringer for logging and diagnostics.
func (k Kind) String() string {
	if k == KindCancelled {
		return "Cancelled"
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// isMessageNewOrAppend reports whether the kind carries a single message
// addressed by a UID embedded in the URI rather than a uidset parameter.
func (k Kind) isMessageNewOrAppend() bool {
	return k == KindMessageNew || k == KindMessageAppend || k == KindMessageNewAlarm
}

// hasCalendarParams reports whether the calendar rule table applies.
func (k Kind) hasCalendarParams() bool {
	return k == KindCalendarAlarm || k == KindMessageNewAlarm
}
