package mboxevent

// ValueKind is the declared type of a parameter value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInteger
	ValueStringArray
)

// ParamID identifies one notification parameter. The numeric value is the
// parameter's position in the catalog, which is also its encode order.
type ParamID int

// Parameter identifiers, in catalog order.
const (
	ParamTimestamp ParamID = iota
	ParamService
	ParamServerFQDN
	ParamServerAddress
	ParamClientAddress
	ParamOldMailboxID
	ParamOldUidset
	ParamMailboxID
	ParamURI
	ParamModseq
	ParamDiskQuota
	ParamDiskUsed
	ParamMaxMessages
	ParamMessages
	ParamUnseenMessages
	ParamUidnext
	ParamUidset
	ParamMidset
	ParamFlagNames
	ParamPid
	ParamACLSubject
	ParamACLRights
	ParamUser
	ParamMessageSize
	ParamConversationID
	ParamConvExists
	ParamConvUnseen
	ParamMbtype
	ParamMailboxACL
	ParamDAVFilename
	ParamDAVUID
	ParamEnvelope
	ParamSessionID
	ParamBodyStructure
	ParamClientID
	ParamMessageContent

	// Calendar alarm parameters.
	ParamAlarmTime
	ParamAlarmRecipients
	ParamCalendarUserID
	ParamCalendarName
	ParamCalendarUID
	ParamCalendarAction
	ParamCalendarSummary
	ParamCalendarDescription
	ParamCalendarLocation
	ParamCalendarTimezone
	ParamCalendarStart
	ParamCalendarEnd
	ParamCalendarAllDay
	ParamAttendeeNames
	ParamAttendeeEmails
	ParamAttendeeStatus
	ParamCalendarOrganizer

	numParams // sentinel, keep last
)

// paramSpec describes one catalog entry.
type paramSpec struct {
	key  string
	kind ValueKind
}

// catalog is the static parameter table. Index is the ParamID; slice order
// is the wire encode order. Private extensions carry a vnd prefix.
var catalog = [numParams]paramSpec{
	ParamTimestamp:           {"timestamp", ValueString},
	ParamService:             {"service", ValueString},
	ParamServerFQDN:          {"serverFQDN", ValueString},
	ParamServerAddress:       {"serverAddress", ValueString},
	ParamClientAddress:       {"clientAddress", ValueString},
	ParamOldMailboxID:        {"oldMailboxID", ValueString},
	ParamOldUidset:           {"vnd.cmu.oldUidset", ValueString},
	ParamMailboxID:           {"mailboxID", ValueString},
	ParamURI:                 {"uri", ValueString},
	ParamModseq:              {"modseq", ValueInteger},
	ParamDiskQuota:           {"diskQuota", ValueInteger},
	ParamDiskUsed:            {"diskUsed", ValueInteger},
	ParamMaxMessages:         {"maxMessages", ValueInteger},
	ParamMessages:            {"messages", ValueInteger},
	ParamUnseenMessages:      {"vnd.cmu.unseenMessages", ValueInteger},
	ParamUidnext:             {"uidnext", ValueInteger},
	ParamUidset:              {"uidset", ValueString},
	ParamMidset:              {"vnd.cmu.midset", ValueStringArray},
	ParamFlagNames:           {"flagNames", ValueString},
	ParamPid:                 {"pid", ValueInteger},
	ParamACLSubject:          {"aclSubject", ValueString},
	ParamACLRights:           {"aclRights", ValueString},
	ParamUser:                {"user", ValueString},
	ParamMessageSize:         {"messageSize", ValueInteger},
	ParamConversationID:      {"vnd.cmu.cid", ValueString},
	ParamConvExists:          {"vnd.cmu.convExists", ValueInteger},
	ParamConvUnseen:          {"vnd.cmu.convUnseen", ValueInteger},
	ParamMbtype:              {"vnd.cmu.mbtype", ValueString},
	ParamMailboxACL:          {"vnd.cmu.mailboxACL", ValueString},
	ParamDAVFilename:         {"vnd.cmu.davFilename", ValueString},
	ParamDAVUID:              {"vnd.cmu.davUid", ValueString},
	ParamEnvelope:            {"vnd.cmu.envelope", ValueString},
	ParamSessionID:           {"vnd.cmu.sessionId", ValueString},
	ParamBodyStructure:       {"bodyStructure", ValueString},
	ParamClientID:            {"vnd.fastmail.clientId", ValueString},
	ParamMessageContent:      {"messageContent", ValueString},
	ParamAlarmTime:           {"alarmTime", ValueString},
	ParamAlarmRecipients:     {"alarmRecipients", ValueStringArray},
	ParamCalendarUserID:      {"userId", ValueString},
	ParamCalendarName:        {"calendarName", ValueString},
	ParamCalendarUID:         {"uid", ValueString},
	ParamCalendarAction:      {"action", ValueString},
	ParamCalendarSummary:     {"summary", ValueString},
	ParamCalendarDescription: {"description", ValueString},
	ParamCalendarLocation:    {"location", ValueString},
	ParamCalendarTimezone:    {"timezone", ValueString},
	ParamCalendarStart:       {"start", ValueString},
	ParamCalendarEnd:         {"end", ValueString},
	ParamCalendarAllDay:      {"allDay", ValueInteger},
	ParamAttendeeNames:       {"attendeeNames", ValueStringArray},
	ParamAttendeeEmails:      {"attendeeEmails", ValueStringArray},
	ParamAttendeeStatus:      {"attendeeStatus", ValueStringArray},
	ParamCalendarOrganizer:   {"organizer", ValueString},
}

// Key returns the parameter's wire key.
func (p ParamID) Key() string { return catalog[p].key }

// Kind returns the parameter's declared value kind.
func (p ParamID) Kind() ValueKind { return catalog[p].kind }

// calendarParams is the fixed set the calendar rule table expects.
var calendarParams = []ParamID{
	ParamAlarmTime, ParamAlarmRecipients, ParamCalendarUserID,
	ParamCalendarName, ParamCalendarUID, ParamCalendarAction,
	ParamCalendarSummary, ParamCalendarDescription, ParamCalendarLocation,
	ParamCalendarTimezone, ParamCalendarStart, ParamCalendarEnd,
	ParamCalendarAllDay, ParamAttendeeNames, ParamAttendeeEmails,
	ParamAttendeeStatus, ParamCalendarOrganizer,
}

func isCalendarParam(p ParamID) bool {
	return p >= ParamAlarmTime && p <= ParamCalendarOrganizer
}

// Value holds one typed parameter value. The active field matches the
// declared catalog kind; set establishes that invariant.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	list []string
}

// StringValue builds a string-typed Value.
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }

// IntValue builds an integer-typed Value.
func IntValue(n int64) Value { return Value{kind: ValueInteger, num: n} }

// ListValue builds a string-array-typed Value.
func ListValue(items []string) Value { return Value{kind: ValueStringArray, list: items} }

// String returns the string payload. Valid only for ValueString.
func (v Value) String() string { return v.str }

// Int returns the integer payload. Valid only for ValueInteger.
func (v Value) Int() int64 { return v.num }

// List returns the array payload. Valid only for ValueStringArray.
func (v Value) List() []string { return v.list }
