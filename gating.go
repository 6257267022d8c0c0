package mboxevent

// gating decides which events are constructed and which parameters are
// computed, as a pure function of the resolved configuration. One instance
// is shared read-only by every session of a Notifier.
type gating struct {
	cfg *Config
}

// categoryEnabled reports whether events of the given kind should be
// constructed at all. The MessageNew+CalendarAlarm combination is enabled
// when either of its two categories is.
func (g gating) categoryEnabled(k Kind) bool {
	if !g.cfg.Enabled() {
		return false
	}
	if k == KindMessageNewAlarm {
		return g.cfg.categoryEnabled(CategoryMessage) || g.cfg.categoryEnabled(CategoryCalendar)
	}
	return g.cfg.categoryEnabled(k.Category())
}

// expected reports whether a parameter should be computed and filled for an
// event of the given kind. It is consulted both before computing a value and
// by the flush-time completeness check, so it must stay pure.
func (g gating) expected(k Kind, p ParamID) bool {
	extra := g.cfg.Extra

	// The calendar rule table is disjoint: the fixed calendar parameter
	// set plus server identity, nothing else. The combined kind takes the
	// union of both tables.
	if k == KindCalendarAlarm {
		if isCalendarParam(p) {
			return true
		}
		return p == ParamService || p == ParamServerFQDN
	}
	if k == KindMessageNewAlarm {
		if isCalendarParam(p) {
			return true
		}
		return g.expected(KindMessageNew, p)
	}
	if isCalendarParam(p) {
		return false
	}

	cat := k.Category()
	messageOrFlags := cat == CategoryMessage || cat == CategoryFlags
	newOrAppend := k == KindMessageNew || k == KindMessageAppend

	switch p {
	case ParamTimestamp:
		return extra.Has(ExtraTimestamp)
	case ParamService, ParamServerFQDN, ParamURI:
		return true
	case ParamServerAddress:
		return cat == CategoryAccess
	case ParamClientAddress:
		return cat == CategoryAccess && extra.Has(ExtraClientAddress)
	case ParamOldMailboxID:
		return k == KindMessageCopy || k == KindMessageMove || k == KindMailboxRename
	case ParamOldUidset:
		return k == KindMessageCopy || k == KindMessageMove
	case ParamMailboxID:
		return extra.Has(ExtraMailboxID) && cat != CategoryAccess && cat != CategoryQuota
	case ParamModseq:
		return messageOrFlags && extra.Has(ExtraModseq)
	case ParamDiskQuota, ParamMaxMessages:
		return cat == CategoryQuota
	case ParamDiskUsed:
		if k == KindQuotaExceed || k == KindQuotaWithin {
			return true
		}
		return k == KindQuotaChange && extra.Has(ExtraDiskUsed)
	case ParamMessages:
		if k == KindQuotaExceed || k == KindQuotaWithin {
			return true
		}
		return messageOrFlags && extra.Has(ExtraMessages)
	case ParamUnseenMessages:
		return messageOrFlags && extra.Has(ExtraUnseenMessages)
	case ParamUidnext:
		return messageOrFlags && extra.Has(ExtraUidnext)
	case ParamUidset:
		// New and Append carry the single UID embedded in the URI.
		return messageOrFlags && !newOrAppend
	case ParamMidset:
		return messageOrFlags && extra.Has(ExtraMidset)
	case ParamFlagNames:
		if k == KindFlagsSet || k == KindFlagsClear {
			return true
		}
		return newOrAppend && extra.Has(ExtraFlagNames)
	case ParamPid:
		return extra.Has(ExtraPid)
	case ParamACLSubject, ParamACLRights:
		return k == KindACLChange
	case ParamUser:
		return cat == CategoryAccess || cat == CategoryQuota || k == KindACLChange
	case ParamMessageSize:
		return newOrAppend && extra.Has(ExtraMessageSize)
	case ParamConversationID:
		return newOrAppend && extra.Has(ExtraConversationID)
	case ParamConvExists, ParamConvUnseen:
		return messageOrFlags && extra.Has(ExtraConvStatus)
	case ParamMbtype:
		return extra.Has(ExtraMbtype) && cat != CategoryAccess && cat != CategoryQuota
	case ParamMailboxACL:
		return extra.Has(ExtraMailboxACL) && cat != CategoryAccess && cat != CategoryQuota
	case ParamDAVFilename:
		return newOrAppend && extra.Has(ExtraDAVFilename)
	case ParamDAVUID:
		return newOrAppend && extra.Has(ExtraDAVUID)
	case ParamEnvelope:
		return newOrAppend && extra.Has(ExtraEnvelope)
	case ParamSessionID:
		return extra.Has(ExtraSessionID)
	case ParamBodyStructure:
		return newOrAppend && extra.Has(ExtraBodyStructure)
	case ParamClientID:
		return extra.Has(ExtraClientID)
	case ParamMessageContent:
		return newOrAppend && extra.Has(ExtraMessageContent)
	}
	return false
}
