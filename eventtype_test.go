package mboxevent

import "testing"

func TestWireName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindMessageNew, "MessageNew"},
		{KindMessageNewAlarm, "MessageNew"},
		{KindMessageCopy, "vnd.cmu.MessageCopy"},
		{KindMessageMove, "vnd.cmu.MessageMove"},
		{KindQuotaChange, "vnd.cmu.QuotaChange"},
		{KindMailboxUnsubscribe, "MailboxUnSubscribe"},
		{KindACLChange, "AclChange"},
		{KindCalendarAlarm, "CalendarAlarm"},
	}
	for _, tt := range tests {
		if got := tt.kind.WireName(); got != tt.want {
			t.Errorf("WireName(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestWireNamePanicsOnCancelled(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a kind without a wire name")
		}
	}()
	_ = KindCancelled.WireName()
}

func TestKindString(t *testing.T) {
	if got := KindCancelled.String(); got != "Cancelled" {
		t.Errorf("expected Cancelled, got %q", got)
	}
	if got := KindFlagsSet.String(); got != "FlagsSet" {
		t.Errorf("expected FlagsSet, got %q", got)
	}
}

func TestKindCategory(t *testing.T) {
	tests := []struct {
		kind Kind
		want Category
	}{
		{KindMessageExpunge, CategoryMessage},
		{KindMessageRead, CategoryFlags},
		{KindMailboxRename, CategoryMailbox},
		{KindMailboxSubscribe, CategorySubscription},
		{KindQuotaWithin, CategoryQuota},
		{KindACLChange, CategoryACL},
		{KindLogin, CategoryAccess},
		{KindCalendarAlarm, CategoryCalendar},
	}
	for _, tt := range tests {
		if got := tt.kind.Category(); got != tt.want {
			t.Errorf("Category(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
