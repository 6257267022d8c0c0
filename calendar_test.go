package mboxevent

import (
	"context"
	"testing"
	"time"
)

func testComponent() *CalendarComponent {
	return &CalendarComponent{
		Action:      ActionDisplay,
		UID:         "e4c90-1f",
		Summary:     "Standup",
		Description: "Daily sync",
		Location:    "Room 4",
		Organizer:   "carol@example.com",
		Timezone:    "Europe/Berlin",
		Start:       CalendarTime{Value: "20260830T090000"},
		End:         CalendarTime{Value: "20260830T091500"},
		Attendees: []Attendee{
			{Name: "Bob", Email: "bob@example.com", Status: "ACCEPTED"},
			{Name: "No Email", Email: "", Status: "NEEDS-ACTION"},
			{Name: "Dana", Email: "dana@example.com", Status: "TENTATIVE"},
		},
	}
}

func TestExtractCalendarComponent(t *testing.T) {
	ctx := context.Background()
	alarm := time.Date(2026, 8, 30, 8, 55, 0, 0, time.UTC)

	n, sink := newTestNotifier(t)
	s := n.Session("bob")
	e := s.Add(KindCalendarAlarm)

	e.ExtractCalendarComponent(testComponent(), "bob", "personal", alarm,
		[]string{"bob@example.com"})
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	docs := sink.all()
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	doc := decodeDoc(t, docs[0].payload)

	if doc["event"] != "CalendarAlarm" {
		t.Errorf("expected event CalendarAlarm, got %v", doc["event"])
	}
	if doc["alarmTime"] != "2026-08-30T08:55:00Z" {
		t.Errorf("unexpected alarmTime %v", doc["alarmTime"])
	}
	if doc["action"] != "display" {
		t.Errorf("expected action display, got %v", doc["action"])
	}
	if doc["userId"] != "bob" || doc["calendarName"] != "personal" {
		t.Errorf("unexpected calendar identity %v / %v", doc["userId"], doc["calendarName"])
	}
	if doc["allDay"] != float64(0) {
		t.Errorf("expected allDay 0, got %v", doc["allDay"])
	}
	if doc["service"] != "imap" || doc["serverFQDN"] != "mail.example.com" {
		t.Error("expected server identity on calendar alarms")
	}
	if _, ok := doc["uri"]; ok {
		t.Error("expected no uri on calendar alarms")
	}

	// Attendees without an email are skipped; the three arrays stay aligned.
	names, _ := doc["attendeeNames"].([]any)
	emails, _ := doc["attendeeEmails"].([]any)
	status, _ := doc["attendeeStatus"].([]any)
	if len(names) != 2 || len(emails) != 2 || len(status) != 2 {
		t.Fatalf("expected 2 attendees, got %v / %v / %v", names, emails, status)
	}
	if names[1] != "Dana" || emails[1] != "dana@example.com" || status[1] != "TENTATIVE" {
		t.Errorf("attendee arrays misaligned: %v / %v / %v", names, emails, status)
	}
}

func TestCalendarAllDay(t *testing.T) {
	ctx := context.Background()
	n, sink := newTestNotifier(t)
	s := n.Session("bob")
	e := s.Add(KindCalendarAlarm)

	comp := testComponent()
	comp.Start = CalendarTime{Value: "20260830", DateOnly: true}
	comp.End = CalendarTime{Value: "20260831", DateOnly: true}
	e.ExtractCalendarComponent(comp, "bob", "personal", time.Now(), nil)

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	doc := decodeDoc(t, sink.all()[0].payload)
	if doc["allDay"] != float64(1) {
		t.Errorf("expected allDay 1, got %v", doc["allDay"])
	}
	if doc["start"] != "20260830" {
		t.Errorf("unexpected start %v", doc["start"])
	}
}

func TestAlarmActionWireName(t *testing.T) {
	tests := []struct {
		action AlarmAction
		want   string
	}{
		{ActionDisplay, "display"},
		{ActionEmail, "email"},
		{ActionUnknown, ""},
		{AlarmAction(99), ""},
	}
	for _, tt := range tests {
		if got := tt.action.wireName(); got != tt.want {
			t.Errorf("wireName(%d) = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestMessageNewWithAlarm(t *testing.T) {
	ctx := context.Background()
	n, sink := newTestNotifier(t)
	s := n.Session("bob")

	e := s.Add(KindMessageNewAlarm)
	e.ExtractRecord(testMailbox(), testRecord(42, "<a@example.com>"))
	e.ExtractMailbox(testMailbox())
	e.ExtractCalendarComponent(testComponent(), "bob", "personal",
		time.Date(2026, 8, 30, 8, 55, 0, 0, time.UTC), []string{"bob@example.com"})

	if err := s.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}
	doc := decodeDoc(t, sink.all()[0].payload)

	// The combined kind shares the MessageNew wire name and carries both
	// parameter sets.
	if doc["event"] != "MessageNew" {
		t.Errorf("expected event MessageNew, got %v", doc["event"])
	}
	if doc["alarmTime"] != "2026-08-30T08:55:00Z" {
		t.Errorf("expected calendar params present, got alarmTime %v", doc["alarmTime"])
	}
	if doc["messageSize"] != float64(2048) {
		t.Errorf("expected message params present, got messageSize %v", doc["messageSize"])
	}
	if _, ok := doc["uri"]; !ok {
		t.Error("expected uri on combined kind")
	}
}
