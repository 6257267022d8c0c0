package mboxevent

import "time"

// AlarmAction is the kind of action a calendar alarm requests.
type AlarmAction int

const (
	ActionUnknown AlarmAction = iota
	ActionDisplay
	ActionEmail
)

// wireName maps the action enum to its notification value. Unknown actions
// encode as the empty string.
func (a AlarmAction) wireName() string {
	switch a {
	case ActionDisplay:
		return "display"
	case ActionEmail:
		return "email"
	}
	return ""
}

// CalendarTime is a calendar-format time value. DateOnly marks a pure date
// (no time component), which is how all-day events are expressed.
type CalendarTime struct {
	Value    string
	DateOnly bool
}

// Attendee is one attendee read from a calendar component. Attendees
// without an email value are skipped during extraction.
type Attendee struct {
	Name   string
	Email  string
	Status string
}

// CalendarComponent carries the calendar properties an alarm notification
// reports. Absent properties stay zero-valued and encode as empty strings.
type CalendarComponent struct {
	Action      AlarmAction
	UID         string
	Summary     string
	Description string
	Location    string
	Organizer   string
	Timezone    string
	Start       CalendarTime
	End         CalendarTime
	Attendees   []Attendee
}

// ExtractCalendarComponent populates the calendar parameter set for an
// alarm event: the alarm trigger, its recipients, the owning user and
// calendar, the component's descriptive properties, and three aligned
// attendee arrays.
func (e *Event) ExtractCalendarComponent(comp *CalendarComponent, userID, calendarName string, alarmTime time.Time, recipients []string) {
	if e == nil || e.kind == KindCancelled || comp == nil {
		return
	}

	e.set(ParamAlarmTime, StringValue(alarmTime.Format(time.RFC3339)))
	e.set(ParamAlarmRecipients, ListValue(append([]string(nil), recipients...)))
	e.set(ParamCalendarUserID, StringValue(userID))
	e.set(ParamCalendarName, StringValue(calendarName))

	e.set(ParamCalendarAction, StringValue(comp.Action.wireName()))
	e.set(ParamCalendarUID, StringValue(comp.UID))
	e.set(ParamCalendarSummary, StringValue(comp.Summary))
	e.set(ParamCalendarDescription, StringValue(comp.Description))
	e.set(ParamCalendarLocation, StringValue(comp.Location))
	e.set(ParamCalendarOrganizer, StringValue(comp.Organizer))
	e.set(ParamCalendarTimezone, StringValue(comp.Timezone))
	e.set(ParamCalendarStart, StringValue(comp.Start.Value))
	e.set(ParamCalendarEnd, StringValue(comp.End.Value))

	allDay := int64(0)
	if comp.Start.DateOnly {
		allDay = 1
	}
	e.set(ParamCalendarAllDay, IntValue(allDay))

	var names, emails, status []string
	for _, a := range comp.Attendees {
		if a.Email == "" {
			continue
		}
		names = append(names, a.Name)
		emails = append(emails, a.Email)
		status = append(status, a.Status)
	}
	e.set(ParamAttendeeNames, ListValue(names))
	e.set(ParamAttendeeEmails, ListValue(emails))
	e.set(ParamAttendeeStatus, ListValue(status))
}
