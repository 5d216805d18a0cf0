package calendar

import (
	"bytes"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/thalyssonDEV/EventSync/internal/domain/entity"
)

// ExportEventToICS serializes an event to iCalendar (.ics) format so
// participants can add it to their calendar apps. A reminder is attached
// one day and one hour before the start.
func ExportEventToICS(event *entity.Event) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//EventSync//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	uid := fmt.Sprintf("%s@eventsync", event.ID)
	e := cal.AddEvent(uid)

	now := time.Now()
	e.SetDtStampTime(now)
	e.SetCreatedTime(now)
	e.SetModifiedAt(now)

	e.SetStartAt(event.StartDate)
	if event.EndDate != nil && !event.EndDate.IsZero() {
		e.SetEndAt(*event.EndDate)
	} else {
		e.SetEndAt(event.StartDate.Add(1 * time.Hour))
	}

	e.SetSummary(event.Title)
	e.SetDescription(event.Description)
	e.SetLocation(event.LocationAddress)

	e.SetStatus(ics.ObjectStatusConfirmed)
	e.SetTimeTransparency(ics.TransparencyOpaque)
	e.SetClass(ics.ClassificationPublic)
	e.SetSequence(0)

	dayAlarm := e.AddAlarm()
	dayAlarm.SetAction(ics.ActionDisplay)
	dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
	dayAlarm.SetDescription(fmt.Sprintf("Reminder: %s (tomorrow)", event.Title))

	hourAlarm := e.AddAlarm()
	hourAlarm.SetAction(ics.ActionDisplay)
	hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
	hourAlarm.SetDescription(fmt.Sprintf("Reminder: %s (in one hour)", event.Title))

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}
