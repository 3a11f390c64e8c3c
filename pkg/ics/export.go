// Package ics renders the calendar as an iCalendar feed so external
// applications can subscribe to it read-only.
package ics

import (
	"fmt"
	"time"

	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/event"
	"github.com/daybook/daybook/pkg/todo"
	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
)

const productID = "-//Daybook//Calendar//EN"

// Render serializes events as VEVENTs and todos as VTODOs. Timed events
// use the same effective-end rule as the grid layout; an event with an
// unparsable time degrades to an all-day entry instead of being dropped.
func Render(events []event.Event, todos []todo.Todo) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		addEvent(cal, e)
	}
	for _, t := range todos {
		addTodo(cal, t)
	}

	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, e event.Event) {
	day, err := utils.ParseDay(e.Date)
	if err != nil {
		log.Warnf("skipping event %s in ICS export: %v", e.ID, err)
		return
	}

	ve := cal.AddEvent(e.ID)
	ve.SetDtStampTime(time.Now())
	ve.SetSummary(e.Title)
	if e.Description != "" {
		ve.SetDescription(e.Description)
	}

	startMinutes, timeErr := -1, error(nil)
	if !e.AllDay && e.StartTime != "" {
		startMinutes, timeErr = utils.ClockMinutes(e.StartTime)
	}
	if e.AllDay || e.StartTime == "" || timeErr != nil {
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		return
	}

	endMinutes := 0
	endPresent := false
	if e.EndTime != "" {
		if parsed, err := utils.ClockMinutes(e.EndTime); err == nil {
			endMinutes = parsed
			endPresent = true
		}
	}
	endMinutes = utils.EffectiveEndMinutes(startMinutes, endMinutes, endPresent)

	ve.SetProperty(ical.ComponentPropertyDtStart, floatingTime(day, startMinutes))
	ve.SetProperty(ical.ComponentPropertyDtEnd, floatingTime(day, endMinutes))

	if e.ReminderMinutes > 0 {
		alarm := ve.AddAlarm()
		alarm.SetAction(ical.ActionDisplay)
		alarm.SetDescription(e.Title)
		alarm.SetTrigger(triggerOffset(e.ReminderMinutes))
	}
}

func addTodo(cal *ical.Calendar, t todo.Todo) {
	day, err := utils.ParseDay(t.Date)
	if err != nil {
		log.Warnf("skipping todo %s in ICS export: %v", t.ID, err)
		return
	}

	vt := cal.AddTodo(t.ID)
	vt.SetDtStampTime(time.Now())
	vt.SetSummary(t.Title)
	if t.Description != "" {
		vt.SetDescription(t.Description)
	}
	vt.SetDueAt(day)
	if t.Completed {
		vt.SetPercentComplete(100)
	}
}

func triggerOffset(minutes int) string {
	return fmt.Sprintf("-PT%dM", minutes)
}

// floatingTime renders an RFC 5545 floating local timestamp. The data model
// has no timezone, so timed exports must keep the wall-clock digits instead
// of pinning the instant to UTC.
func floatingTime(day time.Time, minutes int) string {
	return day.Add(time.Duration(minutes) * time.Minute).Format("20060102T150405")
}
