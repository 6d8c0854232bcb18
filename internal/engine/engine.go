package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/tartampluch/go-contactbook/internal/contacts"
)

// uidNamespace scopes event UIDs so they stay stable across regenerations.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(config.UIDNamespace))

// Generator renders the birthdays of an address book as an iCalendar feed.
type Generator struct {
	Clock contacts.Clock

	// FormatSummary lets the caller inject localized event titles.
	// age is 0 for the year of birth.
	FormatSummary func(name string, age int) string

	// ReminderTrigger is an ISO8601 duration ("-P1D"); empty disables alarms.
	ReminderTrigger string
}

// Generate returns the calendar and the number of birthdays falling today.
// Records without a birthday are ignored.
func (g *Generator) Generate(ctx context.Context, recs []*contacts.Record) ([]byte, int, error) {
	start := time.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays follow the local calendar date; only DTSTAMP is UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	withBday, today := 0, 0
	for _, r := range recs {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		b, ok := r.Birthday()
		if !ok {
			continue
		}
		withBday++

		events, isToday := g.createEvents(r.Name(), b, now)
		if isToday {
			today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, r.Name(),
				config.LogKeyDOB, b.String())
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	g.logSuccess(len(recs), withBday, today, time.Since(start))

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), today, nil
}

func (g *Generator) logSuccess(total, withBday, today int, took time.Duration) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRecords, total),
			slog.Int(config.LogKeyFound, withBday),
			slog.Int(config.LogKeyToday, today),
		),
		config.LogKeyDuration, took.Milliseconds(),
	)
}

// createEvents builds all-day events for the previous, current and next year
// so calendar clients can scroll without waiting for a refresh. Years before
// the birth year are skipped.
func (g *Generator) createEvents(name string, b contacts.Birthday, now time.Time) ([]*ical.Event, bool) {
	currentYear := now.Year()
	loc := now.Location()
	todayYear, todayMonth, todayDay := now.Date()

	uidBase := uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf(config.FormatUIDInput, name, b.String()))).String()

	var events []*ical.Event
	isToday := false

	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		age := y - b.Year()
		if age < 0 {
			continue
		}

		summary := g.summary(name, age)
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		// time.Date moves Feb 29 to Mar 1 in common years.
		eventDate := time.Date(y, b.Month(), b.Day(), 0, 0, 0, 0, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}
		events = append(events, event)
	}
	return events, isToday
}

func (g *Generator) summary(name string, age int) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, age)
	}
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value to avoid a VALUE=TEXT parameter on TRIGGER.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
