// Command example demonstrates expanding a recurring VEVENT through the
// recurrence engine and rendering the result as xCal XML.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	eical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/cyp0633/librecur/ical"
	"github.com/cyp0633/librecur/recur"
	"github.com/cyp0633/librecur/recurset"
	"github.com/cyp0633/librecur/xcal"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// A weekly team meeting, Tuesdays and Thursdays at 09:30, skipping
	// one cancelled date.
	eventUID := uuid.New().String()
	event := eical.NewComponent(eical.CompEvent)
	event.Props.SetText(eical.PropUID, eventUID)
	event.Props.SetText(eical.PropSummary, "Team meeting")
	event.Props.SetDateTime(eical.PropDateTimeStart, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC))
	event.Props.SetDateTime(eical.PropDateTimeEnd, time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC))
	event.Props.SetText(eical.PropRecurrenceRule, "FREQ=WEEKLY;BYDAY=TU,TH")
	event.Props.SetText(eical.PropExceptionDates, "20240111T093000Z")

	engine := recurset.NewEngine(recurset.WithLogger(logger))
	defer engine.Close()

	rangeStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	occurrences, err := ical.ExpandComponent(engine, event, rangeStart, rangeEnd)
	if err != nil {
		logger.Error("expansion failed", "error", err)
		os.Exit(1)
	}
	logger.Info("expanded event", "uid", eventUID, "occurrences", len(occurrences))

	doc := xcal.OccurrencesDocument(eventUID, occurrences)
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		logger.Error("rendering failed", "error", err)
		os.Exit(1)
	}
	fmt.Println(out)

	// The rule model is also usable directly, without any iCalendar
	// plumbing: last working day of each month.
	rule, err := recur.ParseRule("FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1;COUNT=6")
	if err != nil {
		logger.Error("bad rule", "error", err)
		os.Exit(1)
	}
	it, err := rule.Iterator(time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC))
	if err != nil {
		logger.Error("bad iterator", "error", err)
		os.Exit(1)
	}
	for t, ok := it.Next(); ok; t, ok = it.Next() {
		fmt.Println("month-end:", t.Format("2006-01-02"))
	}
}
