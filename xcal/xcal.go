// Package xcal renders recurrence rules and expanded occurrence lists as
// xCal XML (RFC 6321), for report-style consumers that speak XML rather
// than iCalendar text.
package xcal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/samber/mo"

	"github.com/cyp0633/librecur/recur"
	"github.com/cyp0633/librecur/recurset"
)

// XCalNamespace is the xCal XML namespace.
const XCalNamespace = "urn:ietf:params:xml:ns:icalendar-2.0"

const dateTimeLayout = "2006-01-02T15:04:05Z"

// RecurElement renders a rule as an xCal <recur> value element: one child
// element per rule part, multi-valued parts repeated.
func RecurElement(rule *recur.Rule) *etree.Element {
	elem := etree.NewElement("recur")

	elem.CreateElement("freq").SetText(rule.Freq.String())
	if u, ok := rule.Until.Get(); ok {
		elem.CreateElement("until").SetText(u.UTC().Format(dateTimeLayout))
	}
	if c, ok := rule.Count.Get(); ok {
		elem.CreateElement("count").SetText(strconv.Itoa(c))
	}
	if rule.Interval > 1 {
		elem.CreateElement("interval").SetText(strconv.Itoa(rule.Interval))
	}
	addIntValues(elem, "bysecond", rule.BySecond)
	addIntValues(elem, "byminute", rule.ByMinute)
	addIntValues(elem, "byhour", rule.ByHour)
	for _, wd := range rule.ByDay {
		elem.CreateElement("byday").SetText(wd.String())
	}
	addIntValues(elem, "bymonthday", rule.ByMonthDay)
	addIntValues(elem, "byyearday", rule.ByYearDay)
	addIntValues(elem, "byweekno", rule.ByWeekNo)
	addIntValues(elem, "bymonth", rule.ByMonth)
	addIntValues(elem, "bysetpos", rule.BySetPos)
	if rule.WeekStart >= recur.Monday && rule.WeekStart <= recur.Sunday && rule.WeekStart != recur.Monday {
		elem.CreateElement("wkst").SetText(rule.WeekStart.String())
	}

	return elem
}

// OccurrencesDocument renders the expanded occurrences of a single
// calendar object as an xCal-flavored document:
//
//	<occurrences xmlns="urn:ietf:params:xml:ns:icalendar-2.0" uid="...">
//	  <occurrence>
//	    <dtstart>...</dtstart>
//	    <dtend>...</dtend>
//	  </occurrence>
//	  ...
//	</occurrences>
func OccurrencesDocument(uid string, occurrences []recurset.Occurrence) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("occurrences")
	root.CreateAttr("xmlns", XCalNamespace)
	root.CreateAttr("uid", uid)

	for _, occ := range occurrences {
		elem := root.CreateElement("occurrence")
		elem.CreateElement("dtstart").SetText(occ.Start.UTC().Format(dateTimeLayout))
		elem.CreateElement("dtend").SetText(occ.End.UTC().Format(dateTimeLayout))
		if occ.IsException && occ.RecurrenceID != nil {
			elem.CreateElement("recurrence-id").SetText(occ.RecurrenceID.UTC().Format(dateTimeLayout))
		}
	}

	return doc
}

// ParseRecurElement parses an xCal <recur> element back into a Rule.
func ParseRecurElement(elem *etree.Element) (*recur.Rule, error) {
	rule := &recur.Rule{}
	var err error
	for _, child := range elem.ChildElements() {
		text := child.Text()
		switch child.Tag {
		case "freq":
			rule.Freq, err = recur.ParseFreq(text)
		case "until":
			var t time.Time
			if t, err = time.Parse(dateTimeLayout, text); err == nil {
				rule.Until = mo.Some(t)
			}
		case "count":
			var n int
			if n, err = strconv.Atoi(text); err == nil {
				rule.Count = mo.Some(n)
			}
		case "interval":
			rule.Interval, err = strconv.Atoi(text)
		case "bysecond":
			err = appendIntValue(&rule.BySecond, text)
		case "byminute":
			err = appendIntValue(&rule.ByMinute, text)
		case "byhour":
			err = appendIntValue(&rule.ByHour, text)
		case "byday":
			var wd recur.WeekdayNum
			if wd, err = parseWeekdayNum(text); err == nil {
				rule.ByDay = append(rule.ByDay, wd)
			}
		case "bymonthday":
			err = appendIntValue(&rule.ByMonthDay, text)
		case "byyearday":
			err = appendIntValue(&rule.ByYearDay, text)
		case "byweekno":
			err = appendIntValue(&rule.ByWeekNo, text)
		case "bymonth":
			err = appendIntValue(&rule.ByMonth, text)
		case "bysetpos":
			err = appendIntValue(&rule.BySetPos, text)
		case "wkst":
			rule.WeekStart, err = recur.ParseWeekday(text)
		default:
			err = fmt.Errorf("xcal: unknown recur part %q", child.Tag)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func appendIntValue(values *[]int, text string) error {
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("xcal: invalid numeric value %q", text)
	}
	*values = append(*values, n)
	return nil
}

func parseWeekdayNum(text string) (recur.WeekdayNum, error) {
	if len(text) < 2 {
		return recur.WeekdayNum{}, fmt.Errorf("xcal: invalid byday value %q", text)
	}
	var wd recur.WeekdayNum
	if prefix := text[:len(text)-2]; prefix != "" {
		pos, err := strconv.Atoi(prefix)
		if err != nil || pos == 0 {
			return recur.WeekdayNum{}, fmt.Errorf("xcal: invalid byday value %q", text)
		}
		wd.Pos = pos
	}
	day, err := recur.ParseWeekday(text[len(text)-2:])
	if err != nil {
		return recur.WeekdayNum{}, fmt.Errorf("xcal: invalid byday value %q", text)
	}
	wd.Day = day
	return wd, nil
}

func addIntValues(parent *etree.Element, tag string, values []int) {
	for _, v := range values {
		parent.CreateElement(tag).SetText(strconv.Itoa(v))
	}
}
