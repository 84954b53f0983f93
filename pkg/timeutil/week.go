// Package timeutil holds the calendar arithmetic shared by the history logs.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// LayoutDateKey is the calendar-day format used for date keys.
const LayoutDateKey = "2006-01-02"

// DateKey returns the calendar day of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LayoutDateKey)
}

// ParseDateKey parses a date key into midnight of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(LayoutDateKey, key, loc)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns Sunday 00:00 of the week containing now.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	day := StartOfDay(now, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Week is an inclusive range of calendar days.
type Week struct {
	From string
	To   string
}

// WeekOf returns the Sunday..Saturday range offset whole weeks from the week
// containing now. Offset 0 is the current week, -1 the previous one.
// AddDate keeps the range on calendar days across DST changes.
func WeekOf(now time.Time, offset int, loc *time.Location) Week {
	start := WeekStart(now, loc).AddDate(0, 0, 7*offset)
	end := start.AddDate(0, 0, 6)
	return Week{
		From: start.Format(LayoutDateKey),
		To:   end.Format(LayoutDateKey),
	}
}

// Contains reports whether dateKey falls within the week. Date keys sort
// lexically in calendar order.
func (w Week) Contains(dateKey string) bool {
	return dateKey >= w.From && dateKey <= w.To
}

func (w Week) String() string {
	return fmt.Sprintf("%s..%s", w.From, w.To)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	LayoutDateKey,
}

// ParseDate accepts the date shapes forms submit: full RFC3339 timestamps,
// local date-times without zone, and bare calendar days.
func ParseDate(v string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timeutil: unrecognized date %q", v)
}
