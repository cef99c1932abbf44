package report

import (
	"fmt"
	"time"
)

// TimeLayout is the absolute timestamp format, in local time.
const TimeLayout = "Mon Jan 2 15:04:05 2006"

// Clock fixes "now" and the display location for a render.
type Clock struct {
	Now      time.Time
	Location *time.Location
}

// NewClock returns a Clock reading now in the local time zone.
func NewClock(now time.Time) Clock {
	return Clock{Now: now, Location: time.Local}
}

// Format renders t as an absolute local timestamp, or relative to c.Now when
// relative is true. The zero time renders as "".
func (c Clock) Format(t time.Time, relative bool) string {
	if relative {
		return c.Relative(t)
	}
	return c.Absolute(t)
}

// Absolute renders t in c.Location using [TimeLayout].
func (c Clock) Absolute(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimeLayout)
}

// Relative renders t as a phrase relative to c.Now.
func (c Clock) Relative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Humanize(c.Now.Sub(t))
}

// Both renders "absolute  (relative)", or "" for the zero time.
func (c Clock) Both(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s  (%s)", c.Absolute(t), c.Relative(t))
}

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// Humanize renders an elapsed duration as a rough phrase. Positive d is in
// the past ("3 months ago"), negative d in the future ("in 2 hours").
// Anything within ten seconds of zero is "now".
func Humanize(d time.Duration) string {
	past := d >= 0
	if !past {
		d = -d
	}

	var phrase string
	switch {
	case d < 10*time.Second:
		return "now"
	case d < 45*time.Second:
		phrase = "a few seconds"
	case d < 90*time.Second:
		phrase = "a minute"
	case d < 45*time.Minute:
		phrase = plural(round(d, time.Minute), "minute")
	case d < 90*time.Minute:
		phrase = "an hour"
	case d < 22*time.Hour:
		phrase = plural(round(d, time.Hour), "hour")
	case d < 36*time.Hour:
		phrase = "a day"
	case d < 7*day:
		phrase = plural(round(d, day), "day")
	case d < 11*day:
		phrase = "a week"
	case d < 4*week:
		phrase = plural(round(d, week), "week")
	case d < 45*day:
		phrase = "a month"
	case d < 320*day:
		phrase = plural(round(d, month), "month")
	case d < 548*day:
		phrase = "a year"
	default:
		phrase = plural(round(d, year), "year")
	}

	if past {
		return phrase + " ago"
	}
	return "in " + phrase
}

func round(d, unit time.Duration) int64 {
	return int64((d + unit/2) / unit)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
