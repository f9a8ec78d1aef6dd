// Package calendar provides the IST business calendar used for all SLA and
// turnaround-time arithmetic. It wraps rickar/cal with the grievance
// system's fixed working window (Mon-Sat, 09:00-17:00 IST) and holiday
// exceptions.
package calendar

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/nivaran-io/nivaran-ce/internal/models"
)

// IST is the fixed timezone for calendar classification (UTC+5:30).
var IST = time.FixedZone("IST", 5*3600+30*60)

// Default working window.
const (
	DefaultStartHour = 9
	DefaultEndHour   = 17
)

// Calendar classifies instants as business time and measures elapsed
// business hours between instants. It is immutable after construction and
// safe for concurrent use.
type Calendar struct {
	cal       *cal.BusinessCalendar
	startHour int
	endHour   int
}

var dayNames = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// ParseWeekdays converts short day names ("Mon".."Sun") to weekdays.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		d, ok := dayNames[n]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", n)
		}
		days = append(days, d)
	}
	return days, nil
}

// New builds a calendar with the given working window and holidays.
// An empty workdays slice means the default Mon-Sat week. Recurring
// holidays are installed as month/day rules that apply every year;
// one-time holidays are pinned to the year of their date.
func New(startHour, endHour int, workdays []time.Weekday, holidays []models.Holiday) (*Calendar, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, fmt.Errorf("invalid working window %d-%d", startHour, endHour)
	}

	c := cal.NewBusinessCalendar()
	c.SetWorkHours(time.Duration(startHour)*time.Hour, time.Duration(endHour)*time.Hour)

	if len(workdays) == 0 {
		workdays = []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}
	}
	working := make(map[time.Weekday]bool, len(workdays))
	for _, d := range workdays {
		working[d] = true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		c.SetWorkday(d, working[d])
	}

	for _, h := range holidays {
		date, err := time.ParseInLocation("2006-01-02", h.Date, IST)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w: %q", h.Name, models.ErrMalformedTimestamp, h.Date)
		}
		holiday := &cal.Holiday{
			Name:  h.Name,
			Type:  cal.ObservancePublic,
			Month: date.Month(),
			Day:   date.Day(),
			Func:  cal.CalcDayOfMonth,
		}
		if !h.Recurring {
			holiday.StartYear = date.Year()
			holiday.EndYear = date.Year()
		}
		c.AddHoliday(holiday)
	}

	return &Calendar{cal: c, startHour: startHour, endHour: endHour}, nil
}

// MustDefault returns the stock grievance calendar (Mon-Sat 9-17 IST, no
// holidays). Intended for tests and tooling defaults.
func MustDefault() *Calendar {
	c, err := New(DefaultStartHour, DefaultEndHour, nil, nil)
	if err != nil {
		panic(err)
	}
	return c
}

// IsBusinessDay reports whether t falls on a working day in IST, taking
// holidays into account. Sundays are never business days on the default
// week.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	return c.cal.IsWorkday(t.In(IST))
}

// IsBusinessHour reports whether t is inside the working window on a
// business day. The window is half-open: the start hour is included, the
// end hour excluded.
func (c *Calendar) IsBusinessHour(t time.Time) bool {
	lt := t.In(IST)
	if !c.cal.IsWorkday(lt) {
		return false
	}
	return lt.Hour() >= c.startHour && lt.Hour() < c.endHour
}

// BusinessHoursBetween returns the business hours elapsed between start and
// end as a fractional number of hours. Non-business days contribute zero;
// a reversed or empty range returns zero. This is the sole time-arithmetic
// primitive: every SLA and TAT figure is derived from it.
func (c *Calendar) BusinessHoursBetween(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	return c.cal.WorkHoursInRange(start.In(IST), end.In(IST)).Hours()
}

// AddBusinessHours walks forward from start by the given number of business
// hours and returns the resulting instant in IST.
func (c *Calendar) AddBusinessHours(start time.Time, hours float64) time.Time {
	return c.cal.AddWorkHours(start.In(IST), time.Duration(hours*float64(time.Hour)))
}

// StartHour returns the working window's opening hour in IST.
func (c *Calendar) StartHour() int { return c.startHour }

// EndHour returns the working window's closing hour in IST (exclusive).
func (c *Calendar) EndHour() int { return c.endHour }
