package report

import (
	"fmt"
	"strings"
	"time"
)

// Period is a named date range relative to today.
type Period int

const (
	PeriodThisWeek Period = iota
	PeriodLastWeek
	PeriodThisMonth
	PeriodLastMonth
	PeriodAll
)

func (p Period) String() string {
	switch p {
	case PeriodThisWeek:
		return "This Week"
	case PeriodLastWeek:
		return "Last Week"
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	case PeriodAll:
		return "All Time"
	}

	return "Unknown"
}

// ParsePeriod accepts the query-string names week, lastWeek, month, lastMonth and all.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "thisweek":
		return PeriodThisWeek, nil
	case "lastweek":
		return PeriodLastWeek, nil
	case "", "month", "thismonth":
		return PeriodThisMonth, nil
	case "lastmonth":
		return PeriodLastMonth, nil
	case "all":
		return PeriodAll, nil
	}

	return 0, fmt.Errorf("unknown period %q", s)
}

// Range returns the inclusive first and last day of p. Weeks start on Monday.
// PeriodAll returns zero times.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	today := Day(now)

	// Monday = 1 ... Sunday = 7
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	switch p {
	case PeriodThisWeek:
		start := today.AddDate(0, 0, -weekday+1)
		return start, start.AddDate(0, 0, 6)
	case PeriodLastWeek:
		end := today.AddDate(0, 0, -weekday)
		return end.AddDate(0, 0, -6), end
	case PeriodThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case PeriodLastMonth:
		start := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}

	return time.Time{}, time.Time{}
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
