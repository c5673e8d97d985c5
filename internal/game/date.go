package game

import "time"

// ScheduleHeadingFormat is the long date format used by the yearly
// schedule page's daily section headings, e.g. "Saturday, July 12, 2025".
const ScheduleHeadingFormat = "Monday, January 2, 2006"

// DateFormat is the canonical row date format.
const DateFormat = "2006-01-02"

// ScheduleHeading formats a date the way the schedule page's h3 headings
// spell it.
func ScheduleHeading(t time.Time) string {
	return t.Format(ScheduleHeadingFormat)
}

// ParseLongDate parses a long-form page date into canonical YYYY-MM-DD.
// Box score pages use both the weekday-prefixed form and a bare
// "July 12, 2025". Returns "" if no format matches.
func ParseLongDate(text string) string {
	for _, layout := range []string{
		ScheduleHeadingFormat,
		"January 2, 2006",
	} {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(DateFormat)
		}
	}
	return ""
}

// LookbackDates returns the run's target dates, most recent first:
// today and the daysBack-1 days before it. daysBack below 1 is treated
// as 1.
func LookbackDates(today time.Time, daysBack int) []time.Time {
	if daysBack < 1 {
		daysBack = 1
	}
	dates := make([]time.Time, 0, daysBack)
	for i := 0; i < daysBack; i++ {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates
}
