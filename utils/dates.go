package utils

import "time"

// StartOfDay strips the time-of-day component, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func SameCalendarDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// IsYesterdayOf reports whether a falls on the calendar day before b.
func IsYesterdayOf(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b).AddDate(0, 0, -1))
}
