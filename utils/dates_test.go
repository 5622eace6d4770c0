package utils

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 23, 59, 59, 123, time.UTC)
	got := StartOfDay(ts)
	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC)
	night := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)

	if !SameCalendarDay(morning, night) {
		t.Error("same date at different times should match")
	}
	if SameCalendarDay(night, nextDay) {
		t.Error("adjacent dates should not match")
	}
}

func TestIsYesterdayOf(t *testing.T) {
	d9 := time.Date(2025, time.March, 9, 18, 0, 0, 0, time.UTC)
	d10 := time.Date(2025, time.March, 10, 2, 0, 0, 0, time.UTC)
	d11 := time.Date(2025, time.March, 11, 2, 0, 0, 0, time.UTC)

	if !IsYesterdayOf(d9, d10) {
		t.Error("march 9 is the day before march 10")
	}
	if IsYesterdayOf(d9, d11) {
		t.Error("two-day gap is not yesterday")
	}
	if IsYesterdayOf(d10, d10) {
		t.Error("same day is not yesterday")
	}
}
