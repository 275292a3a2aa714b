package event

import (
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "1/2/2006"}

var clockLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04"}

// ParseDate accepts ISO dates from the event form and M/D/YYYY dates from the booking dialogue.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseClock returns the offset from midnight for a start time like "10:00 AM" or "14:30".
func ParseClock(s string) (time.Duration, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// StartsAt combines the event date and start time. A missing start time means midnight.
func StartsAt(date, startTime string) (time.Time, bool) {
	day, ok := ParseDate(date)
	if !ok {
		return time.Time{}, false
	}
	if offset, ok := ParseClock(startTime); ok {
		return day.Add(offset), true
	}
	return day, true
}

// SplitTimeSlot splits "10:00 AM-11:30 AM" into its start and end.
func SplitTimeSlot(slot string) (string, string) {
	start, end, found := strings.Cut(slot, "-")
	if !found {
		return strings.TrimSpace(slot), ""
	}
	return strings.TrimSpace(start), strings.TrimSpace(end)
}

func sortKey(date string) time.Time {
	if t, ok := ParseDate(date); ok {
		return t
	}
	// Unparseable dates sort last.
	return time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
}
