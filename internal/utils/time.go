package utils

import (
	"fmt"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseFormDate accepts the date formats the booking form sends: a plain
// YYYY-MM-DD or a full RFC 3339 timestamp.
func ParseFormDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(layoutDate, s, time.UTC)
}

// FormatDate formats time to YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(layoutDate)
}

// StayDays returns the billed stay length in whole days: the span between
// outbound and return rounded up, never less than one day.
func StayDays(dateAller, dateRetour time.Time) int {
	span := dateRetour.Sub(dateAller)
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
