package utils

import (
	"strings"
	"time"
)

// ISODate is the layout used for every date sent to clients.
const ISODate = "2006-01-02"

// dateLayouts are tried in order. Year-first layouts come first; the remaining
// numeric layouts are day-first, matching NSE bhavcopy exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
}

// ParseDate parses a date in any of the supported layouts. The second return
// value is false when the value cannot be parsed.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatISODate renders t as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}

// QuarterEnd returns the last calendar day of the quarter containing t.
func QuarterEnd(t time.Time) time.Time {
	firstMonthOfNext := time.Month((int(t.Month())-1)/3*3 + 4)
	start := time.Date(t.Year(), firstMonthOfNext, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, -1)
}
