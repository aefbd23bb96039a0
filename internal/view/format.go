package view

import (
	"strings"
	"time"
)

const (
	dateDisplayLayout     = "01/02/2006"
	dateTimeDisplayLayout = "01/02/2006 15:04"
)

// inputLayouts are the date shapes extraction output is known to use.
var inputLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a date as MM/DD/YYYY. Values that do not parse are returned as-is.
func formatDate(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format(dateDisplayLayout)
}

// formatDateTime renders a timestamp as MM/DD/YYYY HH:MM in the zone it was written in.
func formatDateTime(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return value
	}
	return t.Format(dateTimeDisplayLayout)
}
