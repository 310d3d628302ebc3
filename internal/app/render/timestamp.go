package render

import (
	"strconv"
	"time"
)

// TimestampLayout is the dd.mm.yyyy, hh:mm:ss form used in the table
const TimestampLayout = "02.01.2006, 15:04:05"

// InvalidDate is shown for timestamps that cannot be parsed
const InvalidDate = "Invalid Date"

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
	time.RFC1123,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatTimestamp renders a backend timestamp in local time
func FormatTimestamp(value string) string {
	if value == "" {
		return missing
	}

	t, ok := parseTimestamp(value)
	if !ok {
		return InvalidDate
	}

	return t.Local().Format(TimestampLayout)
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	// values past year 2286 in seconds are taken as milliseconds
	if n > 9_999_999_999 || n < -9_999_999_999 {
		return time.UnixMilli(n), true
	}

	return time.Unix(n, 0), true
}
