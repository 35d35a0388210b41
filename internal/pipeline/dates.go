package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

const (
	dateFormat  = "2006-01-02"
	monthFormat = "2006-01"

	// Excel serial day numbers for 1927-05-18 and 9999-12-31. Smaller numbers are
	// years or other text, never a plausible publish date serial.
	minExcelSerial = 10000
	maxExcelSerial = 2958465
)

var (
	serialRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)
	digitRegex  = regexp.MustCompile(`\d`)
	yearRegex   = regexp.MustCompile(`^\d{1,4}$`)
)

// ParseDate reads a publish date cell. Spreadsheet serial numbers are converted first,
// free-form text goes through dateparse (month first when ambiguous) and the layouts are
// tried last. Values without a digit, bare years and anything nothing understands are
// reported as not ok. The result is truncated to the day.
func ParseDate(raw string, layouts []string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if !digitRegex.MatchString(raw) || yearRegex.MatchString(raw) {
		return time.Time{}, false
	}

	if ts, ok := parseSerial(raw); ok {
		return truncateDay(ts), true
	}

	if ts, err := dateparse.ParseIn(raw, time.UTC); err == nil {
		return truncateDay(ts), true
	}

	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return truncateDay(ts), true
		}
	}

	return time.Time{}, false
}

func parseSerial(raw string) (time.Time, bool) {
	if !serialRegex.MatchString(raw) {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < minExcelSerial || serial > maxExcelSerial {
		return time.Time{}, false
	}
	ts, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// FormatMonth renders the YYYY-MM month key.
func FormatMonth(ts time.Time) string {
	return ts.Format(monthFormat)
}

func truncateDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return truncateDay(a).Equal(truncateDay(b))
}
