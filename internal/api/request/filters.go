package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive, optionally open-ended range of calendar dates.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.Start == nil && r.End == nil
}

// ParseActive parses the optional "active" query parameter. An empty value means false.
func ParseActive(activeParam string) (bool, error) {
	if activeParam == "" {
		return false, nil
	}
	active, err := strconv.ParseBool(strings.TrimSpace(activeParam))
	if err != nil {
		return false, fmt.Errorf("invalid active: must be true or false")
	}
	return active, nil
}

// ParseDateRange parses the optional startDate and endDate query parameters.
// Both must be YYYY-MM-DD and start must not be after end.
func ParseDateRange(startDateParam, endDateParam string) (DateRange, error) {
	var r DateRange

	if startDateParam != "" {
		start, err := ParseDate(startDateParam)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid startDate format: %w", err)
		}
		r.Start = &start
	}

	if endDateParam != "" {
		end, err := ParseDate(endDateParam)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid endDate format: %w", err)
		}
		r.End = &end
	}

	if r.Start != nil && r.End != nil && r.Start.After(*r.End) {
		return DateRange{}, fmt.Errorf("startDate must not be after endDate")
	}

	return r, nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(str))
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse %q as a YYYY-MM-DD date", str)
	}
	return t, nil
}

// ParseDateTime accepts YYYY-MM-DD, RFC3339, and RFC3339 with fractional seconds.
func ParseDateTime(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
