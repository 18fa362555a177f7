package model

import "time"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// now returns the current time in UTC at the precision the store keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// DateOf returns the UTC calendar date of t at midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	return DateOf(time.Now())
}
