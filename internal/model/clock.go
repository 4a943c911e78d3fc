package model

import "time"

// CivilZone is the fixed-offset zone that defines the planner's day boundary.
// All "today" computations use it regardless of the host timezone.
var CivilZone = time.FixedZone("UTC-5", -5*60*60)

// DateLayout is the ISO calendar date format used throughout the document.
const DateLayout = "2006-01-02"

// Today returns the current civil date as an ISO date string.
func Today() string {
	return time.Now().In(CivilZone).Format(DateLayout)
}

// NowMillis returns the current time as a millisecond Unix timestamp, the
// unit used for Task.CreatedAt.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// ValidDate reports whether s is a well-formed ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ShiftDate returns the ISO date days away from s. If s does not parse it
// shifts from today instead.
func ShiftDate(s string, days int) string {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, _ = time.Parse(DateLayout, Today())
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}
