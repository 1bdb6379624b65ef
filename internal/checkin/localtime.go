package checkin

import (
	"fmt"
	"time"
)

// DefaultTimezone is the employer locale the legacy checador assumed.
const DefaultTimezone = "America/Mexico_City"

// LocalPartition converts a capture instant into the day and time-of-day
// strings stored on every checada, computed in the employer's timezone so
// the result is independent of wherever the server happens to run.
//
// Day keeps the legacy unpadded format ("2024-3-1") because downstream
// reporting groups on the literal string.
func LocalPartition(timestampMillis int64, loc *time.Location) (day string, timeOfDay string) {
	if loc == nil {
		loc = time.UTC
	}
	t := time.UnixMilli(timestampMillis).In(loc)
	day = fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
	timeOfDay = t.Format("15:04:05")
	return day, timeOfDay
}
