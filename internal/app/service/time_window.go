package service

import (
	"time"

	"pnl_tracker/internal/domain/entity"
)

// TodayWindow returns the window starting at local midnight of now's day in a fixed
// UTC offset, expressed in UTC.
// Example: now=2025-03-10T03:00:00Z, offset=420 (UTC+7) => From=2025-03-09T17:00:00Z
func TodayWindow(now time.Time, offsetMinutes int) entity.TimeWindow {
	zone := time.FixedZone("", offsetMinutes*60)
	local := now.In(zone)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, zone)
	return entity.TimeWindow{From: midnight.UTC()}
}
