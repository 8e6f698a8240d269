package aggregation

import (
	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

// IsLateCheckIn is the per-event lateness flag used for row highlighting.
// With a schedule block the limit is the block's start plus its tolerance
// (default tolerance when the block carries none); without one a fixed
// fallback start applies.
//
// This is deliberately NOT the rule behind per-day lateness minutes in
// period summaries (see dayLateMinutes); the two use different thresholds
// and must not be conflated.
func (e *Engine) IsLateCheckIn(ev attendance.CheckEvent) bool {
	if ev.Kind != attendance.KindCheckIn {
		return false
	}

	start := e.cfg.FallbackStartMinutes
	tolerance := e.cfg.LateToleranceMinutes
	if ev.ScheduleBlock != nil {
		if minutes, err := tz.ParseClock(ev.ScheduleBlock.StartClock); err == nil {
			start = minutes
		}
		if ev.ScheduleBlock.ToleranceMinutes > 0 {
			tolerance = ev.ScheduleBlock.ToleranceMinutes
		}
	}

	eventMinutes := tz.MinutesSinceMidnight(ev.Timestamp, e.cfg.Location)
	return eventMinutes > start+tolerance
}

// dayLateMinutes is the coarser per-day rule used by period summaries:
// only the first check-in before noon and the first check-in at or after
// noon are evaluated, against the morning and afternoon limits
// respectively. All other check-ins that day are ignored.
func (e *Engine) dayLateMinutes(events []attendance.CheckEvent) int {
	var morning, afternoon *int

	for _, ev := range events {
		if ev.Kind != attendance.KindCheckIn {
			continue
		}
		minutes := tz.MinutesSinceMidnight(ev.Timestamp, e.cfg.Location)
		if minutes < 12*60 {
			if morning == nil {
				m := minutes
				morning = &m
			}
		} else if afternoon == nil {
			m := minutes
			afternoon = &m
		}
		if morning != nil && afternoon != nil {
			break
		}
	}

	late := 0
	if morning != nil && *morning > e.cfg.MorningLateLimit {
		late += *morning - e.cfg.MorningLateLimit
	}
	if afternoon != nil && *afternoon > e.cfg.AfternoonLateLimit {
		late += *afternoon - e.cfg.AfternoonLateLimit
	}
	return late
}
