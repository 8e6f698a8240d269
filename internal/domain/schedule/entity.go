package schedule

import (
	"time"
)

// Schedule is a named working-hours template assignable to employees.
type Schedule struct {
	ID        string
	Name      string
	Branch    *string
	Blocks    []ScheduleBlock
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleBlock is one expected working interval within a schedule.
// Clocks are local wall-clock strings ("08:00").
type ScheduleBlock struct {
	ID               string
	ScheduleID       string
	StartClock       string
	EndClock         string
	ToleranceMinutes int
}
