package attendance

import (
	"time"
)

// EventKind tags a raw swipe event.
type EventKind string

const (
	KindCheckIn  EventKind = "CHECK_IN"
	KindCheckOut EventKind = "CHECK_OUT"
)

// DayStatus classifies an employee-day.
type DayStatus string

const (
	// StatusComplete means the day has at least one matched pair.
	StatusComplete DayStatus = "COMPLETE"
	// StatusIncomplete means events exist but no pair could be formed.
	StatusIncomplete DayStatus = "INCOMPLETE"
	// StatusNoRecord means no events at all.
	StatusNoRecord DayStatus = "NO_RECORD"
)

// ScheduleBlockRef is the slice of a schedule block an event carries:
// enough to evaluate the per-event lateness flag.
type ScheduleBlockRef struct {
	StartClock       string // "08:00", local wall clock
	ToleranceMinutes int
}

// CheckEvent is one raw swipe from a QR tablet. Timestamps are stored in
// UTC; all business rules evaluate them in the fixed business timezone.
// Events are immutable once fetched.
type CheckEvent struct {
	ID            string
	EmployeeID    string
	Timestamp     time.Time
	Kind          EventKind
	ScheduleBlock *ScheduleBlockRef
	DeviceID      string
	PhotoRef      *string

	// Joined employee fields, informational only
	EmployeeCode string
	EmployeeName string
	Branch       string
	Position     string
}

// Pair is one matched CHECK_IN/CHECK_OUT within a single employee-day.
type Pair struct {
	CheckIn  CheckEvent
	CheckOut CheckEvent
	Minutes  int
}

// DayGroup is the derived view of one (employee, local date). It is
// recomputed from raw events on every aggregation and never persisted.
type DayGroup struct {
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Branch       string
	Position     string
	Date         string // YYYY-MM-DD, local timezone

	Events       []CheckEvent
	Pairs        []Pair
	FirstCheckIn *CheckEvent
	LastCheckOut *CheckEvent

	RawMinutes            int
	BreakDeductionMinutes int
	AdjustedMinutes       int
	Hours                 float64 // AdjustedMinutes / 60, rounded to one decimal
	LateMinutes           int     // per-day lateness rule, not the per-event flag

	CheckInCount  int
	CheckOutCount int

	Status DayStatus
}
