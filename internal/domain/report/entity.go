package report

import (
	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
)

// PeriodSummary aggregates one employee over a date range, reconciled
// against justification intervals. Derived, never persisted.
type PeriodSummary struct {
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Branch       string
	Position     string
	StartDate    string
	EndDate      string

	TotalHoursDecimal float64
	TotalCheckIns     int
	TotalCheckOuts    int
	TotalLateMinutes  int
	TotalAbsences     int
	WorkableDays      int
	DaysWithActivity  int

	DailyBreakdown []attendance.DayGroup
}

// MissingCheckIn is one (date, employee) with no check-in and no covering
// justification: a row in the missing-entries export.
type MissingCheckIn struct {
	Date         string
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Branch       string
	Position     string
	ScheduleName string
	Note         string
}
