package justification

import (
	"time"
)

// JustificationType classifies an approved leave interval.
type JustificationType string

const (
	TypeVacation     JustificationType = "VACATION"
	TypeMedicalLeave JustificationType = "MEDICAL_LEAVE"
	TypePermit       JustificationType = "PERMIT"
)

// Justification is an employee-scoped leave interval. Dates are inclusive
// local calendar dates; StartDate <= EndDate always holds.
type Justification struct {
	ID         string
	EmployeeID string
	Type       JustificationType
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeCode string
	EmployeeName string
	Branch       string
}

// Covers reports whether the interval includes the given local date.
// Lexicographic comparison is correct for YYYY-MM-DD strings.
func (j Justification) Covers(date string) bool {
	return j.StartDate <= date && date <= j.EndDate
}
