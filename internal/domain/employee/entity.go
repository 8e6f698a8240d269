package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID         string
	Code       string
	FirstName  string
	LastName   string
	Email      *string
	Branch     string
	Position   string
	ScheduleID *string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	ScheduleName *string
}

// FullName joins first and last name for display and exports.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
