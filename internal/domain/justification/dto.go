package justification

import (
	"github.com/timeqr/timeqr-backend-go/internal/pkg/validator"
)

// ========================================
// JUSTIFICATION DTOs
// ========================================

var validTypes = []string{
	string(TypeVacation),
	string(TypeMedicalLeave),
	string(TypePermit),
}

type SaveJustificationRequest struct {
	ID         string  `json:"-"` // set on update
	EmployeeID string  `json:"employee_id"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *SaveJustificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be VACATION, MEDICAL_LEAVE or PERMIT",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JustificationResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Branch       string  `json:"branch"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	Reason       *string `json:"reason,omitempty"`
}

type ListJustificationsResponse struct {
	Justifications []JustificationResponse `json:"justifications"`
	Total          int                     `json:"total"`
}
