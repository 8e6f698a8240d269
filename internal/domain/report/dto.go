package report

import (
	"github.com/timeqr/timeqr-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

func validateRange(errs validator.ValidationErrors, startDate, endDate string) validator.ValidationErrors {
	start, startOK := validator.IsValidDate(startDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(endDate)
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
	return errs
}

type PeriodSummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *PeriodSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	errs = validateRange(errs, r.StartDate, r.EndDate)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneralSummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Branch    string `json:"branch"`
	Position  string `json:"position"`
}

func (r *GeneralSummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateRange(errs, r.StartDate, r.EndDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MissingCheckInsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *MissingCheckInsRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateRange(errs, r.StartDate, r.EndDate)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GeneralSummaryRow is one employee's line in the general summary report.
type GeneralSummaryRow struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeCode     string  `json:"employee_code"`
	EmployeeName     string  `json:"employee_name"`
	Branch           string  `json:"branch"`
	Position         string  `json:"position"`
	TotalHours       float64 `json:"total_hours"`
	TotalCheckIns    int     `json:"total_check_ins"`
	TotalCheckOuts   int     `json:"total_check_outs"`
	TotalLateMinutes int     `json:"total_late_minutes"`
	TotalAbsences    int     `json:"total_absences"`
	WorkableDays     int     `json:"workable_days"`
	DaysWithActivity int     `json:"days_with_activity"`
}

type GeneralSummaryResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Rows      []GeneralSummaryRow `json:"rows"`
}

type MissingCheckInRow struct {
	Date         string `json:"date"`
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Branch       string `json:"branch"`
	Position     string `json:"position"`
	ScheduleName string `json:"schedule_name"`
	Note         string `json:"note"`
}

type MissingCheckInsResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Rows      []MissingCheckInRow `json:"rows"`
}
