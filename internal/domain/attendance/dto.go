package attendance

import (
	"github.com/timeqr/timeqr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// EventFilter selects raw events for the registros table view. Dates are
// local calendar dates, inclusive.
type EventFilter struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID string `json:"employee_id"`
	Branch     string `json:"branch"`
	Position   string `json:"position"`
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if validator.IsEmpty(f.StartDate) || !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(f.EndDate)
	if validator.IsEmpty(f.EndDate) || !endOK {
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

type EventResponse struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	LocalTime string  `json:"local_time"`
	Kind      string  `json:"kind"`
	DeviceID  string  `json:"device_id"`
	PhotoRef  *string `json:"photo_ref,omitempty"`
	Late      bool    `json:"late"`
}

type PairResponse struct {
	CheckIn  EventResponse `json:"check_in"`
	CheckOut EventResponse `json:"check_out"`
	Minutes  int           `json:"minutes"`
}

type DayGroupResponse struct {
	EmployeeID            string          `json:"employee_id"`
	EmployeeCode          string          `json:"employee_code"`
	EmployeeName          string          `json:"employee_name"`
	Branch                string          `json:"branch"`
	Position              string          `json:"position"`
	Date                  string          `json:"date"`
	Status                string          `json:"status"`
	FirstCheckIn          *EventResponse  `json:"first_check_in,omitempty"`
	LastCheckOut          *EventResponse  `json:"last_check_out,omitempty"`
	Pairs                 []PairResponse  `json:"pairs"`
	Events                []EventResponse `json:"events"`
	RawMinutes            int             `json:"raw_minutes"`
	BreakDeductionMinutes int             `json:"break_deduction_minutes"`
	AdjustedMinutes       int             `json:"adjusted_minutes"`
	Hours                 float64         `json:"hours"`
	LateMinutes           int             `json:"late_minutes"`
}

type ListDayGroupsResponse struct {
	Groups []DayGroupResponse `json:"groups"`
	Total  int                `json:"total"`
}
