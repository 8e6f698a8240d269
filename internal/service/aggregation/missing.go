package aggregation

import (
	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

// MissingCheckIns reports, for every date in [startDate, endDate], the
// active employees with no check-in event that local date and no covering
// justification. Every calendar date in the range is examined, weekends
// included; the break-exemption list does not apply here.
func (e *Engine) MissingCheckIns(
	startDate, endDate string,
	employees []employee.Employee,
	events []attendance.CheckEvent,
	justifications []justification.Justification,
) ([]report.MissingCheckIn, error) {
	_, dates, err := workableDates(startDate, endDate)
	if err != nil {
		return nil, err
	}

	checkedIn := make(map[string]map[string]bool)
	for _, ev := range events {
		if ev.Kind != attendance.KindCheckIn {
			continue
		}
		date := tz.LocalDate(ev.Timestamp, e.cfg.Location)
		if checkedIn[date] == nil {
			checkedIn[date] = make(map[string]bool)
		}
		checkedIn[date][ev.EmployeeID] = true
	}

	var rows []report.MissingCheckIn
	for _, date := range dates {
		for _, emp := range employees {
			if !emp.Active {
				continue
			}
			if checkedIn[date][emp.ID] {
				continue
			}
			if coveredByJustification(justifications, emp.ID, date) {
				continue
			}

			scheduleName := "no schedule"
			if emp.ScheduleName != nil {
				scheduleName = *emp.ScheduleName
			}
			rows = append(rows, report.MissingCheckIn{
				Date:         date,
				EmployeeID:   emp.ID,
				EmployeeCode: emp.Code,
				EmployeeName: emp.FullName(),
				Branch:       emp.Branch,
				Position:     emp.Position,
				ScheduleName: scheduleName,
				Note:         "no check-in recorded",
			})
		}
	}
	return rows, nil
}
