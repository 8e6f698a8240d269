package aggregation

import (
	"fmt"
	"math"
	"sort"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

// PeriodSummary aggregates one employee's day groups over [startDate,
// endDate] and reconciles workable days against justification intervals.
// Totals sum per-day rounded hours, event counts (not pair counts) and
// per-day lateness minutes.
func (e *Engine) PeriodSummary(
	employeeID, startDate, endDate string,
	groups []attendance.DayGroup,
	justifications []justification.Justification,
) (report.PeriodSummary, error) {
	workable, _, err := workableDates(startDate, endDate)
	if err != nil {
		return report.PeriodSummary{}, err
	}

	summary := report.PeriodSummary{
		EmployeeID:   employeeID,
		StartDate:    startDate,
		EndDate:      endDate,
		WorkableDays: len(workable),
	}

	activity := make(map[string]bool)
	totalHours := 0.0

	for _, g := range groups {
		if g.EmployeeID != employeeID {
			continue
		}
		if g.Date < startDate || g.Date > endDate {
			continue
		}

		summary.DailyBreakdown = append(summary.DailyBreakdown, g)
		totalHours += g.Hours
		summary.TotalCheckIns += g.CheckInCount
		summary.TotalCheckOuts += g.CheckOutCount
		summary.TotalLateMinutes += g.LateMinutes
		if len(g.Events) > 0 {
			activity[g.Date] = true
		}

		if summary.EmployeeCode == "" {
			summary.EmployeeCode = g.EmployeeCode
			summary.EmployeeName = g.EmployeeName
			summary.Branch = g.Branch
			summary.Position = g.Position
		}
	}

	sort.Slice(summary.DailyBreakdown, func(i, j int) bool {
		return summary.DailyBreakdown[i].Date < summary.DailyBreakdown[j].Date
	})

	for _, date := range workable {
		if activity[date] {
			continue
		}
		if coveredByJustification(justifications, employeeID, date) {
			continue
		}
		summary.TotalAbsences++
	}

	summary.DaysWithActivity = len(activity)
	// Per-day values are already rounded; this only strips float noise
	// from the sum.
	summary.TotalHoursDecimal = math.Round(totalHours*10) / 10

	return summary, nil
}

// workableDates validates a range and returns its weekday dates plus the
// full date list.
func workableDates(startDate, endDate string) (workable, all []string, err error) {
	if startDate == "" || endDate == "" {
		return nil, nil, report.ErrInvalidRange
	}
	if _, err := tz.ParseDate(startDate); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", report.ErrInvalidRange, startDate)
	}
	if _, err := tz.ParseDate(endDate); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", report.ErrInvalidRange, endDate)
	}
	if endDate < startDate {
		return nil, nil, fmt.Errorf("%w: %s after %s", report.ErrInvalidRange, startDate, endDate)
	}

	all, err = tz.DateRange(startDate, endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", report.ErrInvalidRange, err)
	}
	return tz.Weekdays(all), all, nil
}

func coveredByJustification(justifications []justification.Justification, employeeID, date string) bool {
	for _, j := range justifications {
		if j.EmployeeID == employeeID && j.Covers(date) {
			return true
		}
	}
	return false
}
