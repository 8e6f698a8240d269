package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
	"github.com/timeqr/timeqr-backend-go/internal/service/aggregation"
)

type fakeEventRepo struct {
	events []attendance.CheckEvent
}

func (f *fakeEventRepo) ListByWindow(_ context.Context, query attendance.EventQuery) ([]attendance.CheckEvent, error) {
	var out []attendance.CheckEvent
	for _, ev := range f.events {
		if ev.Timestamp.Before(query.Start) || !ev.Timestamp.Before(query.End) {
			continue
		}
		if query.EmployeeID != "" && ev.EmployeeID != query.EmployeeID {
			continue
		}
		if query.Branch != "" && ev.Branch != query.Branch {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Code == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.ListFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if filter.Branch != "" && emp.Branch != filter.Branch {
			continue
		}
		if filter.ActiveOnly && !emp.Active {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

type fakeJustificationRepo struct {
	items []justification.Justification
}

func (f *fakeJustificationRepo) Create(_ context.Context, j justification.Justification) (justification.Justification, error) {
	f.items = append(f.items, j)
	return j, nil
}

func (f *fakeJustificationRepo) GetByID(_ context.Context, id string) (justification.Justification, error) {
	for _, j := range f.items {
		if j.ID == id {
			return j, nil
		}
	}
	return justification.Justification{}, justification.ErrJustificationNotFound
}

func (f *fakeJustificationRepo) Update(_ context.Context, _ justification.Justification) error {
	return nil
}

func (f *fakeJustificationRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeJustificationRepo) ListOverlapping(_ context.Context, startDate, endDate, _ string) ([]justification.Justification, error) {
	var out []justification.Justification
	for _, j := range f.items {
		if j.StartDate <= endDate && j.EndDate >= startDate {
			out = append(out, j)
		}
	}
	return out, nil
}

func testEvent(id, employeeID, code string, kind attendance.EventKind, local string) attendance.CheckEvent {
	ts, err := time.ParseInLocation("2006-01-02 15:04", local, tz.Zone(-420))
	if err != nil {
		panic(err)
	}
	return attendance.CheckEvent{
		ID:           id,
		EmployeeID:   employeeID,
		EmployeeCode: code,
		EmployeeName: "Worker " + code,
		Branch:       "norte",
		Timestamp:    ts.UTC(),
		Kind:         kind,
		DeviceID:     "tablet-1",
	}
}

func newTestService(events []attendance.CheckEvent, employees []employee.Employee, justs []justification.Justification) report.ReportService {
	return NewReportService(
		&fakeEventRepo{events: events},
		&fakeEmployeeRepo{employees: employees},
		&fakeJustificationRepo{items: justs},
		aggregation.NewEngine(aggregation.Config{
			MandatoryBreakMinutes: 60,
			ExemptCodes:           map[string]struct{}{},
			LateToleranceMinutes:  10,
			FallbackStartMinutes:  8 * 60,
			MorningLateLimit:      8*60 + 11,
			AfternoonLateLimit:    14*60 + 40,
			Location:              tz.Zone(-420),
		}),
	)
}

func TestPeriodSummary_ValidationFailsFirst(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	_, err := svc.PeriodSummary(context.Background(), report.PeriodSummaryRequest{
		EmployeeID: "",
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-08",
	})
	require.Error(t, err)
}

func TestPeriodSummary_EndToEnd(t *testing.T) {
	events := []attendance.CheckEvent{
		testEvent("ev1", "e01", "E01", attendance.KindCheckIn, "2024-03-04 08:00"),
		testEvent("ev2", "e01", "E01", attendance.KindCheckOut, "2024-03-04 12:00"),
		testEvent("ev3", "e01", "E01", attendance.KindCheckIn, "2024-03-04 13:10"),
		testEvent("ev4", "e01", "E01", attendance.KindCheckOut, "2024-03-04 17:00"),
	}
	justs := []justification.Justification{{
		ID:         "j1",
		EmployeeID: "e01",
		Type:       justification.TypeVacation,
		StartDate:  "2024-03-05",
		EndDate:    "2024-03-07",
	}}

	svc := newTestService(events, nil, justs)

	// Mon has activity, Tue-Thu justified, Fri absent.
	summary, err := svc.PeriodSummary(context.Background(), report.PeriodSummaryRequest{
		EmployeeID: "e01",
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.WorkableDays)
	assert.Equal(t, 1, summary.DaysWithActivity)
	assert.Equal(t, 1, summary.TotalAbsences)
	assert.Equal(t, 2, summary.TotalCheckIns)
	assert.InDelta(t, 7.8, summary.TotalHoursDecimal, 1e-9)
}

func TestPeriodSummary_NoActivityFillsIdentityFromRoster(t *testing.T) {
	employees := []employee.Employee{{
		ID:        "e01",
		Code:      "E01",
		FirstName: "Ana",
		LastName:  "Reyes",
		Branch:    "norte",
		Position:  "operator",
		Active:    true,
	}}

	svc := newTestService(nil, employees, nil)

	summary, err := svc.PeriodSummary(context.Background(), report.PeriodSummaryRequest{
		EmployeeID: "e01",
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, "E01", summary.EmployeeCode)
	assert.Equal(t, "Ana Reyes", summary.EmployeeName)
	assert.Equal(t, 1, summary.TotalAbsences)
}

func TestGeneralSummary_RowPerEmployeeWithActivity(t *testing.T) {
	events := []attendance.CheckEvent{
		testEvent("ev1", "e01", "E01", attendance.KindCheckIn, "2024-03-04 08:00"),
		testEvent("ev2", "e01", "E01", attendance.KindCheckOut, "2024-03-04 16:00"),
		testEvent("ev3", "e02", "E02", attendance.KindCheckIn, "2024-03-04 08:30"),
		testEvent("ev4", "e02", "E02", attendance.KindCheckOut, "2024-03-04 16:00"),
	}

	svc := newTestService(events, nil, nil)

	resp, err := svc.GeneralSummary(context.Background(), report.GeneralSummaryRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	// Rows ordered by employee code.
	assert.Equal(t, "E01", resp.Rows[0].EmployeeCode)
	assert.Equal(t, "E02", resp.Rows[1].EmployeeCode)
	assert.Equal(t, 0, resp.Rows[0].TotalLateMinutes)
	assert.Equal(t, 19, resp.Rows[1].TotalLateMinutes)
}

func TestGeneralSummaryCSV_Renders(t *testing.T) {
	events := []attendance.CheckEvent{
		testEvent("ev1", "e01", "E01", attendance.KindCheckIn, "2024-03-04 08:00"),
		testEvent("ev2", "e01", "E01", attendance.KindCheckOut, "2024-03-04 16:00"),
	}

	svc := newTestService(events, nil, nil)

	body, err := svc.GeneralSummaryCSV(context.Background(), report.GeneralSummaryRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "employee_code", records[0][0])
	assert.Equal(t, "E01", records[1][0])
	// Single pair, mandatory break deducted: 480 - 60 = 420 minutes.
	assert.Equal(t, "7.0", records[1][4])
}

func TestMissingCheckIns_ActiveRosterOnly(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e01", Code: "E01", FirstName: "Ana", LastName: "Reyes", Branch: "norte", Active: true},
		{ID: "e02", Code: "E02", FirstName: "Luis", LastName: "Mora", Branch: "norte", Active: false},
	}

	svc := newTestService(nil, employees, nil)

	resp, err := svc.MissingCheckIns(context.Background(), report.MissingCheckInsRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "E01", resp.Rows[0].EmployeeCode)
}

func TestMissingCheckInsCSV_Renders(t *testing.T) {
	employees := []employee.Employee{
		{ID: "e01", Code: "E01", FirstName: "Ana", LastName: "Reyes", Branch: "norte", Active: true},
	}

	svc := newTestService(nil, employees, nil)

	body, err := svc.MissingCheckInsCSV(context.Background(), report.MissingCheckInsRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-04",
	})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"date", "employee_code", "employee_name", "branch", "position", "schedule", "note"}, records[0])
	assert.Equal(t, "2024-03-04", records[1][0])
	assert.Equal(t, "no check-in recorded", records[1][6])
}
