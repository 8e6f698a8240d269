package aggregation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
)

func testEmployee(id, code string, active bool) employee.Employee {
	return employee.Employee{
		ID:        id,
		Code:      code,
		FirstName: "Test",
		LastName:  code,
		Branch:    "norte",
		Position:  "operator",
		Active:    active,
	}
}

func TestMissingCheckIns_InvalidRange(t *testing.T) {
	e := NewEngine(testConfig())

	_, err := e.MissingCheckIns("2024-03-08", "2024-03-04", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, report.ErrInvalidRange))
}

func TestMissingCheckIns_IncludesWeekends(t *testing.T) {
	e := NewEngine(testConfig())

	// Fri 2024-03-08 through Mon 2024-03-11: all four calendar dates are
	// examined, weekend included.
	employees := []employee.Employee{testEmployee("e01", "E01", true)}

	rows, err := e.MissingCheckIns("2024-03-08", "2024-03-11", employees, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []string{"2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11"}, dates)
}

func TestMissingCheckIns_SkipsCheckedInAndInactive(t *testing.T) {
	e := NewEngine(testConfig())

	employees := []employee.Employee{
		testEmployee("e01", "E01", true),
		testEmployee("e02", "E02", true),
		testEmployee("e03", "E03", false),
	}
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:02"),
	}

	rows, err := e.MissingCheckIns("2024-03-05", "2024-03-05", employees, events, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "e02", rows[0].EmployeeID)
	assert.Equal(t, "no check-in recorded", rows[0].Note)
	assert.Equal(t, "no schedule", rows[0].ScheduleName)
}

func TestMissingCheckIns_CheckOutOnlyStillMissing(t *testing.T) {
	e := NewEngine(testConfig())

	// A lone check-out does not count as presence.
	employees := []employee.Employee{testEmployee("e01", "E01", true)}
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 17:00"),
	}

	rows, err := e.MissingCheckIns("2024-03-05", "2024-03-05", employees, events, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMissingCheckIns_JustifiedSkipped(t *testing.T) {
	e := NewEngine(testConfig())

	employees := []employee.Employee{
		testEmployee("e01", "E01", true),
		testEmployee("e02", "E02", true),
	}
	justs := []justification.Justification{{
		ID:         "j1",
		EmployeeID: "e01",
		Type:       justification.TypeVacation,
		StartDate:  "2024-03-04",
		EndDate:    "2024-03-06",
	}}

	rows, err := e.MissingCheckIns("2024-03-05", "2024-03-05", employees, nil, justs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "e02", rows[0].EmployeeID)
}

func TestMissingCheckIns_LocalDateBucketing(t *testing.T) {
	e := NewEngine(testConfig())

	employees := []employee.Employee{testEmployee("e01", "E01", true)}
	// 06:30 UTC on Mar 6 is 23:30 Mar 5 local: covers the 5th, not the
	// 6th.
	events := []attendance.CheckEvent{
		utcEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-06 06:30"),
	}

	rows, err := e.MissingCheckIns("2024-03-05", "2024-03-06", employees, events, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-06", rows[0].Date)
}

func TestMissingCheckIns_ScheduleNameCarried(t *testing.T) {
	e := NewEngine(testConfig())

	name := "morning shift"
	emp := testEmployee("e01", "E01", true)
	emp.ScheduleName = &name

	rows, err := e.MissingCheckIns("2024-03-05", "2024-03-05", []employee.Employee{emp}, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "morning shift", rows[0].ScheduleName)
}
