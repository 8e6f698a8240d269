package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
	"github.com/timeqr/timeqr-backend-go/internal/service/aggregation"
)

type ReportServiceImpl struct {
	eventRepo         attendance.EventRepository
	employeeRepo      employee.EmployeeRepository
	justificationRepo justification.JustificationRepository
	engine            *aggregation.Engine
}

func NewReportService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	justificationRepo justification.JustificationRepository,
	engine *aggregation.Engine,
) report.ReportService {
	return &ReportServiceImpl{
		eventRepo:         eventRepo,
		employeeRepo:      employeeRepo,
		justificationRepo: justificationRepo,
		engine:            engine,
	}
}

// branchFromContext reads the branch scope from the token claims. Requests
// without a token (background jobs) and tokens without a branch claim see
// all branches.
func branchFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	branch, _ := claims["branch"].(string)
	return branch
}

func localWindow(startDate, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(tz.DateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", report.ErrInvalidRange, startDate)
	}
	end, err := time.ParseInLocation(tz.DateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", report.ErrInvalidRange, endDate)
	}
	return start.UTC(), end.AddDate(0, 0, 1).UTC(), nil
}

// fetchRange loads the events and justifications overlapping a local date
// range, branch-scoped.
func (s *ReportServiceImpl) fetchRange(ctx context.Context, startDate, endDate, branch, position string) ([]attendance.CheckEvent, []justification.Justification, error) {
	start, end, err := localWindow(startDate, endDate, s.engine.Location())
	if err != nil {
		return nil, nil, err
	}

	events, err := s.eventRepo.ListByWindow(ctx, attendance.EventQuery{
		Start:    start,
		End:      end,
		Branch:   branch,
		Position: position,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events: %w", err)
	}

	justifications, err := s.justificationRepo.ListOverlapping(ctx, startDate, endDate, branch)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list justifications: %w", err)
	}
	return events, justifications, nil
}

// PeriodSummary implements report.ReportService.
func (s *ReportServiceImpl) PeriodSummary(ctx context.Context, req report.PeriodSummaryRequest) (report.PeriodSummary, error) {
	if err := req.Validate(); err != nil {
		return report.PeriodSummary{}, err
	}

	branch := branchFromContext(ctx)
	events, justifications, err := s.fetchRange(ctx, req.StartDate, req.EndDate, branch, "")
	if err != nil {
		return report.PeriodSummary{}, err
	}

	groups := s.engine.GroupByEmployeeAndDate(events)
	summary, err := s.engine.PeriodSummary(req.EmployeeID, req.StartDate, req.EndDate, groups, justifications)
	if err != nil {
		return report.PeriodSummary{}, err
	}

	if summary.EmployeeCode == "" {
		// No activity in range; fill identity from the roster.
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err == nil {
			summary.EmployeeCode = emp.Code
			summary.EmployeeName = emp.FullName()
			summary.Branch = emp.Branch
			summary.Position = emp.Position
		}
	}
	return summary, nil
}

// GeneralSummary implements report.ReportService.
func (s *ReportServiceImpl) GeneralSummary(ctx context.Context, req report.GeneralSummaryRequest) (report.GeneralSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.GeneralSummaryResponse{}, err
	}

	if claimBranch := branchFromContext(ctx); claimBranch != "" {
		req.Branch = claimBranch
	}

	events, justifications, err := s.fetchRange(ctx, req.StartDate, req.EndDate, req.Branch, req.Position)
	if err != nil {
		return report.GeneralSummaryResponse{}, err
	}

	groups := s.engine.GroupByEmployeeAndDate(events)

	seen := make(map[string]bool)
	var employeeIDs []string
	for _, g := range groups {
		if !seen[g.EmployeeID] {
			seen[g.EmployeeID] = true
			employeeIDs = append(employeeIDs, g.EmployeeID)
		}
	}

	resp := report.GeneralSummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rows:      make([]report.GeneralSummaryRow, 0, len(employeeIDs)),
	}
	for _, id := range employeeIDs {
		summary, err := s.engine.PeriodSummary(id, req.StartDate, req.EndDate, groups, justifications)
		if err != nil {
			return report.GeneralSummaryResponse{}, err
		}
		resp.Rows = append(resp.Rows, report.GeneralSummaryRow{
			EmployeeID:       summary.EmployeeID,
			EmployeeCode:     summary.EmployeeCode,
			EmployeeName:     summary.EmployeeName,
			Branch:           summary.Branch,
			Position:         summary.Position,
			TotalHours:       summary.TotalHoursDecimal,
			TotalCheckIns:    summary.TotalCheckIns,
			TotalCheckOuts:   summary.TotalCheckOuts,
			TotalLateMinutes: summary.TotalLateMinutes,
			TotalAbsences:    summary.TotalAbsences,
			WorkableDays:     summary.WorkableDays,
			DaysWithActivity: summary.DaysWithActivity,
		})
	}

	sort.Slice(resp.Rows, func(i, j int) bool {
		return resp.Rows[i].EmployeeCode < resp.Rows[j].EmployeeCode
	})
	return resp, nil
}

// GeneralSummaryCSV implements report.ReportService.
func (s *ReportServiceImpl) GeneralSummaryCSV(ctx context.Context, req report.GeneralSummaryRequest) ([]byte, error) {
	resp, err := s.GeneralSummary(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"employee_code", "employee_name", "branch", "position",
		"total_hours", "check_ins", "check_outs", "late_minutes",
		"absences", "workable_days", "days_with_activity",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range resp.Rows {
		record := []string{
			row.EmployeeCode,
			row.EmployeeName,
			row.Branch,
			row.Position,
			strconv.FormatFloat(row.TotalHours, 'f', 1, 64),
			strconv.Itoa(row.TotalCheckIns),
			strconv.Itoa(row.TotalCheckOuts),
			strconv.Itoa(row.TotalLateMinutes),
			strconv.Itoa(row.TotalAbsences),
			strconv.Itoa(row.WorkableDays),
			strconv.Itoa(row.DaysWithActivity),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// MissingCheckIns implements report.ReportService.
func (s *ReportServiceImpl) MissingCheckIns(ctx context.Context, req report.MissingCheckInsRequest) (report.MissingCheckInsResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MissingCheckInsResponse{}, err
	}

	branch := branchFromContext(ctx)
	employees, err := s.employeeRepo.List(ctx, employee.ListFilter{Branch: branch, ActiveOnly: true})
	if err != nil {
		return report.MissingCheckInsResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	events, justifications, err := s.fetchRange(ctx, req.StartDate, req.EndDate, branch, "")
	if err != nil {
		return report.MissingCheckInsResponse{}, err
	}

	rows, err := s.engine.MissingCheckIns(req.StartDate, req.EndDate, employees, events, justifications)
	if err != nil {
		return report.MissingCheckInsResponse{}, err
	}

	resp := report.MissingCheckInsResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Rows:      make([]report.MissingCheckInRow, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, report.MissingCheckInRow{
			Date:         row.Date,
			EmployeeID:   row.EmployeeID,
			EmployeeCode: row.EmployeeCode,
			EmployeeName: row.EmployeeName,
			Branch:       row.Branch,
			Position:     row.Position,
			ScheduleName: row.ScheduleName,
			Note:         row.Note,
		})
	}
	return resp, nil
}

// MissingCheckInsCSV implements report.ReportService.
func (s *ReportServiceImpl) MissingCheckInsCSV(ctx context.Context, req report.MissingCheckInsRequest) ([]byte, error) {
	resp, err := s.MissingCheckIns(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"date", "employee_code", "employee_name", "branch", "position",
		"schedule", "note",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range resp.Rows {
		record := []string{
			row.Date,
			row.EmployeeCode,
			row.EmployeeName,
			row.Branch,
			row.Position,
			row.ScheduleName,
			row.Note,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
