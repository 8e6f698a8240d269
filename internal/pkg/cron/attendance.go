package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

type AttendanceJobs struct {
	reportService report.ReportService
	location      *time.Location
}

func NewAttendanceJobs(reportService report.ReportService, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		reportService: reportService,
		location:      location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_missing_checkins", 1*time.Hour, j.ReportMissingCheckIns)
}

// ReportMissingCheckIns audits yesterday's attendance and logs every active
// employee without a check-in, so operations can chase them in the morning.
func (j *AttendanceJobs) ReportMissingCheckIns(ctx context.Context) error {
	// Only run during the first local hour of the day
	if time.Now().In(j.location).Hour() != 0 {
		return nil
	}

	yesterday := tz.LocalDate(time.Now().UTC().AddDate(0, 0, -1), j.location)
	slog.Info("Cron: Starting missing check-ins audit", "date", yesterday)

	resp, err := j.reportService.MissingCheckIns(ctx, report.MissingCheckInsRequest{
		StartDate: yesterday,
		EndDate:   yesterday,
	})
	if err != nil {
		return fmt.Errorf("failed to build missing check-ins report: %w", err)
	}

	if len(resp.Rows) == 0 {
		slog.Info("Cron: No missing check-ins", "date", yesterday)
		return nil
	}

	for _, row := range resp.Rows {
		slog.Warn("Missing check-in",
			"date", row.Date,
			"employee_code", row.EmployeeCode,
			"employee_name", row.EmployeeName,
			"branch", row.Branch,
		)
	}
	slog.Info("Cron: Missing check-ins audit completed", "date", yesterday, "count", len(resp.Rows))
	return nil
}
