package report

import (
	"context"
)

// ReportService builds period summaries and absence exports from raw
// events, employees and justifications.
type ReportService interface {
	// PeriodSummary aggregates one employee over a date range.
	PeriodSummary(ctx context.Context, req PeriodSummaryRequest) (PeriodSummary, error)

	// GeneralSummary produces one row per employee with activity in range.
	GeneralSummary(ctx context.Context, req GeneralSummaryRequest) (GeneralSummaryResponse, error)

	// GeneralSummaryCSV renders the general summary as CSV.
	GeneralSummaryCSV(ctx context.Context, req GeneralSummaryRequest) ([]byte, error)

	// MissingCheckIns reports, per date in range, active employees with no
	// check-in and no covering justification.
	MissingCheckIns(ctx context.Context, req MissingCheckInsRequest) (MissingCheckInsResponse, error)

	// MissingCheckInsCSV renders the missing-entries report as CSV.
	MissingCheckInsCSV(ctx context.Context, req MissingCheckInsRequest) ([]byte, error)
}
