package attendance

import (
	"context"
)

// AttendanceService serves the registros table view: raw events aggregated
// into per-employee-day groups with per-event lateness flags.
type AttendanceService interface {
	// ListDayGroups fetches the raw events for the filter's date range and
	// aggregates them into day groups.
	ListDayGroups(ctx context.Context, filter EventFilter) (ListDayGroupsResponse, error)
}
