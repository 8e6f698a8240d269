package schedule

import (
	"context"
)

// ScheduleService exposes the read-only schedule catalog.
type ScheduleService interface {
	List(ctx context.Context) (ListSchedulesResponse, error)
}
