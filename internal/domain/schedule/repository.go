package schedule

import (
	"context"
)

type ScheduleRepository interface {
	// ListWithBlocks returns all schedules with their blocks attached,
	// ordered by name.
	ListWithBlocks(ctx context.Context) ([]Schedule, error)
}
