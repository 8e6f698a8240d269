package schedule

import (
	"context"
	"fmt"

	"github.com/timeqr/timeqr-backend-go/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context) (schedule.ListSchedulesResponse, error) {
	schedules, err := s.scheduleRepo.ListWithBlocks(ctx)
	if err != nil {
		return schedule.ListSchedulesResponse{}, fmt.Errorf("failed to list schedules: %w", err)
	}

	resp := schedule.ListSchedulesResponse{
		Schedules: make([]schedule.ScheduleResponse, 0, len(schedules)),
		Total:     len(schedules),
	}
	for _, sch := range schedules {
		blocks := make([]schedule.ScheduleBlockResponse, 0, len(sch.Blocks))
		for _, b := range sch.Blocks {
			blocks = append(blocks, schedule.ScheduleBlockResponse{
				ID:               b.ID,
				StartClock:       b.StartClock,
				EndClock:         b.EndClock,
				ToleranceMinutes: b.ToleranceMinutes,
			})
		}
		resp.Schedules = append(resp.Schedules, schedule.ScheduleResponse{
			ID:     sch.ID,
			Name:   sch.Name,
			Branch: sch.Branch,
			Blocks: blocks,
		})
	}
	return resp, nil
}
