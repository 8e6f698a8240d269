package postgresql

import (
	"context"
	"fmt"

	"github.com/timeqr/timeqr-backend-go/internal/domain/schedule"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// ListWithBlocks implements schedule.ScheduleRepository.
func (r *scheduleRepository) ListWithBlocks(ctx context.Context) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.name, s.branch, s.created_at, s.updated_at
		FROM schedules s
		ORDER BY s.name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	index := make(map[string]int)
	for rows.Next() {
		var sch schedule.Schedule
		if err := rows.Scan(&sch.ID, &sch.Name, &sch.Branch, &sch.CreatedAt, &sch.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		index[sch.ID] = len(schedules)
		schedules = append(schedules, sch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}

	blockQuery := `
		SELECT b.id, b.schedule_id, b.start_clock, b.end_clock, b.tolerance_minutes
		FROM schedule_blocks b
		ORDER BY b.schedule_id, b.start_clock
	`
	blockRows, err := q.Query(ctx, blockQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule blocks: %w", err)
	}
	defer blockRows.Close()

	for blockRows.Next() {
		var b schedule.ScheduleBlock
		if err := blockRows.Scan(&b.ID, &b.ScheduleID, &b.StartClock, &b.EndClock, &b.ToleranceMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan schedule block: %w", err)
		}
		if i, ok := index[b.ScheduleID]; ok {
			schedules[i].Blocks = append(schedules[i].Blocks, b)
		}
	}
	if err := blockRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedule blocks: %w", err)
	}

	return schedules, nil
}
