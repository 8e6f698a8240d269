package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db       *database.DB
	pageSize int
}

func NewEventRepository(db *database.DB, pageSize int) attendance.EventRepository {
	return &eventRepository{db: db, pageSize: pageSize}
}

// ListByWindow implements attendance.EventRepository. Pages are fetched
// sequentially with a fixed limit; a page shorter than the limit signals
// end-of-data. Callers always receive the complete window.
func (r *eventRepository) ListByWindow(ctx context.Context, query attendance.EventQuery) ([]attendance.CheckEvent, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"ev.occurred_at >= $1", "ev.occurred_at < $2"}
	args := []any{query.Start, query.End}
	argIdx := 3

	if query.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("ev.employee_id = $%d", argIdx))
		args = append(args, query.EmployeeID)
		argIdx++
	}
	if query.Branch != "" {
		conditions = append(conditions, fmt.Sprintf("e.branch = $%d", argIdx))
		args = append(args, query.Branch)
		argIdx++
	}
	if query.Position != "" {
		conditions = append(conditions, fmt.Sprintf("e.position = $%d", argIdx))
		args = append(args, query.Position)
		argIdx++
	}
	if query.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("ev.kind = $%d", argIdx))
		args = append(args, string(query.Kind))
		argIdx++
	}

	sql := fmt.Sprintf(`
		SELECT ev.id, ev.employee_id, ev.occurred_at, ev.kind, ev.device_id, ev.photo_ref,
		       e.code, e.first_name, e.last_name, e.branch, e.position,
		       sb.start_clock, sb.tolerance_minutes
		FROM attendance_events ev
		JOIN employees e ON e.id = ev.employee_id
		LEFT JOIN schedule_blocks sb ON sb.id = ev.schedule_block_id
		WHERE %s
		ORDER BY ev.occurred_at, ev.id
		LIMIT $%d OFFSET $%d
	`, strings.Join(conditions, " AND "), argIdx, argIdx+1)

	var events []attendance.CheckEvent
	offset := 0
	for {
		pageArgs := append(append([]any{}, args...), r.pageSize, offset)
		rows, err := q.Query(ctx, sql, pageArgs...)
		if err != nil {
			return nil, fmt.Errorf("failed to query events: %w", err)
		}

		pageCount := 0
		for rows.Next() {
			var (
				ev                  attendance.CheckEvent
				kind                string
				firstName, lastName string
				blockStart          *string
				blockTolerance      *int
			)
			err := rows.Scan(
				&ev.ID, &ev.EmployeeID, &ev.Timestamp, &kind, &ev.DeviceID, &ev.PhotoRef,
				&ev.EmployeeCode, &firstName, &lastName, &ev.Branch, &ev.Position,
				&blockStart, &blockTolerance,
			)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan event: %w", err)
			}

			ev.Timestamp = ev.Timestamp.UTC()
			ev.Kind = attendance.EventKind(kind)
			ev.EmployeeName = strings.TrimSpace(firstName + " " + lastName)
			if blockStart != nil {
				ref := attendance.ScheduleBlockRef{StartClock: *blockStart}
				if blockTolerance != nil {
					ref.ToleranceMinutes = *blockTolerance
				}
				ev.ScheduleBlock = &ref
			}

			events = append(events, ev)
			pageCount++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read events: %w", err)
		}

		if pageCount < r.pageSize {
			break
		}
		offset += r.pageSize
	}

	return events, nil
}
