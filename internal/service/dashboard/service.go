package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/domain/dashboard"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
	"github.com/timeqr/timeqr-backend-go/internal/service/aggregation"
)

type DashboardServiceImpl struct {
	eventRepo attendance.EventRepository
	engine    *aggregation.Engine
}

func NewDashboardService(eventRepo attendance.EventRepository, engine *aggregation.Engine) dashboard.DashboardService {
	return &DashboardServiceImpl{
		eventRepo: eventRepo,
		engine:    engine,
	}
}

// TodayStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) TodayStats(ctx context.Context) (dashboard.TodayStats, error) {
	branch := ""
	if _, claims, err := jwtauth.FromContext(ctx); err == nil {
		branch, _ = claims["branch"].(string)
	}

	loc := s.engine.Location()
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	events, err := s.eventRepo.ListByWindow(ctx, attendance.EventQuery{
		Start:  dayStart.UTC(),
		End:    dayStart.AddDate(0, 0, 1).UTC(),
		Branch: branch,
	})
	if err != nil {
		return dashboard.TodayStats{}, fmt.Errorf("failed to list events: %w", err)
	}

	stats := dashboard.TodayStats{
		Date:        tz.LocalDate(now.UTC(), loc),
		EventsToday: len(events),
	}

	devices := make(map[string]bool)
	for _, ev := range events {
		if ev.DeviceID != "" {
			devices[ev.DeviceID] = true
		}
	}
	stats.ActiveDevices = len(devices)

	for _, g := range s.engine.GroupByEmployeeAndDate(events) {
		if g.FirstCheckIn == nil {
			continue
		}
		// Present means the last swipe of the day is still a check-in.
		last := g.Events[len(g.Events)-1]
		if last.Kind == attendance.KindCheckIn {
			stats.PresentCount++
		}
		if s.engine.IsLateCheckIn(*g.FirstCheckIn) {
			stats.LateArrivals++
		}
	}
	return stats, nil
}
