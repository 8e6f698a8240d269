package dashboard

import (
	"context"
)

type DashboardService interface {
	// TodayStats computes the dashboard cards from today's raw events.
	TodayStats(ctx context.Context) (TodayStats, error)
}
