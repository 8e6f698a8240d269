package http

import (
	"log/slog"
	"net/http"

	"github.com/timeqr/timeqr-backend-go/internal/domain/dashboard"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	TodayStats(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

// TodayStats implements DashboardHandler.
func (h *DashboardHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.dashboardService.TodayStats(r.Context())
	if err != nil {
		slog.Error("Failed to compute dashboard stats", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}
