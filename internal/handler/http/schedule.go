package http

import (
	"net/http"

	"github.com/timeqr/timeqr-backend-go/internal/domain/schedule"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

// List implements ScheduleHandler.
func (h *ScheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.scheduleService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}
