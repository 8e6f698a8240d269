package http

import (
	"log/slog"
	"net/http"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ListDayGroups(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

// ListDayGroups implements AttendanceHandler. Raw events for the requested
// range, grouped per employee-day.
func (h *AttendanceHandlerImpl) ListDayGroups(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.EventFilter{
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		EmployeeID: query.Get("employee_id"),
		Branch:     query.Get("branch"),
		Position:   query.Get("position"),
	}

	resp, err := h.attendanceService.ListDayGroups(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list day groups", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}
