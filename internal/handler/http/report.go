package http

import (
	"log/slog"
	"net/http"

	"github.com/timeqr/timeqr-backend-go/internal/domain/report"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	PeriodSummary(w http.ResponseWriter, r *http.Request)
	GeneralSummary(w http.ResponseWriter, r *http.Request)
	MissingCheckIns(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

// PeriodSummary implements ReportHandler.
func (h *ReportHandlerImpl) PeriodSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.PeriodSummaryRequest{
		EmployeeID: query.Get("employee_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}

	resp, err := h.reportService.PeriodSummary(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build period summary", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GeneralSummary implements ReportHandler. `?format=csv` switches the
// payload to a CSV download.
func (h *ReportHandlerImpl) GeneralSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.GeneralSummaryRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Branch:    query.Get("branch"),
		Position:  query.Get("position"),
	}

	if query.Get("format") == "csv" {
		body, err := h.reportService.GeneralSummaryCSV(r.Context(), req)
		if err != nil {
			slog.Error("Failed to build general summary csv", "error", err)
			response.HandleError(w, err)
			return
		}
		response.CSV(w, "general-summary.csv", body)
		return
	}

	resp, err := h.reportService.GeneralSummary(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build general summary", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MissingCheckIns implements ReportHandler. `?format=csv` switches the
// payload to a CSV download.
func (h *ReportHandlerImpl) MissingCheckIns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.MissingCheckInsRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	if query.Get("format") == "csv" {
		body, err := h.reportService.MissingCheckInsCSV(r.Context(), req)
		if err != nil {
			slog.Error("Failed to build missing check-ins csv", "error", err)
			response.HandleError(w, err)
			return
		}
		response.CSV(w, "missing-checkins.csv", body)
		return
	}

	resp, err := h.reportService.MissingCheckIns(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build missing check-ins report", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}
