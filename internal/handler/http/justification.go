package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type JustificationHandler interface {
	ListByRange(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type JustificationHandlerImpl struct {
	justificationService justification.JustificationService
}

// ListByRange implements JustificationHandler.
func (h *JustificationHandlerImpl) ListByRange(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	resp, err := h.justificationService.ListByRange(r.Context(), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Create implements JustificationHandler.
func (h *JustificationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req justification.SaveJustificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.justificationService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create justification", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Justification created successfully", resp)
}

// Update implements JustificationHandler.
func (h *JustificationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req justification.SaveJustificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.justificationService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update justification", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification updated successfully", resp)
}

// Delete implements JustificationHandler.
func (h *JustificationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.justificationService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Justification deleted successfully", nil)
}

func NewJustificationHandler(justificationService justification.JustificationService) JustificationHandler {
	return &JustificationHandlerImpl{justificationService: justificationService}
}
