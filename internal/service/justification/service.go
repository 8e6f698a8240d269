package justification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/domain/justification"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/validator"
)

type JustificationServiceImpl struct {
	justificationRepo justification.JustificationRepository
	employeeRepo      employee.EmployeeRepository
}

func NewJustificationService(
	justificationRepo justification.JustificationRepository,
	employeeRepo employee.EmployeeRepository,
) justification.JustificationService {
	return &JustificationServiceImpl{
		justificationRepo: justificationRepo,
		employeeRepo:      employeeRepo,
	}
}

func mapJustificationToResponse(j justification.Justification) justification.JustificationResponse {
	days := 0
	if dates, err := tz.DateRange(j.StartDate, j.EndDate); err == nil {
		days = len(dates)
	}
	return justification.JustificationResponse{
		ID:           j.ID,
		EmployeeID:   j.EmployeeID,
		EmployeeCode: j.EmployeeCode,
		EmployeeName: j.EmployeeName,
		Branch:       j.Branch,
		Type:         string(j.Type),
		StartDate:    j.StartDate,
		EndDate:      j.EndDate,
		Days:         days,
		Reason:       j.Reason,
	}
}

// ListByRange implements justification.JustificationService.
func (s *JustificationServiceImpl) ListByRange(ctx context.Context, startDate, endDate string) (justification.ListJustificationsResponse, error) {
	var errs validator.ValidationErrors
	start, startOK := validator.IsValidDate(startDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(endDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if len(errs) > 0 {
		return justification.ListJustificationsResponse{}, errs
	}

	items, err := s.justificationRepo.ListOverlapping(ctx, startDate, endDate, "")
	if err != nil {
		return justification.ListJustificationsResponse{}, fmt.Errorf("failed to list justifications: %w", err)
	}

	resp := justification.ListJustificationsResponse{
		Justifications: make([]justification.JustificationResponse, 0, len(items)),
		Total:          len(items),
	}
	for _, j := range items {
		resp.Justifications = append(resp.Justifications, mapJustificationToResponse(j))
	}
	return resp, nil
}

// Create implements justification.JustificationService.
func (s *JustificationServiceImpl) Create(ctx context.Context, req justification.SaveJustificationRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.JustificationResponse{}, employee.ErrEmployeeNotFound
		}
		return justification.JustificationResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := time.Now().UTC()
	j := justification.Justification{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Type:       justification.JustificationType(req.Type),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.justificationRepo.Create(ctx, j)
	if err != nil {
		return justification.JustificationResponse{}, fmt.Errorf("failed to create justification: %w", err)
	}

	created.EmployeeCode = emp.Code
	created.EmployeeName = emp.FullName()
	created.Branch = emp.Branch
	return mapJustificationToResponse(created), nil
}

// Update implements justification.JustificationService.
func (s *JustificationServiceImpl) Update(ctx context.Context, req justification.SaveJustificationRequest) (justification.JustificationResponse, error) {
	if err := req.Validate(); err != nil {
		return justification.JustificationResponse{}, err
	}

	j, err := s.justificationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.JustificationResponse{}, justification.ErrJustificationNotFound
		}
		return justification.JustificationResponse{}, fmt.Errorf("failed to get justification: %w", err)
	}

	j.EmployeeID = req.EmployeeID
	j.Type = justification.JustificationType(req.Type)
	j.StartDate = req.StartDate
	j.EndDate = req.EndDate
	j.Reason = req.Reason
	j.UpdatedAt = time.Now().UTC()

	if err := s.justificationRepo.Update(ctx, j); err != nil {
		return justification.JustificationResponse{}, fmt.Errorf("failed to update justification: %w", err)
	}
	return mapJustificationToResponse(j), nil
}

// Delete implements justification.JustificationService.
func (s *JustificationServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.justificationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return justification.ErrJustificationNotFound
		}
		return fmt.Errorf("failed to get justification: %w", err)
	}

	if err := s.justificationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete justification: %w", err)
	}
	return nil
}
