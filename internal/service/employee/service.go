package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/cache"
)

const badgeSizePixels = 256

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	roster       *cache.RosterCache
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, roster *cache.RosterCache) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		roster:       roster,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		Code:         emp.Code,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		FullName:     emp.FullName(),
		Email:        emp.Email,
		Branch:       emp.Branch,
		Position:     emp.Position,
		ScheduleID:   emp.ScheduleID,
		ScheduleName: emp.ScheduleName,
		Active:       emp.Active,
	}
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	employees, hit, err := s.roster.Get(ctx, filter)
	if err != nil {
		// A broken cache must not take the listing down.
		slog.WarnContext(ctx, "roster cache read failed", "error", err)
		hit = false
	}

	if !hit {
		employees, err = s.employeeRepo.List(ctx, filter)
		if err != nil {
			return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
		if err := s.roster.Set(ctx, filter, employees); err != nil {
			slog.WarnContext(ctx, "roster cache write failed", "error", err)
		}
	}

	resp := employee.ListEmployeesResponse{
		Employees: make([]employee.EmployeeResponse, 0, len(employees)),
		Total:     len(employees),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, mapEmployeeToResponse(emp))
	}
	return resp, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return mapEmployeeToResponse(emp), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	_, err := s.employeeRepo.GetByCode(ctx, req.Code)
	if err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	now := time.Now().UTC()
	emp := employee.Employee{
		ID:         uuid.NewString(),
		Code:       req.Code,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Branch:     req.Branch,
		Position:   req.Position,
		ScheduleID: req.ScheduleID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.invalidateRoster(ctx)
	return mapEmployeeToResponse(created), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	emp.FirstName = req.FirstName
	emp.LastName = req.LastName
	emp.Email = req.Email
	emp.Branch = req.Branch
	emp.Position = req.Position
	emp.ScheduleID = req.ScheduleID
	emp.Active = req.Active
	emp.UpdatedAt = time.Now().UTC()

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	s.invalidateRoster(ctx)
	return mapEmployeeToResponse(emp), nil
}

// Deactivate implements employee.EmployeeService. The employee and their
// history stay in place; only the active flag flips.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return employee.ErrEmployeeAlreadyInactive
	}

	emp.Active = false
	emp.UpdatedAt = time.Now().UTC()
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	s.invalidateRoster(ctx)
	return nil
}

// Badge implements employee.EmployeeService. The QR payload is the
// employee code, which the check-in devices scan.
func (s *EmployeeServiceImpl) Badge(ctx context.Context, id string) ([]byte, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	png, err := qrcode.Encode(emp.Code, qrcode.Medium, badgeSizePixels)
	if err != nil {
		return nil, fmt.Errorf("failed to render badge: %w", err)
	}
	return png, nil
}

func (s *EmployeeServiceImpl) invalidateRoster(ctx context.Context) {
	if err := s.roster.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "roster cache invalidation failed", "error", err)
	}
}
