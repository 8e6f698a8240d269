package employee

import (
	"context"
)

// EmployeeService defines employee administration operations.
type EmployeeService interface {
	List(ctx context.Context, filter ListFilter) (ListEmployeesResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string) error

	// Badge renders the employee's QR badge as a PNG of the employee code.
	Badge(ctx context.Context, id string) ([]byte, error)
}
