package employee

import (
	"context"
)

// ListFilter narrows employee listings.
type ListFilter struct {
	Branch     string
	Position   string
	ActiveOnly bool
}

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
}
