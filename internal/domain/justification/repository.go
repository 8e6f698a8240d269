package justification

import (
	"context"
)

type JustificationRepository interface {
	Create(ctx context.Context, j Justification) (Justification, error)
	GetByID(ctx context.Context, id string) (Justification, error)
	Update(ctx context.Context, j Justification) error
	Delete(ctx context.Context, id string) error

	// ListOverlapping returns justifications whose interval intersects
	// [startDate, endDate], optionally restricted to a branch.
	ListOverlapping(ctx context.Context, startDate, endDate, branch string) ([]Justification, error)
}
