package justification

import (
	"context"
)

// JustificationService manages approved leave intervals.
type JustificationService interface {
	ListByRange(ctx context.Context, startDate, endDate string) (ListJustificationsResponse, error)
	Create(ctx context.Context, req SaveJustificationRequest) (JustificationResponse, error)
	Update(ctx context.Context, req SaveJustificationRequest) (JustificationResponse, error)
	Delete(ctx context.Context, id string) error
}
