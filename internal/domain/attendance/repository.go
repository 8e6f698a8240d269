package attendance

import (
	"context"
	"time"
)

// EventQuery is the repository-level selection: an absolute UTC window
// plus optional filters. The service derives the window from local dates.
type EventQuery struct {
	Start      time.Time
	End        time.Time
	EmployeeID string
	Branch     string
	Position   string
	Kind       EventKind // empty means both kinds
}

// EventRepository provides read access to raw swipe events. Implementations
// fetch the full window by accumulating sequential pages until a short page
// signals end-of-data; callers always receive the complete set.
type EventRepository interface {
	ListByWindow(ctx context.Context, query EventQuery) ([]CheckEvent, error)
}
