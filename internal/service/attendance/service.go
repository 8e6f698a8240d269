package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
	"github.com/timeqr/timeqr-backend-go/internal/service/aggregation"
)

type AttendanceServiceImpl struct {
	eventRepo attendance.EventRepository
	engine    *aggregation.Engine
}

func NewAttendanceService(eventRepo attendance.EventRepository, engine *aggregation.Engine) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		eventRepo: eventRepo,
		engine:    engine,
	}
}

// branchFromContext reads the branch scope from the token claims. An empty
// or absent branch claim grants access to all branches.
func branchFromContext(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	branch, _ := claims["branch"].(string)
	return branch
}

// localWindow converts an inclusive local date range to the equivalent
// absolute UTC window [start, end).
func localWindow(startDate, endDate string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(tz.DateLayout, startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(tz.DateLayout, endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	return start.UTC(), end.AddDate(0, 0, 1).UTC(), nil
}

// ListDayGroups implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListDayGroups(ctx context.Context, filter attendance.EventFilter) (attendance.ListDayGroupsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListDayGroupsResponse{}, err
	}

	if claimBranch := branchFromContext(ctx); claimBranch != "" {
		// A branch-scoped token sees only its own branch regardless of
		// the requested filter.
		filter.Branch = claimBranch
	}

	start, end, err := localWindow(filter.StartDate, filter.EndDate, s.engine.Location())
	if err != nil {
		return attendance.ListDayGroupsResponse{}, err
	}

	events, err := s.eventRepo.ListByWindow(ctx, attendance.EventQuery{
		Start:      start,
		End:        end,
		EmployeeID: filter.EmployeeID,
		Branch:     filter.Branch,
		Position:   filter.Position,
	})
	if err != nil {
		return attendance.ListDayGroupsResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	groups := s.engine.GroupByEmployeeAndDate(events)

	resp := attendance.ListDayGroupsResponse{
		Groups: make([]attendance.DayGroupResponse, 0, len(groups)),
		Total:  len(groups),
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, s.mapDayGroupToResponse(g))
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) mapEventToResponse(ev attendance.CheckEvent) attendance.EventResponse {
	return attendance.EventResponse{
		ID:        ev.ID,
		Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
		LocalTime: ev.Timestamp.In(s.engine.Location()).Format("2006-01-02 15:04:05"),
		Kind:      string(ev.Kind),
		DeviceID:  ev.DeviceID,
		PhotoRef:  ev.PhotoRef,
		Late:      s.engine.IsLateCheckIn(ev),
	}
}

func (s *AttendanceServiceImpl) mapDayGroupToResponse(g attendance.DayGroup) attendance.DayGroupResponse {
	resp := attendance.DayGroupResponse{
		EmployeeID:            g.EmployeeID,
		EmployeeCode:          g.EmployeeCode,
		EmployeeName:          g.EmployeeName,
		Branch:                g.Branch,
		Position:              g.Position,
		Date:                  g.Date,
		Status:                string(g.Status),
		Pairs:                 make([]attendance.PairResponse, 0, len(g.Pairs)),
		Events:                make([]attendance.EventResponse, 0, len(g.Events)),
		RawMinutes:            g.RawMinutes,
		BreakDeductionMinutes: g.BreakDeductionMinutes,
		AdjustedMinutes:       g.AdjustedMinutes,
		Hours:                 g.Hours,
		LateMinutes:           g.LateMinutes,
	}

	if g.FirstCheckIn != nil {
		first := s.mapEventToResponse(*g.FirstCheckIn)
		resp.FirstCheckIn = &first
	}
	if g.LastCheckOut != nil {
		last := s.mapEventToResponse(*g.LastCheckOut)
		resp.LastCheckOut = &last
	}
	for _, p := range g.Pairs {
		resp.Pairs = append(resp.Pairs, attendance.PairResponse{
			CheckIn:  s.mapEventToResponse(p.CheckIn),
			CheckOut: s.mapEventToResponse(p.CheckOut),
			Minutes:  p.Minutes,
		})
	}
	for _, ev := range g.Events {
		resp.Events = append(resp.Events, s.mapEventToResponse(ev))
	}
	return resp
}
