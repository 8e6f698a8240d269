// Package aggregation is the attendance computation core: it turns flat
// check-in/check-out event streams into per-employee-day groups and period
// summaries. Everything here is pure and synchronous; callers fetch the
// raw rows first and hand them in as immutable inputs.
package aggregation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/timeqr/timeqr-backend-go/internal/config"
	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

// Config is the resolved aggregation policy. Clock thresholds are minutes
// since local midnight.
type Config struct {
	MandatoryBreakMinutes int
	ExemptCodes           map[string]struct{}
	LateToleranceMinutes  int
	FallbackStartMinutes  int
	MorningLateLimit      int
	AfternoonLateLimit    int
	Location              *time.Location
}

// FromAppConfig resolves the environment-level aggregation settings into
// an engine Config.
func FromAppConfig(cfg config.AggregationConfig) (Config, error) {
	fallback, err := tz.ParseClock(cfg.FallbackStartClock)
	if err != nil {
		return Config{}, fmt.Errorf("fallback start clock: %w", err)
	}
	morning, err := tz.ParseClock(cfg.MorningLateThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("morning late threshold: %w", err)
	}
	afternoon, err := tz.ParseClock(cfg.AfternoonLateThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("afternoon late threshold: %w", err)
	}

	exempt := make(map[string]struct{}, len(cfg.BreakExemptEmployeeCodes))
	for _, code := range cfg.BreakExemptEmployeeCodes {
		exempt[code] = struct{}{}
	}

	return Config{
		MandatoryBreakMinutes: cfg.MandatoryBreakMinutes,
		ExemptCodes:           exempt,
		LateToleranceMinutes:  cfg.LateToleranceMinutes,
		FallbackStartMinutes:  fallback,
		MorningLateLimit:      morning,
		AfternoonLateLimit:    afternoon,
		Location:              tz.Zone(cfg.TimezoneOffsetMinutes),
	}, nil
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Location is the business timezone every local-date computation uses.
func (e *Engine) Location() *time.Location {
	return e.cfg.Location
}

type bucketKey struct {
	employeeID string
	date       string
}

// GroupByEmployeeAndDate buckets raw events by (employee, local date),
// sorts each bucket by timestamp and forms greedy consecutive check-in/
// check-out pairs. Output is freshly constructed, ordered by (employee,
// date), and independent of input ordering.
func (e *Engine) GroupByEmployeeAndDate(events []attendance.CheckEvent) []attendance.DayGroup {
	buckets := make(map[bucketKey][]attendance.CheckEvent)
	for _, ev := range events {
		key := bucketKey{
			employeeID: ev.EmployeeID,
			date:       tz.LocalDate(ev.Timestamp, e.cfg.Location),
		}
		buckets[key] = append(buckets[key], ev)
	}

	groups := make([]attendance.DayGroup, 0, len(buckets))
	for key, bucket := range buckets {
		groups = append(groups, e.buildDayGroup(key, bucket))
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].EmployeeID != groups[j].EmployeeID {
			return groups[i].EmployeeID < groups[j].EmployeeID
		}
		return groups[i].Date < groups[j].Date
	})
	return groups
}

func (e *Engine) buildDayGroup(key bucketKey, bucket []attendance.CheckEvent) attendance.DayGroup {
	sorted := make([]attendance.CheckEvent, len(bucket))
	copy(sorted, bucket)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID < sorted[j].ID
	})

	group := attendance.DayGroup{
		EmployeeID:   key.employeeID,
		EmployeeCode: sorted[0].EmployeeCode,
		EmployeeName: sorted[0].EmployeeName,
		Branch:       sorted[0].Branch,
		Position:     sorted[0].Position,
		Date:         key.date,
		Events:       sorted,
	}

	// Greedy consecutive pairing. A later check-in overwrites an unmatched
	// pending one; a check-out with no pending check-in is dropped. Both
	// are tolerated, not errors: tablet input is unreliable.
	var pending *attendance.CheckEvent
	for i := range sorted {
		ev := sorted[i]
		switch ev.Kind {
		case attendance.KindCheckIn:
			pending = &sorted[i]
			group.CheckInCount++
			if group.FirstCheckIn == nil {
				first := ev
				group.FirstCheckIn = &first
			}
		case attendance.KindCheckOut:
			group.CheckOutCount++
			last := ev
			group.LastCheckOut = &last
			if pending == nil {
				continue
			}
			pair := attendance.Pair{
				CheckIn:  *pending,
				CheckOut: ev,
				Minutes:  pairMinutes(pending.Timestamp, ev.Timestamp),
			}
			group.Pairs = append(group.Pairs, pair)
			group.RawMinutes += pair.Minutes
			pending = nil
		}
	}

	group.BreakDeductionMinutes = e.breakDeduction(group.EmployeeCode, group.Pairs)
	adjusted := group.RawMinutes - group.BreakDeductionMinutes
	if adjusted < 0 {
		adjusted = 0
	}
	group.AdjustedMinutes = adjusted
	group.Hours = roundHours(adjusted)
	group.LateMinutes = e.dayLateMinutes(sorted)

	switch {
	case len(group.Pairs) > 0:
		group.Status = attendance.StatusComplete
	case len(sorted) > 0:
		group.Status = attendance.StatusIncomplete
	default:
		group.Status = attendance.StatusNoRecord
	}
	return group
}

// pairMinutes is the whole-minute duration between a matched check-in and
// check-out. A checkout earlier than its check-in is a data-integrity
// anomaly; the pair is clamped to zero so negative time never enters the
// totals.
func pairMinutes(in, out time.Time) int {
	minutes := int(out.Sub(in) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// roundHours converts adjusted minutes to decimal hours rounded to one
// decimal. Period totals sum these per-day rounded values, matching the
// display accumulation the reports are reconciled against.
func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}
