package aggregation

import (
	"time"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
)

// breakDeduction enforces the mandatory minimum unpaid break for a day.
//
// Exempt employees are never deducted. With a single pair no break was
// observed at all, so the full mandatory break comes off. With two or more
// pairs the gaps between consecutive pairs are the real break; only the
// shortfall against the mandatory minimum is deducted.
func (e *Engine) breakDeduction(employeeCode string, pairs []attendance.Pair) int {
	if _, exempt := e.cfg.ExemptCodes[employeeCode]; exempt {
		return 0
	}

	switch len(pairs) {
	case 0:
		// Nothing worked, nothing to deduct.
		return 0
	case 1:
		return e.cfg.MandatoryBreakMinutes
	}

	realBreak := 0
	for i := 0; i < len(pairs)-1; i++ {
		gap := pairs[i+1].CheckIn.Timestamp.Sub(pairs[i].CheckOut.Timestamp)
		realBreak += int(gap / time.Minute)
	}

	if realBreak < e.cfg.MandatoryBreakMinutes {
		return e.cfg.MandatoryBreakMinutes - realBreak
	}
	return 0
}
