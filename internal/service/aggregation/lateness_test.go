package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
)

func TestIsLateCheckIn_FallbackThreshold(t *testing.T) {
	e := NewEngine(testConfig())

	// Fallback limit is 08:00 start + 10 minutes tolerance: 08:10 is
	// punctual, 08:11 is late.
	onTime := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:10")
	late := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:11")

	assert.False(t, e.IsLateCheckIn(onTime))
	assert.True(t, e.IsLateCheckIn(late))
}

func TestIsLateCheckIn_ScheduleBlock(t *testing.T) {
	e := NewEngine(testConfig())

	block := &attendance.ScheduleBlockRef{StartClock: "09:00", ToleranceMinutes: 15}

	onTime := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:15")
	onTime.ScheduleBlock = block
	late := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:16")
	late.ScheduleBlock = block

	assert.False(t, e.IsLateCheckIn(onTime))
	assert.True(t, e.IsLateCheckIn(late))
}

func TestIsLateCheckIn_BlockWithoutToleranceUsesDefault(t *testing.T) {
	e := NewEngine(testConfig())

	block := &attendance.ScheduleBlockRef{StartClock: "09:00"}

	ev := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:10")
	ev.ScheduleBlock = block
	assert.False(t, e.IsLateCheckIn(ev))

	ev = localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:11")
	ev.ScheduleBlock = block
	assert.True(t, e.IsLateCheckIn(ev))
}

func TestIsLateCheckIn_CheckOutNeverLate(t *testing.T) {
	e := NewEngine(testConfig())

	ev := localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00")
	assert.False(t, e.IsLateCheckIn(ev))
}

func TestDayLateMinutes_MorningOnly(t *testing.T) {
	e := NewEngine(testConfig())

	// 08:30 against the 08:11 limit: 19 minutes.
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:30"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 19, groups[0].LateMinutes)
}

func TestDayLateMinutes_MorningAndAfternoon(t *testing.T) {
	e := NewEngine(testConfig())

	// Morning 08:20 (9 late) + afternoon 14:45 (5 late) = 14.
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:20"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 14:45"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 18:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 14, groups[0].LateMinutes)
}

func TestDayLateMinutes_OnlyFirstEntriesCount(t *testing.T) {
	e := NewEngine(testConfig())

	// The punctual 07:50 entry is the morning entry; the 09:30 re-entry
	// is ignored by this metric.
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 07:50"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 09:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:30"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].LateMinutes)
}

func TestDayLateMinutes_AfternoonBoundary(t *testing.T) {
	e := NewEngine(testConfig())

	// Exactly 14:40 is not late; 14:41 is one minute late.
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 14:40"),
	}
	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].LateMinutes)

	events = []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 14:41"),
	}
	groups = e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].LateMinutes)
}

// The per-event flag and the per-day metric are distinct rules: an 08:11
// check-in is late for row highlighting but contributes zero per-day
// lateness minutes.
func TestLatenessRulesAreDistinct(t *testing.T) {
	e := NewEngine(testConfig())

	ev := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:11")
	assert.True(t, e.IsLateCheckIn(ev))

	groups := e.GroupByEmployeeAndDate([]attendance.CheckEvent{ev})
	require.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].LateMinutes)
}
