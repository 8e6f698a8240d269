package aggregation

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeqr/timeqr-backend-go/internal/domain/attendance"
	"github.com/timeqr/timeqr-backend-go/internal/pkg/tz"
)

func testConfig() Config {
	return Config{
		MandatoryBreakMinutes: 60,
		ExemptCodes:           map[string]struct{}{"A01": {}},
		LateToleranceMinutes:  10,
		FallbackStartMinutes:  8 * 60,
		MorningLateLimit:      8*60 + 11,
		AfternoonLateLimit:    14*60 + 40,
		Location:              tz.Zone(-420),
	}
}

var eventSeq int

// localEvent builds a check event from a local wall-clock string like
// "2024-03-05 08:05" in the fixed business timezone.
func localEvent(t *testing.T, employeeID, code string, kind attendance.EventKind, local string) attendance.CheckEvent {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", local, tz.Zone(-420))
	require.NoError(t, err)
	eventSeq++
	return attendance.CheckEvent{
		ID:           fmt.Sprintf("ev-%04d", eventSeq),
		EmployeeID:   employeeID,
		EmployeeCode: code,
		Timestamp:    ts.UTC(),
		Kind:         kind,
		DeviceID:     "tablet-1",
	}
}

// utcEvent builds a check event from a UTC wall-clock string.
func utcEvent(t *testing.T, employeeID, code string, kind attendance.EventKind, utc string) attendance.CheckEvent {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", utc, time.UTC)
	require.NoError(t, err)
	eventSeq++
	return attendance.CheckEvent{
		ID:           fmt.Sprintf("ev-%04d", eventSeq),
		EmployeeID:   employeeID,
		EmployeeCode: code,
		Timestamp:    ts,
		Kind:         kind,
		DeviceID:     "tablet-1",
	}
}

func TestGroupByEmployeeAndDate_SingleDay(t *testing.T) {
	e := NewEngine(testConfig())

	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:05"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 13:10"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 17:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "e01", g.EmployeeID)
	assert.Equal(t, "2024-03-05", g.Date)
	require.Len(t, g.Pairs, 2)
	assert.Equal(t, 235, g.Pairs[0].Minutes)
	assert.Equal(t, 230, g.Pairs[1].Minutes)
	assert.Equal(t, 465, g.RawMinutes)

	// 70 minutes of real break, above the mandatory 60: no deduction.
	assert.Equal(t, 0, g.BreakDeductionMinutes)
	assert.Equal(t, 465, g.AdjustedMinutes)
	assert.InDelta(t, 7.8, g.Hours, 1e-9)
	assert.Equal(t, attendance.StatusComplete, g.Status)
	assert.Equal(t, 2, g.CheckInCount)
	assert.Equal(t, 2, g.CheckOutCount)

	require.NotNil(t, g.FirstCheckIn)
	require.NotNil(t, g.LastCheckOut)
	assert.Equal(t, events[0].ID, g.FirstCheckIn.ID)
	assert.Equal(t, events[3].ID, g.LastCheckOut.ID)
}

func TestGroupByEmployeeAndDate_ExemptEmployee(t *testing.T) {
	e := NewEngine(testConfig())

	// Single 08:00-16:00 pair, 480 minutes. A01 is exempt: no deduction.
	events := []attendance.CheckEvent{
		localEvent(t, "a01", "A01", attendance.KindCheckIn, "2024-03-05 08:00"),
		localEvent(t, "a01", "A01", attendance.KindCheckOut, "2024-03-05 16:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, 480, groups[0].RawMinutes)
	assert.Equal(t, 0, groups[0].BreakDeductionMinutes)
	assert.Equal(t, 480, groups[0].AdjustedMinutes)
}

func TestGroupByEmployeeAndDate_StatusIncomplete(t *testing.T) {
	e := NewEngine(testConfig())

	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	assert.Equal(t, attendance.StatusIncomplete, groups[0].Status)
	assert.Empty(t, groups[0].Pairs)
	assert.Equal(t, 0, groups[0].RawMinutes)
}

func TestGroupByEmployeeAndDate_StrayCheckOutIgnored(t *testing.T) {
	e := NewEngine(testConfig())

	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 07:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 16:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Pairs, 1)
	assert.Equal(t, 480, groups[0].Pairs[0].Minutes)
	assert.Equal(t, 2, groups[0].CheckOutCount)
}

func TestGroupByEmployeeAndDate_UnmatchedCheckInOverwritten(t *testing.T) {
	e := NewEngine(testConfig())

	// The 09:00 check-in replaces the unmatched 08:00 one; only the later
	// one pairs with the checkout.
	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 09:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 17:00"),
	}

	groups := e.GroupByEmployeeAndDate(events)
	require.Len(t, groups, 1)
	g := groups[0]
	require.Len(t, g.Pairs, 1)
	assert.Equal(t, 480, g.Pairs[0].Minutes)
	assert.Equal(t, events[1].ID, g.Pairs[0].CheckIn.ID)
	// The first check-in is still reported for display.
	require.NotNil(t, g.FirstCheckIn)
	assert.Equal(t, events[0].ID, g.FirstCheckIn.ID)
}

func TestGroupByEmployeeAndDate_BucketsByLocalDate(t *testing.T) {
	e := NewEngine(testConfig())

	// 06:30 UTC on March 6 is 23:30 March 5 at UTC-7.
	lateNight := attendance.CheckEvent{
		ID:         "ev-utc",
		EmployeeID: "e01",
		Timestamp:  time.Date(2024, 3, 6, 6, 30, 0, 0, time.UTC),
		Kind:       attendance.KindCheckIn,
	}
	morning := localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-06 08:00")

	groups := e.GroupByEmployeeAndDate([]attendance.CheckEvent{lateNight, morning})
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-05", groups[0].Date)
	assert.Equal(t, "2024-03-06", groups[1].Date)
}

func TestGroupByEmployeeAndDate_PairingDeterminism(t *testing.T) {
	e := NewEngine(testConfig())

	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:05"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 12:00"),
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 13:10"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 17:00"),
		localEvent(t, "e02", "E02", attendance.KindCheckIn, "2024-03-05 09:00"),
		localEvent(t, "e02", "E02", attendance.KindCheckOut, "2024-03-05 18:00"),
	}

	want := e.GroupByEmployeeAndDate(events)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]attendance.CheckEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, e.GroupByEmployeeAndDate(shuffled))
	}
}

func TestGroupByEmployeeAndDate_Idempotent(t *testing.T) {
	e := NewEngine(testConfig())

	events := []attendance.CheckEvent{
		localEvent(t, "e01", "E01", attendance.KindCheckIn, "2024-03-05 08:05"),
		localEvent(t, "e01", "E01", attendance.KindCheckOut, "2024-03-05 17:00"),
	}

	first := e.GroupByEmployeeAndDate(events)
	second := e.GroupByEmployeeAndDate(events)
	assert.Equal(t, first, second)
}

func TestPairMinutes_NegativeClampedToZero(t *testing.T) {
	in := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, pairMinutes(in, out))
	assert.Equal(t, 540, pairMinutes(out, in))
}

func TestRoundHours(t *testing.T) {
	cases := []struct {
		minutes int
		want    float64
	}{
		{465, 7.8},
		{480, 8.0},
		{0, 0.0},
		{405, 6.8}, // 6.75 rounds up
		{29, 0.5},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, roundHours(c.minutes), 1e-9, "minutes=%d", c.minutes)
	}
}
