package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return d
}

func TestCountDays(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"single day", "2025-02-01", "2025-02-01", 1},
		{"three days", "2025-02-01", "2025-02-03", 3},
		{"across month boundary", "2025-01-30", "2025-02-02", 4},
		{"across year boundary", "2024-12-30", "2025-01-02", 4},
		{"full month", "2025-03-01", "2025-03-31", 31},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CountDays(date(t, c.start), date(t, c.end))
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCountDays_AlwaysAtLeastOneForValidRanges(t *testing.T) {
	start := date(t, "2025-01-01")
	for offset := 0; offset < 400; offset++ {
		end := start.AddDate(0, 0, offset)
		got := CountDays(start, end)
		assert.Equal(t, offset+1, got, "offset %d", offset)
		assert.GreaterOrEqual(t, got, 1)
	}
}

func TestCountDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 2, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 2, 3, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, CountDays(start, end))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from LeaveStatus
		to   LeaveStatus
		want bool
	}{
		{LeaveStatusPending, LeaveStatusApproved, true},
		{LeaveStatusPending, LeaveStatusRejected, true},
		{LeaveStatusPending, LeaveStatusPending, false},
		{LeaveStatusApproved, LeaveStatusRejected, false},
		{LeaveStatusApproved, LeaveStatusApproved, false},
		{LeaveStatusRejected, LeaveStatusApproved, false},
		{LeaveStatusRejected, LeaveStatusPending, false},
	}
	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		assert.Equal(t, c.want, got, "%s -> %s", c.from, c.to)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"identical", "2025-02-01", "2025-02-03", "2025-02-01", "2025-02-03", true},
		{"shares one day", "2025-02-01", "2025-02-03", "2025-02-03", "2025-02-05", true},
		{"contained", "2025-02-01", "2025-02-10", "2025-02-04", "2025-02-05", true},
		{"adjacent, no overlap", "2025-02-01", "2025-02-03", "2025-02-04", "2025-02-06", false},
		{"disjoint", "2025-02-01", "2025-02-03", "2025-03-01", "2025-03-03", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Overlaps(date(t, c.aStart), date(t, c.aEnd), date(t, c.bStart), date(t, c.bEnd))
			assert.Equal(t, c.want, got)

			// Overlap is symmetric
			mirrored := Overlaps(date(t, c.bStart), date(t, c.bEnd), date(t, c.aStart), date(t, c.aEnd))
			assert.Equal(t, c.want, mirrored)
		})
	}
}
