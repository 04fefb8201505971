package stats

import (
	"math/rand"
	"testing"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func hoursPtr(v float64) *float64 { return &v }

func TestSummarizeAttendance(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusPresent, TotalHours: hoursPtr(8)},
		{Status: attendance.StatusPresent, TotalHours: hoursPtr(7.5)},
		{Status: attendance.StatusLate, TotalHours: hoursPtr(6.5), LateMark: true},
		{Status: attendance.StatusAbsent},
	}

	s := SummarizeAttendance(records)

	assert.Equal(t, 4, s.TotalRecords)
	assert.Equal(t, 2, s.PresentDays)
	assert.Equal(t, 1, s.LateDays)
	assert.Equal(t, 1, s.AbsentDays)
	assert.Equal(t, 1, s.LateMarks)
	assert.InDelta(t, 22.0, s.TotalHours, 0.00001)
	assert.InDelta(t, 22.0/2.0, s.AverageHours, 0.0001)
}

func TestSummarizeAttendance_AverageDividesByPresentDaysOnly(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusPresent, TotalHours: hoursPtr(8)},
		{Status: attendance.StatusLate, TotalHours: hoursPtr(6)},
	}

	s := SummarizeAttendance(records)

	assert.InDelta(t, 14.0, s.TotalHours, 0.00001)
	assert.InDelta(t, 14.0, s.AverageHours, 0.00001)
}

func TestSummarizeAttendance_Empty(t *testing.T) {
	s := SummarizeAttendance(nil)

	assert.Zero(t, s.TotalRecords)
	assert.Zero(t, s.TotalHours)
	assert.Zero(t, s.AverageHours)
}

func TestSummarizeAttendance_AllAbsentHasZeroAverage(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusAbsent},
	}

	s := SummarizeAttendance(records)

	assert.Equal(t, 2, s.AbsentDays)
	assert.Zero(t, s.AverageHours)
}

func TestSummarizeAttendance_StatusCountsSumToTotal(t *testing.T) {
	statuses := []attendance.Status{
		attendance.StatusPresent,
		attendance.StatusLate,
		attendance.StatusAbsent,
	}

	rng := rand.New(rand.NewSource(42))
	var records []attendance.Record
	for i := 0; i < 200; i++ {
		records = append(records, attendance.Record{Status: statuses[rng.Intn(len(statuses))]})
	}

	s := SummarizeAttendance(records)

	assert.Equal(t, s.TotalRecords, s.PresentDays+s.LateDays+s.AbsentDays)
	assert.Equal(t, len(records), s.TotalRecords)
}

func TestSummarizeAttendance_OrderIndependent(t *testing.T) {
	records := []attendance.Record{
		{Status: attendance.StatusPresent, TotalHours: hoursPtr(8.25)},
		{Status: attendance.StatusLate, TotalHours: hoursPtr(4.5), LateMark: true},
		{Status: attendance.StatusAbsent},
		{Status: attendance.StatusPresent, TotalHours: hoursPtr(9.1)},
	}

	expected := SummarizeAttendance(records)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := make([]attendance.Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, expected, SummarizeAttendance(shuffled))
	}
}

func TestSummarizeLeave(t *testing.T) {
	requests := []leave.LeaveRequest{
		{Status: leave.LeaveStatusPending, TotalDays: 2},
		{Status: leave.LeaveStatusApproved, TotalDays: 3},
		{Status: leave.LeaveStatusApproved, TotalDays: 1},
		{Status: leave.LeaveStatusRejected, TotalDays: 5},
	}

	s := SummarizeLeave(requests)

	assert.Equal(t, 4, s.TotalRequests)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 2, s.Approved)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, 4, s.ApprovedDays)
	assert.Equal(t, s.TotalRequests, s.Pending+s.Approved+s.Rejected)
}

func TestSummarizeLeave_Empty(t *testing.T) {
	s := SummarizeLeave(nil)

	assert.Zero(t, s.TotalRequests)
	assert.Zero(t, s.ApprovedDays)
}
