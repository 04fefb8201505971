package attendance

import (
	"testing"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/stretchr/testify/assert"
)

func testPolicy(graceMinutes, lateMarkAfter int) policy.Policy {
	return policy.Policy{
		OfficeStartTime:      "09:00",
		OfficeEndTime:        "17:00",
		GraceMinutes:         graceMinutes,
		LateMarkAfterMinutes: lateMarkAfter,
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	assert.NoError(t, err)
	return ts
}

func TestClassify_OnTime(t *testing.T) {
	p := testPolicy(15, 15)

	c := Classify(p, at(t, "2025-01-10 09:05:00"))

	assert.Equal(t, StatusPresent, c.Status)
	assert.Zero(t, c.LateMinutes)
	assert.False(t, c.LateMark)
}

func TestClassify_ExactlyAtGraceDeadline(t *testing.T) {
	p := testPolicy(15, 15)

	c := Classify(p, at(t, "2025-01-10 09:15:00"))

	assert.Equal(t, StatusPresent, c.Status)
	assert.Zero(t, c.LateMinutes)
}

func TestClassify_OneMinutePastGrace(t *testing.T) {
	p := testPolicy(15, 15)

	c := Classify(p, at(t, "2025-01-10 09:16:00"))

	assert.Equal(t, StatusLate, c.Status)
	assert.Equal(t, 16, c.LateMinutes)
	assert.True(t, c.LateMark)
}

func TestClassify_LateButBeforeLateMarkThreshold(t *testing.T) {
	// Grace 15 minutes, formal late mark only after 30
	p := testPolicy(15, 30)

	c := Classify(p, at(t, "2025-01-10 09:20:00"))

	assert.Equal(t, StatusLate, c.Status)
	assert.Equal(t, 20, c.LateMinutes)
	assert.False(t, c.LateMark)
}

func TestClassify_PastLateMarkThreshold(t *testing.T) {
	p := testPolicy(15, 30)

	c := Classify(p, at(t, "2025-01-10 09:31:00"))

	assert.Equal(t, StatusLate, c.Status)
	assert.Equal(t, 31, c.LateMinutes)
	assert.True(t, c.LateMark)
}

func TestClassify_LateMinutesCountFromOfficialStart(t *testing.T) {
	p := testPolicy(0, 0)

	cases := []struct {
		checkIn     string
		lateMinutes int
	}{
		{"2025-01-10 09:01:00", 1},
		{"2025-01-10 09:30:30", 30},
		{"2025-01-10 11:00:00", 120},
	}
	for _, c := range cases {
		got := Classify(p, at(t, c.checkIn))
		assert.Equal(t, StatusLate, got.Status, "check-in %s", c.checkIn)
		assert.Equal(t, c.lateMinutes, got.LateMinutes, "check-in %s", c.checkIn)
	}
}

func TestClassify_RespectsCheckInLocation(t *testing.T) {
	p := testPolicy(15, 15)
	jakarta := time.FixedZone("WIB", 7*3600)

	// 09:05 wall clock in Jakarta is on time regardless of the UTC instant
	checkIn := time.Date(2025, 1, 10, 9, 5, 0, 0, jakarta)

	c := Classify(p, checkIn)

	assert.Equal(t, StatusPresent, c.Status)
}

func TestWorkedHours(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
		want     float64
	}{
		{"standard day", "2025-01-10 09:05:00", "2025-01-10 17:30:00", 8.4167},
		{"whole hours", "2025-01-10 09:00:00", "2025-01-10 17:00:00", 8},
		{"half hour", "2025-01-10 09:00:00", "2025-01-10 09:30:00", 0.5},
		{"zero duration", "2025-01-10 09:00:00", "2025-01-10 09:00:00", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WorkedHours(at(t, c.checkIn), at(t, c.checkOut))
			assert.InDelta(t, c.want, got, 0.00001)
		})
	}
}
