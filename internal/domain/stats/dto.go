package stats

// AttendanceSummary is the monthly per-status reduction over attendance records.
type AttendanceSummary struct {
	Month        string  `json:"month"`
	ProfileID    *string `json:"profile_id,omitempty"`
	TotalRecords int     `json:"total_records"`
	PresentDays  int     `json:"present_days"`
	LateDays     int     `json:"late_days"`
	AbsentDays   int     `json:"absent_days"`
	LateMarks    int     `json:"late_marks"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

// LeaveSummary is the per-status reduction over leave requests.
type LeaveSummary struct {
	ProfileID     *string `json:"profile_id,omitempty"`
	TotalRequests int     `json:"total_requests"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	ApprovedDays  int     `json:"approved_days"`
}
