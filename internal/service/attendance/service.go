package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	policy.PolicyRepository
	location *time.Location

	// now is swapped out in tests
	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	policyRepository policy.PolicyRepository,
	location *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		PolicyRepository:     policyRepository,
		location:             location,
		now:                  time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func profileIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	profileID, ok := claims["profile_id"].(string)
	if !ok || profileID == "" {
		return "", fmt.Errorf("profile_id claim is missing or invalid")
	}

	return profileID, nil
}

// CheckIn implements attendance.AttendanceService. The UNIQUE(profile_id,
// date) constraint is the only duplicate guard; two racing check-ins both
// reach the insert and the store admits exactly one.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	profileID, err := profileIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.location)

	companyPolicy, err := a.PolicyRepository.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load company policy: %w", err)
	}

	classification := attendance.Classify(companyPolicy, nowLocal)

	record := attendance.Record{
		ProfileID: profileID,
		Date:      today,
		CheckIn:   &nowLocal,
		Status:    classification.Status,
		LateMark:  classification.LateMark,
	}
	if classification.Status == attendance.StatusLate {
		record.LateMinutes = &classification.LateMinutes
	}

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	profileID, err := profileIDFromClaims(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	nowLocal := a.now().In(a.location)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, a.location)

	record, err := a.AttendanceRepository.GetByProfileAndDate(ctx, profileID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	// No record, or an absent record written by the end-of-day job
	if record == nil || record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}

	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if nowLocal.Before(*record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	totalHours := attendance.WorkedHours(*record.CheckIn, nowLocal)
	record.CheckOut = &nowLocal
	record.TotalHours = &totalHours

	if err := a.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toAttendanceResponse(*record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	profileID, err := profileIDFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	records, total, err := a.AttendanceRepository.ListByProfile(ctx, profileID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return buildListResponse(records, total, filter.Page, filter.Limit), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toAttendanceResponse(record), nil
}

// Update implements attendance.AttendanceService. Corrections recompute
// total hours and, unless the caller pins a status, reclassify the check-in
// against current policy.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.CheckIn != nil {
		checkIn, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckIn, a.location)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid check_in: %w", err)
		}
		record.CheckIn = &checkIn
	}

	if req.CheckOut != nil {
		checkOut, err := time.ParseInLocation("2006-01-02 15:04:05", *req.CheckOut, a.location)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("invalid check_out: %w", err)
		}
		record.CheckOut = &checkOut
	}

	if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Before(*record.CheckIn) {
		return attendance.AttendanceResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	switch {
	case req.Status != nil:
		record.Status = attendance.Status(*req.Status)
	case req.CheckIn != nil:
		companyPolicy, err := a.PolicyRepository.Get(ctx)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to load company policy: %w", err)
		}

		classification := attendance.Classify(companyPolicy, *record.CheckIn)
		record.Status = classification.Status
		record.LateMark = classification.LateMark
		record.LateMinutes = nil
		if classification.Status == attendance.StatusLate {
			record.LateMinutes = &classification.LateMinutes
		}
	}

	// Total hours are always derived, never taken from the caller
	record.TotalHours = nil
	if record.CheckIn != nil && record.CheckOut != nil {
		totalHours := attendance.WorkedHours(*record.CheckIn, *record.CheckOut)
		record.TotalHours = &totalHours
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toAttendanceResponse(record), nil
}

func toAttendanceResponse(record attendance.Record) attendance.AttendanceResponse {
	response := attendance.AttendanceResponse{
		ID:          record.ID,
		ProfileID:   record.ProfileID,
		Date:        record.Date.Format("2006-01-02"),
		CheckIn:     timePtrToString(record.CheckIn),
		CheckOut:    timePtrToString(record.CheckOut),
		Status:      string(record.Status),
		TotalHours:  record.TotalHours,
		LateMinutes: record.LateMinutes,
		LateMark:    record.LateMark,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}

	if record.ProfileName != nil {
		response.ProfileName = *record.ProfileName
	}
	response.Department = record.Department

	return response
}

func buildListResponse(records []attendance.Record, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Attendances: responses,
	}
}
