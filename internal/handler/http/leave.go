package http

import (
	"encoding/json"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/leave"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMyLeaves(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	UpdateRemarks(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// GetMyLeaves implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)

	results, err := h.leaveService.GetMyLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Leaves, listMeta(results.TotalCount, results.Page, results.Limit, results.TotalPages))
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseLeaveFilter(r)

	if profileID := r.URL.Query().Get("profile_id"); profileID != "" {
		filter.ProfileID = &profileID
	}

	results, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Leaves, listMeta(results.TotalCount, results.Page, results.Limit, results.TotalPages))
}

// Get implements LeaveHandler.
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDecideRequest(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", result)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDecideRequest(w, r)
	if !ok {
		return
	}

	result, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", result)
}

// UpdateRemarks implements LeaveHandler.
func (h *leaveHandlerImpl) UpdateRemarks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req leave.UpdateRemarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.leaveService.UpdateRemarks(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remarks updated successfully", result)
}

// decodeDecideRequest handles the shared shape of approve and reject calls.
// An empty body is fine; remarks are optional.
func decodeDecideRequest(w http.ResponseWriter, r *http.Request) (leave.DecideLeaveRequest, bool) {
	var req leave.DecideLeaveRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return req, false
		}
	}
	req.ID = chi.URLParam(r, "id")

	return req, true
}

func parseLeaveFilter(r *http.Request) leave.LeaveFilter {
	filter := leave.LeaveFilter{}

	if leaveType := r.URL.Query().Get("leave_type"); leaveType != "" {
		filter.LeaveType = &leaveType
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	filter.Page, filter.Limit = parsePagination(r)

	return filter
}
