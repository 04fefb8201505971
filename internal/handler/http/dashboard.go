package http

import (
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/stats"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	LeaveSummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	statsService stats.StatsService
}

func NewDashboardHandler(statsService stats.StatsService) DashboardHandler {
	return &dashboardHandlerImpl{
		statsService: statsService,
	}
}

// AttendanceSummary implements DashboardHandler. The month param is
// required; profile scoping happens in the service based on the caller's
// role.
func (h *dashboardHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "Query param 'month' is required (YYYY-MM)", nil)
		return
	}

	var profileID *string
	if id := r.URL.Query().Get("profile_id"); id != "" {
		profileID = &id
	}

	result, err := h.statsService.AttendanceSummary(r.Context(), month, profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeaveSummary implements DashboardHandler.
func (h *dashboardHandlerImpl) LeaveSummary(w http.ResponseWriter, r *http.Request) {
	var startDate, endDate, profileID *string

	if v := r.URL.Query().Get("start_date"); v != "" {
		startDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		endDate = &v
	}
	if v := r.URL.Query().Get("profile_id"); v != "" {
		profileID = &v
	}

	result, err := h.statsService.LeaveSummary(r.Context(), startDate, endDate, profileID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
