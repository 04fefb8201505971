package http

import (
	"encoding/json"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/profile"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler interface {
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandlerImpl{
		profileService: profileService,
	}
}

// GetMe implements ProfileHandler.
func (h *profileHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.profileService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ProfileHandler.
func (h *profileHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := profile.ListProfilesFilter{}

	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}
	if department := r.URL.Query().Get("department"); department != "" {
		filter.Department = &department
	}
	if employmentStatus := r.URL.Query().Get("employment_status"); employmentStatus != "" {
		filter.EmploymentStatus = &employmentStatus
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, filter.Limit = parsePagination(r)

	results, err := h.profileService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Profiles, listMeta(results.TotalCount, results.Page, results.Limit, results.TotalPages))
}

// Get implements ProfileHandler.
func (h *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.profileService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ProfileHandler.
func (h *profileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.profileService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", result)
}
