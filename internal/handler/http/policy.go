package http

import (
	"encoding/json"
	"net/http"

	"github.com/attendly/attendly-backend-go/internal/domain/policy"
	"github.com/attendly/attendly-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &policyHandlerImpl{
		policyService: policyService,
	}
}

// Get implements PolicyHandler.
func (h *policyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.policyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PolicyHandler.
func (h *policyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req policy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Policy updated successfully", result)
}
