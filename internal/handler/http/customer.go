package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/utafrali/ProfileGo/internal/service"
	"github.com/utafrali/ProfileGo/pkg/middleware"
	"github.com/utafrali/ProfileGo/pkg/validator"
)

// CustomerHandler handles HTTP requests for customer profile endpoints.
type CustomerHandler struct {
	service *service.CustomerService
	roles   *service.RoleService
}

// NewCustomerHandler creates a new customer HTTP handler.
func NewCustomerHandler(svc *service.CustomerService, roles *service.RoleService) *CustomerHandler {
	return &CustomerHandler{service: svc, roles: roles}
}

// --- Request DTOs ---

// UpdateProfileRequest is the JSON request body for updating the customer
// profile. Only the provided fields change.
type UpdateProfileRequest struct {
	EmailAddress        *string `json:"email_address" validate:"omitempty,email"`
	FirstName           *string `json:"first_name" validate:"omitempty,max=100"`
	LastName            *string `json:"last_name" validate:"omitempty,max=100"`
	ChallengeQuestionID *string `json:"challenge_question_id" validate:"omitempty,uuid"`
	ChallengeAnswer     *string `json:"challenge_answer" validate:"omitempty,max=255"`
	ReceiveEmail        *bool   `json:"receive_email"`
}

// --- Handlers ---

// GetProfile handles GET /api/v1/customers/me
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	customer, err := h.service.ReadCustomerByID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if customer == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "customer not found"},
		})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: customer})
}

// UpdateProfile handles PUT /api/v1/customers/me
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	customer, err := h.service.ReadCustomerByID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if customer == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "customer not found"},
		})
		return
	}

	if req.EmailAddress != nil {
		customer.EmailAddress = *req.EmailAddress
	}
	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.ChallengeQuestionID != nil {
		customer.ChallengeQuestionID = *req.ChallengeQuestionID
	}
	if req.ChallengeAnswer != nil {
		customer.UnencodedChallenge = *req.ChallengeAnswer
	}
	if req.ReceiveEmail != nil {
		customer.ReceiveEmail = *req.ReceiveEmail
	}

	updated, err := h.service.SaveCustomer(r.Context(), customer)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: updated})
}

// DeleteProfile handles DELETE /api/v1/customers/me
func (h *CustomerHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": customerID, "status": "deleted"}})
}

// ListRoles handles GET /api/v1/customers/me/roles
func (h *CustomerHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	roles, err := h.roles.FindCustomerRolesByCustomerID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: roles})
}

// ListCustomers handles GET /api/v1/customers (admin only).
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	customers, err := h.service.ReadBatchCustomers(r.Context(), offset, limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	total, err := h.service.ReadNumberOfCustomers(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]any{
		"customers": customers,
		"offset":    offset,
		"limit":     limit,
		"total":     total,
	}})
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
