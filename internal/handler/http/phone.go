package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/service"
	"github.com/utafrali/ProfileGo/pkg/middleware"
	"github.com/utafrali/ProfileGo/pkg/validator"
)

// PhoneHandler handles HTTP requests for customer phone endpoints.
type PhoneHandler struct {
	service *service.CustomerPhoneService
}

// NewPhoneHandler creates a new phone HTTP handler.
func NewPhoneHandler(svc *service.CustomerPhoneService) *PhoneHandler {
	return &PhoneHandler{service: svc}
}

// SavePhoneRequest is the JSON request body for creating or updating a phone.
type SavePhoneRequest struct {
	PhoneName   string `json:"phone_name" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,min=3,max=20"`
	CountryCode string `json:"country_code" validate:"omitempty,max=5"`
	Extension   string `json:"extension" validate:"omitempty,max=10"`
	IsDefault   bool   `json:"is_default"`
}

func (req *SavePhoneRequest) apply(phone *domain.CustomerPhone) {
	phone.PhoneName = req.PhoneName
	phone.PhoneNumber = req.PhoneNumber
	phone.CountryCode = req.CountryCode
	phone.Extension = req.Extension
	phone.IsDefault = req.IsDefault
	phone.IsActive = true
}

// ListPhones handles GET /api/v1/customers/me/phones
func (h *PhoneHandler) ListPhones(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	phones, err := h.service.ReadPhonesByCustomerID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: phones})
}

// CreatePhone handles POST /api/v1/customers/me/phones
func (h *PhoneHandler) CreatePhone(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	var req SavePhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	phone := h.service.CreatePhone()
	phone.CustomerID = customerID
	req.apply(phone)

	saved, err := h.service.SavePhone(r.Context(), phone)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: saved})
}

// UpdatePhone handles PUT /api/v1/customers/me/phones/{id}
func (h *PhoneHandler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	phone, ok := h.ownedPhone(w, r, customerID)
	if !ok {
		return
	}

	var req SavePhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	req.apply(phone)

	saved, err := h.service.SavePhone(r.Context(), phone)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: saved})
}

// MakeDefault handles POST /api/v1/customers/me/phones/{id}/default
func (h *PhoneHandler) MakeDefault(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	phone, ok := h.ownedPhone(w, r, customerID)
	if !ok {
		return
	}

	if err := h.service.MakePhoneDefault(r.Context(), customerID, phone.ID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": phone.ID, "status": "default"}})
}

// DeletePhone handles DELETE /api/v1/customers/me/phones/{id}
func (h *PhoneHandler) DeletePhone(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	phone, ok := h.ownedPhone(w, r, customerID)
	if !ok {
		return
	}

	if err := h.service.DeletePhone(r.Context(), phone.ID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": phone.ID, "status": "deleted"}})
}

func (h *PhoneHandler) ownedPhone(w http.ResponseWriter, r *http.Request, customerID string) (*domain.CustomerPhone, bool) {
	phoneID := chi.URLParam(r, "id")
	if phoneID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "phone id is required"},
		})
		return nil, false
	}

	phone, err := h.service.ReadPhoneByID(r.Context(), phoneID)
	if err != nil {
		writeAppError(w, r, err)
		return nil, false
	}
	if phone == nil || phone.CustomerID != customerID {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "phone not found"},
		})
		return nil, false
	}

	return phone, true
}
