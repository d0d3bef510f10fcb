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

// AddressHandler handles HTTP requests for customer address endpoints.
type AddressHandler struct {
	service *service.AddressService
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// --- Request DTOs ---

// SaveAddressRequest is the JSON request body for creating or updating an
// address.
type SaveAddressRequest struct {
	AddressName         string `json:"address_name" validate:"omitempty,max=100"`
	FirstName           string `json:"first_name" validate:"omitempty,max=100"`
	LastName            string `json:"last_name" validate:"omitempty,max=100"`
	CompanyName         string `json:"company_name" validate:"omitempty,max=255"`
	AddressLine1        string `json:"address_line1" validate:"required,min=1,max=500"`
	AddressLine2        string `json:"address_line2" validate:"omitempty,max=500"`
	AddressLine3        string `json:"address_line3" validate:"omitempty,max=500"`
	City                string `json:"city" validate:"omitempty,max=100"`
	StateProvinceRegion string `json:"state_province_region" validate:"omitempty,max=100"`
	PostalCode          string `json:"postal_code" validate:"omitempty,max=20"`
	CountryAbbreviation string `json:"country_abbreviation" validate:"omitempty,len=2"`
	PhonePrimary        string `json:"phone_primary" validate:"omitempty,max=20"`
	PhoneSecondary      string `json:"phone_secondary" validate:"omitempty,max=20"`
	PhoneFax            string `json:"phone_fax" validate:"omitempty,max=20"`
	IsDefault           bool   `json:"is_default"`
	IsBusiness          bool   `json:"is_business"`
	IsMailing           bool   `json:"is_mailing"`
	IsStreet            bool   `json:"is_street"`
}

func (req *SaveAddressRequest) apply(address *domain.Address) {
	address.AddressName = req.AddressName
	address.FirstName = req.FirstName
	address.LastName = req.LastName
	address.CompanyName = req.CompanyName
	address.AddressLine1 = req.AddressLine1
	address.AddressLine2 = req.AddressLine2
	address.AddressLine3 = req.AddressLine3
	address.City = req.City
	address.StateProvinceRegion = req.StateProvinceRegion
	address.PostalCode = req.PostalCode
	address.CountryAbbreviation = req.CountryAbbreviation
	address.PhonePrimary = req.PhonePrimary
	address.PhoneSecondary = req.PhoneSecondary
	address.PhoneFax = req.PhoneFax
	address.IsDefault = req.IsDefault
	address.IsBusiness = req.IsBusiness
	address.IsMailing = req.IsMailing
	address.IsStreet = req.IsStreet
	address.IsActive = true
}

// --- Handlers ---

// ListAddresses handles GET /api/v1/customers/me/addresses
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	addresses, err := h.service.ReadAddressesByCustomerID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: addresses})
}

// CreateAddress handles POST /api/v1/customers/me/addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	var req SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	address := h.service.CreateAddress()
	address.CustomerID = customerID
	req.apply(address)

	saved, err := h.service.SaveAddress(r.Context(), address)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: saved})
}

// UpdateAddress handles PUT /api/v1/customers/me/addresses/{id}
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	address, ok := h.ownedAddress(w, r, customerID)
	if !ok {
		return
	}

	var req SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	req.apply(address)

	saved, err := h.service.SaveAddress(r.Context(), address)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: saved})
}

// MakeDefault handles POST /api/v1/customers/me/addresses/{id}/default
func (h *AddressHandler) MakeDefault(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	address, ok := h.ownedAddress(w, r, customerID)
	if !ok {
		return
	}

	if err := h.service.MakeAddressDefault(r.Context(), customerID, address.ID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": address.ID, "status": "default"}})
}

// DeleteAddress handles DELETE /api/v1/customers/me/addresses/{id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	address, ok := h.ownedAddress(w, r, customerID)
	if !ok {
		return
	}

	if err := h.service.DeleteAddress(r.Context(), address.ID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": address.ID, "status": "deleted"}})
}

// ownedAddress resolves the {id} URL parameter to an address owned by the
// authenticated customer. It writes the error response itself when the
// address is missing or owned by someone else.
func (h *AddressHandler) ownedAddress(w http.ResponseWriter, r *http.Request, customerID string) (*domain.Address, bool) {
	addressID := chi.URLParam(r, "id")
	if addressID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "address id is required"},
		})
		return nil, false
	}

	address, err := h.service.ReadAddressByID(r.Context(), addressID)
	if err != nil {
		writeAppError(w, r, err)
		return nil, false
	}
	if address == nil || address.CustomerID != customerID {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "address not found"},
		})
		return nil, false
	}

	return address, true
}
