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

// PaymentHandler handles HTTP requests for saved payment method endpoints.
type PaymentHandler struct {
	service *service.CustomerPaymentService
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(svc *service.CustomerPaymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// SavePaymentRequest is the JSON request body for creating a payment method.
// The token references the gateway's stored instrument; no card data crosses
// this API.
type SavePaymentRequest struct {
	PaymentToken     string            `json:"payment_token" validate:"required,max=255"`
	PaymentType      string            `json:"payment_type" validate:"omitempty,max=50"`
	GatewayType      string            `json:"gateway_type" validate:"omitempty,max=50"`
	BillingAddressID string            `json:"billing_address_id" validate:"omitempty,uuid"`
	IsDefault        bool              `json:"is_default"`
	AdditionalFields map[string]string `json:"additional_fields" validate:"omitempty,max=20"`
}

// ListPayments handles GET /api/v1/customers/me/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	payments, err := h.service.ReadPaymentsByCustomerID(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: payments})
}

// CreatePayment handles POST /api/v1/customers/me/payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	var req SavePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w, err)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	payment := h.service.CreatePayment()
	payment.CustomerID = customerID
	payment.PaymentToken = req.PaymentToken
	payment.PaymentType = req.PaymentType
	payment.GatewayType = req.GatewayType
	payment.BillingAddressID = req.BillingAddressID
	payment.IsDefault = req.IsDefault
	payment.AdditionalFields = req.AdditionalFields

	saved, err := h.service.SavePayment(r.Context(), payment)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: saved})
}

// GetDefaultPayment handles GET /api/v1/customers/me/payments/default
func (h *PaymentHandler) GetDefaultPayment(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	payment, err := h.service.FindDefaultPayment(r.Context(), customerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if payment == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "no default payment method"},
		})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: payment})
}

// MakeDefault handles POST /api/v1/customers/me/payments/{id}/default
func (h *PaymentHandler) MakeDefault(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "payment id is required"},
		})
		return
	}

	if err := h.service.SetDefaultPayment(r.Context(), customerID, paymentID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": paymentID, "status": "default"}})
}

// DeletePayment handles DELETE /api/v1/customers/me/payments/{id}
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerIDFromContext(r.Context())
	if customerID == "" {
		writeUnauthenticated(w)
		return
	}

	payment, ok := h.ownedPayment(w, r, customerID)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(r.Context(), payment.ID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"id": payment.ID, "status": "deleted"}})
}

func (h *PaymentHandler) ownedPayment(w http.ResponseWriter, r *http.Request, customerID string) (*domain.CustomerPayment, bool) {
	paymentID := chi.URLParam(r, "id")
	if paymentID == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "payment id is required"},
		})
		return nil, false
	}

	payment, err := h.service.ReadPaymentByID(r.Context(), paymentID)
	if err != nil {
		writeAppError(w, r, err)
		return nil, false
	}
	if payment == nil || payment.CustomerID != customerID {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "payment not found"},
		})
		return nil, false
	}

	return payment, true
}
