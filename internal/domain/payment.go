package domain

import (
	"time"
)

// CustomerPayment is a saved payment method. The token references the
// payment gateway's stored instrument; no card data is held here.
type CustomerPayment struct {
	ID               string            `json:"id"`
	CustomerID       string            `json:"customer_id"`
	PaymentToken     string            `json:"payment_token,omitempty"`
	PaymentType      string            `json:"payment_type,omitempty"`
	GatewayType      string            `json:"gateway_type,omitempty"`
	BillingAddressID string            `json:"billing_address_id,omitempty"`
	IsDefault        bool              `json:"is_default"`
	AdditionalFields map[string]string `json:"additional_fields,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
