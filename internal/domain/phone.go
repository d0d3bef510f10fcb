package domain

// CustomerPhone is a named phone number owned by a customer.
type CustomerPhone struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	PhoneName   string `json:"phone_name,omitempty"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code,omitempty"`
	Extension   string `json:"extension,omitempty"`
	IsDefault   bool   `json:"is_default"`
	IsActive    bool   `json:"is_active"`
}
