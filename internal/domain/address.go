package domain

import (
	"time"
)

// Address represents a shipping or billing address, optionally owned by a
// customer. StateProvinceRegion holds the free-text region as entered;
// ISOCountrySubdivision holds the normalized subdivision code once resolved.
type Address struct {
	ID                    string    `json:"id"`
	CustomerID            string    `json:"customer_id,omitempty"`
	AddressName           string    `json:"address_name,omitempty"`
	FirstName             string    `json:"first_name,omitempty"`
	LastName              string    `json:"last_name,omitempty"`
	CompanyName           string    `json:"company_name,omitempty"`
	AddressLine1          string    `json:"address_line1"`
	AddressLine2          string    `json:"address_line2,omitempty"`
	AddressLine3          string    `json:"address_line3,omitempty"`
	City                  string    `json:"city,omitempty"`
	StateProvinceRegion   string    `json:"state_province_region,omitempty"`
	ISOCountrySubdivision string    `json:"iso_country_subdivision,omitempty"`
	PostalCode            string    `json:"postal_code,omitempty"`
	CountryAbbreviation   string    `json:"country_abbreviation,omitempty"`
	PhonePrimary          string    `json:"phone_primary,omitempty"`
	PhoneSecondary        string    `json:"phone_secondary,omitempty"`
	PhoneFax              string    `json:"phone_fax,omitempty"`
	IsDefault             bool      `json:"is_default"`
	IsActive              bool      `json:"is_active"`
	IsBusiness            bool      `json:"is_business"`
	IsMailing             bool      `json:"is_mailing"`
	IsStreet              bool      `json:"is_street"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Country is a reference entity keyed by its ISO abbreviation.
type Country struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

// CountrySubdivision is a state, province, or region within a country,
// keyed by its ISO 3166-2 abbreviation.
type CountrySubdivision struct {
	Abbreviation          string `json:"abbreviation"`
	CountryAbbreviation   string `json:"country_abbreviation"`
	AlternateAbbreviation string `json:"alternate_abbreviation,omitempty"`
	Name                  string `json:"name,omitempty"`
	Category              string `json:"category,omitempty"`
}
