package repository

import (
	"context"

	"github.com/utafrali/ProfileGo/internal/domain"
)

// CustomerRepository defines the interface for customer persistence operations.
type CustomerRepository interface {
	// Save inserts the customer or updates it when the ID already exists.
	Save(ctx context.Context, customer *domain.Customer) error

	// ReadByID retrieves a customer by their unique identifier.
	ReadByID(ctx context.Context, id string) (*domain.Customer, error)

	// ReadByUsername retrieves a customer by their username.
	ReadByUsername(ctx context.Context, username string) (*domain.Customer, error)

	// ReadByEmail retrieves a customer by their email address.
	ReadByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// ReadByExternalID retrieves a customer by the identifier assigned by an
	// external system.
	ReadByExternalID(ctx context.Context, externalID string) (*domain.Customer, error)

	// ReadBatch returns a page of customers ordered by ID.
	ReadBatch(ctx context.Context, offset, limit int) ([]domain.Customer, error)

	// Count returns the total number of customers.
	Count(ctx context.Context) (int64, error)

	// Delete removes a customer from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// TokenRepository defines the interface for password reset token persistence.
type TokenRepository interface {
	// Create stores a new reset token.
	Create(ctx context.Context, token *domain.PasswordResetToken) error

	// ReadUnusedByCustomerID returns all tokens for the customer that have
	// not been consumed yet.
	ReadUnusedByCustomerID(ctx context.Context, customerID string) ([]domain.PasswordResetToken, error)

	// MarkUsed consumes a token so it cannot be replayed.
	MarkUsed(ctx context.Context, id string) error
}

// RoleRepository defines the interface for role persistence operations.
type RoleRepository interface {
	// FindRoleByName retrieves a role by its name.
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)

	// AddRoleToCustomer grants the role to the customer. Granting an
	// already-held role is a no-op.
	AddRoleToCustomer(ctx context.Context, customerID, roleID string) error

	// FindCustomerRolesByCustomerID returns all roles granted to the customer.
	FindCustomerRolesByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerRole, error)

	// RemoveCustomerRolesByCustomerID revokes all roles from the customer.
	RemoveCustomerRolesByCustomerID(ctx context.Context, customerID string) error
}

// AddressRepository defines the interface for address persistence operations.
type AddressRepository interface {
	// Create inserts a new address into the store.
	Create(ctx context.Context, address *domain.Address) error

	// GetByID retrieves an address by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Address, error)

	// ListByCustomerID returns all active addresses for the given customer.
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error)

	// Update modifies an existing address in the store.
	Update(ctx context.Context, address *domain.Address) error

	// Delete removes an address from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// SetDefault marks the specified address as the default for the customer,
	// unsetting any previous default.
	SetDefault(ctx context.Context, customerID, addressID string) error
}

// CountryRepository defines the interface for country reference data.
type CountryRepository interface {
	// FindByAbbreviation retrieves a country by its ISO abbreviation.
	FindByAbbreviation(ctx context.Context, abbreviation string) (*domain.Country, error)

	// List returns all countries ordered by name.
	List(ctx context.Context) ([]domain.Country, error)
}

// SubdivisionRepository defines the interface for country subdivision
// reference data.
type SubdivisionRepository interface {
	// FindByAbbreviation retrieves a subdivision by its ISO 3166-2 abbreviation.
	FindByAbbreviation(ctx context.Context, abbreviation string) (*domain.CountrySubdivision, error)

	// ListByCountry returns all subdivisions of the given country.
	ListByCountry(ctx context.Context, countryAbbreviation string) ([]domain.CountrySubdivision, error)

	// FindByCountryAndRegion retrieves the subdivision of the country whose
	// alternate abbreviation, abbreviation, or name equals the given region
	// value, in that order of preference.
	FindByCountryAndRegion(ctx context.Context, countryAbbreviation, region string) (*domain.CountrySubdivision, error)
}

// PhoneRepository defines the interface for customer phone persistence.
type PhoneRepository interface {
	// Create inserts a new phone into the store.
	Create(ctx context.Context, phone *domain.CustomerPhone) error

	// GetByID retrieves a phone by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.CustomerPhone, error)

	// ListByCustomerID returns all active phones for the given customer.
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPhone, error)

	// Update modifies an existing phone in the store.
	Update(ctx context.Context, phone *domain.CustomerPhone) error

	// Delete removes a phone from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// SetDefault marks the specified phone as the default for the customer,
	// unsetting any previous default.
	SetDefault(ctx context.Context, customerID, phoneID string) error
}

// PaymentRepository defines the interface for saved payment method persistence.
type PaymentRepository interface {
	// Create inserts a new payment method into the store.
	Create(ctx context.Context, payment *domain.CustomerPayment) error

	// GetByID retrieves a payment method by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.CustomerPayment, error)

	// GetByToken retrieves a payment method by its gateway token.
	GetByToken(ctx context.Context, token string) (*domain.CustomerPayment, error)

	// ListByCustomerID returns all payment methods for the given customer.
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPayment, error)

	// Update modifies an existing payment method in the store.
	Update(ctx context.Context, payment *domain.CustomerPayment) error

	// Delete removes a payment method from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// ClearDefault unsets the default flag on all of the customer's payment
	// methods.
	ClearDefault(ctx context.Context, customerID string) error
}

// ChallengeQuestionRepository defines the interface for challenge question
// reference data.
type ChallengeQuestionRepository interface {
	// GetByID retrieves a challenge question by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.ChallengeQuestion, error)

	// List returns all challenge questions.
	List(ctx context.Context) ([]domain.ChallengeQuestion, error)
}
