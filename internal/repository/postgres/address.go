package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

const addressColumns = `id, customer_id, address_name, first_name, last_name, company_name,
		address_line1, address_line2, address_line3, city, state_province_region,
		iso_country_subdivision, postal_code, country_abbreviation,
		phone_primary, phone_secondary, phone_fax,
		is_default, is_active, is_business, is_mailing, is_street,
		created_at, updated_at`

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	db DB
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(db DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// Create inserts a new address into the database.
func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) error {
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt

	query := `
		INSERT INTO addresses (id, customer_id, address_name, first_name, last_name, company_name,
			address_line1, address_line2, address_line3, city, state_province_region,
			iso_country_subdivision, postal_code, country_abbreviation,
			phone_primary, phone_secondary, phone_fax,
			is_default, is_active, is_business, is_mailing, is_street,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

	_, err := r.db.Exec(ctx, query,
		a.ID,
		nullable(a.CustomerID),
		a.AddressName,
		a.FirstName,
		a.LastName,
		a.CompanyName,
		a.AddressLine1,
		a.AddressLine2,
		a.AddressLine3,
		a.City,
		a.StateProvinceRegion,
		a.ISOCountrySubdivision,
		a.PostalCode,
		a.CountryAbbreviation,
		a.PhonePrimary,
		a.PhoneSecondary,
		a.PhoneFax,
		a.IsDefault,
		a.IsActive,
		a.IsBusiness,
		a.IsMailing,
		a.IsStreet,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}

	return nil
}

// GetByID retrieves an address by its ID.
func (r *AddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	a, err := scanAddressRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}
	return a, nil
}

// ListByCustomerID returns all active addresses for the given customer,
// default first.
func (r *AddressRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1 AND is_active = TRUE
		ORDER BY is_default DESC, created_at`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		a, err := scanAddressRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}

// Update modifies an existing address in the database.
func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) error {
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE addresses
		SET address_name = $1, first_name = $2, last_name = $3, company_name = $4,
		    address_line1 = $5, address_line2 = $6, address_line3 = $7, city = $8,
		    state_province_region = $9, iso_country_subdivision = $10, postal_code = $11,
		    country_abbreviation = $12, phone_primary = $13, phone_secondary = $14,
		    phone_fax = $15, is_default = $16, is_active = $17, is_business = $18,
		    is_mailing = $19, is_street = $20, updated_at = $21
		WHERE id = $22`

	ct, err := r.db.Exec(ctx, query,
		a.AddressName,
		a.FirstName,
		a.LastName,
		a.CompanyName,
		a.AddressLine1,
		a.AddressLine2,
		a.AddressLine3,
		a.City,
		a.StateProvinceRegion,
		a.ISOCountrySubdivision,
		a.PostalCode,
		a.CountryAbbreviation,
		a.PhonePrimary,
		a.PhoneSecondary,
		a.PhoneFax,
		a.IsDefault,
		a.IsActive,
		a.IsBusiness,
		a.IsMailing,
		a.IsStreet,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", a.ID)
	}

	return nil
}

// Delete removes an address from the database by its ID.
func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", id)
	}
	return nil
}

// SetDefault marks the specified address as the default for the customer,
// unsetting any previous default.
func (r *AddressRepository) SetDefault(ctx context.Context, customerID, addressID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE addresses SET is_default = (id = $1) WHERE customer_id = $2`,
		addressID, customerID)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	return nil
}

func scanAddressRow(row pgx.Row) (*domain.Address, error) {
	var (
		a          domain.Address
		customerID *string
	)

	err := row.Scan(
		&a.ID,
		&customerID,
		&a.AddressName,
		&a.FirstName,
		&a.LastName,
		&a.CompanyName,
		&a.AddressLine1,
		&a.AddressLine2,
		&a.AddressLine3,
		&a.City,
		&a.StateProvinceRegion,
		&a.ISOCountrySubdivision,
		&a.PostalCode,
		&a.CountryAbbreviation,
		&a.PhonePrimary,
		&a.PhoneSecondary,
		&a.PhoneFax,
		&a.IsDefault,
		&a.IsActive,
		&a.IsBusiness,
		&a.IsMailing,
		&a.IsStreet,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.CustomerID = deref(customerID)
	return &a, nil
}
