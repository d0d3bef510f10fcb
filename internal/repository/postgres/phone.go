package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

const phoneColumns = `id, customer_id, phone_name, phone_number, country_code, extension, is_default, is_active`

// PhoneRepository implements repository.PhoneRepository using PostgreSQL.
type PhoneRepository struct {
	db DB
}

// NewPhoneRepository creates a new PostgreSQL-backed phone repository.
func NewPhoneRepository(db DB) *PhoneRepository {
	return &PhoneRepository{db: db}
}

// Create inserts a new phone into the database.
func (r *PhoneRepository) Create(ctx context.Context, p *domain.CustomerPhone) error {
	query := `
		INSERT INTO customer_phones (id, customer_id, phone_name, phone_number, country_code, extension, is_default, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.CustomerID,
		p.PhoneName,
		p.PhoneNumber,
		p.CountryCode,
		p.Extension,
		p.IsDefault,
		p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert phone: %w", err)
	}

	return nil
}

// GetByID retrieves a phone by its ID.
func (r *PhoneRepository) GetByID(ctx context.Context, id string) (*domain.CustomerPhone, error) {
	query := `SELECT ` + phoneColumns + ` FROM customer_phones WHERE id = $1`

	p, err := scanPhoneRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan phone: %w", err)
	}
	return p, nil
}

// ListByCustomerID returns all active phones for the given customer, default first.
func (r *PhoneRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPhone, error) {
	query := `SELECT ` + phoneColumns + `
		FROM customer_phones
		WHERE customer_id = $1 AND is_active = TRUE
		ORDER BY is_default DESC, phone_name`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()

	var phones []domain.CustomerPhone
	for rows.Next() {
		p, err := scanPhoneRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones = append(phones, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phones: %w", err)
	}

	return phones, nil
}

// Update modifies an existing phone in the database.
func (r *PhoneRepository) Update(ctx context.Context, p *domain.CustomerPhone) error {
	query := `
		UPDATE customer_phones
		SET phone_name = $1, phone_number = $2, country_code = $3, extension = $4,
		    is_default = $5, is_active = $6
		WHERE id = $7`

	ct, err := r.db.Exec(ctx, query,
		p.PhoneName,
		p.PhoneNumber,
		p.CountryCode,
		p.Extension,
		p.IsDefault,
		p.IsActive,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update phone: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("phone", p.ID)
	}

	return nil
}

// Delete removes a phone from the database by its ID.
func (r *PhoneRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM customer_phones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("phone", id)
	}
	return nil
}

// SetDefault marks the specified phone as the default for the customer,
// unsetting any previous default.
func (r *PhoneRepository) SetDefault(ctx context.Context, customerID, phoneID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE customer_phones SET is_default = (id = $1) WHERE customer_id = $2`,
		phoneID, customerID)
	if err != nil {
		return fmt.Errorf("set default phone: %w", err)
	}
	return nil
}

func scanPhoneRow(row pgx.Row) (*domain.CustomerPhone, error) {
	var p domain.CustomerPhone
	err := row.Scan(
		&p.ID,
		&p.CustomerID,
		&p.PhoneName,
		&p.PhoneNumber,
		&p.CountryCode,
		&p.Extension,
		&p.IsDefault,
		&p.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
