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

const customerColumns = `id, username, email_address, password_hash, first_name, last_name,
		external_id, challenge_question_id, challenge_answer_hash,
		password_change_required, receive_email, registered, deactivated,
		created_at, updated_at`

// CustomerRepository implements repository.CustomerRepository using PostgreSQL.
type CustomerRepository struct {
	db DB
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Save inserts the customer, or updates every mutable column when a customer
// with the same ID already exists.
func (r *CustomerRepository) Save(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = c.UpdatedAt
	}

	query := `
		INSERT INTO customers (id, username, email_address, password_hash, first_name, last_name,
			external_id, challenge_question_id, challenge_answer_hash,
			password_change_required, receive_email, registered, deactivated,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			email_address = EXCLUDED.email_address,
			password_hash = EXCLUDED.password_hash,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			external_id = EXCLUDED.external_id,
			challenge_question_id = EXCLUDED.challenge_question_id,
			challenge_answer_hash = EXCLUDED.challenge_answer_hash,
			password_change_required = EXCLUDED.password_change_required,
			receive_email = EXCLUDED.receive_email,
			registered = EXCLUDED.registered,
			deactivated = EXCLUDED.deactivated,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Username,
		c.EmailAddress,
		nullable(c.Password),
		nullable(c.FirstName),
		nullable(c.LastName),
		nullable(c.ExternalID),
		nullable(c.ChallengeQuestionID),
		nullable(c.ChallengeAnswer),
		c.PasswordChangeRequired,
		c.ReceiveEmail,
		c.Registered,
		c.Deactivated,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("customer", "username", c.Username)
		}
		return fmt.Errorf("save customer: %w", err)
	}

	return nil
}

// ReadByID retrieves a customer by their ID.
func (r *CustomerRepository) ReadByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanCustomer(ctx, query, id)
}

// ReadByUsername retrieves a customer by their username.
func (r *CustomerRepository) ReadByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE username = $1`
	return r.scanCustomer(ctx, query, username)
}

// ReadByEmail retrieves a customer by their email address. When several
// accounts share the email, the oldest one wins.
func (r *CustomerRepository) ReadByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email_address = $1 ORDER BY created_at LIMIT 1`
	return r.scanCustomer(ctx, query, email)
}

// ReadByExternalID retrieves a customer by the identifier assigned by an
// external system.
func (r *CustomerRepository) ReadByExternalID(ctx context.Context, externalID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE external_id = $1`
	return r.scanCustomer(ctx, query, externalID)
}

// ReadBatch returns a page of customers ordered by ID.
func (r *CustomerRepository) ReadBatch(ctx context.Context, offset, limit int) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("read customers batch: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, nil
}

// Count returns the total number of customers.
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// Delete removes a customer from the database by their ID.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("customer", id)
	}
	return nil
}

// scanCustomer is a helper that executes a query expected to return a single customer row.
func (r *CustomerRepository) scanCustomer(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	c, err := scanCustomerRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

func scanCustomerRow(row pgx.Row) (*domain.Customer, error) {
	var (
		c                                                domain.Customer
		password, firstName, lastName                    *string
		externalID, challengeQuestionID, challengeAnswer *string
	)

	err := row.Scan(
		&c.ID,
		&c.Username,
		&c.EmailAddress,
		&password,
		&firstName,
		&lastName,
		&externalID,
		&challengeQuestionID,
		&challengeAnswer,
		&c.PasswordChangeRequired,
		&c.ReceiveEmail,
		&c.Registered,
		&c.Deactivated,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Password = deref(password)
	c.FirstName = deref(firstName)
	c.LastName = deref(lastName)
	c.ExternalID = deref(externalID)
	c.ChallengeQuestionID = deref(challengeQuestionID)
	c.ChallengeAnswer = deref(challengeAnswer)

	return &c, nil
}

// nullable maps an empty string to a SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
