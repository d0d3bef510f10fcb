package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

const paymentColumns = `id, customer_id, payment_token, payment_type, gateway_type, billing_address_id, is_default, additional_fields, created_at`

// PaymentRepository implements repository.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	db DB
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(db DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment method into the database.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.CustomerPayment) error {
	p.CreatedAt = time.Now().UTC()

	fields, err := marshalFields(p.AdditionalFields)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO customer_payments (id, customer_id, payment_token, payment_type, gateway_type, billing_address_id, is_default, additional_fields, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.CustomerID,
		p.PaymentToken,
		p.PaymentType,
		p.GatewayType,
		nullable(p.BillingAddressID),
		p.IsDefault,
		fields,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment method by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.CustomerPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM customer_payments WHERE id = $1`
	return r.scanPayment(ctx, query, id)
}

// GetByToken retrieves a payment method by its gateway token.
func (r *PaymentRepository) GetByToken(ctx context.Context, token string) (*domain.CustomerPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM customer_payments WHERE payment_token = $1`
	return r.scanPayment(ctx, query, token)
}

// ListByCustomerID returns all payment methods for the given customer, default first.
func (r *PaymentRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPayment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM customer_payments
		WHERE customer_id = $1
		ORDER BY is_default DESC, created_at`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.CustomerPayment
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}

	return payments, nil
}

// Update modifies an existing payment method in the database.
func (r *PaymentRepository) Update(ctx context.Context, p *domain.CustomerPayment) error {
	fields, err := marshalFields(p.AdditionalFields)
	if err != nil {
		return err
	}

	query := `
		UPDATE customer_payments
		SET payment_token = $1, payment_type = $2, gateway_type = $3,
		    billing_address_id = $4, is_default = $5, additional_fields = $6
		WHERE id = $7`

	ct, err := r.db.Exec(ctx, query,
		p.PaymentToken,
		p.PaymentType,
		p.GatewayType,
		nullable(p.BillingAddressID),
		p.IsDefault,
		fields,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("payment", p.ID)
	}

	return nil
}

// Delete removes a payment method from the database by its ID.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM customer_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("payment", id)
	}
	return nil
}

// ClearDefault unsets the default flag on all of the customer's payment methods.
func (r *PaymentRepository) ClearDefault(ctx context.Context, customerID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE customer_payments SET is_default = FALSE WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("clear default payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) scanPayment(ctx context.Context, query string, args ...any) (*domain.CustomerPayment, error) {
	p, err := scanPaymentRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}
	return p, nil
}

func scanPaymentRow(row pgx.Row) (*domain.CustomerPayment, error) {
	var (
		p                domain.CustomerPayment
		billingAddressID *string
		fields           []byte
	)

	err := row.Scan(
		&p.ID,
		&p.CustomerID,
		&p.PaymentToken,
		&p.PaymentType,
		&p.GatewayType,
		&billingAddressID,
		&p.IsDefault,
		&fields,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.BillingAddressID = deref(billingAddressID)
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &p.AdditionalFields); err != nil {
			return nil, fmt.Errorf("unmarshal additional fields: %w", err)
		}
	}

	return &p, nil
}

func marshalFields(fields map[string]string) ([]byte, error) {
	if fields == nil {
		fields = map[string]string{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal additional fields: %w", err)
	}
	return data, nil
}
