package postgres

import (
	"context"
	"fmt"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// TokenRepository implements repository.TokenRepository using PostgreSQL.
type TokenRepository struct {
	db DB
}

// NewTokenRepository creates a new PostgreSQL-backed reset token repository.
func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a new reset token.
func (r *TokenRepository) Create(ctx context.Context, t *domain.PasswordResetToken) error {
	query := `
		INSERT INTO password_reset_tokens (id, customer_id, token_hash, used, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, t.ID, t.CustomerID, t.TokenHash, t.Used, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}

	return nil
}

// ReadUnusedByCustomerID returns all tokens for the customer that have not
// been consumed yet, newest first.
func (r *TokenRepository) ReadUnusedByCustomerID(ctx context.Context, customerID string) ([]domain.PasswordResetToken, error) {
	query := `
		SELECT id, customer_id, token_hash, used, created_at
		FROM password_reset_tokens
		WHERE customer_id = $1 AND used = FALSE
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("read reset tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.PasswordResetToken
	for rows.Next() {
		var t domain.PasswordResetToken
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.TokenHash, &t.Used, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reset token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reset tokens: %w", err)
	}

	return tokens, nil
}

// MarkUsed consumes a token so it cannot be replayed.
func (r *TokenRepository) MarkUsed(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `UPDATE password_reset_tokens SET used = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("reset token", id)
	}
	return nil
}
