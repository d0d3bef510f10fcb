package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

func newTokenTestFixture(t *testing.T) (*TokenRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewTokenRepository(mock), mock
}

func TestTokenRepository_Create(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	tok := &domain.PasswordResetToken{
		ID:         "t-1",
		CustomerID: "c-1234",
		TokenHash:  "encoded-token",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO password_reset_tokens").
		WithArgs(tok.ID, tok.CustomerID, tok.TokenHash, tok.Used, tok.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), tok))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_ReadUnusedByCustomerID(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "customer_id", "token_hash", "used", "created_at"}).
		AddRow("t-2", "c-1234", "hash-2", false, now).
		AddRow("t-1", "c-1234", "hash-1", false, now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM password_reset_tokens").
		WithArgs("c-1234").
		WillReturnRows(rows)

	tokens, err := repo.ReadUnusedByCustomerID(context.Background(), "c-1234")

	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "t-2", tokens[0].ID)
}

func TestTokenRepository_MarkUsed(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE password_reset_tokens SET used").
		WithArgs("t-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkUsed(context.Background(), "t-1"))
}

func TestTokenRepository_MarkUsed_NotFound(t *testing.T) {
	repo, mock := newTokenTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE password_reset_tokens SET used").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.MarkUsed(context.Background(), "ghost")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
