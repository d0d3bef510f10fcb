package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

func newCustomerTestFixture(t *testing.T) (*CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewCustomerRepository(mock)
	return repo, mock
}

func sampleCustomer() *domain.Customer {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Customer{
		ID:           "c-1234",
		Username:     "alice",
		EmailAddress: "alice@example.com",
		Password:     "hash-abc",
		FirstName:    "Alice",
		LastName:     "Smith",
		ReceiveEmail: true,
		Registered:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// customerColumnNames returns the 15 column names scanned by scanCustomerRow.
func customerColumnNames() []string {
	return []string{
		"id", "username", "email_address", "password_hash", "first_name", "last_name",
		"external_id", "challenge_question_id", "challenge_answer_hash",
		"password_change_required", "receive_email", "registered", "deactivated",
		"created_at", "updated_at",
	}
}

func customerRow(c *domain.Customer) *pgxmock.Rows {
	return pgxmock.NewRows(customerColumnNames()).AddRow(
		c.ID, c.Username, c.EmailAddress, nullable(c.Password), nullable(c.FirstName), nullable(c.LastName),
		nullable(c.ExternalID), nullable(c.ChallengeQuestionID), nullable(c.ChallengeAnswer),
		c.PasswordChangeRequired, c.ReceiveEmail, c.Registered, c.Deactivated,
		c.CreatedAt, c.UpdatedAt,
	)
}

func TestCustomerRepository_Save_Insert(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	c := sampleCustomer()

	mock.ExpectExec("INSERT INTO customers").
		WithArgs(
			c.ID, c.Username, c.EmailAddress, nullable(c.Password), nullable(c.FirstName), nullable(c.LastName),
			nullable(c.ExternalID), nullable(c.ChallengeQuestionID), nullable(c.ChallengeAnswer),
			c.PasswordChangeRequired, c.ReceiveEmail, c.Registered, c.Deactivated,
			c.CreatedAt, pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Save(context.Background(), c)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Save_DuplicateUsername(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	c := sampleCustomer()

	mock.ExpectExec("INSERT INTO customers").
		WithArgs(
			c.ID, c.Username, c.EmailAddress, nullable(c.Password), nullable(c.FirstName), nullable(c.LastName),
			nullable(c.ExternalID), nullable(c.ChallengeQuestionID), nullable(c.ChallengeAnswer),
			c.PasswordChangeRequired, c.ReceiveEmail, c.Registered, c.Deactivated,
			c.CreatedAt, pgxmock.AnyArg(),
		).
		WillReturnError(fmt.Errorf("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Save(context.Background(), c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
}

func TestCustomerRepository_ReadByUsername(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	c := sampleCustomer()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE username").
		WithArgs(c.Username).
		WillReturnRows(customerRow(c))

	got, err := repo.ReadByUsername(context.Background(), c.Username)

	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Username, got.Username)
	assert.Equal(t, c.Password, got.Password)
	assert.True(t, got.Registered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_ReadByUsername_NotFound(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.ReadByUsername(context.Background(), "ghost")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCustomerRepository_ReadByEmail(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	c := sampleCustomer()

	mock.ExpectQuery("SELECT (.+) FROM customers WHERE email_address").
		WithArgs(c.EmailAddress).
		WillReturnRows(customerRow(c))

	got, err := repo.ReadByEmail(context.Background(), c.EmailAddress)

	require.NoError(t, err)
	assert.Equal(t, c.EmailAddress, got.EmailAddress)
}

func TestCustomerRepository_ReadBatch(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	a := sampleCustomer()
	b := sampleCustomer()
	b.ID = "c-5678"
	b.Username = "bob"

	rows := customerRow(a)
	rows.AddRow(
		b.ID, b.Username, b.EmailAddress, nullable(b.Password), nullable(b.FirstName), nullable(b.LastName),
		nullable(b.ExternalID), nullable(b.ChallengeQuestionID), nullable(b.ChallengeAnswer),
		b.PasswordChangeRequired, b.ReceiveEmail, b.Registered, b.Deactivated,
		b.CreatedAt, b.UpdatedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM customers ORDER BY id").
		WithArgs(0, 20).
		WillReturnRows(rows)

	got, err := repo.ReadBatch(context.Background(), 0, 20)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "bob", got[1].Username)
}

func TestCustomerRepository_Count(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	count, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestCustomerRepository_Delete(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM customers").
		WithArgs("c-1234").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "c-1234")

	require.NoError(t, err)
}

func TestCustomerRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newCustomerTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM customers").
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "ghost")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
