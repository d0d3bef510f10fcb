package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

func newSubdivisionTestFixture(t *testing.T) (*SubdivisionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewSubdivisionRepository(mock), mock
}

func subdivisionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"abbreviation", "country_abbreviation", "alternate_abbreviation", "name", "category",
	})
}

func TestSubdivisionRepository_FindByCountryAndRegion(t *testing.T) {
	repo, mock := newSubdivisionTestFixture(t)
	defer mock.Close()

	tx := "TX"
	name := "Texas"
	mock.ExpectQuery("SELECT (.+) FROM country_subdivisions").
		WithArgs("US", "TX").
		WillReturnRows(subdivisionRows().AddRow("US-TX", "US", &tx, &name, nil))

	got, err := repo.FindByCountryAndRegion(context.Background(), "US", "TX")

	require.NoError(t, err)
	assert.Equal(t, "US-TX", got.Abbreviation)
	assert.Equal(t, "TX", got.AlternateAbbreviation)
	assert.Equal(t, "Texas", got.Name)
	assert.Empty(t, got.Category)
}

func TestSubdivisionRepository_FindByCountryAndRegion_NoMatch(t *testing.T) {
	repo, mock := newSubdivisionTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM country_subdivisions").
		WithArgs("US", "Atlantis").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.FindByCountryAndRegion(context.Background(), "US", "Atlantis")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCountryRepository_FindByAbbreviation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewCountryRepository(mock)

	mock.ExpectQuery("SELECT abbreviation, name FROM countries").
		WithArgs("US").
		WillReturnRows(pgxmock.NewRows([]string{"abbreviation", "name"}).AddRow("US", "United States"))

	got, err := repo.FindByAbbreviation(context.Background(), "US")

	require.NoError(t, err)
	assert.Equal(t, "United States", got.Name)
}
