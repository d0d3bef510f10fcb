package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// --- Mock Address Repository ---

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepository) Update(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAddressRepository) SetDefault(ctx context.Context, customerID, addressID string) error {
	args := m.Called(ctx, customerID, addressID)
	return args.Error(0)
}

// --- Mock Subdivision Repository ---

type mockSubdivisionRepository struct {
	mock.Mock
}

func (m *mockSubdivisionRepository) FindByAbbreviation(ctx context.Context, abbreviation string) (*domain.CountrySubdivision, error) {
	args := m.Called(ctx, abbreviation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountrySubdivision), args.Error(1)
}

func (m *mockSubdivisionRepository) ListByCountry(ctx context.Context, countryAbbreviation string) ([]domain.CountrySubdivision, error) {
	args := m.Called(ctx, countryAbbreviation)
	return args.Get(0).([]domain.CountrySubdivision), args.Error(1)
}

func (m *mockSubdivisionRepository) FindByCountryAndRegion(ctx context.Context, countryAbbreviation, region string) (*domain.CountrySubdivision, error) {
	args := m.Called(ctx, countryAbbreviation, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CountrySubdivision), args.Error(1)
}

func newAddressServiceFixture(t *testing.T) (*AddressService, *mockAddressRepository, *mockSubdivisionRepository) {
	t.Helper()
	addresses := new(mockAddressRepository)
	subdivisions := new(mockSubdivisionRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAddressService(addresses, subdivisions, logger), addresses, subdivisions
}

// ---------------------------------------------------------------------------
// PopulateCountrySubdivision
// ---------------------------------------------------------------------------

func TestPopulateCountrySubdivision_Match(t *testing.T) {
	svc, _, subdivisions := newAddressServiceFixture(t)

	subdivisions.On("FindByCountryAndRegion", mock.Anything, "US", "Texas").
		Return(&domain.CountrySubdivision{Abbreviation: "US-TX", CountryAbbreviation: "US"}, nil)

	address := &domain.Address{CountryAbbreviation: "US", StateProvinceRegion: "Texas"}
	svc.PopulateCountrySubdivision(context.Background(), address)

	assert.Equal(t, "US-TX", address.ISOCountrySubdivision)
	// The free-text region stays as entered.
	assert.Equal(t, "Texas", address.StateProvinceRegion)
}

func TestPopulateCountrySubdivision_MissingCountry(t *testing.T) {
	svc, _, subdivisions := newAddressServiceFixture(t)

	address := &domain.Address{StateProvinceRegion: "Texas"}
	svc.PopulateCountrySubdivision(context.Background(), address)

	assert.Empty(t, address.ISOCountrySubdivision)
	subdivisions.AssertNotCalled(t, "FindByCountryAndRegion", mock.Anything, mock.Anything, mock.Anything)
}

func TestPopulateCountrySubdivision_MissingRegion(t *testing.T) {
	svc, _, subdivisions := newAddressServiceFixture(t)

	address := &domain.Address{CountryAbbreviation: "US"}
	svc.PopulateCountrySubdivision(context.Background(), address)

	assert.Empty(t, address.ISOCountrySubdivision)
	subdivisions.AssertNotCalled(t, "FindByCountryAndRegion", mock.Anything, mock.Anything, mock.Anything)
}

func TestPopulateCountrySubdivision_NoMatch(t *testing.T) {
	svc, _, subdivisions := newAddressServiceFixture(t)

	subdivisions.On("FindByCountryAndRegion", mock.Anything, "US", "Atlantis").
		Return(nil, apperrors.ErrNotFound)

	address := &domain.Address{CountryAbbreviation: "US", StateProvinceRegion: "Atlantis"}
	svc.PopulateCountrySubdivision(context.Background(), address)

	assert.Empty(t, address.ISOCountrySubdivision)
}

func TestPopulateCountrySubdivision_LookupErrorIsSilent(t *testing.T) {
	svc, _, subdivisions := newAddressServiceFixture(t)

	subdivisions.On("FindByCountryAndRegion", mock.Anything, "US", "Texas").
		Return(nil, errors.New("connection refused"))

	address := &domain.Address{CountryAbbreviation: "US", StateProvinceRegion: "Texas"}
	svc.PopulateCountrySubdivision(context.Background(), address)

	assert.Empty(t, address.ISOCountrySubdivision)
}

// ---------------------------------------------------------------------------
// SaveAddress
// ---------------------------------------------------------------------------

func TestSaveAddress_FirstAddressBecomesDefault(t *testing.T) {
	svc, addresses, subdivisions := newAddressServiceFixture(t)

	subdivisions.On("FindByCountryAndRegion", mock.Anything, "US", "Texas").
		Return(nil, apperrors.ErrNotFound)
	addresses.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	addresses.On("ListByCustomerID", mock.Anything, "c-1").Return([]domain.Address{}, nil)
	addresses.On("Create", mock.Anything, mock.Anything).Return(nil)

	address := &domain.Address{
		CustomerID:          "c-1",
		AddressLine1:        "1 Main St",
		CountryAbbreviation: "US",
		StateProvinceRegion: "Texas",
	}
	saved, err := svc.SaveAddress(context.Background(), address)

	require.NoError(t, err)
	assert.True(t, saved.IsDefault)
	assert.NotEmpty(t, saved.ID)
}

func TestSaveAddress_SecondAddressNotDefault(t *testing.T) {
	svc, addresses, _ := newAddressServiceFixture(t)

	addresses.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	addresses.On("ListByCustomerID", mock.Anything, "c-1").
		Return([]domain.Address{{ID: "a-1", IsDefault: true}}, nil)
	addresses.On("Create", mock.Anything, mock.Anything).Return(nil)

	address := &domain.Address{CustomerID: "c-1", AddressLine1: "2 Side St"}
	saved, err := svc.SaveAddress(context.Background(), address)

	require.NoError(t, err)
	assert.False(t, saved.IsDefault)
}

func TestSaveAddress_UpdatesExisting(t *testing.T) {
	svc, addresses, _ := newAddressServiceFixture(t)

	existing := &domain.Address{ID: "a-1", CustomerID: "c-1", AddressLine1: "1 Main St"}
	addresses.On("GetByID", mock.Anything, "a-1").Return(existing, nil)
	addresses.On("Update", mock.Anything, mock.Anything).Return(nil)

	address := &domain.Address{ID: "a-1", CustomerID: "c-1", AddressLine1: "1 Main St, Apt 2"}
	_, err := svc.SaveAddress(context.Background(), address)

	require.NoError(t, err)
	addresses.AssertCalled(t, "Update", mock.Anything, address)
	addresses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
