package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// --- Mock Phone Repository ---

type mockPhoneRepository struct {
	mock.Mock
}

func (m *mockPhoneRepository) Create(ctx context.Context, phone *domain.CustomerPhone) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *mockPhoneRepository) GetByID(ctx context.Context, id string) (*domain.CustomerPhone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPhone), args.Error(1)
}

func (m *mockPhoneRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPhone, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.CustomerPhone), args.Error(1)
}

func (m *mockPhoneRepository) Update(ctx context.Context, phone *domain.CustomerPhone) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *mockPhoneRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPhoneRepository) SetDefault(ctx context.Context, customerID, phoneID string) error {
	args := m.Called(ctx, customerID, phoneID)
	return args.Error(0)
}

func newPhoneServiceFixture(t *testing.T) (*CustomerPhoneService, *mockPhoneRepository) {
	t.Helper()
	phones := new(mockPhoneRepository)
	return NewCustomerPhoneService(phones), phones
}

func TestSavePhone_FirstPhoneBecomesDefault(t *testing.T) {
	svc, phones := newPhoneServiceFixture(t)

	phones.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	phones.On("ListByCustomerID", mock.Anything, "c-1").Return([]domain.CustomerPhone{}, nil)
	phones.On("Create", mock.Anything, mock.Anything).Return(nil)

	saved, err := svc.SavePhone(context.Background(), &domain.CustomerPhone{
		CustomerID:  "c-1",
		PhoneNumber: "555-0100",
	})

	require.NoError(t, err)
	assert.True(t, saved.IsDefault)
	assert.NotEmpty(t, saved.ID)
}

func TestSavePhone_SecondPhoneNotDefault(t *testing.T) {
	svc, phones := newPhoneServiceFixture(t)

	phones.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound)
	phones.On("ListByCustomerID", mock.Anything, "c-1").
		Return([]domain.CustomerPhone{{ID: "p-1", IsDefault: true}}, nil)
	phones.On("Create", mock.Anything, mock.Anything).Return(nil)

	saved, err := svc.SavePhone(context.Background(), &domain.CustomerPhone{
		CustomerID:  "c-1",
		PhoneNumber: "555-0101",
	})

	require.NoError(t, err)
	assert.False(t, saved.IsDefault)
}

func TestSavePhone_UpdatesExisting(t *testing.T) {
	svc, phones := newPhoneServiceFixture(t)

	existing := &domain.CustomerPhone{ID: "p-1", CustomerID: "c-1", PhoneNumber: "555-0100"}
	phones.On("GetByID", mock.Anything, "p-1").Return(existing, nil)
	phones.On("Update", mock.Anything, mock.Anything).Return(nil)

	updated := &domain.CustomerPhone{ID: "p-1", CustomerID: "c-1", PhoneNumber: "555-0199"}
	_, err := svc.SavePhone(context.Background(), updated)

	require.NoError(t, err)
	phones.AssertCalled(t, "Update", mock.Anything, updated)
	phones.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCopyPhone_DetachesCopy(t *testing.T) {
	svc, _ := newPhoneServiceFixture(t)

	original := &domain.CustomerPhone{
		ID:          "p-1",
		CustomerID:  "c-1",
		PhoneNumber: "555-0100",
		IsDefault:   true,
	}
	dup := svc.CopyPhone(original)

	require.NotNil(t, dup)
	assert.NotEqual(t, original.ID, dup.ID)
	assert.Equal(t, original.PhoneNumber, dup.PhoneNumber)
	assert.False(t, dup.IsDefault)
	assert.Nil(t, svc.CopyPhone(nil))
}
