package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// CustomerPhoneService manages a customer's saved phone numbers.
type CustomerPhoneService struct {
	phoneRepo repository.PhoneRepository
}

// NewCustomerPhoneService creates a new customer phone service.
func NewCustomerPhoneService(phoneRepo repository.PhoneRepository) *CustomerPhoneService {
	return &CustomerPhoneService{phoneRepo: phoneRepo}
}

// CreatePhone returns a new unsaved phone with a generated ID.
func (s *CustomerPhoneService) CreatePhone() *domain.CustomerPhone {
	return &domain.CustomerPhone{ID: uuid.New().String(), IsActive: true}
}

// SavePhone persists the phone. The customer's first phone becomes the
// default.
func (s *CustomerPhoneService) SavePhone(ctx context.Context, phone *domain.CustomerPhone) (*domain.CustomerPhone, error) {
	if phone.ID == "" {
		phone.ID = uuid.New().String()
	}

	existing, err := s.phoneRepo.GetByID(ctx, phone.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("save phone: %w", err)
	}

	if existing == nil {
		others, err := s.phoneRepo.ListByCustomerID(ctx, phone.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("save phone: %w", err)
		}
		if len(others) == 0 {
			phone.IsDefault = true
		}
		if err := s.phoneRepo.Create(ctx, phone); err != nil {
			return nil, fmt.Errorf("save phone: %w", err)
		}
	} else {
		if err := s.phoneRepo.Update(ctx, phone); err != nil {
			return nil, fmt.Errorf("save phone: %w", err)
		}
	}

	return phone, nil
}

// ReadPhoneByID retrieves a phone, returning nil when absent.
func (s *CustomerPhoneService) ReadPhoneByID(ctx context.Context, id string) (*domain.CustomerPhone, error) {
	phone, err := s.phoneRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return phone, nil
}

// ReadPhonesByCustomerID returns the customer's active phones, default first.
func (s *CustomerPhoneService) ReadPhonesByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPhone, error) {
	return s.phoneRepo.ListByCustomerID(ctx, customerID)
}

// MakePhoneDefault marks the phone as the customer's default.
func (s *CustomerPhoneService) MakePhoneDefault(ctx context.Context, customerID, phoneID string) error {
	return s.phoneRepo.SetDefault(ctx, customerID, phoneID)
}

// DeletePhone removes a phone.
func (s *CustomerPhoneService) DeletePhone(ctx context.Context, id string) error {
	return s.phoneRepo.Delete(ctx, id)
}

// CopyPhone returns a detached copy of the phone with a fresh ID, used when
// an order needs its own snapshot of a customer phone.
func (s *CustomerPhoneService) CopyPhone(phone *domain.CustomerPhone) *domain.CustomerPhone {
	if phone == nil {
		return nil
	}
	dup := *phone
	dup.ID = uuid.New().String()
	dup.IsDefault = false
	return &dup
}
