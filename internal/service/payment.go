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

// CustomerPaymentService manages a customer's saved payment methods.
type CustomerPaymentService struct {
	paymentRepo repository.PaymentRepository
}

// NewCustomerPaymentService creates a new customer payment service.
func NewCustomerPaymentService(paymentRepo repository.PaymentRepository) *CustomerPaymentService {
	return &CustomerPaymentService{paymentRepo: paymentRepo}
}

// CreatePayment returns a new unsaved payment method with a generated ID.
func (s *CustomerPaymentService) CreatePayment() *domain.CustomerPayment {
	return &domain.CustomerPayment{ID: uuid.New().String(), AdditionalFields: map[string]string{}}
}

// SavePayment persists the payment method. Marking one default unsets the
// customer's previous default first.
func (s *CustomerPaymentService) SavePayment(ctx context.Context, payment *domain.CustomerPayment) (*domain.CustomerPayment, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}

	if payment.IsDefault {
		if err := s.paymentRepo.ClearDefault(ctx, payment.CustomerID); err != nil {
			return nil, fmt.Errorf("save payment: %w", err)
		}
	}

	existing, err := s.paymentRepo.GetByID(ctx, payment.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("save payment: %w", err)
	}

	if existing == nil {
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return nil, fmt.Errorf("save payment: %w", err)
		}
	} else {
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return nil, fmt.Errorf("save payment: %w", err)
		}
	}

	return payment, nil
}

// ReadPaymentByID retrieves a payment method, returning nil when absent.
func (s *CustomerPaymentService) ReadPaymentByID(ctx context.Context, id string) (*domain.CustomerPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return payment, nil
}

// ReadPaymentByToken retrieves a payment method by its gateway token,
// returning nil when absent.
func (s *CustomerPaymentService) ReadPaymentByToken(ctx context.Context, token string) (*domain.CustomerPayment, error) {
	payment, err := s.paymentRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return payment, nil
}

// ReadPaymentsByCustomerID returns the customer's payment methods, default
// first.
func (s *CustomerPaymentService) ReadPaymentsByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerPayment, error) {
	return s.paymentRepo.ListByCustomerID(ctx, customerID)
}

// FindDefaultPayment returns the customer's default payment method, or nil
// when none is marked default.
func (s *CustomerPaymentService) FindDefaultPayment(ctx context.Context, customerID string) (*domain.CustomerPayment, error) {
	payments, err := s.paymentRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range payments {
		if payments[i].IsDefault {
			return &payments[i], nil
		}
	}
	return nil, nil
}

// SetDefaultPayment marks the payment method as the customer's default.
func (s *CustomerPaymentService) SetDefaultPayment(ctx context.Context, customerID, paymentID string) error {
	payment, err := s.ReadPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment == nil || payment.CustomerID != customerID {
		return apperrors.NotFound("payment", paymentID)
	}

	if err := s.paymentRepo.ClearDefault(ctx, customerID); err != nil {
		return fmt.Errorf("set default payment: %w", err)
	}

	payment.IsDefault = true
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return fmt.Errorf("set default payment: %w", err)
	}

	return nil
}

// ClearDefaultPayment unsets the default flag on all of the customer's
// payment methods.
func (s *CustomerPaymentService) ClearDefaultPayment(ctx context.Context, customerID string) error {
	return s.paymentRepo.ClearDefault(ctx, customerID)
}

// DeletePayment removes a payment method.
func (s *CustomerPaymentService) DeletePayment(ctx context.Context, id string) error {
	return s.paymentRepo.Delete(ctx, id)
}
