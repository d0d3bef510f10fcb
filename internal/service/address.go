package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// AddressService manages addresses and normalizes their region field against
// the country subdivision reference data.
type AddressService struct {
	addressRepo     repository.AddressRepository
	subdivisionRepo repository.SubdivisionRepository
	logger          *slog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(addressRepo repository.AddressRepository, subdivisionRepo repository.SubdivisionRepository, logger *slog.Logger) *AddressService {
	return &AddressService{
		addressRepo:     addressRepo,
		subdivisionRepo: subdivisionRepo,
		logger:          logger,
	}
}

// PopulateCountrySubdivision fills the address's ISO subdivision code from
// its country and free-text region. It never fails: missing inputs, an
// unknown region, or a lookup error all leave the address untouched.
func (s *AddressService) PopulateCountrySubdivision(ctx context.Context, address *domain.Address) {
	if address == nil || address.CountryAbbreviation == "" || address.StateProvinceRegion == "" {
		return
	}

	subdivision, err := s.subdivisionRepo.FindByCountryAndRegion(ctx, address.CountryAbbreviation, address.StateProvinceRegion)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "subdivision lookup failed",
				slog.String("country", address.CountryAbbreviation),
				slog.String("region", address.StateProvinceRegion),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	address.ISOCountrySubdivision = subdivision.Abbreviation
}

// CreateAddress returns a new unsaved address with a generated ID.
func (s *AddressService) CreateAddress() *domain.Address {
	return &domain.Address{ID: uuid.New().String(), IsActive: true}
}

// SaveAddress normalizes and persists the address. A new address owned by a
// customer with no other addresses becomes the default.
func (s *AddressService) SaveAddress(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	s.PopulateCountrySubdivision(ctx, address)

	if address.ID == "" {
		address.ID = uuid.New().String()
	}

	existing, err := s.addressRepo.GetByID(ctx, address.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("save address: %w", err)
	}

	if existing == nil {
		if address.CustomerID != "" {
			others, err := s.addressRepo.ListByCustomerID(ctx, address.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("save address: %w", err)
			}
			if len(others) == 0 {
				address.IsDefault = true
			}
		}
		if err := s.addressRepo.Create(ctx, address); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
	} else {
		if err := s.addressRepo.Update(ctx, address); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
	}

	return address, nil
}

// ReadAddressByID retrieves an address, returning nil when absent.
func (s *AddressService) ReadAddressByID(ctx context.Context, id string) (*domain.Address, error) {
	address, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return address, nil
}

// ReadAddressesByCustomerID returns the customer's active addresses, default
// first.
func (s *AddressService) ReadAddressesByCustomerID(ctx context.Context, customerID string) ([]domain.Address, error) {
	return s.addressRepo.ListByCustomerID(ctx, customerID)
}

// MakeAddressDefault marks the address as the customer's default.
func (s *AddressService) MakeAddressDefault(ctx context.Context, customerID, addressID string) error {
	return s.addressRepo.SetDefault(ctx, customerID, addressID)
}

// DeleteAddress removes an address.
func (s *AddressService) DeleteAddress(ctx context.Context, id string) error {
	return s.addressRepo.Delete(ctx, id)
}

// CopyAddress returns a detached copy of the address with a fresh ID, used
// when an order needs its own snapshot of a customer address.
func (s *AddressService) CopyAddress(address *domain.Address) *domain.Address {
	if address == nil {
		return nil
	}
	dup := *address
	dup.ID = uuid.New().String()
	dup.IsDefault = false
	return &dup
}
