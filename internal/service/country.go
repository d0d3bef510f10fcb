package service

import (
	"context"
	"errors"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// CountryService exposes country reference data.
type CountryService struct {
	countryRepo repository.CountryRepository
}

// NewCountryService creates a new country service.
func NewCountryService(countryRepo repository.CountryRepository) *CountryService {
	return &CountryService{countryRepo: countryRepo}
}

// FindCountryByAbbreviation retrieves a country, returning nil when absent.
func (s *CountryService) FindCountryByAbbreviation(ctx context.Context, abbreviation string) (*domain.Country, error) {
	country, err := s.countryRepo.FindByAbbreviation(ctx, abbreviation)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return country, nil
}

// FindCountries returns all countries.
func (s *CountryService) FindCountries(ctx context.Context) ([]domain.Country, error) {
	return s.countryRepo.List(ctx)
}

// CountrySubdivisionService exposes country subdivision reference data.
type CountrySubdivisionService struct {
	subdivisionRepo repository.SubdivisionRepository
}

// NewCountrySubdivisionService creates a new subdivision service.
func NewCountrySubdivisionService(subdivisionRepo repository.SubdivisionRepository) *CountrySubdivisionService {
	return &CountrySubdivisionService{subdivisionRepo: subdivisionRepo}
}

// FindSubdivisionByAbbreviation retrieves a subdivision, returning nil when
// absent.
func (s *CountrySubdivisionService) FindSubdivisionByAbbreviation(ctx context.Context, abbreviation string) (*domain.CountrySubdivision, error) {
	subdivision, err := s.subdivisionRepo.FindByAbbreviation(ctx, abbreviation)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return subdivision, nil
}

// FindSubdivisions returns all subdivisions of a country.
func (s *CountrySubdivisionService) FindSubdivisions(ctx context.Context, countryAbbreviation string) ([]domain.CountrySubdivision, error) {
	return s.subdivisionRepo.ListByCountry(ctx, countryAbbreviation)
}

// FindSubdivisionByCountryAndRegion retrieves the subdivision matching the
// free-text region for a country, returning nil when nothing matches.
func (s *CountrySubdivisionService) FindSubdivisionByCountryAndRegion(ctx context.Context, countryAbbreviation, region string) (*domain.CountrySubdivision, error) {
	subdivision, err := s.subdivisionRepo.FindByCountryAndRegion(ctx, countryAbbreviation, region)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return subdivision, nil
}
