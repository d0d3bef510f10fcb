package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// CountryRepository implements repository.CountryRepository using PostgreSQL.
type CountryRepository struct {
	db DB
}

// NewCountryRepository creates a new PostgreSQL-backed country repository.
func NewCountryRepository(db DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// FindByAbbreviation retrieves a country by its ISO abbreviation.
func (r *CountryRepository) FindByAbbreviation(ctx context.Context, abbreviation string) (*domain.Country, error) {
	var c domain.Country
	err := r.db.QueryRow(ctx,
		`SELECT abbreviation, name FROM countries WHERE abbreviation = $1`, abbreviation).
		Scan(&c.Abbreviation, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return &c, nil
}

// List returns all countries ordered by name.
func (r *CountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT abbreviation, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Abbreviation, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}

	return countries, nil
}

// SubdivisionRepository implements repository.SubdivisionRepository using PostgreSQL.
type SubdivisionRepository struct {
	db DB
}

// NewSubdivisionRepository creates a new PostgreSQL-backed subdivision repository.
func NewSubdivisionRepository(db DB) *SubdivisionRepository {
	return &SubdivisionRepository{db: db}
}

const subdivisionColumns = `abbreviation, country_abbreviation, alternate_abbreviation, name, category`

// FindByAbbreviation retrieves a subdivision by its ISO 3166-2 abbreviation.
func (r *SubdivisionRepository) FindByAbbreviation(ctx context.Context, abbreviation string) (*domain.CountrySubdivision, error) {
	query := `SELECT ` + subdivisionColumns + ` FROM country_subdivisions WHERE abbreviation = $1`

	s, err := scanSubdivisionRow(r.db.QueryRow(ctx, query, abbreviation))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find subdivision: %w", err)
	}
	return s, nil
}

// ListByCountry returns all subdivisions of the given country.
func (r *SubdivisionRepository) ListByCountry(ctx context.Context, countryAbbreviation string) ([]domain.CountrySubdivision, error) {
	query := `SELECT ` + subdivisionColumns + `
		FROM country_subdivisions
		WHERE country_abbreviation = $1
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, countryAbbreviation)
	if err != nil {
		return nil, fmt.Errorf("list subdivisions: %w", err)
	}
	defer rows.Close()

	var subdivisions []domain.CountrySubdivision
	for rows.Next() {
		s, err := scanSubdivisionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subdivision: %w", err)
		}
		subdivisions = append(subdivisions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subdivisions: %w", err)
	}

	return subdivisions, nil
}

// FindByCountryAndRegion retrieves the subdivision of the country whose
// alternate abbreviation, abbreviation, or name matches the region value,
// preferring them in that order. Matching is case-insensitive.
func (r *SubdivisionRepository) FindByCountryAndRegion(ctx context.Context, countryAbbreviation, region string) (*domain.CountrySubdivision, error) {
	query := `SELECT ` + subdivisionColumns + `
		FROM country_subdivisions
		WHERE country_abbreviation = $1
		  AND (UPPER(alternate_abbreviation) = UPPER($2)
		       OR UPPER(abbreviation) = UPPER($2)
		       OR UPPER(name) = UPPER($2))
		ORDER BY (UPPER(alternate_abbreviation) = UPPER($2)) DESC,
		         (UPPER(abbreviation) = UPPER($2)) DESC
		LIMIT 1`

	s, err := scanSubdivisionRow(r.db.QueryRow(ctx, query, countryAbbreviation, region))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find subdivision by region: %w", err)
	}
	return s, nil
}

func scanSubdivisionRow(row pgx.Row) (*domain.CountrySubdivision, error) {
	var (
		s                  domain.CountrySubdivision
		altAbbr, name, cat *string
	)

	err := row.Scan(&s.Abbreviation, &s.CountryAbbreviation, &altAbbr, &name, &cat)
	if err != nil {
		return nil, err
	}

	s.AlternateAbbreviation = deref(altAbbr)
	s.Name = deref(name)
	s.Category = deref(cat)
	return &s, nil
}
