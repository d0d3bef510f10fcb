package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/utafrali/ProfileGo/internal/domain"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// RoleRepository implements repository.RoleRepository using PostgreSQL.
type RoleRepository struct {
	db DB
}

// NewRoleRepository creates a new PostgreSQL-backed role repository.
func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindRoleByName retrieves a role by its name.
func (r *RoleRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).
		Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find role by name: %w", err)
	}
	return &role, nil
}

// AddRoleToCustomer grants the role to the customer. Granting an already-held
// role is a no-op.
func (r *RoleRepository) AddRoleToCustomer(ctx context.Context, customerID, roleID string) error {
	query := `
		INSERT INTO customer_roles (id, customer_id, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, role_id) DO NOTHING`

	_, err := r.db.Exec(ctx, query, uuid.New().String(), customerID, roleID)
	if err != nil {
		return fmt.Errorf("add role to customer: %w", err)
	}
	return nil
}

// FindCustomerRolesByCustomerID returns all roles granted to the customer.
func (r *RoleRepository) FindCustomerRolesByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerRole, error) {
	query := `
		SELECT cr.id, cr.customer_id, cr.role_id, r.name
		FROM customer_roles cr
		JOIN roles r ON r.id = cr.role_id
		WHERE cr.customer_id = $1
		ORDER BY r.name`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("read customer roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.CustomerRole
	for rows.Next() {
		var cr domain.CustomerRole
		if err := rows.Scan(&cr.ID, &cr.CustomerID, &cr.RoleID, &cr.RoleName); err != nil {
			return nil, fmt.Errorf("scan customer role: %w", err)
		}
		roles = append(roles, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer roles: %w", err)
	}

	return roles, nil
}

// RemoveCustomerRolesByCustomerID revokes all roles from the customer.
func (r *RoleRepository) RemoveCustomerRolesByCustomerID(ctx context.Context, customerID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customer_roles WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("remove customer roles: %w", err)
	}
	return nil
}
