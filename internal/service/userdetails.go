package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
	apperrors "github.com/utafrali/ProfileGo/pkg/errors"
)

// CustomerUserDetails is the authentication principal derived from a stored
// customer. Authorities keep the stored role order, with the user role
// guaranteed present.
type CustomerUserDetails struct {
	CustomerID            string
	Username              string
	Password              string
	Authorities           []string
	Enabled               bool
	AccountNonExpired     bool
	AccountNonLocked      bool
	CredentialsNonExpired bool
}

// UserDetailsService adapts stored customers into authentication principals.
type UserDetailsService struct {
	customers *CustomerService
	roleRepo  repository.RoleRepository
	logger    *slog.Logger
}

// NewUserDetailsService creates a new authentication detail adapter.
func NewUserDetailsService(customers *CustomerService, roleRepo repository.RoleRepository, logger *slog.Logger) *UserDetailsService {
	return &UserDetailsService{
		customers: customers,
		roleRepo:  roleRepo,
		logger:    logger,
	}
}

// LoadUserByUsername resolves the principal for a username. The lookup goes
// through the customer cache; every account mutation invalidates the cached
// entry, so authentication still sees current state. A missing customer
// yields ErrUserNotFound.
func (s *UserDetailsService) LoadUserByUsername(ctx context.Context, username string) (*CustomerUserDetails, error) {
	customer, err := s.customers.ReadCustomerByUsernameCacheable(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	if customer == nil {
		return nil, apperrors.ErrUserNotFound
	}

	roles, err := s.roleRepo.FindCustomerRolesByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("load user %q roles: %w", username, err)
	}

	authorities := make([]string, 0, len(roles)+1)
	hasUserRole := false
	for _, role := range roles {
		authorities = append(authorities, role.RoleName)
		if role.RoleName == domain.RoleUser {
			hasUserRole = true
		}
	}
	if !hasUserRole {
		authorities = append(authorities, domain.RoleUser)
	}

	return &CustomerUserDetails{
		CustomerID:            customer.ID,
		Username:              customer.Username,
		Password:              customer.Password,
		Authorities:           authorities,
		Enabled:               !customer.Deactivated,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: !customer.PasswordChangeRequired,
	}, nil
}
