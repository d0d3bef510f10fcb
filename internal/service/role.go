package service

import (
	"context"

	"github.com/utafrali/ProfileGo/internal/domain"
	"github.com/utafrali/ProfileGo/internal/repository"
)

// RoleService exposes a customer's granted roles.
type RoleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new role service.
func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// FindCustomerRolesByCustomerID returns all roles granted to the customer.
func (s *RoleService) FindCustomerRolesByCustomerID(ctx context.Context, customerID string) ([]domain.CustomerRole, error) {
	return s.roleRepo.FindCustomerRolesByCustomerID(ctx, customerID)
}

// RemoveCustomerRolesByCustomerID revokes all roles from the customer.
func (s *RoleService) RemoveCustomerRolesByCustomerID(ctx context.Context, customerID string) error {
	return s.roleRepo.RemoveCustomerRolesByCustomerID(ctx, customerID)
}
