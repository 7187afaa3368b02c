package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/srgjo27/vehicle_rental/internal/core/domain"
	"github.com/srgjo27/vehicle_rental/internal/core/ports"
)

type UpdateUserRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
	Address      *string `json:"address"`
}

type UpdateRoleRequest struct {
	Role domain.Role `json:"role" validate:"required"`
}

type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, caller domain.Principal, userID uuid.UUID) (*domain.User, error) {
	if !caller.CanAccess(userID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateUser(ctx context.Context, caller domain.Principal, userID uuid.UUID, req UpdateUserRequest) (*domain.User, error) {
	if !caller.CanAccess(userID) {
		return nil, domain.ErrAccessDenied("Access denied")
	}

	if req.FirstName == nil && req.LastName == nil && req.Email == nil && req.ContactPhone == nil && req.Address == nil {
		return nil, domain.ErrNoOp("No fields to update")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.ContactPhone != nil {
		user.ContactPhone = req.ContactPhone
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateRole(ctx context.Context, userID uuid.UUID, req UpdateRoleRequest) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, domain.ErrValidation("Role must be either user or admin")
	}

	if err := s.users.UpdateRole(ctx, userID, req.Role); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}
