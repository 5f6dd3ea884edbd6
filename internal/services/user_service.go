package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ppsociety/membership-backend/internal/apperrors"
	"github.com/ppsociety/membership-backend/internal/models"
	"github.com/ppsociety/membership-backend/internal/repositories"
)

// UserService handles member profile business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// List retrieves users with pagination.
func (s *UserService) List(ctx context.Context, page, limit int) ([]*models.User, models.Pagination, error) {
	users, total, err := s.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, apperrors.Internal(err)
	}
	return users, models.NewPagination(page, limit, total), nil
}

// GetProfile retrieves the caller's own account.
func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own account.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}

	if req.FirstName != nil {
		if *req.FirstName == "" {
			return nil, apperrors.Validation("Validation failed", "First name cannot be empty")
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if *req.LastName == "" {
			return nil, apperrors.Validation("Validation failed", "Last name cannot be empty")
		}
		user.LastName = *req.LastName
	}
	if req.Organization != nil {
		user.Organization = *req.Organization
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, s.translate(err)
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return s.translate(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperrors.Validation("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return s.translate(err)
	}
	return nil
}

// DeleteAccount deletes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *UserService) translate(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound("User not found")
	}
	return apperrors.Internal(err)
}
