package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nextlevel/storefront/internal/hash"
	"github.com/nextlevel/storefront/internal/logging"
	"github.com/nextlevel/storefront/internal/models"
	"github.com/nextlevel/storefront/internal/repo"
	"github.com/nextlevel/storefront/internal/transport"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req transport.UpdateProfileRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update_profile", "user_id", userID)

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	// A password change needs both the current and the new password.
	if req.NewPassword != nil && req.CurrentPassword != nil {
		if user.PasswordHash == nil {
			return nil, fmt.Errorf("%w: cannot update password, no password set", ErrValidation)
		}
		if !hash.CheckPassword(*user.PasswordHash, *req.CurrentPassword) {
			return nil, fmt.Errorf("%w: current password is incorrect", ErrValidation)
		}
		if len(*req.NewPassword) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
		}
		pwHash, err := hash.HashPassword(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &pwHash
	}

	if req.Email != nil && *req.Email != user.Email {
		if !validEmail(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		taken, err := s.Repo.EmailTaken(ctx, *req.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		user.Email = *req.Email
	}

	if req.Name != nil {
		user.Name = req.Name
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("profile_updated")
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context, skip, take int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, skip, take)
}

// UpdateUserRole refuses to demote the acting admin so an instance can
// never lose its last known admin by accident.
func (s *UserService) UpdateUserRole(ctx context.Context, actorID, targetID, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.update_role", "target_id", targetID)

	if role != models.RoleAdmin && role != models.RoleCustomer {
		return nil, fmt.Errorf("%w: role must be ADMIN or CUSTOMER", ErrValidation)
	}
	if targetID == actorID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot demote yourself from admin", ErrValidation)
	}

	user, err := s.Repo.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}

	user.Role = role
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("role_updated", "role", role)
	return user, nil
}
