package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"dispatch-service/internal/model"
	"dispatch-service/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	log      zerolog.Logger
}

func NewUserService(userRepo *repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, log: log}
}

func (s *UserService) Profile(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// UpdateProfile changes the editable subset of the account. Username, phone
// and role stay under the auth provider's control.
func (s *UserService) UpdateProfile(ctx context.Context, principal model.Principal, input UpdateProfileInput) (*model.User, error) {
	user, err := s.Profile(ctx, principal)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
