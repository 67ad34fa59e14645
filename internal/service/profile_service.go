package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

// ErrUserNotFound indicates the account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ProfileService reads and updates the caller's account profile.
type ProfileService interface {
	Me(ctx context.Context, principal Principal) (dto.UserResponse, error)
	Get(ctx context.Context, principal Principal) (dto.ProfileResponse, error)
	Update(ctx context.Context, principal Principal, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
}

type profileService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewProfileService constructs a ProfileService instance.
func NewProfileService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
		now:       time.Now,
	}
}

func (s *profileService) Me(ctx context.Context, principal Principal) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *profileService) Get(ctx context.Context, principal Principal) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if user.Profile == nil {
		return dto.ProfileResponse{Name: user.Name}, nil
	}

	return dto.NewProfileResponse(user.Name, *user.Profile, s.now()), nil
}

func (s *profileService) Update(ctx context.Context, principal Principal, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	profile := models.UserProfile{
		UserID:         user.ID,
		RegisterNumber: payload.RegisterNumber,
		Gender:         payload.Gender,
		Address:        payload.Address,
		Residence:      payload.Residence,
	}

	if payload.DateOfBirth != nil {
		parsed, err := time.Parse("2006-01-02", *payload.DateOfBirth)
		if err != nil {
			return dto.ProfileResponse{}, err
		}
		dob := datatypes.Date(parsed)
		profile.DateOfBirth = &dob
	}

	user.Name = payload.Name
	if err := s.users.SaveProfile(ctx, &user, &profile); err != nil {
		return dto.ProfileResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("profile updated")

	return dto.NewProfileResponse(user.Name, profile, s.now()), nil
}
