package service

import (
	"context"

	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/validators"
	"github.com/mintid/mintid/models"
)

type profileService struct {
	profiles  store.ProfileRepository
	validator validators.Validator

	logger *logger.Logger
}

func NewProfileService(profiles store.ProfileRepository, validator validators.Validator, logger *logger.Logger) ProfileService {
	return &profileService{
		profiles:  profiles,
		validator: validator,
		logger:    logger,
	}
}

// LookupByUsername fetches the profile registered under username. With
// activeOnly set, a deactivated profile surfaces as store.ErrProfileInactive
// rather than being silently hidden.
func (s *profileService) LookupByUsername(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error) {
	if err := s.validator.Validate(ctx, models.UserProfile{Username: username}, validators.FieldUsername); err != nil {
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	return s.profiles.FindByUsername(ctx, username, activeOnly)
}

func (s *profileService) LookupByUserID(ctx context.Context, userID string) (models.UserProfile, error) {
	if userID == "" {
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	return s.profiles.FindByUserID(ctx, userID)
}

func (s *profileService) ChangeRole(ctx context.Context, username string, role models.Role) (models.UserProfile, error) {
	if err := s.validator.Validate(ctx, models.UserProfile{Username: username}, validators.FieldUsername); err != nil {
		return models.UserProfile{}, ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, role); err != nil {
		return models.UserProfile{}, ErrUnknownRole
	}

	profile, err := s.profiles.UpdateRole(ctx, username, role)
	if err != nil {
		return models.UserProfile{}, err
	}

	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("profile role changed")
	return profile, nil
}

func (s *profileService) SetActive(ctx context.Context, username string, active bool) (models.UserProfile, error) {
	if err := s.validator.Validate(ctx, models.UserProfile{Username: username}, validators.FieldUsername); err != nil {
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	profile, err := s.profiles.SetActive(ctx, username, active)
	if err != nil {
		return models.UserProfile{}, err
	}

	s.logger.Info().Str("username", username).Bool("active", active).Msg("profile activation changed")
	return profile, nil
}
