package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mintid/mintid/internal/crypto"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/validators"
	"github.com/mintid/mintid/models"
)

type seedService struct {
	profiles  store.ProfileRepository
	operators *identity.Operators
	hasher    *crypto.PasswordHasher
	validator validators.Validator

	logger *logger.Logger
}

func NewSeedService(profiles store.ProfileRepository, operators *identity.Operators, hasher *crypto.PasswordHasher, validator validators.Validator, logger *logger.Logger) SeedService {
	return &seedService{
		profiles:  profiles,
		operators: operators,
		hasher:    hasher,
		validator: validator,
		logger:    logger,
	}
}

// Seed provisions plan.Count test accounts for plan.Role. Usernames follow the
// "<role>.test", "<role>.test2", ... convention, so re-running the same plan is
// idempotent: accounts that already exist are counted as skipped, not errors.
func (s *seedService) Seed(ctx context.Context, plan models.SeedPlan) (models.SeedResult, error) {
	log := s.logger.GetChildLogger()

	if err := s.validator.Validate(ctx, plan, validators.FieldRole); err != nil {
		return models.SeedResult{}, ErrUnknownRole
	}
	if err := s.validator.Validate(ctx, plan, validators.FieldCount, validators.FieldPassword); err != nil {
		return models.SeedResult{}, ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(plan.Password)
	if err != nil {
		return models.SeedResult{}, err
	}

	var result models.SeedResult
	for i := 1; i <= plan.Count; i++ {
		username := fmt.Sprintf("%s.test", plan.Role)
		if i > 1 {
			username = fmt.Sprintf("%s.test%d", plan.Role, i)
		}

		profile := models.UserProfile{
			UserID:         uuid.NewString(),
			Username:       username,
			DisplayName:    fmt.Sprintf("Test %s %d", plan.Role, i),
			Role:           plan.Role,
			OrganizationID: plan.OrganizationID,
			PasswordHash:   hash,
			IsActive:       true,
		}

		if _, err := s.profiles.CreateProfile(ctx, profile); err != nil {
			if errors.Is(err, store.ErrUsernameAlreadyExists) {
				result.Skipped = append(result.Skipped, username)
				continue
			}
			return result, err
		}

		log.Info().Str("username", username).Str("role", string(plan.Role)).Msg("seeded test account")
		result.Created = append(result.Created, username)
	}

	return result, nil
}

// SeedOperator provisions the platform-operator account. The username must be
// present in the configured operator allow-list. Re-running against an
// existing account returns the stored profile unchanged.
func (s *seedService) SeedOperator(ctx context.Context, username string, password string) (models.UserProfile, error) {
	if password == "" {
		return models.UserProfile{}, ErrInvalidDataProvided
	}
	if _, ok := s.operators.Lookup(username); !ok {
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		UserID:       uuid.NewString(),
		Username:     username,
		DisplayName:  "Platform Operator",
		Role:         models.RoleSuperAdmin,
		PasswordHash: hash,
		IsActive:     true,
	}

	created, err := s.profiles.CreateProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			return s.profiles.FindByUsername(ctx, username, false)
		}
		return models.UserProfile{}, err
	}

	s.logger.Info().Str("username", username).Msg("seeded platform operator")
	return created, nil
}
