package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/crypto"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

type authService struct {
	profiles  store.ProfileRepository
	operators *identity.Operators
	hasher    *crypto.PasswordHasher

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(profiles store.ProfileRepository, cfg config.App, operators *identity.Operators, hasher *crypto.PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		profiles:      profiles,
		operators:     operators,
		hasher:        hasher,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Login verifies the canonical email and password pair and returns the matching
// profile. The account's username is the local part of the email; the full
// address is re-derived from the stored profile and compared, so an address
// with the right local part but the wrong organization domain never matches.
func (s *authService) Login(ctx context.Context, email string, password string) (models.UserProfile, error) {
	log := s.logger.GetChildLogger()

	if email == "" || password == "" {
		return models.UserProfile{}, ErrInvalidDataProvided
	}

	email = strings.ToLower(strings.TrimSpace(email))
	username, _, found := strings.Cut(email, "@")
	if !found || username == "" {
		return models.UserProfile{}, ErrInvalidDataProvided
	}
	if op, ok := s.operators.LookupByEmail(email); ok {
		username = strings.ToLower(op.Username)
	}

	// Inactive profiles must be rejected whether or not the password is
	// correct, so the lookup is unfiltered and the active check comes first.
	profile, err := s.profiles.FindByUsername(ctx, username, false)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) || errors.Is(err, store.ErrAmbiguousProfile) {
			return models.UserProfile{}, ErrWrongCredentials
		}
		log.Error().Err(err).Msg("profile lookup failed during login")
		return models.UserProfile{}, err
	}

	if !s.emailMatches(profile, email) {
		return models.UserProfile{}, ErrWrongCredentials
	}

	if !profile.IsActive {
		return models.UserProfile{}, ErrProfileInactive
	}

	if !s.hasher.Verify(profile.PasswordHash, password) {
		return models.UserProfile{}, ErrWrongCredentials
	}

	if err := s.profiles.TouchLastLogin(ctx, profile.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", profile.UserID).Msg("could not record last login")
	}

	return profile, nil
}

func (s *authService) emailMatches(profile models.UserProfile, email string) bool {
	if identity.ResolveEmail(profile.Username, profile.OrganizationID) == email {
		return true
	}
	op, ok := s.operators.Lookup(profile.Username)
	return ok && strings.EqualFold(op.Email, email)
}

func (s *authService) CreateToken(ctx context.Context, userID string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, userID, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("token creation failed")
		return models.Token{}, ErrTokenCreation
	}
	return token, nil
}

func (s *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsInvalid
	}
	return token, nil
}
