package validators

import (
	"context"
	"fmt"

	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/models"
)

const (
	FieldUsername    = "username"
	FieldDisplayName = "display_name"
	FieldRole        = "role"
	FieldPassword    = "password"
	FieldCount       = "count"
)

// ProfileValidator validates profile records and seed plans before they
// reach the store. Organization membership is deliberately not required:
// platform-level accounts carry no organization.
type ProfileValidator struct {
}

func NewProfileValidator() Validator {
	return &ProfileValidator{}
}

func (v *ProfileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserProfile:
		return v.validateProfile(ctx, value, fields...)
	case *models.UserProfile:
		return v.validateProfile(ctx, *value, fields...)

	case models.SeedPlan:
		return v.validateSeedPlan(ctx, value, fields...)
	case *models.SeedPlan:
		return v.validateSeedPlan(ctx, *value, fields...)

	case models.Role:
		if !value.Known() {
			return fmt.Errorf("%w: %q", ErrUnknownRole, value)
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *ProfileValidator) validateProfile(_ context.Context, profile models.UserProfile, fields ...string) error {
	if shouldValidate(FieldUsername, fields) {
		if profile.Username == "" {
			return ErrEmptyUsername
		}
		if err := identity.ValidateUsername(profile.Username); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidUsername, err)
		}
	}

	if shouldValidate(FieldDisplayName, fields) && profile.DisplayName == "" {
		return ErrEmptyDisplayName
	}

	if shouldValidate(FieldRole, fields) && !profile.Role.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, profile.Role)
	}

	return nil
}

func (v *ProfileValidator) validateSeedPlan(_ context.Context, plan models.SeedPlan, fields ...string) error {
	if shouldValidate(FieldRole, fields) && !plan.Role.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, plan.Role)
	}

	if shouldValidate(FieldCount, fields) && plan.Count <= 0 {
		return ErrNonPositiveCount
	}

	if shouldValidate(FieldPassword, fields) && plan.Password == "" {
		return ErrEmptyPassword
	}

	return nil
}

// shouldValidate reports whether field is in scope: an empty requested set
// means every field is.
func shouldValidate(field string, requested []string) bool {
	if len(requested) == 0 {
		return true
	}
	for _, f := range requested {
		if f == field {
			return true
		}
	}
	return false
}
