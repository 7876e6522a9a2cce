package service

import (
	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/crypto"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/validators"
)

// Services bundles all server-side services behind their interfaces.
type Services struct {
	AuthService
	ProfileService
	SeedService
	AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, operators *identity.Operators, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, log)
	if err != nil {
		return nil, err
	}

	hasher := crypto.NewPasswordHasher()
	validator := validators.NewProfileValidator()

	return &Services{
		AuthService:    NewAuthService(storages.ProfileRepository, cfg, operators, hasher, log),
		ProfileService: NewProfileService(storages.ProfileRepository, validator, log),
		SeedService:    NewSeedService(storages.ProfileRepository, operators, hasher, validator, log),
		AppInfoService: appInfo,
	}, nil
}
