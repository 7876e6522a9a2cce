package service

import (
	"context"

	"github.com/mintid/mintid/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService authenticates accounts by canonical email and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, email string, password string) (models.UserProfile, error)
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProfileService exposes profile lookup and administration.
type ProfileService interface {
	LookupByUsername(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error)
	LookupByUserID(ctx context.Context, userID string) (models.UserProfile, error)
	ChangeRole(ctx context.Context, username string, role models.Role) (models.UserProfile, error)
	SetActive(ctx context.Context, username string, active bool) (models.UserProfile, error)
}

// SeedService provisions batches of test accounts.
type SeedService interface {
	Seed(ctx context.Context, plan models.SeedPlan) (models.SeedResult, error)
	SeedOperator(ctx context.Context, username string, password string) (models.UserProfile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
