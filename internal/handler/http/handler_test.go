package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/metrics"
	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/models"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	loginFn       func(ctx context.Context, email, password string) (models.UserProfile, error)
	createTokenFn func(ctx context.Context, userID string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.UserProfile, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, userID string) (models.Token, error) {
	return m.createTokenFn(ctx, userID)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockProfileService implements service.ProfileService for unit tests.
type mockProfileService struct {
	lookupByUsernameFn func(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error)
	lookupByUserIDFn   func(ctx context.Context, userID string) (models.UserProfile, error)
	changeRoleFn       func(ctx context.Context, username string, role models.Role) (models.UserProfile, error)
	setActiveFn        func(ctx context.Context, username string, active bool) (models.UserProfile, error)
}

func (m *mockProfileService) LookupByUsername(ctx context.Context, username string, activeOnly bool) (models.UserProfile, error) {
	return m.lookupByUsernameFn(ctx, username, activeOnly)
}

func (m *mockProfileService) LookupByUserID(ctx context.Context, userID string) (models.UserProfile, error) {
	return m.lookupByUserIDFn(ctx, userID)
}

func (m *mockProfileService) ChangeRole(ctx context.Context, username string, role models.Role) (models.UserProfile, error) {
	return m.changeRoleFn(ctx, username, role)
}

func (m *mockProfileService) SetActive(ctx context.Context, username string, active bool) (models.UserProfile, error) {
	return m.setActiveFn(ctx, username, active)
}

// mockSeedService implements service.SeedService for unit tests.
type mockSeedService struct {
	seedFn         func(ctx context.Context, plan models.SeedPlan) (models.SeedResult, error)
	seedOperatorFn func(ctx context.Context, username, password string) (models.UserProfile, error)
}

func (m *mockSeedService) Seed(ctx context.Context, plan models.SeedPlan) (models.SeedResult, error) {
	return m.seedFn(ctx, plan)
}

func (m *mockSeedService) SeedOperator(ctx context.Context, username, password string) (models.UserProfile, error) {
	return m.seedOperatorFn(ctx, username, password)
}

// mockAppInfoService returns a fixed version string.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(ctx context.Context) string {
	return m.version
}

// newTestHandler builds a Handler with the given service mocks. Nil mocks are
// replaced by implementations that fail the test when called.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}

	operators := identity.NewOperators([]identity.Operator{
		{Username: "root", Email: "root@mintid.example.com"},
	})

	return NewHandler(svcs, operators, metrics.NewMetrics(), config.App{}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// stubToken returns a models.Token carrying an expiration claim, the way
// utils.GenerateJWTToken produces them.
func stubToken(signed, userID string, expiresAt time.Time) models.Token {
	return models.Token{
		Token: &jwt.Token{
			Claims: jwt.RegisteredClaims{
				Subject:   userID,
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
		},
		SignedString: signed,
		UserID:       userID,
	}
}

// managerProfile is a convenience fixture used across multiple tests.
var managerProfile = models.UserProfile{
	UserID:         "user-1",
	Username:       "manager.test",
	DisplayName:    "Test manager 1",
	Role:           models.RoleManager,
	OrganizationID: "org1",
	IsActive:       true,
}
