package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mintid/mintid/internal/crypto"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/mock"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/validators"
	"github.com/mintid/mintid/models"
)

func newTestSeedSvc(t *testing.T, ctrl *gomock.Controller) (SeedService, *mock.MockProfileRepository) {
	t.Helper()

	profiles := mock.NewMockProfileRepository(ctrl)
	operators := identity.NewOperators([]identity.Operator{
		{Username: "root", Email: testOperatorEmail},
	})

	return NewSeedService(profiles, operators, crypto.NewPasswordHasher(), validators.NewProfileValidator(), logger.Nop()), profiles
}

func TestSeedService_Seed_CreatesNumberedUsernames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, profiles := newTestSeedSvc(t, ctrl)
	ctx := context.Background()

	var usernames []string
	profiles.EXPECT().
		CreateProfile(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
			usernames = append(usernames, p.Username)
			assert.NotEmpty(t, p.UserID)
			assert.NotEmpty(t, p.PasswordHash)
			assert.NotEqual(t, "hunter2", p.PasswordHash)
			assert.True(t, p.IsActive)
			assert.Equal(t, models.RoleEmployee, p.Role)
			assert.Equal(t, "org1", p.OrganizationID)
			return p, nil
		}).
		Times(3)

	result, err := svc.Seed(ctx, models.SeedPlan{
		Role:           models.RoleEmployee,
		Count:          3,
		OrganizationID: "org1",
		Password:       "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"employee.test", "employee.test2", "employee.test3"}, result.Created)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, result.Created, usernames)
}

func TestSeedService_Seed_SkipsExistingAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, profiles := newTestSeedSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		profiles.EXPECT().
			CreateProfile(ctx, gomock.Any()).
			Return(models.UserProfile{}, store.ErrUsernameAlreadyExists),
		profiles.EXPECT().
			CreateProfile(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
				return p, nil
			}),
	)

	result, err := svc.Seed(ctx, models.SeedPlan{
		Role:     models.RoleManager,
		Count:    2,
		Password: "hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"manager.test2"}, result.Created)
	assert.Equal(t, []string{"manager.test"}, result.Skipped)
}

func TestSeedService_Seed_RejectsBadPlans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestSeedSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.Seed(ctx, models.SeedPlan{Role: "intern", Count: 1, Password: "x"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = svc.Seed(ctx, models.SeedPlan{Role: models.RoleManager, Count: 0, Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Seed(ctx, models.SeedPlan{Role: models.RoleManager, Count: 1})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSeedService_SeedOperator_CreatesSuperAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, profiles := newTestSeedSvc(t, ctrl)
	ctx := context.Background()

	profiles.EXPECT().
		CreateProfile(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
			assert.Equal(t, "root", p.Username)
			assert.Equal(t, models.RoleSuperAdmin, p.Role)
			assert.Empty(t, p.OrganizationID)
			return p, nil
		})

	profile, err := svc.SeedOperator(ctx, "root", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "root", profile.Username)
}

func TestSeedService_SeedOperator_ExistingAccountIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, profiles := newTestSeedSvc(t, ctrl)
	ctx := context.Background()

	existing := models.UserProfile{UserID: "op-1", Username: "root", Role: models.RoleSuperAdmin}

	gomock.InOrder(
		profiles.EXPECT().
			CreateProfile(ctx, gomock.Any()).
			Return(models.UserProfile{}, store.ErrUsernameAlreadyExists),
		profiles.EXPECT().
			FindByUsername(ctx, "root", false).
			Return(existing, nil),
	)

	profile, err := svc.SeedOperator(ctx, "root", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "op-1", profile.UserID)
}

func TestSeedService_SeedOperator_RejectsUnlistedUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestSeedSvc(t, ctrl)

	_, err := svc.SeedOperator(context.Background(), "impostor", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
