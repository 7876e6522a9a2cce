package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintid/mintid/internal/service"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/models"
)

func authedGet(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer signed")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func sessionAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return stubToken("signed", "user-1", time.Now().Add(time.Hour)), nil
		},
	}
}

func TestLookupProfile_ActiveOnlyByDefault(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUsernameFn: func(_ context.Context, username string, activeOnly bool) (models.UserProfile, error) {
			assert.Equal(t, "manager.test", username)
			assert.True(t, activeOnly)
			return managerProfile, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/lookup?username=manager.test")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "manager.test", resp.Username)
}

func TestLookupProfile_IncludeInactive(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUsernameFn: func(_ context.Context, _ string, activeOnly bool) (models.UserProfile, error) {
			assert.False(t, activeOnly)
			inactive := managerProfile
			inactive.IsActive = false
			return inactive, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/lookup?username=manager.test&include_inactive=true")

	require.Equal(t, http.StatusOK, rec.Code)
}

// A deactivated profile answers 403, not 404, so callers can distinguish
// "blocked" from "does not exist".
func TestLookupProfile_InactiveIsForbidden(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUsernameFn: func(_ context.Context, _ string, _ bool) (models.UserProfile, error) {
			return models.UserProfile{}, store.ErrProfileInactive
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/lookup?username=manager.test")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLookupProfile_NotFound(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUsernameFn: func(_ context.Context, _ string, _ bool) (models.UserProfile, error) {
			return models.UserProfile{}, store.ErrProfileNotFound
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/lookup?username=ghost")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Store failures answer with the bare status text. Wrapped driver error
// detail stays in the logs, never in the response body.
func TestLookupProfile_StoreFailureHidesDetail(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUsernameFn: func(_ context.Context, _ string, _ bool) (models.UserProfile, error) {
			return models.UserProfile{}, fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", store.ErrExecutingQuery)
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/lookup?username=manager.test")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError)+"\n", rec.Body.String())
}

func TestCurrentProfile_ReturnsOwnProfile(t *testing.T) {
	profiles := &mockProfileService{
		lookupByUserIDFn: func(_ context.Context, userID string) (models.UserProfile, error) {
			assert.Equal(t, "user-1", userID)
			return managerProfile, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: sessionAuth(), ProfileService: profiles})

	rec := authedGet(t, h, "/api/profiles/me")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, models.RoleManager, resp.Role)
}

func TestGetServerVersion(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AppInfoService: &mockAppInfoService{version: "1.2.3"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
}
