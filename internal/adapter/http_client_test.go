package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintid/mintid/internal/utils"
	"github.com/mintid/mintid/models"
)

func signedTestToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := utils.GenerateJWTToken("mintid", userID, time.Hour, "test-sign-key")
	require.NoError(t, err)
	return token.SignedString
}

func TestAuthenticate_StoresTokenAndSession(t *testing.T) {
	signed := signedTestToken(t, "user-1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "manager.test@org1.mintid.local", req.Email)
		assert.Equal(t, "secret", req.Password)

		w.Header().Set("Authorization", "Bearer "+signed)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SessionResponse{UserID: "user-1"})
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	session, err := a.Authenticate(context.Background(), "manager.test@org1.mintid.local", "secret")
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, signed, session.Token)
	assert.True(t, session.Established())
	assert.Equal(t, signed, a.Token())
}

func TestAuthenticate_WrongCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid email/password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	_, err := a.Authenticate(context.Background(), "x@org1.mintid.local", "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestAuthenticate_InactiveProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "profile is deactivated", http.StatusForbidden)
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	_, err := a.Authenticate(context.Background(), "x@org1.mintid.local", "secret")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestQueryProfileByUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/profiles/lookup", r.URL.Path)
		assert.Equal(t, "manager.test", r.URL.Query().Get("username"))
		assert.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.UserProfile{
			UserID:   "user-1",
			Username: "manager.test",
			Role:     models.RoleManager,
			IsActive: true,
		})
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})
	a.SetToken("stored-token")

	profile, err := a.QueryProfileByUsername(context.Background(), "manager.test", false)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, profile.Role)
}

func TestQueryProfileByUsername_NotFoundVsInactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("username") {
		case "ghost":
			http.Error(w, "profile not found", http.StatusNotFound)
		default:
			http.Error(w, "profile is deactivated", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	_, err := a.QueryProfileByUsername(context.Background(), "ghost", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = a.QueryProfileByUsername(context.Background(), "blocked", false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestQueryProfileByUsername_IncludeInactiveFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_inactive"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.UserProfile{Username: "manager.test", IsActive: false})
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	profile, err := a.QueryProfileByUsername(context.Background(), "manager.test", true)
	require.NoError(t, err)
	assert.False(t, profile.IsActive)
}

func TestSignOut_ClearsTokenEvenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})
	a.SetToken("stored-token")

	err := a.SignOut(context.Background())
	require.Error(t, err)
	assert.Empty(t, a.Token())
}

func TestRevokeSession_LeavesStoredTokenAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer revoked-token", r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})
	a.SetToken("live-token")

	require.NoError(t, a.RevokeSession(context.Background(), "revoked-token"))
	assert.Equal(t, "live-token", a.Token())
}

func TestRevokeSession_EmptyTokenIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty token")
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	require.NoError(t, a.RevokeSession(context.Background(), ""))
}

func TestCurrentSession_ExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})
	a.SetToken("stale-token")

	_, err := a.CurrentSession(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/version", r.URL.Path)
		w.Write([]byte("1.2.3\n"))
	}))
	defer srv.Close()

	a := NewHTTPBackendAdapter(HTTPClientConfig{BaseURL: srv.URL})

	version, err := a.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}
