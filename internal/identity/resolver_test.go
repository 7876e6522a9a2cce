package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{name: "plain username", username: "manager.test", wantErr: nil},
		{name: "empty", username: "", wantErr: ErrEmptyUsername},
		{name: "whitespace only", username: "   ", wantErr: ErrEmptyUsername},
		{name: "contains at sign", username: "user@host", wantErr: ErrInvalidUsername},
		{name: "inner space", username: "two words", wantErr: ErrInvalidUsername},
		{name: "surrounding spaces are trimmed", username: "  alice  ", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestResolveEmail_WithOrganization(t *testing.T) {
	got := ResolveEmail("manager.test", "ORG1")
	assert.Equal(t, "manager.test@org1.mintid.local", got)
}

func TestResolveEmail_WithoutOrganization(t *testing.T) {
	got := ResolveEmail("alice", "")
	assert.Equal(t, "alice@accounts.mintid.local", got)
}

// Resolution must be deterministic and case-normalised: the same logical
// input always yields the same address.
func TestResolveEmail_Deterministic(t *testing.T) {
	first := ResolveEmail("Manager.Test", "Org1")
	second := ResolveEmail("manager.test  ", "  ORG1")
	assert.Equal(t, first, second)
}

// Distinct usernames must never collide on the same synthesized address.
func TestResolveEmail_NoCollisions(t *testing.T) {
	usernames := []string{"a", "b", "a.b", "ab", "b.a", "employee.test1", "employee.test2"}
	seen := make(map[string]string, len(usernames))

	for _, u := range usernames {
		email := ResolveEmail(u, "org1")
		prev, clash := seen[email]
		require.Falsef(t, clash, "usernames %q and %q collide on %q", prev, u, email)
		seen[email] = u
	}
}

// Two casings of one username are the same account: they normalize to the
// same storage key and resolve to the same address.
func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "alice", NormalizeUsername("  Alice "))
	assert.Equal(t, "shift.lead", NormalizeUsername("Shift.Lead"))
	assert.Equal(t, NormalizeUsername("Alice"), NormalizeUsername("alice"))
	assert.Equal(t, ResolveEmail("Alice", "org-1"), ResolveEmail("alice", "org-1"))
}

func TestOperators_Lookup(t *testing.T) {
	ops := NewOperators([]Operator{
		{Username: "platform.root", Email: "root@mintid.example.com"},
		{Username: "", Email: "ignored@example.com"},
	})

	op, ok := ops.Lookup("Platform.Root")
	require.True(t, ok)
	assert.Equal(t, "root@mintid.example.com", op.Email)

	_, ok = ops.Lookup("manager.test")
	assert.False(t, ok)
}

func TestOperators_ResolveLoginEmail(t *testing.T) {
	ops := NewOperators([]Operator{{Username: "platform.root", Email: "root@mintid.example.com"}})

	email, isOperator := ops.ResolveLoginEmail("platform.root", "org1")
	assert.True(t, isOperator)
	assert.Equal(t, "root@mintid.example.com", email)

	email, isOperator = ops.ResolveLoginEmail("manager.test", "ORG1")
	assert.False(t, isOperator)
	assert.Equal(t, "manager.test@org1.mintid.local", email)
}
