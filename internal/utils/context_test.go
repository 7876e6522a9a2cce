package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "user-1")

	userID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, 42)

	_, ok := GetUserIDFromContext(ctx)
	assert.False(t, ok)
}

func TestIsOperatorFromContext(t *testing.T) {
	assert.False(t, IsOperatorFromContext(context.Background()))

	ctx := context.WithValue(context.Background(), OperatorCtxKey, true)
	assert.True(t, IsOperatorFromContext(ctx))

	ctx = context.WithValue(context.Background(), OperatorCtxKey, false)
	assert.False(t, IsOperatorFromContext(ctx))
}
