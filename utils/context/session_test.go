package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/models"
)

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, ok := GetUserFromContext(ctx)
	assert.False(t, ok)

	_, ok = GetUserFromContext(WithUser(ctx, nil))
	assert.False(t, ok)

	user := &models.User{Email: "ana@amit.edu", Role: enums.RoleStudent}
	got, ok := GetUserFromContext(WithUser(ctx, user))
	assert.True(t, ok)
	assert.Same(t, user, got)
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(context.Background(), "req-1")))
}
