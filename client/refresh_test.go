package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/internal/fakeapi"
	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/session"
)

func newRefreshFixture(t *testing.T) (*Client, *fakeapi.Server, *session.MemoryStore) {
	t.Helper()
	api := fakeapi.New(t)
	store := session.NewMemoryStore()
	c, err := New(Config{BaseURL: api.BaseURL(), ServiceName: "campus-portal-test"}, session.NewManager(store))
	require.NoError(t, err)
	return c, api, store
}

func establish(t *testing.T, store *session.MemoryStore) map[string]string {
	t.Helper()
	err := session.NewManager(store).Establish(context.Background(),
		models.Tokens{Access: "A1", Refresh: "R1"},
		&models.User{Email: "ana@amit.edu", Role: enums.RoleStudent})
	require.NoError(t, err)
	return store.Snapshot()
}

func TestRefreshWithoutRefreshTokenMakesNoCall(t *testing.T) {
	c, api, store := newRefreshFixture(t)
	require.NoError(t, store.Set(context.Background(), session.KeyAccessToken, "A1"))

	assert.False(t, c.Refresh(context.Background()))
	assert.Equal(t, 0, api.TotalCalls())
	assert.Equal(t, "A1", store.Snapshot()[session.KeyAccessToken])
}

func TestRefreshSuccessOnlyTouchesAccessToken(t *testing.T) {
	c, api, store := newRefreshFixture(t)
	before := establish(t, store)
	api.Handle("/auth/refresh-token/", fakeapi.Respond(http.StatusOK, map[string]string{"access": "A2", "refresh": "R2"}))

	require.True(t, c.Refresh(context.Background()))

	after := store.Snapshot()
	assert.Equal(t, "A2", after[session.KeyAccessToken])
	assert.Equal(t, before[session.KeyRefreshToken], after[session.KeyRefreshToken])
	assert.Equal(t, before[session.KeyUser], after[session.KeyUser])
}

func TestRefreshFailuresMutateNothing(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad request", fakeapi.Respond(http.StatusBadRequest, map[string]string{"detail": "invalid"})},
		{"unauthorized", fakeapi.Respond(http.StatusUnauthorized, map[string]string{"detail": "blacklisted"})},
		{"server error", fakeapi.Respond(http.StatusInternalServerError, map[string]string{})},
		{"missing access", fakeapi.Respond(http.StatusOK, map[string]string{"refresh": "R2"})},
		{"not json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) }},
		{"connection dropped", fakeapi.Hang()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, api, store := newRefreshFixture(t)
			before := establish(t, store)
			api.Handle("/auth/refresh-token/", tt.handler)

			assert.False(t, c.Refresh(context.Background()))
			assert.Equal(t, before, store.Snapshot())
		})
	}
}
