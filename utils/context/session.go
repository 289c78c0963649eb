package context

import (
	"context"

	"github.com/octabyte/campus-portal/models"
)

type key string

const (
	RequestUserKey key = "requestUser"
	RequestIDKey   key = "requestID"
)

// WithUser stores the verified user of the current request.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, RequestUserKey, user)
}

// GetUserFromContext returns the user stored by WithUser, if any.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(RequestUserKey).(*models.User)
	return user, ok && user != nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
