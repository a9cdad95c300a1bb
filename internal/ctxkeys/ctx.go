package ctxkeys

import (
	"context"

	"github.com/objectifs/objectifs/internal/model"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// User returns the authenticated user, or nil on public routes.
func User(ctx context.Context) *model.User {
	user, _ := ctx.Value(UserKey).(*model.User)
	return user
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
