package middleware

import (
	"context"

	"github.com/pitlanehq/garage-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxUserName contextKey = "user_name"
	ctxRoles    contextKey = "actor_roles"
)

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserName).(string); ok {
		return v
	}
	return ""
}

func RolesFromContext(ctx context.Context) []enums.Role {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxRoles).([]enums.Role); ok {
		return v
	}
	return nil
}

// HasRole reports whether the context actor carries the given role.
func HasRole(ctx context.Context, role enums.Role) bool {
	for _, candidate := range RolesFromContext(ctx) {
		if candidate == role {
			return true
		}
	}
	return false
}

// WithActor injects the authenticated actor into the context.
func WithActor(ctx context.Context, userID int64, name string, roles []enums.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUserName, name)
	return context.WithValue(ctx, ctxRoles, roles)
}
