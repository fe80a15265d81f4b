package common

import "context"

// ContextKey represents a context key type
type ContextKey string

// Context keys
const (
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyUserRoles ContextKey = "user_roles"
	ContextKeyUserSlot  ContextKey = "user_slot"
)

// WithUserSlot registers a slot that WithUserID fills in. Middleware that runs
// before authentication uses it to learn who made the request.
func WithUserSlot(ctx context.Context, slot *string) context.Context {
	return context.WithValue(ctx, ContextKeyUserSlot, slot)
}

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	if slot, ok := ctx.Value(ContextKeyUserSlot).(*string); ok && slot != nil {
		*slot = userID
	}
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok
}

// WithUserRoles adds user roles to context
func WithUserRoles(ctx context.Context, roles []string) context.Context {
	return context.WithValue(ctx, ContextKeyUserRoles, roles)
}

// GetUserRoles extracts user roles from context
func GetUserRoles(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(ContextKeyUserRoles).([]string)
	return roles, ok
}
