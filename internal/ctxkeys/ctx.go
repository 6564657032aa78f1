package ctxkeys

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the authenticated caller's user id, or 0 if the
// request carried no valid credential.
func UserID(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey).(int)
	return id
}

func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
