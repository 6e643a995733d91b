package utils

import "context"

type contextKey string

const UsernameKey contextKey = "username"

// SetUserContext sets the authenticated username into context (called by middleware)
func SetUserContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

// GetUsernameFromContext retrieves the username safely
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok && username != ""
}
