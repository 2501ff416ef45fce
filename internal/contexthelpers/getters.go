package contexthelpers

import (
	"context"
)

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	if !ok {
		return false
	}

	return isAuthenticated
}

// AuthenticatedUserID returns the signed-in user's id or zero when the request is anonymous.
func AuthenticatedUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(authenticatedUserIDContextKey).(int64)
	if !ok {
		return 0
	}

	return userID
}

func UserDisplayName(ctx context.Context) string {
	name, ok := ctx.Value(userDisplayNameContextKey).(string)
	if !ok {
		return ""
	}

	return name
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}
