package userctx

import "context"

// Context key type
type contextKey string

const userIDKey contextKey = "user_id"
const requestIDKey contextKey = "request_id"

// SetUserID adds the acting user ID to the context
func SetUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves the acting user ID, "" for anonymous requests
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUser returns the acting user as a nullable column value
func GetUser(ctx context.Context) *string {
	id := GetUserID(ctx)
	if id == "" {
		return nil
	}
	return &id
}

// SetRequestID adds the request ID to the context
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
