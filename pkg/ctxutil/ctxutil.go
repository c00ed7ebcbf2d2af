// Package ctxutil carries request-scoped identity through context.Context.
package ctxutil

import "context"

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	tokenIDKey   ctxKey = "token_id"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the authenticated user id in the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx returns the user id and false when it is missing or empty.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithTokenID stores the jti of the token that authenticated the request.
func WithTokenID(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, tokenIDKey, jti)
}

func TokenIDFromCtx(ctx context.Context) string {
	jti, _ := ctx.Value(tokenIDKey).(string)
	return jti
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns an empty string when no request id is set.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
