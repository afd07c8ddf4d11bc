package identity

import "context"

type ctxKey string

const identityKey ctxKey = "propline.identity_id"

// WithID stores the caller identity in context. The identity is an opaque
// string: an authenticated user id or an anonymous session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext extracts the caller identity if present.
func FromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(identityKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
