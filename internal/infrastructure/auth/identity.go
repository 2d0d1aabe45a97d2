package auth

import "context"

type identityKey struct{}

// WithIdentity stores the authenticated claims on the request context.
func WithIdentity(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, identityKey{}, claims)
}

// GetIdentity returns the authenticated claims, if any.
func GetIdentity(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(identityKey{}).(Claims)
	return claims, ok
}
