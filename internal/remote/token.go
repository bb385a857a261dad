package remote

import "context"

type tokenContextKey struct{}

// ContextWithToken attaches the caller's bearer token to the context so the
// REST client can forward it to the CRM service. Token issuance and storage
// are external; the engine only passes the token through.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token previously attached with
// ContextWithToken, or "" if none is present.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}
